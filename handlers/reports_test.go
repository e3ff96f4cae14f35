package handlers_test

import (
	"net/http/httptest"
	"testing"

	"github.com/spinlog/server/handlers"
	"github.com/spinlog/server/models"
	"github.com/spinlog/server/testutil"
)

func TestGetStats(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	alice := testutil.CreateTestUser(t, conn, 1)
	bob := testutil.CreateTestUser(t, conn, 2)
	testutil.InsertTestChoice(t, conn, alice, 10, models.StatusAffirmed)
	testutil.InsertTestChoice(t, conn, alice, 20, models.StatusAffirmed)
	testutil.InsertTestChoice(t, conn, bob, 30, models.StatusDeclined)

	handler := handlers.NewReportsHandler(conn)

	req := testutil.MakeRequest("GET", "/api/dashboard/stats", nil, nil)
	w := httptest.NewRecorder()
	handler.GetStats(w, req)

	testutil.AssertStatus(t, w, 200)

	var stats models.StatsResponse
	testutil.AssertJSON(t, w, &stats)

	if stats.TotalUsers != 2 {
		t.Errorf("expected 2 users, got %d", stats.TotalUsers)
	}
	if stats.TotalEvents != 3 {
		t.Errorf("expected 3 events, got %d", stats.TotalEvents)
	}
	if stats.Affirmed != 2 || stats.Declined != 1 {
		t.Errorf("expected 2 affirmed / 1 declined, got %d / %d", stats.Affirmed, stats.Declined)
	}
}

func TestGetFrequencies(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	alice := testutil.CreateTestUser(t, conn, 1)
	testutil.InsertTestChoice(t, conn, alice, 10, models.StatusAffirmed)
	testutil.InsertTestChoice(t, conn, alice, 10, models.StatusAffirmed)
	testutil.InsertTestChoice(t, conn, alice, 3, models.StatusAffirmed)
	// Declined events never count toward frequencies
	testutil.InsertTestChoice(t, conn, alice, 10, models.StatusDeclined)

	handler := handlers.NewReportsHandler(conn)

	req := testutil.MakeRequest("GET", "/api/dashboard/frequencies", nil, nil)
	w := httptest.NewRecorder()
	handler.GetFrequencies(w, req)

	testutil.AssertStatus(t, w, 200)

	var buckets []models.FrequencyBucket
	testutil.AssertJSON(t, w, &buckets)

	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Value != 3 || buckets[0].Count != 1 {
		t.Errorf("expected bucket (3, 1), got (%d, %d)", buckets[0].Value, buckets[0].Count)
	}
	if buckets[1].Value != 10 || buckets[1].Count != 2 {
		t.Errorf("expected bucket (10, 2), got (%d, %d)", buckets[1].Value, buckets[1].Count)
	}
}

func TestGetFrequencies_Empty(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := handlers.NewReportsHandler(conn)

	req := testutil.MakeRequest("GET", "/api/dashboard/frequencies", nil, nil)
	w := httptest.NewRecorder()
	handler.GetFrequencies(w, req)

	testutil.AssertStatus(t, w, 200)

	// Empty array, not null
	if body := w.Body.String(); body == "null\n" {
		t.Error("expected an empty array, got null")
	}
}

func TestGetActivity(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	alice := testutil.CreateTestUser(t, conn, 1)
	bob := testutil.CreateTestUser(t, conn, 2)
	testutil.InsertTestChoice(t, conn, alice, 5, models.StatusAffirmed)
	testutil.InsertTestChoice(t, conn, bob, 9, models.StatusDeclined)

	handler := handlers.NewReportsHandler(conn)

	req := testutil.MakeRequest("GET", "/api/dashboard/activity", nil, nil)
	w := httptest.NewRecorder()
	handler.GetActivity(w, req)

	testutil.AssertStatus(t, w, 200)

	var entries []models.ActivityEntry
	testutil.AssertJSON(t, w, &entries)

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	for _, e := range entries {
		if e.TelegramID == 0 || e.Status == "" || e.CreatedAt.IsZero() {
			t.Errorf("incomplete activity entry: %+v", e)
		}
		if e.Username == nil {
			t.Errorf("expected username to be joined in: %+v", e)
		}
	}
}
