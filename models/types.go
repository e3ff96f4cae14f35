package models

import "time"

// Choice status constants
const (
	StatusAffirmed = "affirmed"
	StatusDeclined = "declined"
)

// ValueRange is the exclusive upper bound for dealt values.
// Values are drawn uniformly from [0, ValueRange).
const ValueRange = 37

// Callback data tokens
const (
	TokenChoiceRequest = "random_number"
	TokenAffirmPrefix  = "affirm_"
	TokenDeclinePrefix = "decline_"
)

// RemoteIdentity is the Telegram-side identity of a user as carried on an
// update. Only TelegramID is stable; display fields are best-effort and may
// be empty.
type RemoteIdentity struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
}

// Domain types

type User struct {
	ID         int64     `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Username   *string   `json:"username,omitempty"`
	FirstName  *string   `json:"first_name,omitempty"`
	LastName   *string   `json:"last_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type ChoiceEvent struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Value     int       `json:"value"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Response types

// WebhookAck is the body returned to Telegram for every delivery. The HTTP
// status is always 200 - OK reflects the pipeline outcome, not the transport.
type WebhookAck struct {
	OK        bool      `json:"ok"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type StatsResponse struct {
	TotalUsers  int `json:"total_users"`
	TotalEvents int `json:"total_events"`
	Affirmed    int `json:"affirmed"`
	Declined    int `json:"declined"`
}

type FrequencyBucket struct {
	Value int `json:"value"`
	Count int `json:"count"`
}

type ActivityEntry struct {
	TelegramID int64     `json:"telegram_id"`
	Username   *string   `json:"username,omitempty"`
	FirstName  *string   `json:"first_name,omitempty"`
	LastName   *string   `json:"last_name,omitempty"`
	Value      int       `json:"value"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type SetWebhookResponse struct {
	WebhookURL string `json:"webhook_url"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
