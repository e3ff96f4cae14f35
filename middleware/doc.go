/*
Package middleware provides HTTP middleware and response helpers.

# Request Logging

WithLogging wraps a handler function and logs method, path and duration
for every request via slog.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, payload)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.ParseJSONBody(r, &req)

# CORS

The dashboard frontend is served from a separate origin, so the whole mux
is wrapped with the CORS middleware in main.
*/
package middleware
