package errors

import "net/http"

// Envelope messages for the statuses the API reports.
const (
	MsgBadRequest    = "bad request"
	MsgNotFound      = "Resource Not found"
	MsgUnprocessable = "unprocessable"
)

// Message returns the fixed envelope text for status. Statuses outside the
// three reported kinds fall back to the standard status text.
func Message(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusUnprocessableEntity:
		return MsgUnprocessable
	default:
		return http.StatusText(status)
	}
}
