package errors

import "net/http"

// Fixed messages per status; the message never depends on the cause.
const (
	MsgBadRequest       = "bad request"
	MsgUnauthorized     = "unauthorized"
	MsgNotFound         = "resource not found"
	MsgMethodNotAllowed = "method not allowed"
	MsgUnprocessable    = "unprocessable"
	MsgInternalError    = "internal server error"
	MsgUpstreamError    = "upstream error"
)

var messages = map[int]string{
	http.StatusBadRequest:          MsgBadRequest,
	http.StatusUnauthorized:        MsgUnauthorized,
	http.StatusNotFound:            MsgNotFound,
	http.StatusMethodNotAllowed:    MsgMethodNotAllowed,
	http.StatusUnprocessableEntity: MsgUnprocessable,
	http.StatusInternalServerError: MsgInternalError,
	http.StatusBadGateway:          MsgUpstreamError,
}

// MessageFor returns the envelope message for status.
func MessageFor(status int) string {
	if msg, ok := messages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}
