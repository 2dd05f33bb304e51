package contract

import (
	"errors"
	"strings"
)

var (
	ErrModelInvoke     = errors.New("model invoke failed")
	ErrSchemaViolation = errors.New("model response violates schema")
	ErrPromptMissing   = errors.New("required prompt is missing")
	ErrValidation      = errors.New("validation failed")
	ErrEmptyMessage    = errors.New("message is empty")

	ErrConfiguration = errors.New("model provider is not configured")
	ErrRequest       = errors.New("invalid request to model provider")
	ErrTransport     = errors.New("model provider unreachable")
	ErrRoundLimit    = errors.New("tool round limit exceeded")
	ErrTurnInFlight  = errors.New("another turn is in progress")
)

// ErrorKind names the class of a turn failure for logs and metrics.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrRequest):
		return "request"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrTurnInFlight):
		return "turn_in_flight"
	case errors.Is(err, ErrRoundLimit):
		return "round_limit"
	default:
		return "transport"
	}
}

// UserMessage renders a turn failure as text suitable for the chat window.
func UserMessage(err error) string {
	switch ErrorKind(err) {
	case "":
		return ""
	case "configuration":
		return "Configuration error: the model API key is missing or invalid. " + strings.TrimSpace(unwrapDetail(err))
	case "request":
		return "Invalid request, please retry."
	case "validation":
		if errors.Is(err, ErrEmptyMessage) {
			return "Please type a message before sending."
		}
		return "Some required fields are missing or invalid. Please check the form and try again."
	case "turn_in_flight":
		return "The assistant is still working on the previous message."
	case "round_limit":
		return "The assistant could not finish the request within the allowed number of steps."
	default:
		return "Connection to the hospital assistant service was interrupted. Please try again."
	}
}

// unwrapDetail returns the text following the configuration sentinel, up to
// the end of its line, in parentheses.
func unwrapDetail(err error) string {
	msg := err.Error()
	marker := ErrConfiguration.Error()
	idx := strings.LastIndex(msg, marker)
	if idx < 0 {
		return ""
	}
	msg = msg[idx+len(marker):]
	if nl := strings.IndexByte(msg, '\n'); nl >= 0 {
		msg = msg[:nl]
	}
	msg = strings.TrimSpace(strings.TrimLeft(msg, ": "))
	if msg == "" {
		return ""
	}
	return "(" + msg + ")"
}
