package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/simrs-agent/agent/contract"
)

type ResponseDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func writeSuccess(w http.ResponseWriter, code int, message string, data any) {
	writeJSON(w, code, ResponseDTO{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", code).Msg("request failed")
	} else {
		log.Warn().Err(err).Int("status", code).Msg("request rejected")
	}
	writeJSON(w, code, ResponseDTO{
		Success: false,
		Error:   contractx.ErrorKind(err),
		Message: contractx.UserMessage(err),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, contractx.ErrConfiguration):
		return http.StatusServiceUnavailable
	case errors.Is(err, contractx.ErrRequest), errors.Is(err, contractx.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, contractx.ErrTurnInFlight):
		return http.StatusConflict
	case errors.Is(err, contractx.ErrRoundLimit):
		return http.StatusLoopDetected
	default:
		return http.StatusBadGateway
	}
}
