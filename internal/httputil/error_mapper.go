package httputil

import (
	"context"
	"errors"
	"net/http"

	"github.com/Eursukkul/campsite-reservation/internal/apperr"
)

// HTTPErrorInfo contains the HTTP status code and message for an error.
type HTTPErrorInfo struct {
	Status  int
	Message string
}

// ErrorMapping maps one error class to a status. An empty Message means the
// error's own text is shown to the client.
type ErrorMapping struct {
	Error   error
	Status  int
	Message string
}

// ErrorMapper maps domain errors to HTTP status codes and messages.
type ErrorMapper struct {
	mappings       []ErrorMapping
	defaultStatus  int
	defaultMessage string
}

func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: "internal server error",
	}
}

// DefaultErrorMapper knows every apperr class.
func DefaultErrorMapper() *ErrorMapper {
	return NewErrorMapper().
		WithMapping(apperr.ErrNotFound, http.StatusNotFound, "").
		WithMapping(apperr.ErrForbidden, http.StatusForbidden, "").
		WithMapping(apperr.ErrUnauthenticated, http.StatusUnauthorized, "").
		WithMapping(apperr.ErrConflict, http.StatusConflict, "").
		WithMapping(apperr.ErrInvalidTransition, http.StatusConflict, "").
		WithMapping(apperr.ErrInvalidInput, http.StatusBadRequest, "").
		WithMapping(apperr.ErrUnavailable, http.StatusServiceUnavailable, "service temporarily unavailable")
}

func (m *ErrorMapper) WithMapping(err error, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{Error: err, Status: status, Message: message})
	return m
}

func (m *ErrorMapper) WithDefault(status int, message string) *ErrorMapper {
	m.defaultStatus = status
	m.defaultMessage = message
	return m
}

// Map converts an error to HTTP status and message.
func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK}
	}

	// Check for context errors first
	if errors.Is(err, context.DeadlineExceeded) {
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Message: "request timeout"}
	}
	if errors.Is(err, context.Canceled) {
		return HTTPErrorInfo{Status: http.StatusServiceUnavailable, Message: "request cancelled"}
	}

	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.Error) {
			msg := mapping.Message
			if msg == "" {
				msg = err.Error()
			}
			return HTTPErrorInfo{Status: mapping.Status, Message: msg}
		}
	}

	return HTTPErrorInfo{Status: m.defaultStatus, Message: m.defaultMessage}
}
