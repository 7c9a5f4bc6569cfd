package errors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// FallbackMessage is returned when an unclassified error carries no message
// of its own.
const FallbackMessage = "Error interno del servidor"

// AppError is the closed error taxonomy produced by the application layer.
// Operational errors represent expected client-facing conditions; everything
// else is an unexpected fault. Handlers and services raise AppError values;
// Classify is the single point that turns any error into an HTTP response.
type AppError struct {
	StatusCode  int
	Message     string
	Operational bool
}

func (e *AppError) Error() string {
	return e.Message
}

// NewValidation builds a 400 operational error.
func NewValidation(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message, Operational: true}
}

// NewUnauthorized builds a 401 operational error.
func NewUnauthorized(message string) *AppError {
	return &AppError{StatusCode: http.StatusUnauthorized, Message: message, Operational: true}
}

// NewForbidden builds a 403 operational error.
func NewForbidden(message string) *AppError {
	return &AppError{StatusCode: http.StatusForbidden, Message: message, Operational: true}
}

// NewNotFound builds a 404 operational error.
func NewNotFound(message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Message: message, Operational: true}
}

// NewConflict builds a 409 operational error.
func NewConflict(message string) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Message: message, Operational: true}
}

// NewInternal builds a 500 non-operational error.
func NewInternal(message string) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: message, Operational: false}
}

// Channel selects where a classified error is logged.
type Channel int

const (
	// ChannelInfo logs status and message only.
	ChannelInfo Channel = iota
	// ChannelFatal logs status, message and a stack trace.
	ChannelFatal
)

// Classified is the stable (status, message, operational) triple every error
// collapses to before a response is written.
type Classified struct {
	StatusCode  int
	Message     string
	Operational bool
}

// Classify maps any error raised during request handling to a Classified
// triple and a log channel. Order, first match wins: an AppError is used
// verbatim; an echo.HTTPError (errors raised at the framework boundary:
// bind failures, unknown routes) keeps its status code but is treated as
// non-operational; anything else becomes a 500.
//
// Classify panics when err is nil. The error handler never passes nil, and a
// nil "error" has no meaningful classification.
func Classify(err error) (Classified, Channel) {
	var c Classified

	var appErr *AppError
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		c = Classified{StatusCode: appErr.StatusCode, Message: appErr.Message, Operational: appErr.Operational}
	case errors.As(err, &httpErr):
		c = Classified{StatusCode: httpErr.Code, Message: httpMessage(httpErr), Operational: false}
	default:
		msg := err.Error()
		if msg == "" {
			msg = FallbackMessage
		}
		c = Classified{StatusCode: http.StatusInternalServerError, Message: msg, Operational: false}
	}

	if !c.Operational || c.StatusCode >= http.StatusInternalServerError {
		return c, ChannelFatal
	}
	return c, ChannelInfo
}

func httpMessage(he *echo.HTTPError) string {
	if s, ok := he.Message.(string); ok && s != "" {
		return s
	}
	if he.Internal != nil {
		return he.Internal.Error()
	}
	return http.StatusText(he.Code)
}
