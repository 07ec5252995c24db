package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"

	"github.com/Cienszki/automatic-tournament-sub000/internal/usecase"
)

const (
	envelopeVersion = "2.0"
	errorDomain     = "tournament"
	internalMessage = "internal server error"
)

// envelope follows the Google JSON style guide: data on success, error on
// failure, never both.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorClass struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalClass = errorClass{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

// sentinelClasses is checked in order; the first errors.Is match wins.
var sentinelClasses = []struct {
	target error
	class  errorClass
}{
	{usecase.ErrInvalidInput, errorClass{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{usecase.ErrNotFound, errorClass{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{usecase.ErrConflict, errorClass{http.StatusConflict, "conflict", "ALREADY_EXISTS"}},
	{usecase.ErrUnauthorized, errorClass{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{usecase.ErrForbidden, errorClass{http.StatusForbidden, "forbidden", "PERMISSION_DENIED"}},
	{usecase.ErrDependencyUnavailable, errorClass{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, envelope{APIVersion: envelopeVersion, Data: data})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	class := mapError(ctx, err)
	if class.HTTPStatus == http.StatusInternalServerError {
		trace.SpanFromContext(ctx).RecordError(err)
	}

	body := &errorBody{
		Code:    class.HTTPStatus,
		Message: err.Error(),
		Status:  class.Status,
	}
	var validationErr *usecase.ValidationError
	if errors.As(err, &validationErr) && len(validationErr.Messages) > 0 {
		for _, msg := range validationErr.Messages {
			body.Errors = append(body.Errors, errorItem{Domain: errorDomain, Reason: class.Reason, Message: msg})
		}
	} else {
		body.Errors = []errorItem{{Domain: errorDomain, Reason: class.Reason, Message: body.Message}}
	}

	writeJSON(ctx, w, class.HTTPStatus, envelope{APIVersion: envelopeVersion, Error: body})
}

// writeInternalError never echoes the cause; it is used after a recovered panic.
func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusInternalServerError, envelope{
		APIVersion: envelopeVersion,
		Error: &errorBody{
			Code:    internalClass.HTTPStatus,
			Message: internalMessage,
			Status:  internalClass.Status,
			Errors:  []errorItem{{Domain: errorDomain, Reason: internalClass.Reason, Message: internalMessage}},
		},
	})
}

func mapError(ctx context.Context, err error) errorClass {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	var validationErr *usecase.ValidationError
	if errors.As(err, &validationErr) {
		return errorClass{HTTPStatus: http.StatusBadRequest, Reason: "validationFailed", Status: "INVALID_ARGUMENT"}
	}
	for _, sc := range sentinelClasses {
		if errors.Is(err, sc.target) {
			return sc.class
		}
	}
	return internalClass
}
