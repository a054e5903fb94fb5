package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	reportingdomain "github.com/legaldesk/analytics/internal/reporting/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware converts errors recorded on the gin context into a
// JSON error envelope. Handlers record errors via AbortWithError and never
// write failure payloads themselves.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	var vErrs *ValidationErrors
	if errors.As(err, &vErrs) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErrs.Errors,
		}
	}

	var formatErr *reportingdomain.DataFormatError
	if errors.As(err, &formatErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   formatErr.Field,
					Code:    "invalid_timestamp",
					Message: formatErr.Error(),
				},
			},
		}
	}

	switch {
	case errors.Is(err, reportingdomain.ErrInvalidTopN):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{Field: "top_n", Code: "invalid_top_n", Message: "top_n must be a positive integer"},
			},
		}
	case errors.Is(err, reportingdomain.ErrInvalidBucket):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{Field: "bucket", Code: "invalid_bucket", Message: "bucket must be week or month"},
			},
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "resource not found",
		}
	}

	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}
}

// classifyErrorForLog maps an error to a (type, code) pair for request logs.
func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}

	var vErrs *ValidationErrors
	if errors.As(err, &vErrs) {
		code := ""
		if len(vErrs.Errors) > 0 {
			code = vErrs.Errors[0].Code
		}
		return "validation_error", code
	}

	var formatErr *reportingdomain.DataFormatError
	if errors.As(err, &formatErr) {
		return "validation_error", "invalid_timestamp"
	}

	switch {
	case errors.Is(err, reportingdomain.ErrInvalidTopN):
		return "validation_error", "invalid_top_n"
	case errors.Is(err, reportingdomain.ErrInvalidBucket):
		return "validation_error", "invalid_bucket"
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "not_found", "not_found"
	}
	return "internal_error", "internal_error"
}
