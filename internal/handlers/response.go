package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/yungbote/studytrack-backend/internal/apierr"
	"github.com/yungbote/studytrack-backend/internal/logger"
)

type APIError struct {
	Message string              `json:"message"`
	Code    string              `json:"code,omitempty"`
	Fields  []apierr.FieldError `json:"fields,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps typed service errors onto their HTTP status and
// code. Anything untyped is a store or programming failure and becomes a
// logged 500.
func RespondServiceError(c *gin.Context, log *logger.Logger, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	if log != nil {
		log.Error("Request failed", "error", err, "path", c.FullPath())
	}
	RespondError(c, http.StatusInternalServerError, "internal_error", err)
}

// BindJSON binds and validates a request body. A schema failure responds
// 400 with the per-field error list and returns false; the caller just
// returns.
func BindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		fields := make([]apierr.FieldError, 0, len(vErrs))
		for _, fe := range vErrs {
			fields = append(fields, apierr.FieldError{
				Field:   fe.Field(),
				Message: validationMessage(fe),
			})
		}
		c.JSON(http.StatusBadRequest, ErrorEnvelope{
			Error: APIError{
				Message: "validation failed",
				Code:    "validation_error",
				Fields:  fields,
			},
		})
		return false
	}
	RespondError(c, http.StatusBadRequest, "invalid_body", err)
	return false
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation rule %q", fe.Tag())
	}
}

// queryID parses the required ?id= query parameter. On failure it responds
// 400 and returns false.
func queryID(c *gin.Context) (uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Query("id"))
	if raw == "" {
		RespondError(c, http.StatusBadRequest, "missing_id", fmt.Errorf("query parameter id is required"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("query parameter id must be a uuid"))
		return uuid.Nil, false
	}
	return id, true
}
