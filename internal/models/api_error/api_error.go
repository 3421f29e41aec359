package api_error

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	error
	httpStatus int
	message    string
}

func (e *APIError) Unwrap() error {
	return e.error
}

func (e *APIError) HTTPStatus() int {
	return e.httpStatus
}

func (e *APIError) Message() string {
	return e.message
}

func New(e error, httpStatus int, message string) APIError {
	return APIError{
		error:      e,
		httpStatus: httpStatus,
		message:    message,
	}
}

func NewFromErr(e error, httpStatus int) APIError {
	return APIError{
		error:      e,
		httpStatus: httpStatus,
		message:    "",
	}
}

func NewFromStr(s string, httpStatus int) APIError {
	return APIError{
		error:      errors.New(s),
		httpStatus: httpStatus,
		message:    "",
	}
}

// FieldError is a single violated constraint in a request payload.
// Field is empty for domain-level failures such as a duplicate email.
type FieldError struct {
	Field string `json:"field,omitempty"`
	Msg   string `json:"msg"`
}

// ValidationErrors collects every violated field of one request so the
// client can render them all at once.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	return v[0].Msg
}

// ToResponse renders err as the client-visible JSON body. Validation and
// domain errors keep their structure; anything unrecognised collapses to a
// generic server error so no internal detail leaks.
func ToResponse(c *gin.Context, e error) {
	var validationErrs ValidationErrors
	if errors.As(e, &validationErrs) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErrs})
		return
	}

	var currentErr APIError
	if errors.As(e, &currentErr) {
		msg := currentErr.Message()
		if msg == "" {
			msg = currentErr.error.Error()
		}
		c.JSON(currentErr.HTTPStatus(), gin.H{"msg": msg})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"msg": "server error",
	})
}
