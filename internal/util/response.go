package util

import (
	"fmt"
	"runtime/debug"

	"github.com/hiresphere/api/internal/apperror"
	"github.com/hiresphere/api/internal/config"
	"github.com/hiresphere/api/internal/response"
	"github.com/gofiber/fiber/v2"
)

type SuccessResponseFormat struct {
	Code       int
	Message    string
	Data       any
	Pagination *response.Pagination
	Meta       any
}

type OrderedSuccessResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Meta       any                  `json:"meta,omitempty"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
	Data       any                  `json:"data,omitempty"`
}

type ErrorResponseFormat struct {
	Code       int
	Message    string
	DevMessage string
	Details    any
	Trace      string
}

type OrderedErrorResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DevMessage string `json:"dev_message,omitempty"`
	Details    any    `json:"details,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

type FormError struct {
	Errors  map[string]string
	Message string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("form error: %s", e.Message)
}

func NewFormError(message string, errors map[string]string) *FormError {
	return &FormError{
		Message: message,
		Errors:  errors,
	}
}

// SuccessResponse writes the standard success envelope.
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	resp := OrderedSuccessResponse{
		Success:    true,
		Message:    params.Message,
		Data:       params.Data,
		Pagination: params.Pagination,
		Meta:       params.Meta,
	}
	return c.Status(params.Code).JSON(resp)
}

// ErrorResponse writes the standard error envelope. Dev details and stack
// traces are included outside production only.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	resp := OrderedErrorResponse{
		Success: false,
		Message: params.Message,
	}
	if params.Details != nil {
		resp.Details = params.Details
	}
	if config.LoadAppConfig().Env != "production" {
		if len(errs) > 0 && errs[0] != nil {
			resp.DevMessage = errs[0].Error()
			resp.Trace = string(debug.Stack())
		}
		if params.DevMessage != "" {
			resp.DevMessage = params.DevMessage
		}
		if params.Trace != "" {
			resp.Trace = params.Trace
		}
	}

	errorCode := params.Code
	if errorCode == 0 {
		errorCode = fiber.StatusInternalServerError
	}
	return c.Status(errorCode).JSON(resp)
}

// HandleError maps domain errors onto the error envelope. *apperror.Error
// carries its own status and safe message; *FormError becomes a 422 with
// field details; anything else is a 500.
func HandleError(c *fiber.Ctx, err error) error {
	if formErr, ok := err.(*FormError); ok {
		return ErrorResponse(c, ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: formErr.Message,
			Details: formErr.Errors,
		})
	}
	if appErr, ok := apperror.As(err); ok {
		return ErrorResponse(c, ErrorResponseFormat{
			Code:    appErr.StatusCode(),
			Message: appErr.Message,
		}, appErr.Err)
	}
	if fiberErr, ok := err.(*fiber.Error); ok {
		return ErrorResponse(c, ErrorResponseFormat{
			Code:    fiberErr.Code,
			Message: fiberErr.Message,
		})
	}
	return ErrorResponse(c, ErrorResponseFormat{
		Code:    fiber.StatusInternalServerError,
		Message: "Internal server error",
	}, err)
}
