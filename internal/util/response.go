package util

import (
	"github.com/fadilmartias/founder-assessment/internal/config"
	"github.com/gofiber/fiber/v2"
)

type SuccessResponseFormat struct {
	Code    int
	Message string
	Data    fiber.Map
}

type ErrorResponseFormat struct {
	Code    int
	Message string
	Details any
}

type OrderedErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// SuccessResponse sends {"success": true, "message": ..., <data keys>}.
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	body := fiber.Map{"success": true}
	if params.Message != "" {
		body["message"] = params.Message
	}
	for k, v := range params.Data {
		body[k] = v
	}
	code := params.Code
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(body)
}

// ErrorResponse sends {"success": false, "error": ..., "details": ...}.
// Details, and the text of errs, are only included outside production.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	response := OrderedErrorResponse{
		Success: false,
		Error:   params.Message,
	}
	if !config.LoadAppConfig().IsProduction() {
		if len(errs) > 0 && errs[0] != nil {
			response.Details = errs[0].Error()
		}
		if params.Details != nil {
			response.Details = params.Details
		}
	}

	errorCode := params.Code
	if params.Code == 0 {
		errorCode = fiber.StatusInternalServerError
	}
	return c.Status(errorCode).JSON(response)
}
