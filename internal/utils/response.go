package utils

import (
	apperrors "emiverify/internal/errors"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the shape of every JSON response.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// Respond sends an envelope with the specified status code.
func Respond(c *fiber.Ctx, status int, env Envelope) error {
	return c.Status(status).JSON(env)
}

// Success sends a 200 envelope.
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return Respond(c, fiber.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created sends a 201 envelope.
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return Respond(c, fiber.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Fail sends an error envelope with a plain message.
func Fail(c *fiber.Ctx, status int, message string) error {
	return Respond(c, status, Envelope{Success: false, Error: message})
}

// NotFound sends a JSON error response with status 404.
func NotFound(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusNotFound, message)
}

// StatusFor maps a domain error kind to its HTTP status.
func StatusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return fiber.StatusBadRequest
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindConflict:
		return fiber.StatusConflict
	case apperrors.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperrors.KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// DomainError renders a DomainError. Internal details are hidden when hideInternal is set.
func DomainError(c *fiber.Ctx, de *apperrors.DomainError, hideInternal bool) error {
	status := StatusFor(de.Kind)
	msg := de.Error()
	if status == fiber.StatusInternalServerError && hideInternal {
		msg = apperrors.ErrInternal.Message
	}
	return Respond(c, status, Envelope{
		Success: false,
		Error:   msg,
		Code:    de.Code,
		Details: de.Fields,
	})
}
