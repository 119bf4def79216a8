package middleware

import (
	"errors"

	apperrors "emiverify/internal/errors"
	"emiverify/internal/logger"
	"emiverify/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// RequestIDConfig generates uuid request ids and echoes them in X-Request-ID.
func RequestIDConfig() requestid.Config {
	return requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: "requestid",
	}
}

// RequestContext copies the request id into the user context so services log it.
func RequestContext(c *fiber.Ctx) error {
	if id, ok := c.Locals("requestid").(string); ok {
		c.SetUserContext(logger.WithRequestID(c.UserContext(), id))
	}
	return c.Next()
}

// ErrorHandler renders every error returned by a handler or middleware as an envelope.
func ErrorHandler(hideInternal bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if de, ok := apperrors.As(err); ok {
			if de.Kind == apperrors.KindInternal {
				logger.WithContext(c.UserContext()).Error("request failed",
					"method", c.Method(), "path", c.Path(), "error", err)
			}
			return utils.DomainError(c, de, hideInternal)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			msg := fe.Message
			if fe.Code == fiber.StatusNotFound {
				msg = "Route not found"
			}
			return utils.Fail(c, fe.Code, msg)
		}

		logger.WithContext(c.UserContext()).Error("unhandled error",
			"method", c.Method(), "path", c.Path(), "error", err)
		return utils.DomainError(c, apperrors.Internal(err), hideInternal)
	}
}
