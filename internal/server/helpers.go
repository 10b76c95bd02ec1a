package server

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"nexcos/internal/middleware"
	"nexcos/internal/models"
	"nexcos/internal/service"

	"github.com/gofiber/fiber/v2"
)

const claimsLocal = "claims"

// statusFor maps an error code to its HTTP status.
func statusFor(err error) int {
	switch models.ErrorCode(err) {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeInvalidInput:
		return fiber.StatusBadRequest
	case models.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case models.CodeConflict:
		return fiber.StatusConflict
	case models.CodeRemoteFailure:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err with the status its code maps to. Unknown errors
// are logged and hidden behind a generic internal error.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(nil))
	}
	return models.RespondWithError(c, statusFor(err), err)
}

// parseBody decodes the JSON body into out, answering 400 on failure.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return models.NewInvalidInputError("Invalid request body")
	}
	return nil
}

// ErrorHandler renders errors that escape the handlers.
func (s *Server) ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
	}
	return respondError(c, err)
}

func bearerToken(c *fiber.Ctx) string {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// AuthRequired rejects requests without a valid bearer token and stores
// the token claims in locals.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return respondError(c, models.NewUnauthorizedError("Authorization required"))
		}

		claims, err := s.sessions.ParseToken(c.UserContext(), token)
		if err != nil {
			return respondError(c, err)
		}

		c.Locals("userID", claims.Subject)
		c.Locals(claimsLocal, claims)
		c.SetUserContext(context.WithValue(c.UserContext(), middleware.UserIDKey, claims.Subject))
		return c.Next()
	}
}

func claimsFrom(c *fiber.Ctx) *service.TokenClaims {
	claims, _ := c.Locals(claimsLocal).(*service.TokenClaims)
	return claims
}
