package server

import (
	"nexcos/internal/models"
	"nexcos/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /api/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var in service.SignUpInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	sess, err := s.sessions.SignUp(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sess)
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	sess, err := s.sessions.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sess)
}

// Logout handles POST /api/auth/logout. A valid bearer token is revoked;
// the session is cleared either way.
func (s *Server) Logout(c *fiber.Ctx) error {
	var claims *service.TokenClaims
	if token := bearerToken(c); token != "" {
		claims, _ = s.sessions.ParseToken(c.UserContext(), token)
	}
	if err := s.sessions.Logout(c.UserContext(), claims); err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// GetSession handles GET /api/auth/session
func (s *Server) GetSession(c *fiber.Ctx) error {
	user, ok := s.sessions.Current()
	if !ok {
		return c.JSON(fiber.Map{"authenticated": false, "user": nil})
	}
	return c.JSON(fiber.Map{"authenticated": true, "user": user})
}

// GetMe handles GET /api/users/me
func (s *Server) GetMe(c *fiber.Ctx) error {
	claims := claimsFrom(c)
	if claims == nil {
		return respondError(c, models.NewUnauthorizedError("Authorization required"))
	}
	if user, ok := s.sessions.Current(); ok && user.ID == claims.Subject {
		return c.JSON(user)
	}
	return c.JSON(models.User{ID: claims.Subject, Name: claims.Name})
}
