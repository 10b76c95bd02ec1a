package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"nexcos/internal/identity"
	"nexcos/internal/middleware"
	"nexcos/internal/models"
	"nexcos/internal/observability"
	"nexcos/internal/store"
	"nexcos/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	tokenIssuer   = "nexcos-api"
	tokenAudience = "nexcos-client"
	tokenTTL      = 7 * 24 * time.Hour
)

// SessionService signs residents in through the identity provider and
// keeps the session store in step.
type SessionService struct {
	provider identity.Provider
	auth     *store.AuthStore
	rdb      *redis.Client
	secret   []byte
	now      func() time.Time
}

// SignUpInput is the sign-up form.
type SignUpInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Building    string `json:"building"`
}

// Session is returned on sign-up and login.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// TokenClaims are the parts of a bearer token the server relies on.
type TokenClaims struct {
	Subject   string
	Name      string
	ID        string
	ExpiresAt time.Time
}

// NewSessionService returns a SessionService. rdb may be nil, in which case
// logout does not revoke outstanding tokens.
func NewSessionService(provider identity.Provider, auth *store.AuthStore, rdb *redis.Client, secret string) *SessionService {
	return &SessionService{
		provider: provider,
		auth:     auth,
		rdb:      rdb,
		secret:   []byte(secret),
		now:      time.Now,
	}
}

// SignUp creates an account and signs it in.
func (s *SessionService) SignUp(ctx context.Context, in SignUpInput) (Session, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return Session{}, models.NewInvalidInputError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return Session{}, models.NewInvalidInputError(err.Error())
	}
	if err := validation.ValidateDisplayName(in.DisplayName); err != nil {
		return Session{}, models.NewInvalidInputError(err.Error())
	}

	id, err := s.provider.CreateAccount(ctx, in.Email, in.Password, in.DisplayName, in.Building)
	switch {
	case errors.Is(err, identity.ErrEmailInUse):
		return Session{}, models.NewConflictError("An account with this email already exists")
	case err != nil:
		middleware.Logger.ErrorContext(ctx, "sign-up failed", slog.String("error", err.Error()))
		return Session{}, models.NewRemoteFailureError("Sign-up failed", err)
	}

	user := models.User{
		ID:        id.UID,
		Name:      id.DisplayName,
		Email:     id.Email,
		Location:  in.Building,
		CreatedAt: s.now().UnixMilli(),
	}
	return s.start(ctx, user)
}

// Login checks credentials with the identity provider and signs in.
func (s *SessionService) Login(ctx context.Context, email, password string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, models.NewInvalidInputError("Email and password are required")
	}

	id, err := s.provider.SignIn(ctx, email, password)
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		return Session{}, models.NewUnauthorizedError("Invalid credentials")
	case err != nil:
		middleware.Logger.ErrorContext(ctx, "login failed", slog.String("error", err.Error()))
		return Session{}, models.NewRemoteFailureError("Login failed", err)
	}

	name := id.DisplayName
	if name == "" {
		name = "User"
	}
	user := models.User{
		ID:        id.UID,
		Name:      name,
		Email:     id.Email,
		CreatedAt: s.now().UnixMilli(),
	}
	return s.start(ctx, user)
}

func (s *SessionService) start(ctx context.Context, user models.User) (Session, error) {
	token, err := s.issueToken(user)
	if err != nil {
		return Session{}, models.NewInternalError(err)
	}
	s.auth.Login(user)
	observability.RecordMutation("auth", "login")
	middleware.Logger.InfoContext(ctx, "session started", slog.String("user_id", user.ID))
	return Session{Token: token, User: user}, nil
}

// Logout clears the session. When claims are given and Redis is available
// the token is revoked until it would have expired.
func (s *SessionService) Logout(ctx context.Context, claims *TokenClaims) error {
	s.auth.Logout()
	observability.RecordMutation("auth", "logout")

	if claims == nil || claims.ID == "" || s.rdb == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, revokedKey(claims.ID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// Current returns the session user.
func (s *SessionService) Current() (models.User, bool) {
	return s.auth.Current()
}

func (s *SessionService) issueToken(user models.User) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("JWT secret not configured")
	}
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"name": user.Name,
		"iss":  tokenIssuer,
		"aud":  tokenAudience,
		"exp":  now.Add(tokenTTL).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates a bearer token and reports its claims. Revoked
// tokens are rejected when Redis is available.
func (s *SessionService) ParseToken(ctx context.Context, raw string) (*TokenClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthorizedError("Invalid token claims")
	}
	sub, _ := mc.GetSubject()
	if sub == "" {
		return nil, models.NewUnauthorizedError("Invalid subject claim")
	}
	claims := &TokenClaims{Subject: sub}
	claims.Name, _ = mc["name"].(string)
	claims.ID, _ = mc["jti"].(string)
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	if claims.ID != "" && s.rdb != nil {
		n, err := s.rdb.Exists(ctx, revokedKey(claims.ID)).Result()
		if err == nil && n > 0 {
			return nil, models.NewUnauthorizedError("Token has been revoked")
		}
	}
	return claims, nil
}

func revokedKey(jti string) string {
	return "nexcos:revoked:" + jti
}

// ThemeService toggles the colour scheme.
type ThemeService struct {
	store *store.ThemeStore
}

func NewThemeService(s *store.ThemeStore) *ThemeService {
	return &ThemeService{store: s}
}

func (s *ThemeService) State() models.ThemeState {
	return s.store.State()
}

func (s *ThemeService) Toggle(ctx context.Context) models.ThemeState {
	state := s.store.Toggle()
	observability.RecordMutation("theme", "toggle")
	middleware.Logger.DebugContext(ctx, "theme toggled", slog.Bool("dark", state.IsDarkMode))
	return state
}
