package identity

import (
	"context"
	"errors"
	"fmt"

	"nexcos/internal/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailInUse is returned when signing up with a registered email.
	ErrEmailInUse = errors.New("email already in use")
	// ErrInvalidCredentials is returned for an unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Identity is what the provider knows about a signed-in account.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	Building    string
}

// Provider creates accounts and checks credentials.
type Provider interface {
	CreateAccount(ctx context.Context, email, password, displayName, building string) (Identity, error)
	SignIn(ctx context.Context, email, password string) (Identity, error)
}

// PasswordProvider stores bcrypt hashes in an AccountRepository.
type PasswordProvider struct {
	repo AccountRepository
	cost int
}

// NewPasswordProvider returns a PasswordProvider. A cost of zero uses
// bcrypt.DefaultCost.
func NewPasswordProvider(repo AccountRepository, cost int) *PasswordProvider {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &PasswordProvider{repo: repo, cost: cost}
}

// CreateAccount registers a new account and returns its identity.
func (p *PasswordProvider) CreateAccount(ctx context.Context, email, password, displayName, building string) (id Identity, err error) {
	ctx, span := observability.StartSpan(ctx, "identity", "create_account")
	defer func() { observability.EndSpan(span, err) }()

	existing, err := p.repo.GetByEmail(ctx, email)
	if err != nil {
		return Identity{}, err
	}
	if existing != nil {
		return Identity{}, ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return Identity{}, fmt.Errorf("hash password: %w", err)
	}

	account := &Account{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Building:     building,
	}
	if err := p.repo.Create(ctx, account); err != nil {
		return Identity{}, err
	}
	span.SetAttributes(attribute.String("identity.uid", account.UID))

	return toIdentity(account), nil
}

// SignIn checks credentials and returns the matching identity.
func (p *PasswordProvider) SignIn(ctx context.Context, email, password string) (id Identity, err error) {
	ctx, span := observability.StartSpan(ctx, "identity", "sign_in")
	defer func() { observability.EndSpan(span, err) }()

	account, err := p.repo.GetByEmail(ctx, email)
	if err != nil {
		return Identity{}, err
	}
	if account == nil {
		return Identity{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return Identity{}, ErrInvalidCredentials
	}
	return toIdentity(account), nil
}

func toIdentity(a *Account) Identity {
	return Identity{
		UID:         a.UID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		Building:    a.Building,
	}
}
