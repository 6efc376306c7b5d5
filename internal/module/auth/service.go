package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/simp-lee/modify/internal/domain"
	"github.com/simp-lee/modify/internal/token"
)

// Outcomes reported to the AttemptRecorder.
const (
	OutcomeSuccess       = "success"
	OutcomeUnknownUser   = "unknown_user"
	OutcomeWrongPassword = "wrong_password"
	OutcomeError         = "error"
)

// Unauthorized causes. They are logged, never sent to the client.
var (
	errUnknownUser   = errors.New("user not found")
	errWrongPassword = errors.New("wrong password")
)

// Service defines the authentication operations.
type Service interface {
	Login(ctx context.Context, email, password string) (*TokenResponse, error)
	Register(ctx context.Context, email, password string) (*domain.User, error)
}

// TokenIssuer signs tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID uint) (token.Token, error)
}

// AttemptRecorder counts login attempts by outcome.
type AttemptRecorder interface {
	RecordAuthAttempt(outcome string)
}

type noopRecorder struct{}

func (noopRecorder) RecordAuthAttempt(string) {}

// Option configures the auth service.
type Option func(*authService)

// WithRecorder reports login outcomes to r.
func WithRecorder(r AttemptRecorder) Option {
	return func(s *authService) {
		if r != nil {
			s.recorder = r
		}
	}
}

// authService implements Service.
type authService struct {
	users       domain.UserService
	tokens      TokenIssuer
	cost        int
	placeholder []byte
	recorder    AttemptRecorder
}

// NewService creates a new auth Service. cost is the bcrypt cost used for new
// passwords; values outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewService(users domain.UserService, tokens TokenIssuer, cost int, opts ...Option) (Service, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	// Compared against when the email is unknown so both failure paths
	// spend one bcrypt comparison.
	placeholder, err := bcrypt.GenerateFromPassword([]byte("placeholder-password"), cost)
	if err != nil {
		return nil, err
	}

	s := &authService{
		users:       users,
		tokens:      tokens,
		cost:        cost,
		placeholder: placeholder,
		recorder:    noopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Login checks email and password and returns a signed token for the user.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		s.recorder.RecordAuthAttempt(OutcomeError)
		return nil, err
	}

	if user == nil {
		_ = bcrypt.CompareHashAndPassword(s.placeholder, []byte(password))
		s.recorder.RecordAuthAttempt(OutcomeUnknownUser)
		return nil, unauthorized(errUnknownUser)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.recorder.RecordAuthAttempt(OutcomeWrongPassword)
		return nil, unauthorized(errWrongPassword)
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.recorder.RecordAuthAttempt(OutcomeError)
		return nil, domain.NewAppError(domain.CodeInternal, "failed to generate token", err)
	}

	s.recorder.RecordAuthAttempt(OutcomeSuccess)
	return &TokenResponse{
		Token:     tok.Value,
		ExpiresAt: tok.ExpiresAt.Unix(),
	}, nil
}

// Register hashes password and stores a new user.
func (s *authService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "email is required", nil)
	}
	if len(password) < 8 {
		return nil, domain.NewAppError(domain.CodeValidation, "password must be at least 8 characters", nil)
	}
	if len(password) > 72 {
		return nil, domain.NewAppError(domain.CodeValidation, "password must not exceed 72 characters", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to hash password", err)
	}

	return s.users.CreateUser(ctx, email, string(hash))
}

func unauthorized(cause error) error {
	return domain.NewAppError(domain.CodeUnauthorized, domain.ErrUnauthorized.Message, cause)
}
