package user

import (
	"context"
	"strings"

	"github.com/simp-lee/modify/internal/domain"
)

// userService implements domain.UserService.
type userService struct {
	repo domain.UserRepository
}

// NewUserService creates a new UserService with the given repository.
func NewUserService(repo domain.UserRepository) domain.UserService {
	return &userService{repo: repo}
}

// CreateUser persists a new user. passwordHash must already be hashed; this
// layer never sees plaintext passwords.
func (s *userService) CreateUser(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "email is required", nil)
	}
	if passwordHash == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "password hash is required", nil)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *userService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// FindUserByEmail returns the user with email, or nil when none matches.
func (s *userService) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, strings.TrimSpace(email))
}

// ListUsers returns every user.
func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}
