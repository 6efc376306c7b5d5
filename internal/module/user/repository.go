package user

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/simp-lee/modify/internal/domain"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// userRepository implements domain.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository backed by the given GORM database.
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return mapError(err)
	}
	return nil
}

// GetByID retrieves a user by its primary key.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Take(&user, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// FindByEmail retrieves the user registered with email, or nil if there is none.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var users []domain.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Limit(1).
		Find(&users).Error; err != nil {
		return nil, mapError(err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// List returns all users ordered by id.
func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0)
	if err := r.db.WithContext(ctx).Order("id asc").Find(&users).Error; err != nil {
		return nil, mapError(err)
	}
	return users, nil
}

// mapError converts GORM errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewAppError(domain.CodeNotFound, "user not found", err)
	}
	if isDuplicateKeyError(err) {
		return domain.NewAppError(domain.CodeAlreadyExists, "email already registered", err)
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}

// isDuplicateKeyError detects unique constraint violations. GORM translates
// them to gorm.ErrDuplicatedKey only when TranslateError is on, and the pure-Go
// SQLite driver reports them solely through the message text.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
