package domain

import "context"

// User is a locally registered account. PasswordHash holds a bcrypt hash and
// never leaves the process.
type User struct {
	BaseModel
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password;size:255;not null" json:"-"`
}

// UserRepository defines the data access interface for users.
type UserRepository interface {
	// Create inserts user. A taken email yields an AlreadyExists error.
	Create(ctx context.Context, user *User) error
	// GetByID returns the single user with id or a NotFound error.
	GetByID(ctx context.Context, id uint) (*User, error)
	// FindByEmail returns nil, nil when no user has the given email.
	FindByEmail(ctx context.Context, email string) (*User, error)
	// List returns every user ordered by id.
	List(ctx context.Context) ([]User, error)
}

// UserService defines the business logic interface for users.
type UserService interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*User, error)
	GetUser(ctx context.Context, id uint) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
}
