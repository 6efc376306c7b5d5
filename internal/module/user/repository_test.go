package user

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/simp-lee/modify/internal/domain"
)

// setupTestDB creates an in-memory SQLite database with the User table.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// Every connection to ":memory:" is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCreateAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Email: "alice@example.com", PasswordHash: "$2a$10$hash"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected non-zero ID after Create")
	}

	got, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != "alice@example.com" || got.PasswordHash != "$2a$10$hash" {
		t.Errorf("got %+v; want Email=alice@example.com with stored hash", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	if !domain.IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u1 := &domain.User{Email: "dup@example.com", PasswordHash: "h1"}
	if err := repo.Create(ctx, u1); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	u2 := &domain.User{Email: "dup@example.com", PasswordHash: "h2"}
	err := repo.Create(ctx, u2)
	if !domain.IsAlreadyExists(err) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
	if domain.IsInternal(err) {
		t.Error("duplicate email must not be reported as an internal error")
	}
}

func TestFindByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{Email: "bob@example.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.FindByEmail(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if got == nil || got.Email != "bob@example.com" {
		t.Fatalf("got %+v; want bob@example.com", got)
	}
}

func TestFindByEmail_NoMatchIsNotAnError(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	got, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v; want nil", got)
	}
}

func TestList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		u := &domain.User{Email: fmt.Sprintf("user%d@example.com", i), PasswordHash: "h"}
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("Create user %d: %v", i, err)
		}
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("len=%d; want 3", len(users))
	}
	for i := 1; i < len(users); i++ {
		if users[i-1].ID >= users[i].ID {
			t.Errorf("users not ordered by id: %d before %d", users[i-1].ID, users[i].ID)
		}
	}
}

func TestList_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Errorf("got %v; want empty non-nil slice", users)
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"record not found", gorm.ErrRecordNotFound, domain.IsNotFound},
		{"translated duplicate", gorm.ErrDuplicatedKey, domain.IsAlreadyExists},
		{"postgres unique violation", &pgconn.PgError{Code: "23505", Message: "duplicate"}, domain.IsAlreadyExists},
		{"postgres other error", &pgconn.PgError{Code: "08006", Message: "connection failure"}, domain.IsInternal},
		{"sqlite unique message", errors.New("UNIQUE constraint failed: users.email"), domain.IsAlreadyExists},
		{"generic", errors.New("boom"), domain.IsInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err)
			if !tt.check(got) {
				t.Errorf("mapError(%v) = %v; wrong category", tt.err, got)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("mapError should wrap the cause")
			}
		})
	}

	if mapError(nil) != nil {
		t.Error("mapError(nil) should be nil")
	}
}
