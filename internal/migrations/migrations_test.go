package migrations

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/simp-lee/modify/internal/domain"
)

func openMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestUp_SQLite(t *testing.T) {
	db := openMemoryDB(t)

	if err := Up(context.Background(), db, "sqlite", nil); err != nil {
		t.Fatalf("Up() error: %v", err)
	}

	for _, model := range []any{&domain.User{}, &domain.Module{}} {
		if !db.Migrator().HasTable(model) {
			t.Errorf("table for %T not created", model)
		}
	}
	if !db.Migrator().HasIndex(&domain.Module{}, "idx_modules_key") {
		t.Error("expected unique index idx_modules_key")
	}

	// Re-running is a no-op.
	if err := Up(context.Background(), db, "sqlite", nil); err != nil {
		t.Fatalf("second Up() error: %v", err)
	}
}

func TestUp_SQLite_TimetableRoundTrip(t *testing.T) {
	db := openMemoryDB(t)
	if err := Up(context.Background(), db, "sqlite", nil); err != nil {
		t.Fatalf("Up() error: %v", err)
	}

	in := domain.Module{
		School: domain.SchoolNUS, Year: 2020, Sem: 1, Code: "CS1010",
		Timetable: []domain.Lesson{{LessonType: "TUT", ClassNo: "T01", Day: "TUE"}},
	}
	if err := db.Create(&in).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	var out domain.Module
	if err := db.First(&out, in.ID).Error; err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(out.Timetable) != 1 || out.Timetable[0].ClassNo != "T01" {
		t.Errorf("timetable = %+v", out.Timetable)
	}
}

func TestUp_Postgres_RunsEmbeddedMigrations(t *testing.T) {
	db := openMemoryDB(t)

	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var gotDir string
	gooseUp = func(_ context.Context, _ *sql.DB, dir string) error {
		gotDir = dir
		return nil
	}

	if err := Up(context.Background(), db, "postgres", nil); err != nil {
		t.Fatalf("Up() error: %v", err)
	}
	if gotDir != "sql" {
		t.Errorf("goose ran against %q; want %q", gotDir, "sql")
	}
}

func TestUp_Postgres_Error(t *testing.T) {
	db := openMemoryDB(t)

	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })
	gooseUp = func(context.Context, *sql.DB, string) error { return errors.New("boom") }

	err := Up(context.Background(), db, "postgres", nil)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestUp_UnsupportedDriver(t *testing.T) {
	if err := Up(context.Background(), openMemoryDB(t), "mysql", nil); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(FS, dir)
	if err != nil {
		t.Fatalf("read embedded dir: %v", err)
	}
	want := []string{"00001_create_users.sql", "00002_create_modules.sql"}
	if len(entries) != len(want) {
		t.Fatalf("got %d migrations; want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Name() != want[i] {
			t.Errorf("migration %d = %s; want %s", i, e.Name(), want[i])
		}
		body, err := fs.ReadFile(FS, dir+"/"+e.Name())
		if err != nil {
			t.Fatalf("read %s: %v", e.Name(), err)
		}
		if !strings.Contains(string(body), "-- +goose Up") || !strings.Contains(string(body), "-- +goose Down") {
			t.Errorf("%s lacks goose annotations", e.Name())
		}
	}
}
