package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/simp-lee/modify/internal/domain"
)

// setupTestDB creates an in-memory SQLite database with the Module table.
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
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&domain.Module{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedModules(t *testing.T, db *gorm.DB, modules ...domain.Module) {
	t.Helper()
	for i := range modules {
		if err := db.Create(&modules[i]).Error; err != nil {
			t.Fatalf("seed module %s: %v", modules[i].Code, err)
		}
	}
}

func testModule(school domain.School, year, sem int, code string) domain.Module {
	return domain.Module{
		School: school,
		Year:   year,
		Sem:    sem,
		Code:   code,
		Title:  "Title of " + code,
		Timetable: []domain.Lesson{
			{LessonType: "LEC", ClassNo: "1", Day: "MON", StartTime: "0830", EndTime: "1030", Venue: "LT1", Weeks: "1-13"},
		},
	}
}

func TestFindByKey(t *testing.T) {
	db := setupTestDB(t)
	seedModules(t, db,
		testModule(domain.SchoolNTU, 2020, 1, "CS101"),
		testModule(domain.SchoolNTU, 2020, 2, "CS101"),
		testModule(domain.SchoolNUS, 2020, 1, "CS101"),
	)
	repo := NewModuleRepository(db)

	got, err := repo.FindByKey(context.Background(), domain.ModuleKey{
		Semester: domain.Semester{School: domain.SchoolNTU, Year: 2020, Sem: 2},
		Code:     "CS101",
	})
	if err != nil {
		t.Fatalf("FindByKey: %v", err)
	}
	if got.School != domain.SchoolNTU || got.Year != 2020 || got.Sem != 2 || got.Code != "CS101" {
		t.Errorf("got %+v; want NTU/2020/2/CS101", got)
	}
	if len(got.Timetable) != 1 || got.Timetable[0].Venue != "LT1" {
		t.Errorf("timetable not round-tripped: %+v", got.Timetable)
	}
}

func TestFindByKey_NotFound(t *testing.T) {
	db := setupTestDB(t)
	seedModules(t, db, testModule(domain.SchoolNTU, 2020, 1, "CS101"))
	repo := NewModuleRepository(db)

	_, err := repo.FindByKey(context.Background(), domain.ModuleKey{
		Semester: domain.Semester{School: domain.SchoolNTU, Year: 2021, Sem: 1},
		Code:     "CS101",
	})
	if !domain.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestCreate_DuplicateKeyRejected(t *testing.T) {
	db := setupTestDB(t)
	seedModules(t, db, testModule(domain.SchoolNTU, 2020, 1, "CS101"))

	dup := testModule(domain.SchoolNTU, 2020, 1, "CS101")
	if err := db.Create(&dup).Error; err == nil {
		t.Fatal("expected unique key violation")
	}
}

func TestListBySemester(t *testing.T) {
	db := setupTestDB(t)
	seedModules(t, db,
		testModule(domain.SchoolNTU, 2020, 1, "MA201"),
		testModule(domain.SchoolNTU, 2020, 1, "CS101"),
		testModule(domain.SchoolNTU, 2020, 2, "CS102"),
		testModule(domain.SchoolNUS, 2020, 1, "CS1010"),
	)
	repo := NewModuleRepository(db)

	got, err := repo.ListBySemester(context.Background(), domain.Semester{School: domain.SchoolNTU, Year: 2020, Sem: 1})
	if err != nil {
		t.Fatalf("ListBySemester: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len=%d; want 2", len(got))
	}
	if got[0].Code != "CS101" || got[1].Code != "MA201" {
		t.Errorf("codes = %s, %s; want CS101, MA201", got[0].Code, got[1].Code)
	}
}

func TestListBySemester_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewModuleRepository(db)

	got, err := repo.ListBySemester(context.Background(), domain.Semester{School: domain.SchoolNUS, Year: 2030, Sem: 3})
	if err != nil {
		t.Fatalf("ListBySemester: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v; want empty non-nil slice", got)
	}
}

func TestMapError(t *testing.T) {
	if err := mapError(gorm.ErrRecordNotFound); !domain.IsNotFound(err) {
		t.Errorf("record not found should map to not found, got %v", err)
	}
	cause := errors.New("connection refused")
	err := mapError(cause)
	if !domain.IsInternal(err) || !errors.Is(err, cause) {
		t.Errorf("other errors should map to internal and wrap the cause, got %v", err)
	}
	if mapError(nil) != nil {
		t.Error("mapError(nil) should be nil")
	}
}
