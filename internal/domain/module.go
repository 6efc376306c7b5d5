package domain

import "context"

// School identifies the institution offering a module.
type School string

// Supported schools.
const (
	SchoolNTU School = "NTU"
	SchoolNUS School = "NUS"
)

// Valid reports whether s is a supported school.
func (s School) Valid() bool {
	return s == SchoolNTU || s == SchoolNUS
}

// Semester identifies one academic semester at a school.
type Semester struct {
	School School
	Year   int
	Sem    int
}

// ModuleKey is the natural key of a module offering.
type ModuleKey struct {
	Semester
	Code string
}

// Lesson is a single timetable slot of a module.
type Lesson struct {
	LessonType string `json:"lesson_type"`
	ClassNo    string `json:"class_no"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Venue      string `json:"venue"`
	Weeks      string `json:"weeks"`
}

// Module is a course offering for one semester. Rows are reference data
// loaded outside this service.
type Module struct {
	BaseModel
	School    School   `gorm:"size:3;not null;uniqueIndex:idx_modules_key,priority:1" json:"school"`
	Year      int      `gorm:"not null;uniqueIndex:idx_modules_key,priority:2" json:"year"`
	Sem       int      `gorm:"not null;uniqueIndex:idx_modules_key,priority:3" json:"sem"`
	Code      string   `gorm:"size:10;not null;uniqueIndex:idx_modules_key,priority:4" json:"code"`
	Title     string   `gorm:"size:255" json:"title"`
	Remark    string   `gorm:"type:text" json:"remark"`
	Timetable []Lesson `gorm:"serializer:json" json:"timetable"`
}

// ModuleRepository defines the data access interface for modules.
type ModuleRepository interface {
	// FindByKey returns the module with the given key or a NotFound error.
	FindByKey(ctx context.Context, key ModuleKey) (*Module, error)
	// ListBySemester returns the modules of a semester ordered by code.
	// An empty result is a non-nil empty slice.
	ListBySemester(ctx context.Context, sem Semester) ([]Module, error)
}

// ModuleService defines the business logic interface for modules.
type ModuleService interface {
	GetModule(ctx context.Context, key ModuleKey) (*Module, error)
	ListModules(ctx context.Context, sem Semester) ([]Module, error)
}
