package domain

import (
	"encoding/json"
	"testing"
)

func TestSchool_Valid(t *testing.T) {
	tests := []struct {
		school School
		want   bool
	}{
		{SchoolNTU, true},
		{SchoolNUS, true},
		{"ntu", false},
		{"SMU", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.school), func(t *testing.T) {
			if got := tt.school.Valid(); got != tt.want {
				t.Errorf("School(%q).Valid() = %v; want %v", tt.school, got, tt.want)
			}
		})
	}
}

func TestModuleJSON(t *testing.T) {
	m := Module{
		School: SchoolNTU,
		Year:   2020,
		Sem:    1,
		Code:   "CS101",
		Title:  "Introduction to Computing",
		Timetable: []Lesson{
			{LessonType: "LEC", ClassNo: "10001", Day: "MON", StartTime: "0830", EndTime: "1020", Venue: "LT1"},
		},
	}

	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal module: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal module: %v", err)
	}

	for _, key := range []string{"school", "year", "sem", "code", "title", "remark", "timetable"} {
		if _, ok := got[key]; !ok {
			t.Errorf("expected key %q in module json: %s", key, raw)
		}
	}
	if got["school"] != "NTU" {
		t.Errorf("school = %v; want NTU", got["school"])
	}
	lessons, ok := got["timetable"].([]any)
	if !ok || len(lessons) != 1 {
		t.Fatalf("timetable = %v; want one lesson", got["timetable"])
	}
}
