package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUserJSON_PasswordHashHidden(t *testing.T) {
	user := User{
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$examplehash",
	}
	user.ID = 7

	raw, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	body := string(raw)

	if strings.Contains(body, "password") {
		t.Fatalf("json should not contain a password field, got: %s", body)
	}
	if strings.Contains(body, "$2a$10$examplehash") {
		t.Fatalf("json should not contain PasswordHash value, got: %s", body)
	}
	if !strings.Contains(body, "\"email\":\"alice@example.com\"") {
		t.Fatalf("json should include email field, got: %s", body)
	}
	if !strings.Contains(body, "\"id\":7") {
		t.Fatalf("json should include id field, got: %s", body)
	}
}

func TestUserJSON_UnmarshalIgnoresPasswordField(t *testing.T) {
	input := `{"email":"alice@example.com","password":"attacker-controlled","PasswordHash":"x"}`
	var user User
	if err := json.Unmarshal([]byte(input), &user); err != nil {
		t.Fatalf("unmarshal user: %v", err)
	}
	if user.PasswordHash != "" {
		t.Fatalf("PasswordHash = %q, want empty", user.PasswordHash)
	}
}
