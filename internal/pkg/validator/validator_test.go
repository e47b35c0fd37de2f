package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123e4567-e89b-42d3-a456-426614174000",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-02-29"); ok {
		t.Error("IsValidDate accepted 2025-02-29")
	}
	if _, ok := IsValidDate("2024-02-29"); !ok {
		t.Error("IsValidDate rejected leap day 2024-02-29")
	}
	if _, ok := IsValidDate("15-01-2024"); ok {
		t.Error("IsValidDate accepted wrong layout")
	}
}

func TestIsValidDateOrder(t *testing.T) {
	if !IsValidDateOrder("2024-01-01", "2024-01-01") {
		t.Error("equal dates should be in order")
	}
	if !IsValidDateOrder("2024-01-01", "2024-02-01") {
		t.Error("ascending dates should be in order")
	}
	if IsValidDateOrder("2024-02-01", "2024-01-31") {
		t.Error("descending dates should not be in order")
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"present", "late", "absent"}
	if !IsInSlice("late", slice) {
		t.Error("IsInSlice missed existing value")
	}
	if IsInSlice("excused", slice) {
		t.Error("IsInSlice found missing value")
	}
}
