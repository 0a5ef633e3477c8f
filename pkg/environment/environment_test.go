package environment

import (
	"os"
	"testing"
)

// TestEqual_SameNameDifferentArguments verifies equality is defined by
// name alone.
func TestEqual_SameNameDifferentArguments(t *testing.T) {
	a := New("x", []string{"prog", "--port", "8080"})
	b := New("x", []string{"other", "-v"})

	if !a.Equal(b) {
		t.Errorf("environments named %q should be equal regardless of arguments", a.Name())
	}
}

func TestEqual_DifferentNames(t *testing.T) {
	a := New("x", nil)
	b := New("y", nil)

	if a.Equal(b) {
		t.Errorf("environments %q and %q should not be equal", a.Name(), b.Name())
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		env  Environment
		want string
	}{
		{Production(), ProductionName},
		{Development(), DevelopmentName},
		{Testing(), TestingName},
	}

	for _, tt := range tests {
		if tt.env.Name() != tt.want {
			t.Errorf("expected preset name %q, got %q", tt.want, tt.env.Name())
		}
		if len(tt.env.Arguments()) != len(os.Args) {
			t.Errorf("preset %q should capture the process arguments", tt.want)
		}
	}
}

func TestCustom_ArbitraryName(t *testing.T) {
	env := Custom("staging")
	if env.Name() != "staging" {
		t.Errorf("expected name 'staging', got %q", env.Name())
	}
}

// TestCustom_EmptyName documents that empty names are accepted, not
// rejected.
func TestCustom_EmptyName(t *testing.T) {
	env := Custom("")
	if env.Name() != "" {
		t.Errorf("expected empty name to be preserved, got %q", env.Name())
	}
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"prod", ProductionName},
		{"production", ProductionName},
		{"dev", DevelopmentName},
		{"development", DevelopmentName},
		{"test", TestingName},
		{"testing", TestingName},
		{"", DevelopmentName},
		{"staging", "staging"},
		{"PROD", "PROD"}, // matching is case-sensitive
	}

	for _, tt := range tests {
		got := FromName(tt.name).Name()
		if got != tt.want {
			t.Errorf("FromName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestIsRelease_IndependentOfName(t *testing.T) {
	// The test binary is built without the release tag, so every
	// environment reports a debug build, including production.
	if Production().IsRelease() {
		t.Error("debug build should report IsRelease() == false for any name")
	}
	if Production().IsRelease() != Development().IsRelease() {
		t.Error("IsRelease is process-wide and must not vary per environment")
	}
}

func TestArguments_ReturnsCopy(t *testing.T) {
	env := New("x", []string{"prog", "a"})
	args := env.Arguments()
	args[0] = "mutated"

	if env.Arguments()[0] != "prog" {
		t.Error("mutating the returned slice must not affect the environment")
	}
}

func TestString(t *testing.T) {
	if Production().String() != ProductionName {
		t.Errorf("String() should return the name, got %q", Production().String())
	}
}
