package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadEnvFile_Parsing tests .env line parsing
func TestLoadEnvFile_Parsing(t *testing.T) {
	tempDir := t.TempDir()
	envPath := filepath.Join(tempDir, ".env")
	content := `
# Database settings
DB_HOST=localhost
DB_PORT = 5432
QUOTED="hello world"
SINGLE='single quoted'
EMPTY=

not-a-pair
`
	if err := os.WriteFile(envPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	vars, err := LoadEnvFile(envPath)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	expected := map[string]string{
		"DB_HOST": "localhost",
		"DB_PORT": "5432",
		"QUOTED":  "hello world",
		"SINGLE":  "single quoted",
		"EMPTY":   "",
	}
	for key, want := range expected {
		got, ok := vars[key]
		if !ok {
			t.Errorf("expected key %s to be present", key)
			continue
		}
		if got != want {
			t.Errorf("expected %s=%q, got %q", key, want, got)
		}
	}
	if len(vars) != len(expected) {
		t.Errorf("expected %d vars, got %d: %v", len(expected), len(vars), vars)
	}
}

// TestLoadEnvFile_Missing returns an empty map, not an error
func TestLoadEnvFile_Missing(t *testing.T) {
	vars, err := LoadEnvFile(filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("expected no error for a missing file, got: %v", err)
	}
	if len(vars) != 0 {
		t.Errorf("expected an empty map, got: %v", vars)
	}
}

// TestInterpolateEnvVars tests variable reference resolution
func TestInterpolateEnvVars(t *testing.T) {
	vars := EnvVars{
		"HOST":    "localhost",
		"PORT":    "5432",
		"URL":     "postgres://${HOST}:${PORT}/app",
		"SHORT":   "$HOST",
		"DEFAULT": "${UNSET_VAR_XYZ:-fallback}",
	}

	result, err := InterpolateEnvVars(vars)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if result["URL"] != "postgres://localhost:5432/app" {
		t.Errorf("unexpected URL: %q", result["URL"])
	}
	if result["SHORT"] != "localhost" {
		t.Errorf("unexpected SHORT: %q", result["SHORT"])
	}
	if result["DEFAULT"] != "fallback" {
		t.Errorf("unexpected DEFAULT: %q", result["DEFAULT"])
	}
}

// TestInterpolateEnvVars_Circular tests circular reference detection
func TestInterpolateEnvVars_Circular(t *testing.T) {
	vars := EnvVars{
		"A": "${B}",
		"B": "${A}",
	}

	if _, err := InterpolateEnvVars(vars); err == nil {
		t.Fatal("expected a circular reference error")
	}
}

// TestBootstrapEnvironment_CopiesExample tests the example-file copy
func TestBootstrapEnvironment_CopiesExample(t *testing.T) {
	tempDir := t.TempDir()
	example := "APP_ENV=development\nAPI_KEY=changeme\n"
	if err := os.WriteFile(filepath.Join(tempDir, ".env.example"), []byte(example), 0644); err != nil {
		t.Fatalf("failed to write example: %v", err)
	}

	env := &Environment{ExampleFile: ".env.example", Variables: []string{"APP_ENV"}}
	missing, err := BootstrapEnvironment(tempDir, env)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("expected no missing variables, got: %v", missing)
	}

	data, err := os.ReadFile(filepath.Join(tempDir, ".env"))
	if err != nil {
		t.Fatalf("expected .env to exist: %v", err)
	}
	if string(data) != example {
		t.Errorf("expected .env to mirror the example, got: %q", string(data))
	}
}

// TestBootstrapEnvironment_KeepsExistingEnv tests that an existing .env wins
func TestBootstrapEnvironment_KeepsExistingEnv(t *testing.T) {
	tempDir := t.TempDir()
	os.WriteFile(filepath.Join(tempDir, ".env.example"), []byte("KEY=example\n"), 0644)
	os.WriteFile(filepath.Join(tempDir, ".env"), []byte("KEY=existing\n"), 0644)

	env := &Environment{ExampleFile: ".env.example"}
	if _, err := BootstrapEnvironment(tempDir, env); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(tempDir, ".env"))
	if string(data) != "KEY=existing\n" {
		t.Errorf("expected the existing .env to be untouched, got: %q", string(data))
	}
}

// TestBootstrapEnvironment_ReportsMissing tests missing variable reporting
func TestBootstrapEnvironment_ReportsMissing(t *testing.T) {
	tempDir := t.TempDir()
	os.WriteFile(filepath.Join(tempDir, ".env"), []byte("PRESENT=yes\n"), 0644)

	env := &Environment{Variables: []string{"PRESENT", "DEFINITELY_NOT_SET_ANYWHERE"}}
	missing, err := BootstrapEnvironment(tempDir, env)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(missing) != 1 || missing[0] != "DEFINITELY_NOT_SET_ANYWHERE" {
		t.Errorf("expected exactly the unset variable to be reported, got: %v", missing)
	}
}

// TestBootstrapEnvironment_MissingExample tests the missing example error
func TestBootstrapEnvironment_MissingExample(t *testing.T) {
	env := &Environment{ExampleFile: ".env.example"}
	if _, err := BootstrapEnvironment(t.TempDir(), env); err == nil {
		t.Fatal("expected an error for a missing example file")
	}
}

// TestBootstrapEnvironment_NilEnvironment is a no-op
func TestBootstrapEnvironment_NilEnvironment(t *testing.T) {
	missing, err := BootstrapEnvironment(t.TempDir(), nil)
	if err != nil || missing != nil {
		t.Errorf("expected a no-op, got missing=%v err=%v", missing, err)
	}
}
