package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	nwkiterrors "nwkit/internal/errors"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nwkit.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse_ValidProfile(t *testing.T) {
	validYaml := `apiVersion: v1
kind: Profile
metadata:
  name: local-dev
  description: Defaults for a locally built converter image
spec:
  image:
    tag: "2.1"
    skipPull: true
  run:
    timeout: 30m
`

	p, err := Parse(writeProfile(t, validYaml))
	if err != nil {
		t.Fatalf("Expected successful parsing, got error: %v", err)
	}

	if p.APIVersion != "v1" {
		t.Errorf("Expected APIVersion 'v1', got '%s'", p.APIVersion)
	}
	if p.Kind != "Profile" {
		t.Errorf("Expected Kind 'Profile', got '%s'", p.Kind)
	}
	if p.Metadata.Name != "local-dev" {
		t.Errorf("Expected Name 'local-dev', got '%s'", p.Metadata.Name)
	}
	if p.Spec.Image.Tag != "2.1" {
		t.Errorf("Expected tag '2.1', got '%s'", p.Spec.Image.Tag)
	}
	if !p.Spec.Image.SkipPull {
		t.Error("Expected skipPull to be true")
	}
	if p.Spec.Run.Timeout != 30*time.Minute {
		t.Errorf("Expected timeout 30m, got %s", p.Spec.Run.Timeout)
	}
}

func TestParse_MinimalProfile(t *testing.T) {
	minimalYaml := `apiVersion: v1
kind: Profile
metadata:
  name: defaults
spec: {}
`

	p, err := Parse(writeProfile(t, minimalYaml))
	if err != nil {
		t.Fatalf("Expected successful parsing, got error: %v", err)
	}
	if p.Spec.Image.Tag != "" {
		t.Errorf("Expected empty tag, got '%s'", p.Spec.Image.Tag)
	}
	if p.Spec.Image.SkipPull {
		t.Error("Expected skipPull to default to false")
	}
	if p.Spec.Run.Timeout != 0 {
		t.Errorf("Expected zero timeout, got %s", p.Spec.Run.Timeout)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		errorContains string
	}{
		{
			name: "Wrong kind",
			content: `apiVersion: v1
kind: Settings
metadata:
  name: x
spec: {}
`,
			errorContains: `Kind must be "Profile"`,
		},
		{
			name: "Missing metadata name",
			content: `apiVersion: v1
kind: Profile
metadata:
  description: nameless
spec: {}
`,
			errorContains: "Name is required",
		},
		{
			name:          "Malformed YAML",
			content:       "apiVersion: v1\nkind: [unterminated",
			errorContains: "failed to read profile file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeProfile(t, tt.content))
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			// Every parse failure belongs to the profile-invalid class.
			if !errors.Is(err, nwkiterrors.ErrProfileInvalid) {
				t.Errorf("Expected ErrProfileInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.errorContains) {
				t.Errorf("Expected error containing %q, got: %s", tt.errorContains, err)
			}
		})
	}
}

func TestParse_MultipleValidationFailures(t *testing.T) {
	content := `kind: Settings
metadata:
  description: nameless
spec: {}
`

	_, err := Parse(writeProfile(t, content))
	if err == nil {
		t.Fatal("Expected error but got none")
	}
	for _, want := range []string{"APIVersion is required", `Kind must be "Profile"`, "Name is required"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error listing %q, got: %s", want, err)
		}
	}
}

func TestParse_FileNotFound(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing profile file")
	}
	if !errors.Is(err, nwkiterrors.ErrProfileInvalid) {
		t.Errorf("Expected ErrProfileInvalid, got %v", err)
	}
	if !strings.Contains(err.Error(), "profile file not found") {
		t.Errorf("Unexpected error: %s", err)
	}
}
