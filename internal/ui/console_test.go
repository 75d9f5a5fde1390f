package ui

import (
	"strings"
	"testing"
)

func TestNewConsole(t *testing.T) {
	console := NewConsole()
	if console == nil {
		t.Fatal("NewConsole() returned nil")
	}
}

func TestConsole_colorize(t *testing.T) {
	tests := []struct {
		name      string
		useColors bool
		color     string
		message   string
		want      string
	}{
		{
			name:      "Colors on wraps message",
			useColors: true,
			color:     ansiGreen,
			message:   "done",
			want:      ansiGreen + "done" + ansiReset,
		},
		{
			name:      "Colors off passes message through",
			useColors: false,
			color:     ansiRed,
			message:   "failed",
			want:      "failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			console := &Console{useColors: tt.useColors}
			if got := console.colorize(tt.color, tt.message); got != tt.want {
				t.Errorf("colorize(%q, %q) = %q, want %q", tt.color, tt.message, got, tt.want)
			}
		})
	}
}

func TestConsole_colorize_AlwaysKeepsMessage(t *testing.T) {
	for _, console := range []*Console{{useColors: true}, {useColors: false}} {
		got := console.colorize(ansiBlue, "converting molecule.nw")
		if !strings.Contains(got, "converting molecule.nw") {
			t.Errorf("colorize dropped the message: %q", got)
		}
	}
}

func TestConsole_FormatErrorMessage(t *testing.T) {
	console := NewConsole()

	tests := []struct {
		name       string
		context    string
		cause      string
		suggestion string
		want       string
	}{
		{
			name:       "All parts",
			context:    "Tool produced no output artifact",
			cause:      "expected mol.yaml",
			suggestion: "Check file sharing",
			want:       "Tool produced no output artifact\nCause: expected mol.yaml\nSuggestion: Check file sharing",
		},
		{
			name:    "Context only",
			context: "Image pull failed",
			want:    "Image pull failed",
		},
		{
			name:  "Cause only",
			cause: "no such host",
			want:  "Cause: no such host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := console.FormatErrorMessage(tt.context, tt.cause, tt.suggestion); got != tt.want {
				t.Errorf("FormatErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
