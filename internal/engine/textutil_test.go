package engine

import (
	"testing"
)

func TestKeyFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Java", "java"},
		{"  Go  ", "go"},
		{"machine learning", "machine learning"},
		{"PostgreSQL", "postgresql"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := KeyFold(tt.in); got != tt.want {
			t.Errorf("KeyFold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>Hello</p>", "Hello"},
		{"  plain  ", "plain"},
		{"<div><b>Bold</b> text</div>", "Bold text"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanHTML(tt.in); got != tt.want {
			t.Errorf("CleanHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := Truncate("hello world", 5); got != "hello" {
		t.Errorf("Truncate long = %q", got)
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\ntext\n```", "text"},
		{"no fences", "no fences"},
	}
	for _, tt := range tests {
		if got := stripFences(tt.in); got != tt.want {
			t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
