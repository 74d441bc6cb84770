package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestGetSuggestion(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"explicit", WithSuggestion(errors.New("boom"), "do x"), "do x"},
		{"wrapped mix", fmt.Errorf("rename: %w", ErrMixNotFound), "Run 'tapedeck mix list' to see your mixes"},
		{"full", ErrLibraryFull, "Delete a mix first, the shelf holds at most 10 cassettes"},
		{"network text", errors.New("dial tcp: connection refused"), "Check your internet connection and try again"},
		{"unknown", errors.New("something odd"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetSuggestion(tt.err); got != tt.want {
				t.Errorf("GetSuggestion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	got := Format(ErrUnplayable)
	if !strings.HasPrefix(got, "Error: no playable source") || !strings.Contains(got, "Suggestion:") {
		t.Errorf("Format() = %q", got)
	}
	if got := Format(errors.New("plain")); got != "Error: plain" {
		t.Errorf("Format() = %q, want %q", got, "Error: plain")
	}
}

func TestPartialResult(t *testing.T) {
	var p PartialResult[[]string]
	if p.HasErrors() {
		t.Fatal("HasErrors() = true on zero value")
	}
	p.AddError(nil)
	p.AddError(errors.New("a"))
	if got := p.ErrorSummary(); got != "a" {
		t.Errorf("ErrorSummary() = %q, want %q", got, "a")
	}
	p.AddError(errors.New("b"))
	if !strings.HasPrefix(p.ErrorSummary(), "2 errors occurred") {
		t.Errorf("ErrorSummary() = %q", p.ErrorSummary())
	}
}
