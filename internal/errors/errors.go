package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrMixNotFound      = errors.New("mix not found")
	ErrNoActiveMix      = errors.New("no mix inserted")
	ErrSongNotFound     = errors.New("song not found")
	ErrUnplayable       = errors.New("no playable source")
	ErrInvalidShareLink = errors.New("invalid share link")
	ErrInvalidImport    = errors.New("invalid import file")
	ErrLibraryFull      = errors.New("library full")
	ErrEmptyTitle       = errors.New("title must not be empty")
	ErrNetworkError     = errors.New("network error")
	ErrTimeout          = errors.New("request timeout")
	ErrStorage          = errors.New("storage unavailable")
	ErrConfigNotFound   = errors.New("config file not found")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// TapeError wraps an error with a user-friendly suggestion.
type TapeError struct {
	Err        error
	Suggestion string
}

func (e *TapeError) Error() string {
	return e.Err.Error()
}

func (e *TapeError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &TapeError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var tapeErr *TapeError
	if errors.As(err, &tapeErr) && tapeErr.Suggestion != "" {
		return tapeErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	// Library errors
	if errors.Is(err, ErrMixNotFound) || strings.Contains(errStr, "mix not found") {
		return "Run 'tapedeck mix list' to see your mixes"
	}
	if errors.Is(err, ErrLibraryFull) {
		return "Delete a mix first, the shelf holds at most 10 cassettes"
	}
	if errors.Is(err, ErrNoActiveMix) {
		return "Insert a mix first"
	}

	// Playback errors
	if errors.Is(err, ErrUnplayable) {
		return "This song has no stream available, try another version from search"
	}

	// Sharing and import
	if errors.Is(err, ErrInvalidShareLink) {
		return "Check that the whole link was copied, including the ?mix= part"
	}
	if errors.Is(err, ErrInvalidImport) {
		return "Import expects a file written by 'tapedeck export'"
	}

	// Network errors
	if errors.Is(err, ErrNetworkError) || errors.Is(err, ErrTimeout) ||
		strings.Contains(errStr, "network") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused") {
		return "Check your internet connection and try again"
	}

	// Storage errors
	if errors.Is(err, ErrStorage) || strings.Contains(errStr, "database") {
		return "Check the [storage] path in your config is writable"
	}

	// Config errors
	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) || strings.Contains(errStr, "config") {
		return "Run 'tapedeck config show' to inspect your configuration"
	}

	// Server errors
	if strings.Contains(errStr, "502") || strings.Contains(errStr, "500") || strings.Contains(errStr, "server error") {
		return "The catalog is having issues. Try again in a moment"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
