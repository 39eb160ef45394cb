package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthenticated is returned when no identity could be resolved.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrAccessDenied covers every insufficient-credential case. The message
	// is deliberately uniform so callers cannot tell a missing credential
	// from a wrong one.
	ErrAccessDenied = errors.New("access denied")
	// ErrQuizNotFound indicates the quiz record is absent.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrInvalidSubmission is the class of malformed answer payloads; match
	// with errors.Is and inspect *SubmissionError for the offending indices.
	ErrInvalidSubmission = errors.New("invalid answer payload")
)

// SubmissionError reports which payload elements were malformed. It never
// carries quiz content, so it cannot leak an answer key.
type SubmissionError struct {
	Questions []int
}

func (e *SubmissionError) Error() string {
	if len(e.Questions) == 0 {
		return ErrInvalidSubmission.Error()
	}
	parts := make([]string, len(e.Questions))
	for i, q := range e.Questions {
		parts[i] = fmt.Sprint(q)
	}
	return fmt.Sprintf("%s at position(s) %s", ErrInvalidSubmission.Error(), strings.Join(parts, ", "))
}

func (e *SubmissionError) Is(target error) bool {
	return target == ErrInvalidSubmission
}
