package memory

import (
	"context"
	"sync"

	"classquiz-service/internal/domain"
)

// AttemptStore is an in-memory, append-only implementation of
// app.AttemptStore. Rows are never mutated after insert.
type AttemptStore struct {
	mu       sync.RWMutex
	attempts []domain.Attempt
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{}
}

func (s *AttemptStore) Insert(_ context.Context, attempt domain.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, attempt)
	return nil
}

func (s *AttemptStore) List(_ context.Context, scopeQuizID string) ([]domain.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Attempt, 0, len(s.attempts))
	for _, attempt := range s.attempts {
		if scopeQuizID != "" && attempt.QuizID != scopeQuizID {
			continue
		}
		out = append(out, attempt)
	}
	return out, nil
}

func (s *AttemptStore) ListByStudent(_ context.Context, studentID string) ([]domain.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Attempt, 0)
	for _, attempt := range s.attempts {
		if attempt.StudentID == studentID {
			out = append(out, attempt)
		}
	}
	return out, nil
}
