package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"classquiz-service/internal/domain"
)

type countingLoader struct {
	QuizLoader
	calls int
}

func (l *countingLoader) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	l.calls++
	return l.QuizLoader.LoadQuiz(ctx, quizID)
}

func sampleQuiz() domain.Quiz {
	return domain.Quiz{
		ID:        "quiz-1",
		DisplayID: "QZ-100001",
		Title:     "Arithmetic",
		OwnerID:   "teacher-1",
		JoinCode:  "482913",
		Questions: []domain.Question{
			{Prompt: "What is 2 + 2?", Options: []string{"3", "4"}, Correct: 1},
		},
	}
}

func TestQuizRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		QuizLoader: NewStaticQuizLoader(map[string]domain.Quiz{
			"quiz-1": sampleQuiz(),
		}),
	}
	repo := NewQuizRepository(loader, time.Minute)

	if _, err := repo.GetQuiz(context.Background(), "quiz-1"); err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetQuiz(context.Background(), "quiz-1"); err != nil {
		t.Fatalf("get quiz 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestQuizRepositoryExpiresEntries(t *testing.T) {
	loader := &countingLoader{
		QuizLoader: NewStaticQuizLoader(map[string]domain.Quiz{
			"quiz-1": sampleQuiz(),
		}),
	}
	repo := NewQuizRepository(loader, time.Minute)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	if _, err := repo.GetQuiz(context.Background(), "quiz-1"); err != nil {
		t.Fatalf("get quiz: %v", err)
	}

	// Jitter adds at most 10%, so two minutes is past any expiry.
	now = now.Add(2 * time.Minute)
	if _, err := repo.GetQuiz(context.Background(), "quiz-1"); err != nil {
		t.Fatalf("get quiz after expiry: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected reload after expiry, loader calls %d", loader.calls)
	}
}

func TestQuizRepositoryPropagatesNotFound(t *testing.T) {
	repo := NewQuizRepository(NewStaticQuizLoader(nil), time.Minute)

	if _, err := repo.GetQuiz(context.Background(), "missing"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("got %v, want quiz not found", err)
	}
}

func TestStaticQuizLoaderDirectory(t *testing.T) {
	loader := NewStaticQuizLoader(map[string]domain.Quiz{
		"quiz-1": sampleQuiz(),
	})

	match, err := loader.FindByJoinCode(context.Background(), "482913")
	if err != nil {
		t.Fatalf("find by code: %v", err)
	}
	if match.QuizID != "quiz-1" || match.Title != "Arithmetic" {
		t.Fatalf("match = %+v", match)
	}
	if _, err := loader.FindByJoinCode(context.Background(), "000000"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("unknown code: got %v", err)
	}

	owned, err := loader.ListByOwner(context.Background(), "teacher-1")
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if len(owned) != 1 || owned[0].ID != "quiz-1" {
		t.Fatalf("owned = %+v", owned)
	}
}
