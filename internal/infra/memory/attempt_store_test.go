package memory

import (
	"context"
	"testing"
	"time"

	"classquiz-service/internal/domain"
)

func storeWith(t *testing.T, attempts ...domain.Attempt) *AttemptStore {
	t.Helper()
	store := NewAttemptStore()
	for _, attempt := range attempts {
		if err := store.Insert(context.Background(), attempt); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	return store
}

func TestAttemptStoreListScoping(t *testing.T) {
	store := storeWith(t,
		domain.Attempt{ID: "a1", QuizID: "quiz-1", StudentID: "alice"},
		domain.Attempt{ID: "a2", QuizID: "quiz-2", StudentID: "alice"},
		domain.Attempt{ID: "a3", QuizID: "quiz-1", StudentID: "bob"},
	)

	scoped, err := store.List(context.Background(), "quiz-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(scoped) != 2 || scoped[0].ID != "a1" || scoped[1].ID != "a3" {
		t.Fatalf("scoped list = %+v", scoped)
	}

	all, err := store.List(context.Background(), "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("unscoped list size = %d, want 3", len(all))
	}
}

func TestAttemptStoreListByStudent(t *testing.T) {
	store := storeWith(t,
		domain.Attempt{ID: "a1", QuizID: "quiz-1", StudentID: "alice"},
		domain.Attempt{ID: "a2", QuizID: "quiz-2", StudentID: "bob"},
	)

	mine, err := store.ListByStudent(context.Background(), "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != "a1" {
		t.Fatalf("alice history = %+v", mine)
	}

	none, err := store.ListByStudent(context.Background(), "carol")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("carol history = %+v, want empty", none)
	}
}

func TestAttemptStoreInsertPreservesOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := storeWith(t,
		domain.Attempt{ID: "a1", QuizID: "quiz-1", AttemptedAt: base},
		domain.Attempt{ID: "a2", QuizID: "quiz-1", AttemptedAt: base.Add(time.Second)},
	)

	got, _ := store.List(context.Background(), "quiz-1")
	if got[0].ID != "a1" || got[1].ID != "a2" {
		t.Fatalf("insertion order lost: %+v", got)
	}
}
