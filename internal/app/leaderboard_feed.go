package app

import (
	"sync"

	"classquiz-service/internal/domain"
)

// LeaderboardFeed fans freshly computed standings out to per-quiz
// subscribers. The service publishes after every persisted attempt; the
// websocket transport subscribes on behalf of connected clients.
type LeaderboardFeed struct {
	mu          sync.Mutex
	subscribers map[string]map[chan domain.Standings]struct{}
}

func NewLeaderboardFeed() *LeaderboardFeed {
	return &LeaderboardFeed{
		subscribers: make(map[string]map[chan domain.Standings]struct{}),
	}
}

// Subscribe registers for updates on one quiz. The caller must invoke the
// returned cancel function to avoid leaks.
func (f *LeaderboardFeed) Subscribe(quizID string) (<-chan domain.Standings, func()) {
	ch := make(chan domain.Standings, 8)

	f.mu.Lock()
	set, ok := f.subscribers[quizID]
	if !ok {
		set = make(map[chan domain.Standings]struct{})
		f.subscribers[quizID] = set
	}
	set[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if set, ok := f.subscribers[quizID]; ok {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(f.subscribers, quizID)
			}
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers standings to every subscriber of the quiz. A slow
// subscriber has its stale update dropped rather than blocking the rest.
func (f *LeaderboardFeed) Publish(quizID string, standings domain.Standings) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers[quizID] {
		select {
		case ch <- standings:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- standings
		}
	}
}
