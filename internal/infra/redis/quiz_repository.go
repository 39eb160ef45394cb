package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"classquiz-service/internal/domain"
)

// RawQuizLoader fetches the stored quiz document from the backing store.
// The raw form is what gets cached: re-encoding the decoded quiz would
// drop the access password hash, which never serializes outward.
type RawQuizLoader interface {
	LoadQuizRaw(ctx context.Context, quizID string) ([]byte, error)
}

// QuizRepository caches quiz documents in Redis (one string key per quiz)
// and falls back to a loader on cache miss.
type QuizRepository struct {
	client *redis.Client
	loader RawQuizLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuizRepository(client *redis.Client, loader RawQuizLoader, ttl time.Duration) *QuizRepository {
	return &QuizRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuizRepository) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	key := r.docKey(quizID)

	cached, err := r.client.Get(ctx, key).Bytes()
	if err == nil && len(cached) > 0 {
		return decodeQuiz(cached)
	}

	result, err, _ := r.sf.Do(quizID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		cached, err := r.client.Get(ctx, key).Bytes()
		if err == nil && len(cached) > 0 {
			return cached, nil
		}

		raw, err := r.loader.LoadQuizRaw(ctx, quizID)
		if err != nil {
			return nil, err
		}
		_ = r.client.Set(ctx, key, raw, r.ttlWithJitter()).Err()
		return raw, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return decodeQuiz(result.([]byte))
}

func (r *QuizRepository) docKey(quizID string) string {
	return "quiz:" + quizID + ":doc"
}

func decodeQuiz(raw []byte) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("unmarshal quiz: %w", err)
	}
	return quiz, nil
}

func (r *QuizRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
