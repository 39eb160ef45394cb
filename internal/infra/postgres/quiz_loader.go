package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"classquiz-service/internal/domain"
)

// QuizLoader loads quiz JSONB from Postgres. Decoding the document also
// normalizes legacy question encodings to the canonical correct-index form.
type QuizLoader struct {
	pool *pgxpool.Pool
}

func NewQuizLoader(pool *pgxpool.Pool) *QuizLoader {
	return &QuizLoader{pool: pool}
}

func (l *QuizLoader) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	raw, err := l.LoadQuizRaw(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, err
	}
	return decodeQuiz(raw)
}

// LoadQuizRaw returns the stored document untouched. Caching layers keep
// the raw form because the decoded type never serializes the access
// password hash back out.
func (l *QuizLoader) LoadQuizRaw(ctx context.Context, quizID string) ([]byte, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM quizzes WHERE id=$1`, quizID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrQuizNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load quiz: %w", err)
	}
	return raw, nil
}

func (l *QuizLoader) FindByJoinCode(ctx context.Context, code string) (domain.JoinCodeMatch, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM quizzes WHERE join_code=$1`, code).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.JoinCodeMatch{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.JoinCodeMatch{}, fmt.Errorf("find quiz by join code: %w", err)
	}
	quiz, err := decodeQuiz(raw)
	if err != nil {
		return domain.JoinCodeMatch{}, err
	}
	return domain.JoinCodeMatch{
		QuizID:    quiz.ID,
		DisplayID: quiz.DisplayID,
		Title:     quiz.Title,
		JoinCode:  quiz.JoinCode,
	}, nil
}

func (l *QuizLoader) ListByOwner(ctx context.Context, ownerID string) ([]domain.Quiz, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM quizzes WHERE data->>'ownerId'=$1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list quizzes by owner: %w", err)
	}
	defer rows.Close()

	quizzes := make([]domain.Quiz, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quiz, err := decodeQuiz(raw)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, rows.Err()
}

func decodeQuiz(raw []byte) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("unmarshal quiz: %w", err)
	}
	return quiz, nil
}
