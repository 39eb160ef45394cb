package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"classquiz-service/internal/domain"
)

// AttemptStore persists attempts in Postgres. Inserts are plain appends:
// two students submitting concurrently write independent rows with no
// coordination, and a retried request writes a second row.
type AttemptStore struct {
	pool *pgxpool.Pool
}

func NewAttemptStore(pool *pgxpool.Pool) *AttemptStore {
	return &AttemptStore{pool: pool}
}

func (s *AttemptStore) Insert(ctx context.Context, attempt domain.Attempt) error {
	answers, err := json.Marshal(attempt.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO attempts (id, quiz_id, student_id, score, total_questions, answers, attempted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		attempt.ID, attempt.QuizID, attempt.StudentID, attempt.Score, attempt.TotalQuestions, answers, attempt.AttemptedAt,
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (s *AttemptStore) List(ctx context.Context, scopeQuizID string) ([]domain.Attempt, error) {
	query := `SELECT id, quiz_id, student_id, score, total_questions, answers, attempted_at
	          FROM attempts ORDER BY attempted_at, id`
	args := []interface{}{}
	if scopeQuizID != "" {
		query = `SELECT id, quiz_id, student_id, score, total_questions, answers, attempted_at
		         FROM attempts WHERE quiz_id=$1 ORDER BY attempted_at, id`
		args = append(args, scopeQuizID)
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()
	return scanAttempts(rows)
}

func (s *AttemptStore) ListByStudent(ctx context.Context, studentID string) ([]domain.Attempt, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, quiz_id, student_id, score, total_questions, answers, attempted_at
		 FROM attempts WHERE student_id=$1 ORDER BY attempted_at DESC, id`, studentID)
	if err != nil {
		return nil, fmt.Errorf("list attempts by student: %w", err)
	}
	defer rows.Close()
	return scanAttempts(rows)
}

func scanAttempts(rows pgx.Rows) ([]domain.Attempt, error) {
	attempts := make([]domain.Attempt, 0)
	for rows.Next() {
		var (
			attempt domain.Attempt
			answers []byte
		)
		if err := rows.Scan(&attempt.ID, &attempt.QuizID, &attempt.StudentID, &attempt.Score, &attempt.TotalQuestions, &answers, &attempt.AttemptedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		if len(answers) > 0 {
			if err := json.Unmarshal(answers, &attempt.Answers); err != nil {
				return nil, fmt.Errorf("unmarshal answers: %w", err)
			}
		}
		attempts = append(attempts, attempt)
	}
	return attempts, rows.Err()
}
