package app

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"classquiz-service/internal/domain"
)

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// QuizDirectory answers lookups that go around the primary-key path:
// join-code resolution and per-owner listings.
type QuizDirectory interface {
	FindByJoinCode(ctx context.Context, code string) (domain.JoinCodeMatch, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Quiz, error)
}

// AttemptStore persists scored attempts. Insert appends exactly one row per
// call; a retried submission therefore creates a second, distinct attempt.
// List with an empty scope returns the full history.
type AttemptStore interface {
	Insert(ctx context.Context, attempt domain.Attempt) error
	List(ctx context.Context, scopeQuizID string) ([]domain.Attempt, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Attempt, error)
}

// QuizService contains the access, scoring, and standings use cases.
type QuizService struct {
	quizzes   QuizRepository
	directory QuizDirectory
	attempts  AttemptStore
	passwords PasswordVerifier
	feed      *LeaderboardFeed
	now       func() time.Time
	newID     func() string
}

func NewQuizService(quizzes QuizRepository, directory QuizDirectory, attempts AttemptStore, passwords PasswordVerifier, feed *LeaderboardFeed) *QuizService {
	return &QuizService{
		quizzes:   quizzes,
		directory: directory,
		attempts:  attempts,
		passwords: passwords,
		feed:      feed,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// NewQuizServiceWithClock is test-only for deterministic timestamps and ids.
func NewQuizServiceWithClock(quizzes QuizRepository, directory QuizDirectory, attempts AttemptStore, passwords PasswordVerifier, feed *LeaderboardFeed, now func() time.Time, newID func() string) *QuizService {
	s := NewQuizService(quizzes, directory, attempts, passwords, feed)
	s.now = now
	s.newID = newID
	return s
}

// ResolveQuizView fetches a quiz and applies the access gate to it.
// credential carries whatever the client supplied: a join code on the fetch
// path, a password on the unlock path.
func (s *QuizService) ResolveQuizView(ctx context.Context, quizID string, requester domain.Requester, credential string) (domain.QuizView, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.QuizView{}, err
	}
	return ResolveVisibility(quiz, requester, credential, s.passwords)
}

// SubmitAttempt scores a submission, persists the attempt exactly once, and
// pushes refreshed standings to leaderboard subscribers. The total question
// count is snapshotted into the attempt so later quiz edits never alter
// past results.
func (s *QuizService) SubmitAttempt(ctx context.Context, quizID string, requester domain.Requester, answers domain.AnswerSet) (domain.AttemptReceipt, error) {
	if requester.ID == "" {
		return domain.AttemptReceipt{}, domain.ErrUnauthenticated
	}
	if requester.Role != domain.RoleStudent {
		return domain.AttemptReceipt{}, domain.ErrAccessDenied
	}

	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.AttemptReceipt{}, err
	}

	result := Evaluate(quiz, answers)
	attempt := domain.Attempt{
		ID:             s.newID(),
		QuizID:         quiz.ID,
		StudentID:      requester.ID,
		Answers:        answers,
		Score:          result.Score,
		TotalQuestions: result.Total,
		AttemptedAt:    s.now(),
	}
	if err := s.attempts.Insert(ctx, attempt); err != nil {
		return domain.AttemptReceipt{}, err
	}
	s.publishStandings(ctx, quiz.ID)

	return domain.AttemptReceipt{
		AttemptID:  attempt.ID,
		Score:      result.Score,
		Total:      result.Total,
		Percentage: result.Percentage,
	}, nil
}

// GetStandings aggregates attempt history, optionally scoped to one quiz.
func (s *QuizService) GetStandings(ctx context.Context, scopeQuizID string, requester domain.Requester, topN int) (domain.Standings, error) {
	attempts, err := s.attempts.List(ctx, scopeQuizID)
	if err != nil {
		return domain.Standings{}, err
	}
	return Aggregate(attempts, scopeQuizID, requester.ID, topN), nil
}

// StudentAttempts lists the requester's own attempts, newest first.
func (s *QuizService) StudentAttempts(ctx context.Context, requester domain.Requester) ([]domain.Attempt, error) {
	if requester.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if requester.Role != domain.RoleStudent {
		return nil, domain.ErrAccessDenied
	}
	attempts, err := s.attempts.ListByStudent(ctx, requester.ID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].AttemptedAt.After(attempts[j].AttemptedAt)
	})
	return attempts, nil
}

// QuizStats summarizes all attempts against one quiz. An attempt-free quiz
// yields zeros, never an error.
func (s *QuizService) QuizStats(ctx context.Context, quizID string) (domain.QuizStats, error) {
	attempts, err := s.attempts.List(ctx, quizID)
	if err != nil {
		return domain.QuizStats{}, err
	}

	var stats domain.QuizStats
	totalScore, totalQuestions := 0, 0
	for _, attempt := range attempts {
		totalScore += attempt.Score
		totalQuestions += attempt.TotalQuestions
		if attempt.Score > stats.HighestScore {
			stats.HighestScore = attempt.Score
		}
	}
	if totalQuestions > 0 {
		stats.AveragePercentage = int(math.Round(float64(totalScore) / float64(totalQuestions) * 100))
	}
	return stats, nil
}

// TeacherReport builds one report per quiz the requester owns.
func (s *QuizService) TeacherReport(ctx context.Context, requester domain.Requester) ([]domain.QuizReport, error) {
	if requester.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if requester.Role != domain.RoleTeacher {
		return nil, domain.ErrAccessDenied
	}

	quizzes, err := s.directory.ListByOwner(ctx, requester.ID)
	if err != nil {
		return nil, err
	}

	reports := make([]domain.QuizReport, 0, len(quizzes))
	for _, quiz := range quizzes {
		attempts, err := s.attempts.List(ctx, quiz.ID)
		if err != nil {
			return nil, err
		}
		report := domain.QuizReport{
			QuizID:         quiz.ID,
			DisplayID:      quiz.DisplayID,
			JoinCode:       quiz.JoinCode,
			Title:          quiz.Title,
			TotalQuestions: len(quiz.Questions),
			Rows:           make([]domain.ReportRow, 0, len(attempts)),
		}
		totalScore := 0
		for _, attempt := range attempts {
			totalScore += attempt.Score
			report.Rows = append(report.Rows, domain.ReportRow{
				StudentID:      attempt.StudentID,
				Score:          attempt.Score,
				TotalQuestions: attempt.TotalQuestions,
				AttemptedAt:    attempt.AttemptedAt,
			})
		}
		if len(attempts) > 0 {
			report.AverageScore = math.Round(float64(totalScore)/float64(len(attempts))*10) / 10
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// ResolveJoinCode finds the quiz behind a human-entered code. Codes are
// matched case-insensitively by upper-casing, matching how they are issued.
func (s *QuizService) ResolveJoinCode(ctx context.Context, code string) (domain.JoinCodeMatch, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.JoinCodeMatch{}, domain.ErrQuizNotFound
	}
	return s.directory.FindByJoinCode(ctx, code)
}

// SubscribeLeaderboard streams standings updates for a quiz. The caller
// must invoke cancel.
func (s *QuizService) SubscribeLeaderboard(quizID string) (<-chan domain.Standings, func()) {
	return s.feed.Subscribe(quizID)
}

func (s *QuizService) publishStandings(ctx context.Context, quizID string) {
	if s.feed == nil {
		return
	}
	attempts, err := s.attempts.List(ctx, quizID)
	if err != nil {
		return
	}
	s.feed.Publish(quizID, Aggregate(attempts, quizID, "", defaultLeaderboardSize))
}
