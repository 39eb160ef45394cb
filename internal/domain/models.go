package domain

import "time"

// Role identifies the requester's position in the platform.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Requester is the resolved identity behind a request. Token verification
// happens upstream; the core only sees the result.
type Requester struct {
	ID   string
	Role Role
}

// PolicyKind selects the access rule declared for a quiz at creation time.
type PolicyKind string

const (
	PolicyPublic            PolicyKind = "public"
	PolicyJoinCodeRequired  PolicyKind = "join_code"
	PolicyPasswordProtected PolicyKind = "password"
)

// AccessPolicy is the single declared rule governing who may view a quiz.
// JoinCode and PasswordHash are only meaningful for their respective kinds.
// The hash never leaves the server.
type AccessPolicy struct {
	Kind         PolicyKind `json:"kind"`
	JoinCode     string     `json:"joinCode,omitempty"`
	PasswordHash string     `json:"-"`
}

// Question models an MCQ question with exactly one correct option.
// Correct is the canonical index into Options; legacy encodings are
// normalized into it when a quiz is decoded.
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Correct int      `json:"correct"`
}

// Quiz is the full, owner-visible record including the answer key.
type Quiz struct {
	ID              string       `json:"id"`
	DisplayID       string       `json:"displayId"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	DurationMinutes int          `json:"durationMinutes"`
	OwnerID         string       `json:"ownerId"`
	JoinCode        string       `json:"joinCode"`
	Access          AccessPolicy `json:"access"`
	Questions       []Question   `json:"questions"`
	CreatedAt       time.Time    `json:"createdAt"`
}

// SanitizedQuestion carries what a student may see before answering.
type SanitizedQuestion struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// SanitizedQuiz is the student view. It has no field that could hold a
// correct-answer marker; sanitization holds by construction.
type SanitizedQuiz struct {
	ID              string              `json:"id"`
	DisplayID       string              `json:"displayId"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	DurationMinutes int                 `json:"durationMinutes"`
	Questions       []SanitizedQuestion `json:"questions"`
}

// Sanitize builds the student view of a quiz.
func (q Quiz) Sanitize() SanitizedQuiz {
	questions := make([]SanitizedQuestion, len(q.Questions))
	for i, question := range q.Questions {
		questions[i] = SanitizedQuestion{
			Prompt:  question.Prompt,
			Options: append([]string(nil), question.Options...),
		}
	}
	return SanitizedQuiz{
		ID:              q.ID,
		DisplayID:       q.DisplayID,
		Title:           q.Title,
		Description:     q.Description,
		DurationMinutes: q.DurationMinutes,
		Questions:       questions,
	}
}

// QuizView is the outcome of access resolution: exactly one of Full or
// Sanitized is set.
type QuizView struct {
	Full      *Quiz          `json:"full,omitempty"`
	Sanitized *SanitizedQuiz `json:"sanitized,omitempty"`
}

// Attempt is an immutable record of one scored submission. Rows are
// append-only: created once, never updated.
type Attempt struct {
	ID             string    `json:"id"`
	QuizID         string    `json:"quizId"`
	StudentID      string    `json:"studentId"`
	Answers        AnswerSet `json:"answers"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	AttemptedAt    time.Time `json:"attemptedAt"`
}

// EvalResult is the outcome of scoring one submission.
type EvalResult struct {
	Score      int `json:"score"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// AttemptReceipt is returned to the submitting client.
type AttemptReceipt struct {
	AttemptID  string `json:"attemptId"`
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

// Standing is one student's aggregate over the scoped attempt history.
type Standing struct {
	StudentID     string `json:"studentId"`
	TotalScore    int    `json:"totalScore"`
	TotalAttempts int    `json:"totalAttempts"`
}

// LeaderboardEntry annotates a standing with its rank and whether it
// belongs to the requester.
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	StudentID  string `json:"studentId"`
	TotalScore int    `json:"totalScore"`
	IsMe       bool   `json:"isMe"`
}

// Standings is the full aggregation result for one requester.
type Standings struct {
	Rows          []Standing         `json:"standings"`
	Rank          int                `json:"rank"`
	Leaderboard   []LeaderboardEntry `json:"leaderboard"`
	TotalStudents int                `json:"totalStudents"`
}

// QuizStats summarizes all attempts against one quiz.
type QuizStats struct {
	AveragePercentage int `json:"averagePercentage"`
	HighestScore      int `json:"highestScore"`
}

// ReportRow is one attempt line in a teacher report.
type ReportRow struct {
	StudentID      string    `json:"studentId"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	AttemptedAt    time.Time `json:"attemptedAt"`
}

// QuizReport aggregates one owned quiz for its teacher.
type QuizReport struct {
	QuizID         string      `json:"quizId"`
	DisplayID      string      `json:"displayId"`
	JoinCode       string      `json:"joinCode"`
	Title          string      `json:"title"`
	TotalQuestions int         `json:"totalQuestions"`
	AverageScore   float64     `json:"avgScore"`
	Rows           []ReportRow `json:"students"`
}

// JoinCodeMatch is the public result of resolving a join code.
type JoinCodeMatch struct {
	QuizID    string `json:"id"`
	DisplayID string `json:"displayId"`
	Title     string `json:"title"`
	JoinCode  string `json:"joinCode"`
}
