package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestQuizDecodesLegacyDocument(t *testing.T) {
	payload := `{
		"id": "quiz-1",
		"quizId": "QZ-123456",
		"title": "History",
		"duration": 15,
		"createdBy": "teacher-1",
		"joinCode": "482913",
		"questions": [
			{"question": "Year of the moon landing?", "options": ["1965","1969"], "correctAnswer": 1}
		]
	}`
	var quiz Quiz
	if err := json.Unmarshal([]byte(payload), &quiz); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if quiz.DisplayID != "QZ-123456" || quiz.OwnerID != "teacher-1" || quiz.DurationMinutes != 15 {
		t.Fatalf("aliases not normalized: %+v", quiz)
	}
	if quiz.Access.Kind != PolicyJoinCodeRequired || quiz.Access.JoinCode != "482913" {
		t.Fatalf("expected join-code policy, got %+v", quiz.Access)
	}
}

func TestQuizDerivesPasswordPolicyFromLegacyField(t *testing.T) {
	payload := `{
		"id": "quiz-2",
		"title": "Protected",
		"accessPassword": "$2a$10$fakehash",
		"joinCode": "111111",
		"questions": [{"prompt":"q","options":["a","b"],"correct":0}]
	}`
	var quiz Quiz
	if err := json.Unmarshal([]byte(payload), &quiz); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// Password protection takes precedence over a present join code.
	if quiz.Access.Kind != PolicyPasswordProtected || quiz.Access.PasswordHash != "$2a$10$fakehash" {
		t.Fatalf("expected password policy, got %+v", quiz.Access)
	}
}

func TestQuizWithoutRestrictionsIsPublic(t *testing.T) {
	payload := `{"id":"quiz-3","title":"Open","questions":[{"prompt":"q","options":["a","b"],"correct":1}]}`
	var quiz Quiz
	if err := json.Unmarshal([]byte(payload), &quiz); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if quiz.Access.Kind != PolicyPublic {
		t.Fatalf("expected public policy, got %+v", quiz.Access)
	}
}

func TestPasswordHashNeverSerializes(t *testing.T) {
	quiz := Quiz{
		ID:     "quiz-4",
		Access: AccessPolicy{Kind: PolicyPasswordProtected, PasswordHash: "$2a$10$secret"},
		Questions: []Question{
			{Prompt: "q", Options: []string{"a", "b"}, Correct: 0},
		},
	}
	out, err := json.Marshal(quiz)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(out), "secret") {
		t.Fatalf("password hash leaked into serialized quiz: %s", out)
	}
}

func TestSanitizeStripsAnswerKey(t *testing.T) {
	quiz := Quiz{
		ID: "quiz-5",
		Questions: []Question{
			{Prompt: "q1", Options: []string{"a", "b"}, Correct: 1},
			{Prompt: "q2", Options: []string{"c", "d"}, Correct: 0},
		},
	}
	sanitized := quiz.Sanitize()
	out, err := json.Marshal(sanitized)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(out), "correct") {
		t.Fatalf("sanitized quiz carries a correct-answer marker: %s", out)
	}
	if len(sanitized.Questions) != 2 || len(sanitized.Questions[0].Options) != 2 {
		t.Fatalf("sanitized quiz lost content: %+v", sanitized)
	}
}
