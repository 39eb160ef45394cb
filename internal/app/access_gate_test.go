package app_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"classquiz-service/internal/app"
	"classquiz-service/internal/auth"
	"classquiz-service/internal/domain"
)

func protectedQuiz(t *testing.T, password string) domain.Quiz {
	t.Helper()
	hash, err := auth.HashAccessPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	quiz := threeQuestionQuiz()
	quiz.OwnerID = "teacher-1"
	quiz.Access = domain.AccessPolicy{Kind: domain.PolicyPasswordProtected, PasswordHash: hash}
	return quiz
}

func TestOwnerGetsFullQuiz(t *testing.T) {
	quiz := protectedQuiz(t, "secret")
	view, err := app.ResolveVisibility(quiz, domain.Requester{ID: "teacher-1", Role: domain.RoleTeacher}, "", auth.BcryptVerifier{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if view.Full == nil || view.Sanitized != nil {
		t.Fatalf("expected full view for owner, got %+v", view)
	}
	if view.Full.Questions[0].Correct != 0 {
		t.Fatalf("owner view must keep the answer key")
	}
}

func TestWrongPasswordIsDenied(t *testing.T) {
	quiz := protectedQuiz(t, "secret")
	student := domain.Requester{ID: "student-1", Role: domain.RoleStudent}

	view, err := app.ResolveVisibility(quiz, student, "wrong", auth.BcryptVerifier{})
	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected denial, got %v", err)
	}
	if view.Full != nil || view.Sanitized != nil {
		t.Fatalf("denial must not return quiz fields: %+v", view)
	}
}

func TestMissingPasswordDeniedIdenticallyToWrongOne(t *testing.T) {
	quiz := protectedQuiz(t, "secret")
	student := domain.Requester{ID: "student-1", Role: domain.RoleStudent}

	_, missingErr := app.ResolveVisibility(quiz, student, "", auth.BcryptVerifier{})
	_, wrongErr := app.ResolveVisibility(quiz, student, "nope", auth.BcryptVerifier{})
	if missingErr == nil || wrongErr == nil {
		t.Fatalf("expected both to be denied")
	}
	if missingErr.Error() != wrongErr.Error() {
		t.Fatalf("denial messages differ: %q vs %q", missingErr, wrongErr)
	}
}

func TestCorrectPasswordYieldsSanitizedView(t *testing.T) {
	quiz := protectedQuiz(t, "secret")
	student := domain.Requester{ID: "student-1", Role: domain.RoleStudent}

	view, err := app.ResolveVisibility(quiz, student, "secret", auth.BcryptVerifier{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if view.Sanitized == nil {
		t.Fatalf("expected sanitized view, got %+v", view)
	}
}

func TestJoinCodeRequiredForStudents(t *testing.T) {
	quiz := threeQuestionQuiz()
	quiz.OwnerID = "teacher-1"
	quiz.JoinCode = "482913"
	quiz.Access = domain.AccessPolicy{Kind: domain.PolicyJoinCodeRequired, JoinCode: "482913"}
	student := domain.Requester{ID: "student-1", Role: domain.RoleStudent}

	if _, err := app.ResolveVisibility(quiz, student, "", auth.BcryptVerifier{}); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected denial without code, got %v", err)
	}
	if _, err := app.ResolveVisibility(quiz, student, "999999", auth.BcryptVerifier{}); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected denial with wrong code, got %v", err)
	}

	view, err := app.ResolveVisibility(quiz, student, "482913", auth.BcryptVerifier{})
	if err != nil {
		t.Fatalf("resolve with code: %v", err)
	}
	if view.Sanitized == nil {
		t.Fatalf("expected sanitized view, got %+v", view)
	}
}

func TestTeachersBypassJoinCode(t *testing.T) {
	quiz := threeQuestionQuiz()
	quiz.OwnerID = "teacher-1"
	quiz.Access = domain.AccessPolicy{Kind: domain.PolicyJoinCodeRequired, JoinCode: "482913"}

	view, err := app.ResolveVisibility(quiz, domain.Requester{ID: "teacher-2", Role: domain.RoleTeacher}, "", auth.BcryptVerifier{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	// A teacher who is not the owner still only gets the sanitized view.
	if view.Sanitized == nil || view.Full != nil {
		t.Fatalf("expected sanitized view for non-owner teacher, got %+v", view)
	}
}

func TestPublicQuizIsSanitizedForAnyone(t *testing.T) {
	quiz := threeQuestionQuiz()
	quiz.OwnerID = "teacher-1"

	view, err := app.ResolveVisibility(quiz, domain.Requester{}, "", auth.BcryptVerifier{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if view.Sanitized == nil {
		t.Fatalf("expected sanitized view, got %+v", view)
	}
}

func TestSanitizedViewNeverSerializesAnswerKey(t *testing.T) {
	quiz := threeQuestionQuiz()
	quiz.OwnerID = "teacher-1"

	view, err := app.ResolveVisibility(quiz, domain.Requester{ID: "student-1", Role: domain.RoleStudent}, "", auth.BcryptVerifier{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	out, err := json.Marshal(view.Sanitized)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(out), "correct") {
		t.Fatalf("sanitized view leaked a correct-answer marker: %s", out)
	}
}
