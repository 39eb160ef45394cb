package app

import (
	"classquiz-service/internal/domain"
)

// PasswordVerifier is the opaque compare primitive for protected quizzes.
// The gate never sees whether the hash exists in any other way than through
// a failed compare.
type PasswordVerifier interface {
	Compare(hash, supplied string) bool
}

// ResolveVisibility decides which view of a quiz the requester gets.
//
// The declared policy is evaluated in a fixed order: the owner always gets
// the full quiz; a password-protected quiz requires a matching credential
// from everyone else; a join-code quiz requires the exact code from anyone
// without the teacher role; otherwise the sanitized view is returned.
//
// Every rejection is domain.ErrAccessDenied. A missing credential, an empty
// credential, and a wrong credential are indistinguishable so the response
// cannot be used as an oracle for whether a quiz is protected.
func ResolveVisibility(quiz domain.Quiz, requester domain.Requester, credential string, passwords PasswordVerifier) (domain.QuizView, error) {
	if requester.ID != "" && requester.ID == quiz.OwnerID {
		full := quiz
		return domain.QuizView{Full: &full}, nil
	}

	switch quiz.Access.Kind {
	case domain.PolicyPasswordProtected:
		if !passwords.Compare(quiz.Access.PasswordHash, credential) {
			return domain.QuizView{}, domain.ErrAccessDenied
		}
	case domain.PolicyJoinCodeRequired:
		if requester.Role != domain.RoleTeacher {
			if credential == "" || credential != quiz.Access.JoinCode {
				return domain.QuizView{}, domain.ErrAccessDenied
			}
		}
	}

	sanitized := quiz.Sanitize()
	return domain.QuizView{Sanitized: &sanitized}, nil
}
