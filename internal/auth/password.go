package auth

import (
	"fmt"
	"math/rand"

	"golang.org/x/crypto/bcrypt"
)

// accessPasswordCost matches the cost the existing quiz records were hashed with.
const accessPasswordCost = 10

// Verifier is the opaque one-way compare primitive the access gate depends
// on. Implementations never expose the stored hash.
type Verifier interface {
	Compare(hash, supplied string) bool
}

// BcryptVerifier compares supplied passwords against bcrypt hashes.
type BcryptVerifier struct{}

func (BcryptVerifier) Compare(hash, supplied string) bool {
	if hash == "" || supplied == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(supplied)) == nil
}

// HashAccessPassword hashes a quiz access password for storage.
func HashAccessPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), accessPasswordCost)
	if err != nil {
		return "", fmt.Errorf("hash access password: %w", err)
	}
	return string(hashed), nil
}

// NewJoinCode returns a human-enterable 6-digit code. Uniqueness across
// quizzes is the caller's responsibility (re-roll on collision).
func NewJoinCode(rnd *rand.Rand) string {
	return fmt.Sprintf("%06d", 100000+rnd.Intn(900000))
}

// NewDisplayID returns a formal quiz id of the form QZ-123456.
func NewDisplayID(rnd *rand.Rand) string {
	return fmt.Sprintf("QZ-%06d", 100000+rnd.Intn(900000))
}
