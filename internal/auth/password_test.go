package auth

import (
	"math/rand"
	"regexp"
	"testing"
)

func TestBcryptVerifierRoundTrip(t *testing.T) {
	hash, err := HashAccessPassword("open sesame")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	v := BcryptVerifier{}
	if !v.Compare(hash, "open sesame") {
		t.Fatal("correct password rejected")
	}
	if v.Compare(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}

func TestBcryptVerifierRejectsEmptyInputs(t *testing.T) {
	hash, err := HashAccessPassword("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	v := BcryptVerifier{}
	if v.Compare("", "secret") {
		t.Fatal("empty hash accepted")
	}
	if v.Compare(hash, "") {
		t.Fatal("empty password accepted")
	}
}

func TestJoinCodeFormat(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	pattern := regexp.MustCompile(`^[1-9]\d{5}$`)
	for i := 0; i < 100; i++ {
		code := NewJoinCode(rnd)
		if !pattern.MatchString(code) {
			t.Fatalf("join code %q is not six digits", code)
		}
	}
}

func TestDisplayIDFormat(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	pattern := regexp.MustCompile(`^QZ-[1-9]\d{5}$`)
	for i := 0; i < 100; i++ {
		id := NewDisplayID(rnd)
		if !pattern.MatchString(id) {
			t.Fatalf("display id %q has the wrong shape", id)
		}
	}
}
