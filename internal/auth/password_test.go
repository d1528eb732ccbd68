package auth

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/employee-directory/internal/apperror"
)

func TestVerify_PlaintextCredential(t *testing.T) {
	v := NewVerifier("hunter2")

	if err := v.Verify("hunter2"); err != nil {
		t.Errorf("Verify() with correct password returned %v", err)
	}

	err := v.Verify("wrong")
	if err == nil {
		t.Fatal("Verify() accepted a wrong password")
	}
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("Verify() error = %v, want ErrUnauthorized", err)
	}
}

func TestVerify_EmptySubmission(t *testing.T) {
	v := NewVerifier("hunter2")

	if err := v.Verify(""); err == nil {
		t.Error("Verify() accepted an empty password")
	}
}

func TestVerify_BcryptCredential(t *testing.T) {
	// bcrypt.MinCost keeps the test fast; the comparison path is identical.
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("generating test hash: %v", err)
	}

	v := NewVerifier(string(hash))

	if err := v.Verify("hunter2"); err != nil {
		t.Errorf("Verify() with correct password against hash returned %v", err)
	}
	if err := v.Verify("wrong"); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("Verify() error = %v, want ErrUnauthorized", err)
	}

	// The literal hash string must not work as the password.
	if err := v.Verify(string(hash)); err == nil {
		t.Error("Verify() accepted the hash itself as the password")
	}
}

func TestVerify_PrefixIsNotEnough(t *testing.T) {
	v := NewVerifier("correct-horse-battery-staple")

	for _, guess := range []string{"correct", "correct-horse", "correct-horse-battery-stapl"} {
		if err := v.Verify(guess); err == nil {
			t.Errorf("Verify(%q) accepted a prefix of the password", guess)
		}
	}
}
