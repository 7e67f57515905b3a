package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := NewService("test-secret", time.Hour, 4)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewServiceRequiresSecret(t *testing.T) {
	if _, err := NewService("", time.Hour, 10); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestPasswordHashRoundtrip(t *testing.T) {
	s := newTestService(t)
	hash, err := s.HashPassword("hunter22")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "hunter22" {
		t.Error("password stored in plaintext")
	}
	if err := s.VerifyPassword(hash, "hunter22"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := s.VerifyPassword(hash, "wrong"); err != ErrInvalidCredentials {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
}

func TestTokenRoundtrip(t *testing.T) {
	s := newTestService(t)
	userID := uuid.New()

	token, err := s.GenerateToken(userID)
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.VerifyToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if got != userID {
		t.Errorf("got %v, want %v", got, userID)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	s := newTestService(t)
	if _, err := s.VerifyToken("not.a.token"); err != ErrInvalidToken {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	s := newTestService(t)
	other, err := NewService("different-secret", time.Hour, 4)
	if err != nil {
		t.Fatal(err)
	}
	token, err := other.GenerateToken(uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.VerifyToken(token); err != ErrInvalidToken {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	s, err := NewService("test-secret", -time.Minute, 4)
	if err != nil {
		t.Fatal(err)
	}
	token, err := s.GenerateToken(uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.VerifyToken(token); err != ErrInvalidToken {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("short", 8); err != ErrWeakPassword {
		t.Errorf("got %v, want ErrWeakPassword", err)
	}
	if err := ValidatePassword("long enough", 8); err != nil {
		t.Errorf("got %v, want nil", err)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  User@Example.COM "); got != "user@example.com" {
		t.Errorf("got %q", got)
	}
}
