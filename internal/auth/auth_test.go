package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/stagepass/event-ticketing/internal/domain"
	apperrors "github.com/stagepass/event-ticketing/pkg/util"
)

func TestTokenManager(t *testing.T) {
	t.Parallel()

	t.Run("round trip preserves identity", func(t *testing.T) {
		tm := NewTokenManager("test-secret", 60)
		token, _, err := tm.GenerateToken(domain.Identity("id-123"))
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		identity, err := tm.ParseToken(token)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if identity != "id-123" {
			t.Fatalf("expected id-123, got %s", identity)
		}
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		tm := NewTokenManager("secret-a", 60)
		token, _, err := tm.GenerateToken(domain.Identity("id-123"))
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		other := NewTokenManager("secret-b", 60)
		if _, err := other.ParseToken(token); err == nil {
			t.Fatalf("expected parse failure with wrong secret")
		}
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		tm := NewTokenManager("test-secret", 60)
		if _, err := tm.ParseToken("not-a-token"); err == nil {
			t.Fatalf("expected parse failure")
		}
	})
}

func TestAccountRegistry(t *testing.T) {
	t.Parallel()

	// minimal cost keeps the test fast
	const cost = 4

	t.Run("register then authenticate", func(t *testing.T) {
		r := NewAccountRegistry(cost)
		identity, err := r.Register("Alice", "s3cret-pass")
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		got, err := r.Authenticate("alice", "s3cret-pass")
		if err != nil {
			t.Fatalf("authenticate: %v", err)
		}
		if got != identity {
			t.Fatalf("expected identity %s, got %s", identity, got)
		}
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		r := NewAccountRegistry(cost)
		if _, err := r.Register("alice", "s3cret-pass"); err != nil {
			t.Fatalf("register: %v", err)
		}
		_, err := r.Register("ALICE", "another-pass")
		if !apperrors.HasCode(err, apperrors.CodeAlreadyExists) {
			t.Fatalf("expected ALREADY_EXISTS, got %v", err)
		}
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		r := NewAccountRegistry(cost)
		if _, err := r.Register("alice", "s3cret-pass"); err != nil {
			t.Fatalf("register: %v", err)
		}
		_, err := r.Authenticate("alice", "wrong-pass")
		if !apperrors.HasCode(err, apperrors.CodeUnauthorized) {
			t.Fatalf("expected UNAUTHORIZED, got %v", err)
		}
	})

	t.Run("short password is rejected", func(t *testing.T) {
		r := NewAccountRegistry(cost)
		_, err := r.Register("alice", "short")
		if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
			t.Fatalf("expected INVALID_INPUT, got %v", err)
		}
	})
}

func TestNormalizeBcryptCost(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   int
		want int
	}{
		{"unset config", 0, bcrypt.DefaultCost},
		{"negative", -1, bcrypt.DefaultCost},
		{"above max", bcrypt.MaxCost + 1, bcrypt.DefaultCost},
		{"min kept", bcrypt.MinCost, bcrypt.MinCost},
		{"in range kept", 12, 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeBcryptCost(tc.in); got != tc.want {
				t.Fatalf("expected cost %d, got %d", tc.want, got)
			}
		})
	}

	t.Run("out-of-range cost still yields a verifiable hash", func(t *testing.T) {
		hash, err := HashPassword("s3cret-pass", bcrypt.MaxCost+10)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		if err := ComparePassword(hash, "s3cret-pass"); err != nil {
			t.Fatalf("compare: %v", err)
		}
	})
}
