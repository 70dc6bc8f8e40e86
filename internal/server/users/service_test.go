package users

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/itemvault/internal/common"
	"github.com/dmitrijs2005/itemvault/internal/server/config"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.AccessTokenValidityDuration = time.Hour

	s, err := NewService(NewMemoryRepository(), cfg)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}
	return s
}

func TestSignupAndLogin_Success(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	ctx := context.Background()

	tok, err := s.Signup(ctx, "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Signup error: %v", err)
	}
	if tok == "" {
		t.Fatal("Signup returned empty token")
	}

	subject, err := s.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken error: %v", err)
	}
	if subject != "a@x.com" {
		t.Fatalf("subject mismatch: got %q", subject)
	}

	tok2, err := s.Login(ctx, "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if tok2 == "" {
		t.Fatal("Login returned empty token")
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	ctx := context.Background()

	if _, err := s.Signup(ctx, "a@x.com", "pw1"); err != nil {
		t.Fatalf("first Signup error: %v", err)
	}

	_, err := s.Signup(ctx, "a@x.com", "pw2")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected common.ErrorAlreadyExists, got %v", err)
	}

	// the original password still logs in
	if _, err := s.Login(ctx, "a@x.com", "pw1"); err != nil {
		t.Fatalf("Login after duplicate signup error: %v", err)
	}
}

func TestSignup_EmptyFields(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	ctx := context.Background()

	for _, tc := range []struct{ email, password string }{
		{"", "pw"},
		{"a@x.com", ""},
		{"", ""},
	} {
		_, err := s.Signup(ctx, tc.email, tc.password)
		if !errors.Is(err, common.ErrorValidation) {
			t.Fatalf("Signup(%q, %q): expected common.ErrorValidation, got %v", tc.email, tc.password, err)
		}
	}
}

func TestLogin_WrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	ctx := context.Background()

	if _, err := s.Signup(ctx, "a@x.com", "pw1"); err != nil {
		t.Fatalf("Signup error: %v", err)
	}

	_, errWrong := s.Login(ctx, "a@x.com", "nope")
	_, errUnknown := s.Login(ctx, "ghost@x.com", "pw1")

	if !errors.Is(errWrong, common.ErrorUnauthorized) {
		t.Fatalf("wrong password: expected common.ErrorUnauthorized, got %v", errWrong)
	}
	if !errors.Is(errUnknown, common.ErrorUnauthorized) {
		t.Fatalf("unknown user: expected common.ErrorUnauthorized, got %v", errUnknown)
	}
	if errWrong.Error() != errUnknown.Error() {
		t.Fatalf("error messages must not distinguish the two cases: %q vs %q", errWrong, errUnknown)
	}
}

func TestMemoryRepository_ConcurrentSignupSingleWinner(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(ctx, &User{Email: "race@x.com", PasswordHash: "h"})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, common.ErrorAlreadyExists):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if created != 1 {
		t.Fatalf("expected exactly one successful create, got %d", created)
	}
}
