package store

import (
	"context"
	"errors"
	"testing"
)

// runStoreContract exercises the behaviour every Store implementation shares.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()

	t.Run("register once", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		if err := s.Register(ctx, "asha", "secret"); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		err := s.Register(ctx, "asha", "another-password")
		if !errors.Is(err, ErrUsernameTaken) {
			t.Fatalf("second Register() error = %v, want ErrUsernameTaken", err)
		}
	})

	t.Run("login", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		if err := s.Register(ctx, "ravi", "pa55word"); err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		tests := []struct {
			name     string
			username string
			password string
			wantErr  error
		}{
			{"correct password", "ravi", "pa55word", nil},
			{"correct password again", "ravi", "pa55word", nil},
			{"wrong password", "ravi", "password", ErrInvalidCredentials},
			{"unknown user", "nobody", "pa55word", ErrInvalidCredentials},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := s.Login(ctx, tt.username, tt.password)
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Login() error = %v, want %v", err, tt.wantErr)
				}
			})
		}
	})

	t.Run("history round trip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		if _, err := s.History(ctx, "meera"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("History() on empty store error = %v, want ErrNotFound", err)
		}

		results := []TestResult{
			{Username: "meera", Subject: "Physics", Topic: "Gravity", Score: 60, WeakConcepts: []string{"free fall", "Free Fall"}},
			{Username: "meera", Subject: "Chemistry", Topic: "The Atom", Score: 80},
			{Username: "other", Subject: "Physics", Topic: "Gravity", Score: 20},
		}
		for _, r := range results {
			if err := s.RecordResult(ctx, r); err != nil {
				t.Fatalf("RecordResult() error = %v", err)
			}
		}

		got, err := s.History(ctx, "meera")
		if err != nil {
			t.Fatalf("History() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("History() returned %d records, want 2", len(got))
		}
		if got[0].Topic != "Gravity" || got[0].Score != 60 {
			t.Errorf("first record = %+v, want Gravity/60", got[0])
		}
		if got[0].WeakConcepts != "free fall" {
			t.Errorf("weak concepts = %q, want deduplicated %q", got[0].WeakConcepts, "free fall")
		}
		if got[1].Topic != "The Atom" || got[1].Score != 80 {
			t.Errorf("second record = %+v, want The Atom/80", got[1])
		}
		if got[0].TestDate.IsZero() {
			t.Error("test_date should be server-assigned")
		}
		if got[1].TestDate.Before(got[0].TestDate) {
			t.Error("records should be ordered by test_date ascending")
		}
	})

	t.Run("health", func(t *testing.T) {
		s := newStore(t)
		if err := s.HealthCheck(context.Background()); err != nil {
			t.Errorf("HealthCheck() error = %v", err)
		}
	})
}
