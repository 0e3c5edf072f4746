// Package store persists credentials and quiz results.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	// ErrUsernameTaken is returned by Register when the username exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials is returned by Login for an unknown user or a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrNotFound is returned by History when the user has no recorded results.
	ErrNotFound = errors.New("no data found")
)

// TestResult is one graded quiz attempt.
type TestResult struct {
	ID           int64
	Username     string
	Subject      string
	Topic        string
	Score        int
	WeakConcepts []string
	TestDate     time.Time
}

// HistoryRecord is the analytics view of a stored result.
type HistoryRecord struct {
	TestDate     time.Time `json:"test_date" db:"test_date"`
	Subject      string    `json:"subject" db:"subject"`
	Topic        string    `json:"topic" db:"topic"`
	Score        int       `json:"score" db:"score"`
	WeakConcepts string    `json:"-" db:"weak_concepts"`
}

// CredentialStore registers users and verifies logins.
type CredentialStore interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error
}

// ResultStore records quiz results and reads a user's history.
type ResultStore interface {
	RecordResult(ctx context.Context, result TestResult) error
	History(ctx context.Context, username string) ([]HistoryRecord, error)
}

// Store is the full persistence surface used by the HTTP server.
type Store interface {
	CredentialStore
	ResultStore
	HealthCheck(ctx context.Context) error
}

// MemoryStore is an in-memory Store used in tests and local development.
type MemoryStore struct {
	hasher  *Hasher
	users   map[string]string
	results []TestResult
	nextID  int64
	now     func() time.Time
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(hasher *Hasher) *MemoryStore {
	return &MemoryStore{
		hasher: hasher,
		users:  make(map[string]string),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Register(_ context.Context, username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; ok {
		return ErrUsernameTaken
	}
	s.users[username] = s.hasher.Hash(username, password)
	return nil
}

func (s *MemoryStore) Login(_ context.Context, username, password string) error {
	s.mu.RLock()
	stored, ok := s.users[username]
	s.mu.RUnlock()

	if !ok || !s.hasher.Verify(username, password, stored) {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *MemoryStore) RecordResult(_ context.Context, result TestResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	result.ID = s.nextID
	result.TestDate = s.now()
	result.WeakConcepts = SplitConcepts(JoinConcepts(result.WeakConcepts))
	s.results = append(s.results, result)
	return nil
}

func (s *MemoryStore) History(_ context.Context, username string) ([]HistoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []HistoryRecord
	for _, r := range s.results {
		if r.Username != username {
			continue
		}
		records = append(records, HistoryRecord{
			TestDate:     r.TestDate,
			Subject:      r.Subject,
			Topic:        r.Topic,
			Score:        r.Score,
			WeakConcepts: JoinConcepts(r.WeakConcepts),
		})
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TestDate.Before(records[j].TestDate)
	})
	return records, nil
}

func (s *MemoryStore) HealthCheck(context.Context) error {
	return nil
}
