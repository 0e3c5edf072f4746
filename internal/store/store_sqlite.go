package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// SQLiteStore is a SQLite-backed Store. Each operation checks out a dedicated
// connection and closes it before returning.
type SQLiteStore struct {
	db     *sqlx.DB
	hasher credentialHasher
	now    func() time.Time
}

// NewSQLiteStore creates a SQLite-backed store over an open database.
func NewSQLiteStore(db *sqlx.DB, hasher *Hasher) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	return &SQLiteStore{
		db:     db,
		hasher: hasher,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// Register hashes before checking out the connection; the pool holds a
// single connection and argon2 is slow.
func (s *SQLiteStore) Register(ctx context.Context, username, password string) error {
	hash := s.hasher.Hash(username, password)

	conn, err := s.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	_, err = conn.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?)`,
		username,
		hash,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Login verifies after the connection is released.
func (s *SQLiteStore) Login(ctx context.Context, username, password string) error {
	stored, err := s.passwordHash(ctx, username)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(username, password, stored) {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *SQLiteStore) passwordHash(ctx context.Context, username string) (string, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return "", fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	var stored string
	err = conn.GetContext(ctx, &stored, `SELECT password_hash FROM users WHERE username = ?`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}
	return stored, nil
}

func (s *SQLiteStore) RecordResult(ctx context.Context, result TestResult) error {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	_, err = conn.ExecContext(ctx,
		`INSERT INTO test_results (username, test_date, subject, topic, score, weak_concepts)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		result.Username,
		s.now(),
		result.Subject,
		result.Topic,
		result.Score,
		JoinConcepts(result.WeakConcepts),
	)
	if err != nil {
		return fmt.Errorf("insert test result: %w", err)
	}
	return nil
}

func (s *SQLiteStore) History(ctx context.Context, username string) ([]HistoryRecord, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	var records []HistoryRecord
	err = conn.SelectContext(ctx, &records,
		`SELECT test_date, subject, topic, score, weak_concepts
		 FROM test_results
		 WHERE username = ?
		 ORDER BY test_date ASC, id ASC`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("query test results: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records, nil
}

func (s *SQLiteStore) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
