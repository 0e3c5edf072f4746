package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// PostgresStore is a PostgreSQL-backed Store. Every operation acquires its own
// pooled connection and releases it before returning.
type PostgresStore struct {
	pool   *pgxpool.Pool
	hasher *Hasher
	now    func() time.Time
}

// NewPostgresStore creates a PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool, hasher *Hasher) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{
		pool:   pool,
		hasher: hasher,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *PostgresStore) Register(ctx context.Context, username, password string) error {
	hash := s.hasher.Hash(username, password)

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2)`,
		username,
		hash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) Login(ctx context.Context, username, password string) error {
	stored, err := s.passwordHash(ctx, username)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(username, password, stored) {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *PostgresStore) passwordHash(ctx context.Context, username string) (string, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return "", fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var stored string
	err = conn.QueryRow(ctx,
		`SELECT password_hash FROM users WHERE username = $1`,
		username,
	).Scan(&stored)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}
	return stored, nil
}

func (s *PostgresStore) RecordResult(ctx context.Context, result TestResult) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx,
		`INSERT INTO test_results (username, test_date, subject, topic, score, weak_concepts)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
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

func (s *PostgresStore) History(ctx context.Context, username string) ([]HistoryRecord, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx,
		`SELECT test_date, subject, topic, score, weak_concepts
		 FROM test_results
		 WHERE username = $1
		 ORDER BY test_date ASC, id ASC`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("query test results: %w", err)
	}
	defer rows.Close()

	var records []HistoryRecord
	for rows.Next() {
		var r HistoryRecord
		if err := rows.Scan(&r.TestDate, &r.Subject, &r.Topic, &r.Score, &r.WeakConcepts); err != nil {
			return nil, fmt.Errorf("scan test result: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate test results: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records, nil
}

func (s *PostgresStore) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
