package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/felores/agent-twitter-client/internal/core/domain"
	"github.com/felores/agent-twitter-client/internal/core/ports"
)

type PostgresStorage struct {
	Pool *pgxpool.Pool
}

func NewPostgresStorage(ctx context.Context, connStr string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	s := &PostgresStorage{Pool: pool}
	if err := s.initSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

var _ ports.StateStore = (*PostgresStorage)(nil)

func (s *PostgresStorage) initSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS conversations (
		key TEXT PRIMARY KEY,
		conversation_id TEXT NOT NULL,
		messages JSONB NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := s.Pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Save(ctx context.Context, key string, state domain.ConversationState) error {
	messages, err := json.Marshal(state.Messages)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx,
		`INSERT INTO conversations (key, conversation_id, messages, updated_at)
		 VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET
		 conversation_id = $2, messages = $3, updated_at = CURRENT_TIMESTAMP`,
		key, state.ConversationID, messages)
	return err
}

func (s *PostgresStorage) Load(ctx context.Context, key string) (*domain.ConversationState, error) {
	var state domain.ConversationState
	var messages []byte
	err := s.Pool.QueryRow(ctx,
		"SELECT conversation_id, messages FROM conversations WHERE key = $1", key).
		Scan(&state.ConversationID, &messages)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(messages, &state.Messages); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *PostgresStorage) Reset(ctx context.Context, key string) error {
	_, err := s.Pool.Exec(ctx, "DELETE FROM conversations WHERE key = $1", key)
	return err
}

func (s *PostgresStorage) Close() {
	s.Pool.Close()
}
