package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/felores/agent-twitter-client/internal/core/domain"
	"github.com/felores/agent-twitter-client/internal/core/ports"
)

// JSONStorage keeps conversation states in a single JSON file, keyed by an
// opaque caller-chosen name ("default" for the CLI, the chat id for the
// Telegram relay). Good enough for a single process; use PostgresStorage
// when several instances share state.
type JSONStorage struct {
	FilePath string
	mu       sync.RWMutex
	Data     map[string]domain.ConversationState
}

func NewJSONStorage(filePath string) (*JSONStorage, error) {
	s := &JSONStorage{
		FilePath: filePath,
		Data:     make(map[string]domain.ConversationState),
	}
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if err := s.loadFromFile(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

var _ ports.StateStore = (*JSONStorage)(nil)

func (s *JSONStorage) loadFromFile() error {
	file, err := os.ReadFile(s.FilePath)
	if err != nil {
		return err
	}
	return json.Unmarshal(file, &s.Data)
}

func (s *JSONStorage) saveToFile() error {
	data, err := json.MarshalIndent(s.Data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.FilePath, data, 0644)
}

func (s *JSONStorage) Save(ctx context.Context, key string, state domain.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Data[key] = state
	return s.saveToFile()
}

func (s *JSONStorage) Load(ctx context.Context, key string) (*domain.ConversationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.Data[key]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (s *JSONStorage) Reset(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Data, key)
	return s.saveToFile()
}
