package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felores/agent-twitter-client/internal/core/domain"
)

func testState() domain.ConversationState {
	return domain.ConversationState{
		ConversationID: "conv-42",
		Messages: []domain.Message{
			{Role: domain.RoleUser, Content: "hello"},
			{Role: domain.RoleAssistant, Content: "hi!"},
		},
	}
}

func TestJSONStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := NewJSONStorage(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "default", testState()))

	// A fresh instance must see what the first one wrote, in order.
	reopened, err := NewJSONStorage(path)
	require.NoError(t, err)
	state, err := reopened.Load(ctx, "default")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "conv-42", state.ConversationID)
	require.Len(t, state.Messages, 2)
	assert.Equal(t, domain.RoleUser, state.Messages[0].Role)
}

func TestJSONStorageMissingKeyIsNil(t *testing.T) {
	s, err := NewJSONStorage(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	state, err := s.Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestJSONStorageReset(t *testing.T) {
	ctx := context.Background()
	s, err := NewJSONStorage(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "default", testState()))
	require.NoError(t, s.Reset(ctx, "default"))

	state, err := s.Load(ctx, "default")
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestJSONStorageKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	s, err := NewJSONStorage(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	a := testState()
	b := domain.ConversationState{ConversationID: "conv-7"}
	require.NoError(t, s.Save(ctx, "a", a))
	require.NoError(t, s.Save(ctx, "b", b))

	got, err := s.Load(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "conv-7", got.ConversationID)
}
