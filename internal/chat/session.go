// Package chat manages multi-turn Grok conversations on top of a
// ChatProvider. Persistence of conversation state between process runs is
// the caller's concern; a StateStore implementation covers the common case.
package chat

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/felores/agent-twitter-client/internal/core/domain"
	"github.com/felores/agent-twitter-client/internal/core/ports"
)

// Session turns single provider exchanges into an ordered dialogue. It
// holds no conversation state of its own: state goes in and comes out on
// every call, so one Session can serve many conversations.
type Session struct {
	provider ports.ChatProvider
	log      zerolog.Logger
}

func NewSession(provider ports.ChatProvider, logger zerolog.Logger) *Session {
	return &Session{provider: provider, log: logger}
}

// Start begins a new conversation with a single user message. The returned
// turn carries the conversation id assigned by the provider and a
// two-message history.
func (s *Session) Start(ctx context.Context, query string) (*domain.Turn, error) {
	if query == "" {
		return nil, fmt.Errorf("query must not be empty")
	}
	return s.exchange(ctx, "", []domain.Message{{Role: domain.RoleUser, Content: query}})
}

// Continue appends query to a prior conversation and sends the full
// accumulated history. The returned turn's history is the prior messages
// plus exactly two entries: the new user message and the assistant reply.
// prior is not modified.
func (s *Session) Continue(ctx context.Context, prior domain.ConversationState, query string) (*domain.Turn, error) {
	if query == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	history := make([]domain.Message, 0, len(prior.Messages)+2)
	history = append(history, prior.Messages...)
	history = append(history, domain.Message{Role: domain.RoleUser, Content: query})
	return s.exchange(ctx, prior.ConversationID, history)
}

func (s *Session) exchange(ctx context.Context, conversationID string, history []domain.Message) (*domain.Turn, error) {
	turn, err := s.provider.Chat(ctx, conversationID, history)
	if err != nil {
		return nil, err
	}

	// The assistant reply always extends the history, rate limited or not;
	// a dropped turn would corrupt every later continuation.
	turn.Messages = append(history, domain.Message{Role: domain.RoleAssistant, Content: turn.Message})

	evt := s.log.Debug().Str("conversation_id", turn.ConversationID).Int("messages", len(turn.Messages))
	if turn.RateLimit != nil {
		evt = evt.Bool("rate_limited", true)
	}
	evt.Msg("chat turn complete")
	return turn, nil
}
