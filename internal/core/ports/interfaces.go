package ports

import (
	"context"

	"github.com/felores/agent-twitter-client/internal/core/domain"
)

// TweetFetcher retrieves a single tweet by identifier.
// A (nil, nil) return means the tweet does not exist, was deleted, or is
// inaccessible. Callers must treat that as a normal outcome, not a failure.
type TweetFetcher interface {
	GetTweet(ctx context.Context, id string) (*domain.Tweet, error)
}

// TimelineIterator is a pull-based cursor over a user's timeline. No page
// is fetched until Next is called, and no further page is fetched once the
// consumer stops calling it. ok is false when the sequence is exhausted.
type TimelineIterator interface {
	Next(ctx context.Context) (tweet domain.Tweet, ok bool, err error)
}

// TimelineSource produces bounded timeline iterators. Each call starts a
// fresh scan from the most recent page; no cursor is retained across calls.
type TimelineSource interface {
	UserTimeline(username string, limit int) TimelineIterator
}

// ProfileFetcher looks up a user account by handle.
type ProfileFetcher interface {
	GetProfile(ctx context.Context, username string) (*domain.Profile, error)
}

// ChatProvider exchanges one turn with the remote conversational engine.
// An empty conversationID starts a new conversation; the returned turn
// carries the identifier assigned by the provider. The returned turn's
// Messages field is left for the caller to fill.
type ChatProvider interface {
	Chat(ctx context.Context, conversationID string, messages []domain.Message) (*domain.Turn, error)
}

// StateStore persists conversation state across process lifetimes so a
// dialogue can be resumed. Load returns (nil, nil) when no state exists
// for the key.
type StateStore interface {
	Save(ctx context.Context, key string, state domain.ConversationState) error
	Load(ctx context.Context, key string) (*domain.ConversationState, error)
	Reset(ctx context.Context, key string) error
}
