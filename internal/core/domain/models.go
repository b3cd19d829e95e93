package domain

import "fmt"

// Tweet represents a single post on the platform. Instances are built by
// fetch operations and never mutated afterwards.
type Tweet struct {
	ID             string
	Username       string
	ConversationID string
	// InReplyToID links a reply to its parent tweet. Empty for thread roots.
	InReplyToID string
	Text        string
	// Timestamp is seconds since the Unix epoch.
	Timestamp int64
	Likes     int
	Retweets  int
}

// Permalink returns the canonical status URL for the tweet.
func (t Tweet) Permalink() string {
	return fmt.Sprintf("https://x.com/%s/status/%s", t.Username, t.ID)
}

// Profile represents a user account on the platform.
type Profile struct {
	UserID    string
	Username  string
	Name      string
	Biography string
	Followers int
	Following int
	Tweets    int
}

// Role identifies who authored a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn entry in a Grok conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ConversationState is the persistable form of an ongoing Grok conversation.
// The conversation identifier is assigned by the remote provider on the
// first turn and stays fixed afterwards. Message order is turn order.
type ConversationState struct {
	ConversationID string    `json:"conversationId"`
	Messages       []Message `json:"messages"`
}

// Citation is a sourced web result attached to an assistant reply.
type Citation struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// RateLimitInfo carries the remote throttling notice attached to a turn.
// A rate-limited turn is degraded success, not a failure: the reply may be
// partial and the caller decides how to surface the notice.
type RateLimitInfo struct {
	IsRateLimited bool   `json:"isRateLimited"`
	Message       string `json:"message"`
}

// Turn is one completed request/response exchange in a conversation.
// Messages holds the full accumulated history including the new user
// message and the assistant reply.
type Turn struct {
	ConversationID string
	Message        string
	Messages       []Message
	Citations      []Citation
	RateLimit      *RateLimitInfo
}

// State extracts the persistable conversation state from a turn.
func (t *Turn) State() ConversationState {
	return ConversationState{
		ConversationID: t.ConversationID,
		Messages:       t.Messages,
	}
}
