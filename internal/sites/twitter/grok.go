package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/felores/agent-twitter-client/internal/core/domain"
)

// Chat exchanges one turn with Grok. An empty conversationID creates a new
// conversation first; follow-ups send the full accumulated history along
// with the existing id. A throttled reply is not an error: the remote
// returns partial content plus a rate-limit notice, both carried on the
// turn for the caller to judge.
func (c *Client) Chat(ctx context.Context, conversationID string, messages []domain.Message) (*domain.Turn, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("at least one message is required")
	}

	if conversationID == "" {
		var created struct {
			ConversationID string `json:"conversation_id"`
		}
		ok, err := c.doJSON(ctx, "POST", "/grok/conversations/new", bytes.NewReader([]byte("{}")), &created)
		if err != nil {
			return nil, fmt.Errorf("failed to create conversation: %w", err)
		}
		if !ok {
			// Unlike tweet lookups, a 404 here means the endpoint itself is
			// gone, not an absent resource.
			return nil, fmt.Errorf("failed to create conversation: endpoint not found")
		}
		conversationID = created.ConversationID
		c.log.Debug().Str("conversation_id", conversationID).Msg("new grok conversation")
	}

	reqBody := grokChatRequest{ConversationID: conversationID}
	for _, m := range messages {
		reqBody.Responses = append(reqBody.Responses, grokTurn{Message: m.Content, Sender: string(m.Role)})
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	var resp grokChatResponse
	ok, err := c.doJSON(ctx, "POST", "/grok/chat", bytes.NewReader(payload), &resp)
	if err != nil {
		return nil, fmt.Errorf("grok chat failed: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("grok chat failed: endpoint not found")
	}
	if resp.ConversationID == "" {
		resp.ConversationID = conversationID
	}

	turn := &domain.Turn{
		ConversationID: resp.ConversationID,
		Message:        resp.Message,
	}
	for _, w := range resp.WebResults {
		turn.Citations = append(turn.Citations, domain.Citation{URL: w.URL, Title: w.Title})
	}
	if resp.RateLimit != nil && resp.RateLimit.IsRateLimited {
		turn.RateLimit = &domain.RateLimitInfo{
			IsRateLimited: true,
			Message:       resp.RateLimit.Message,
		}
		c.log.Warn().Str("conversation_id", turn.ConversationID).Msg("grok response rate limited")
	}
	return turn, nil
}
