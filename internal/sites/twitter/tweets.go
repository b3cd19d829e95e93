package twitter

import (
	"context"
	"fmt"
	"net/url"

	"github.com/felores/agent-twitter-client/internal/core/domain"
)

// GetTweet fetches a single tweet by id. A (nil, nil) return means the
// tweet does not exist, was deleted, or is protected; that is a normal
// outcome and never an error.
func (c *Client) GetTweet(ctx context.Context, id string) (*domain.Tweet, error) {
	if id == "" {
		return nil, fmt.Errorf("tweet id must not be empty")
	}

	var t apiTweet
	ok, err := c.doJSON(ctx, "GET", "/tweets/"+url.PathEscape(id), nil, &t)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tweet %s: %w", id, err)
	}
	if !ok {
		return nil, nil
	}

	tweet := t.toDomain()
	return &tweet, nil
}

// GetProfile looks up a user account by handle. Useful as a cheap
// credential check before heavier operations.
func (c *Client) GetProfile(ctx context.Context, username string) (*domain.Profile, error) {
	if username == "" {
		return nil, fmt.Errorf("username must not be empty")
	}

	var p apiProfile
	ok, err := c.doJSON(ctx, "GET", "/users/"+url.PathEscape(username), nil, &p)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile %s: %w", username, err)
	}
	if !ok {
		return nil, nil
	}

	return &domain.Profile{
		UserID:    p.UserID,
		Username:  p.Username,
		Name:      p.Name,
		Biography: p.Biography,
		Followers: p.FollowersCount,
		Following: p.FollowingCount,
		Tweets:    p.StatusesCount,
	}, nil
}

func (t apiTweet) toDomain() domain.Tweet {
	return domain.Tweet{
		ID:             t.ID,
		Username:       t.Username,
		ConversationID: t.ConversationID,
		InReplyToID:    t.InReplyToID,
		Text:           t.Text,
		Timestamp:      t.Timestamp,
		Likes:          t.FavoriteCount,
		Retweets:       t.RetweetCount,
	}
}
