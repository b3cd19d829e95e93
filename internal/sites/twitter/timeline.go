package twitter

import (
	"context"
	"fmt"
	"net/url"

	"github.com/felores/agent-twitter-client/internal/core/domain"
	"github.com/felores/agent-twitter-client/internal/core/ports"
)

// timelinePageSize is how many tweets one page request asks for.
const timelinePageSize = 20

// UserTimeline returns a lazy iterator over a user's tweets, newest first,
// bounded by limit. Nothing is fetched until Next is called, and once the
// consumer stops pulling no further page request is made. Every call
// starts a fresh scan from the most recent page.
func (c *Client) UserTimeline(username string, limit int) ports.TimelineIterator {
	return &timelineIterator{c: c, username: username, limit: limit}
}

type timelineIterator struct {
	c        *Client
	username string
	limit    int

	buf     []domain.Tweet
	cursor  string
	yielded int
	done    bool
}

func (it *timelineIterator) Next(ctx context.Context) (domain.Tweet, bool, error) {
	if it.yielded >= it.limit {
		return domain.Tweet{}, false, nil
	}

	for len(it.buf) == 0 {
		if it.done {
			return domain.Tweet{}, false, nil
		}
		if err := it.fetchPage(ctx); err != nil {
			return domain.Tweet{}, false, err
		}
	}

	tweet := it.buf[0]
	it.buf = it.buf[1:]
	it.yielded++
	return tweet, true, nil
}

func (it *timelineIterator) fetchPage(ctx context.Context) error {
	count := timelinePageSize
	if remaining := it.limit - it.yielded; remaining < count {
		count = remaining
	}

	path := fmt.Sprintf("/users/%s/tweets?count=%d", url.PathEscape(it.username), count)
	if it.cursor != "" {
		path += "&cursor=" + url.QueryEscape(it.cursor)
	}

	var page apiTimelinePage
	ok, err := it.c.doJSON(ctx, "GET", path, nil, &page)
	if err != nil {
		return fmt.Errorf("failed to fetch timeline page for %s: %w", it.username, err)
	}
	if !ok || len(page.Tweets) == 0 {
		it.done = true
		return nil
	}

	for _, t := range page.Tweets {
		it.buf = append(it.buf, t.toDomain())
	}
	it.cursor = page.NextCursor
	if it.cursor == "" {
		it.done = true
	}
	return nil
}
