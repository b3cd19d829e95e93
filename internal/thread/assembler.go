// Package thread reconstructs full conversations from a single seed tweet.
package thread

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/felores/agent-twitter-client/internal/core/domain"
	"github.com/felores/agent-twitter-client/internal/core/ports"
)

// DefaultScanLimit bounds the timeline scan when the caller does not pick
// a limit.
const DefaultScanLimit = 100

// Assembler rebuilds an ordered thread by combining a direct seed lookup,
// best-effort known-id hints, and a bounded scan of the author's timeline.
type Assembler struct {
	fetcher  ports.TweetFetcher
	timeline ports.TimelineSource
	log      zerolog.Logger
}

func NewAssembler(fetcher ports.TweetFetcher, timeline ports.TimelineSource, logger zerolog.Logger) *Assembler {
	return &Assembler{fetcher: fetcher, timeline: timeline, log: logger}
}

// Assemble returns every discovered tweet of the seed's conversation,
// deduplicated by id and sorted ascending by timestamp. A scanLimit of 0
// disables the timeline scan entirely; with no hints either, the result is
// just the seed. Individual hint failures are logged and skipped; only a
// missing seed or a failing timeline scan aborts the call.
func (a *Assembler) Assemble(ctx context.Context, seedID string, knownIDs []string, scanLimit int) ([]domain.Tweet, error) {
	if seedID == "" {
		return nil, fmt.Errorf("seed id must not be empty")
	}
	if scanLimit < 0 {
		scanLimit = DefaultScanLimit
	}

	seed, err := a.fetcher.GetTweet(ctx, seedID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seed %s: %w", seedID, err)
	}
	if seed == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSeedNotFound, seedID)
	}

	collected := map[string]domain.Tweet{seed.ID: *seed}

	// Known-id hints are best effort. An id that fails to resolve, or that
	// resolves to a tweet outside the seed's conversation or by a
	// different author, is skipped without failing the call. The
	// author+conversation check defends against unrelated ids in a stale
	// hint list.
	for _, id := range knownIDs {
		if id == "" {
			continue
		}
		if _, seen := collected[id]; seen {
			continue
		}
		hint, err := a.fetcher.GetTweet(ctx, id)
		if err != nil {
			a.log.Warn().Str("tweet_id", id).Err(err).Msg("skipping known id: fetch failed")
			continue
		}
		if hint == nil {
			a.log.Debug().Str("tweet_id", id).Msg("skipping known id: not found")
			continue
		}
		if hint.ConversationID != seed.ConversationID || hint.Username != seed.Username {
			a.log.Debug().Str("tweet_id", id).Msg("skipping known id: outside seed conversation")
			continue
		}
		collected[hint.ID] = *hint
	}

	if scanLimit > 0 {
		if err := a.scanTimeline(ctx, *seed, collected, scanLimit); err != nil {
			return nil, err
		}
	}

	thread := make([]domain.Tweet, 0, len(collected))
	for _, t := range collected {
		thread = append(thread, t)
	}
	sort.Slice(thread, func(i, j int) bool {
		if thread[i].Timestamp != thread[j].Timestamp {
			return thread[i].Timestamp < thread[j].Timestamp
		}
		return thread[i].ID < thread[j].ID
	})
	return thread, nil
}

// scanTimeline pulls up to scanLimit tweets from the seed author's
// timeline and adds every one reachable from the seed via reply-parent
// links. The timeline arrives newest first, so a child regularly shows up
// in the window before its parent; membership is therefore recomputed over
// the buffered window until a pass adds nothing.
func (a *Assembler) scanTimeline(ctx context.Context, seed domain.Tweet, collected map[string]domain.Tweet, scanLimit int) error {
	it := a.timeline.UserTimeline(seed.Username, scanLimit)

	var window []domain.Tweet
	for {
		t, ok, err := it.Next(ctx)
		if err != nil {
			return fmt.Errorf("timeline scan failed: %w", err)
		}
		if !ok {
			break
		}
		if t.ConversationID != seed.ConversationID || t.Username != seed.Username {
			continue
		}
		window = append(window, t)
	}

	for {
		added := false
		for _, t := range window {
			if _, seen := collected[t.ID]; seen {
				continue
			}
			if t.ID == seed.ID {
				collected[t.ID] = t
				added = true
				continue
			}
			if _, parentKnown := collected[t.InReplyToID]; t.InReplyToID != "" && parentKnown {
				collected[t.ID] = t
				added = true
			}
		}
		if !added {
			break
		}
	}

	// Tweets whose parents never appeared inside the scan window stay
	// excluded. Raising scanLimit or supplying known ids is the way to
	// pick them up.
	a.log.Debug().Int("window", len(window)).Int("collected", len(collected)).Msg("timeline scan complete")
	return nil
}
