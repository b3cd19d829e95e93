package thread

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felores/agent-twitter-client/internal/core/domain"
	"github.com/felores/agent-twitter-client/internal/core/ports"
)

// fakeFetcher serves tweets from a fixed map and can fail specific ids.
type fakeFetcher struct {
	tweets  map[string]domain.Tweet
	failing map[string]error
	calls   int
}

func (f *fakeFetcher) GetTweet(ctx context.Context, id string) (*domain.Tweet, error) {
	f.calls++
	if err, ok := f.failing[id]; ok {
		return nil, err
	}
	t, ok := f.tweets[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// fakeTimeline replays a fixed slice in order.
type fakeTimeline struct {
	tweets []domain.Tweet
}

func (f *fakeTimeline) UserTimeline(username string, limit int) ports.TimelineIterator {
	if limit > len(f.tweets) {
		limit = len(f.tweets)
	}
	return &sliceIterator{tweets: f.tweets[:limit]}
}

type sliceIterator struct {
	tweets []domain.Tweet
	pos    int
}

func (it *sliceIterator) Next(ctx context.Context) (domain.Tweet, bool, error) {
	if it.pos >= len(it.tweets) {
		return domain.Tweet{}, false, nil
	}
	t := it.tweets[it.pos]
	it.pos++
	return t, true, nil
}

func tweet(id, username, conv, parent string, ts int64) domain.Tweet {
	return domain.Tweet{
		ID:             id,
		Username:       username,
		ConversationID: conv,
		InReplyToID:    parent,
		Text:           "tweet " + id,
		Timestamp:      ts,
	}
}

func newTestAssembler(f *fakeFetcher, tl *fakeTimeline) *Assembler {
	if tl == nil {
		tl = &fakeTimeline{}
	}
	return NewAssembler(f, tl, zerolog.Nop())
}

func TestAssembleSeedOnly(t *testing.T) {
	f := &fakeFetcher{tweets: map[string]domain.Tweet{
		"T1": tweet("T1", "alice", "C1", "", 100),
	}}

	thread, err := newTestAssembler(f, nil).Assemble(context.Background(), "T1", nil, 0)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, "T1", thread[0].ID)
}

func TestAssembleSeedNotFound(t *testing.T) {
	f := &fakeFetcher{tweets: map[string]domain.Tweet{}}

	thread, err := newTestAssembler(f, nil).Assemble(context.Background(), "missing", []string{"T2"}, 0)
	assert.ErrorIs(t, err, domain.ErrSeedNotFound)
	assert.Nil(t, thread, "no partial thread on seed failure")
}

func TestAssembleKnownIDFiltering(t *testing.T) {
	// T2 matches the seed's author and conversation, T9 is someone else's
	// tweet that happens to be in the hint list.
	f := &fakeFetcher{tweets: map[string]domain.Tweet{
		"T1": tweet("T1", "alice", "C1", "", 100),
		"T2": tweet("T2", "alice", "C1", "T1", 200),
		"T9": tweet("T9", "bob", "C1", "", 150),
	}}

	thread, err := newTestAssembler(f, nil).Assemble(context.Background(), "T1", []string{"T2", "T9"}, 0)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "T1", thread[0].ID)
	assert.Equal(t, "T2", thread[1].ID)
}

func TestAssembleKnownIDWrongConversationExcluded(t *testing.T) {
	f := &fakeFetcher{tweets: map[string]domain.Tweet{
		"T1": tweet("T1", "alice", "C1", "", 100),
		"T5": tweet("T5", "alice", "C2", "", 200), // same author, other thread
	}}

	thread, err := newTestAssembler(f, nil).Assemble(context.Background(), "T1", []string{"T5"}, 0)
	require.NoError(t, err)
	require.Len(t, thread, 1)
}

func TestAssembleKnownIDFailuresAreSwallowed(t *testing.T) {
	f := &fakeFetcher{
		tweets: map[string]domain.Tweet{
			"T1": tweet("T1", "alice", "C1", "", 100),
			"T2": tweet("T2", "alice", "C1", "T1", 200),
		},
		failing: map[string]error{"T3": fmt.Errorf("%w: boom", domain.ErrTransient)},
	}

	thread, err := newTestAssembler(f, nil).Assemble(context.Background(), "T1", []string{"T3", "missing", "T2"}, 0)
	require.NoError(t, err, "hint failures never abort the call")
	require.Len(t, thread, 2)
}

func TestAssembleTimelineScanFollowsReplyChain(t *testing.T) {
	f := &fakeFetcher{tweets: map[string]domain.Tweet{
		"T1": tweet("T1", "alice", "C1", "", 100),
	}}
	tl := &fakeTimeline{tweets: []domain.Tweet{
		tweet("T4", "alice", "C1", "T3", 400),
		tweet("T3", "alice", "C1", "T2", 300),
		tweet("T2", "alice", "C1", "T1", 200),
		tweet("X1", "alice", "C7", "", 250), // other conversation
	}}

	thread, err := newTestAssembler(f, tl).Assemble(context.Background(), "T1", nil, 10)
	require.NoError(t, err)

	var ids []string
	for _, tw := range thread {
		ids = append(ids, tw.ID)
	}
	// The timeline is newest first, so every child appears before its
	// parent; the fixed-point pass still links the whole chain.
	assert.Equal(t, []string{"T1", "T2", "T3", "T4"}, ids)
}

func TestAssembleScanExcludesUnreachable(t *testing.T) {
	f := &fakeFetcher{tweets: map[string]domain.Tweet{
		"T1": tweet("T1", "alice", "C1", "", 100),
	}}
	// T8 shares the conversation but its parent T7 never appears in the
	// window, so it stays out. Known limitation of a bounded scan.
	tl := &fakeTimeline{tweets: []domain.Tweet{
		tweet("T8", "alice", "C1", "T7", 800),
		tweet("T2", "alice", "C1", "T1", 200),
	}}

	thread, err := newTestAssembler(f, tl).Assemble(context.Background(), "T1", nil, 10)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "T2", thread[1].ID)
}

func TestAssembleScanLimitZeroSkipsTimeline(t *testing.T) {
	f := &fakeFetcher{tweets: map[string]domain.Tweet{
		"T1": tweet("T1", "alice", "C1", "", 100),
	}}
	tl := &fakeTimeline{tweets: []domain.Tweet{
		tweet("T2", "alice", "C1", "T1", 200),
	}}

	thread, err := newTestAssembler(f, tl).Assemble(context.Background(), "T1", nil, 0)
	require.NoError(t, err)
	require.Len(t, thread, 1, "scanLimit 0 disables timeline augmentation")
}

func TestAssembleDeduplicatesAndSorts(t *testing.T) {
	f := &fakeFetcher{tweets: map[string]domain.Tweet{
		"T1": tweet("T1", "alice", "C1", "", 300),
		"T2": tweet("T2", "alice", "C1", "T1", 100),
	}}
	// The seed also shows up in the scan window; it must not appear twice.
	tl := &fakeTimeline{tweets: []domain.Tweet{
		tweet("T1", "alice", "C1", "", 300),
		tweet("T3", "alice", "C1", "T1", 200),
	}}

	thread, err := newTestAssembler(f, tl).Assemble(context.Background(), "T1", []string{"T2", "T2"}, 10)
	require.NoError(t, err)
	require.Len(t, thread, 3)

	seen := map[string]bool{}
	var last int64 = -1
	for _, tw := range thread {
		assert.False(t, seen[tw.ID], "duplicate id %s", tw.ID)
		seen[tw.ID] = true
		assert.GreaterOrEqual(t, tw.Timestamp, last, "timestamps must be non-decreasing")
		last = tw.Timestamp
	}
}

func TestAssembleEmptySeedID(t *testing.T) {
	f := &fakeFetcher{}
	_, err := newTestAssembler(f, nil).Assemble(context.Background(), "", nil, 0)
	assert.Error(t, err)
	assert.Zero(t, f.calls)
}
