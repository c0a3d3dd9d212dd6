package geocode

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingClient counts upstream calls and can be told to fail.
type countingClient struct {
	calls int
	fail  bool
}

func (c *countingClient) Suggestions(_ context.Context, text string, topN int) ([]string, error) {
	c.calls++
	if c.fail {
		return nil, errors.New("location service unavailable")
	}
	results := make([]string, 0, topN)
	for i := 0; i < topN; i++ {
		results = append(results, fmt.Sprintf("%s %d", text, i))
	}
	return results, nil
}

func TestCachedClientMemoizesByQueryAndCount(t *testing.T) {
	upstream := &countingClient{}
	cached := NewCachedClient(upstream, DefaultCapacity, DefaultTTL)
	ctx := context.Background()

	first, err := cached.Suggestions(ctx, "berlin", 5)
	require.NoError(t, err)
	second, err := cached.Suggestions(ctx, "berlin", 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, upstream.calls, "identical query must be served from cache")
}

func TestCachedClientKeysOnResultCount(t *testing.T) {
	upstream := &countingClient{}
	cached := NewCachedClient(upstream, DefaultCapacity, DefaultTTL)
	ctx := context.Background()

	_, err := cached.Suggestions(ctx, "berlin", 5)
	require.NoError(t, err)
	_, err = cached.Suggestions(ctx, "berlin", 10)
	require.NoError(t, err)

	assert.Equal(t, 2, upstream.calls, "same text with a different count is a different key")
}

func TestCachedClientNeverCachesErrors(t *testing.T) {
	upstream := &countingClient{fail: true}
	cached := NewCachedClient(upstream, DefaultCapacity, DefaultTTL)
	ctx := context.Background()

	_, err := cached.Suggestions(ctx, "berlin", 5)
	require.Error(t, err)
	_, err = cached.Suggestions(ctx, "berlin", 5)
	require.Error(t, err)
	assert.Equal(t, 2, upstream.calls, "failed lookups must reach upstream again")

	// Once upstream recovers, the next call succeeds and is memoized.
	upstream.fail = false
	_, err = cached.Suggestions(ctx, "berlin", 5)
	require.NoError(t, err)
	_, err = cached.Suggestions(ctx, "berlin", 5)
	require.NoError(t, err)
	assert.Equal(t, 3, upstream.calls)
}

func TestCachedClientEvictsAtCapacity(t *testing.T) {
	upstream := &countingClient{}
	cached := NewCachedClient(upstream, 2, DefaultTTL)
	ctx := context.Background()

	_, err := cached.Suggestions(ctx, "berlin", 5)
	require.NoError(t, err)
	_, err = cached.Suggestions(ctx, "paris", 5)
	require.NoError(t, err)
	_, err = cached.Suggestions(ctx, "tokyo", 5)
	require.NoError(t, err)

	// "berlin" was the least recently used entry and fell out.
	_, err = cached.Suggestions(ctx, "berlin", 5)
	require.NoError(t, err)
	assert.Equal(t, 4, upstream.calls)
}

func TestCachedClientExpiresEntries(t *testing.T) {
	upstream := &countingClient{}
	cached := NewCachedClient(upstream, DefaultCapacity, 10*time.Millisecond)
	ctx := context.Background()

	_, err := cached.Suggestions(ctx, "berlin", 5)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	_, err = cached.Suggestions(ctx, "berlin", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.calls, "expired entry must be refetched")
}

func TestParseAddress(t *testing.T) {
	loc := ParseAddress("Alexanderplatz, Berlin, Germany")
	assert.Equal(t, "Alexanderplatz", loc.Main)
	assert.Equal(t, "Berlin, Germany", loc.Secondary)
	assert.Equal(t, "Alexanderplatz, Berlin, Germany", loc.FullAddress)

	bare := ParseAddress("Berlin")
	assert.Equal(t, "Berlin", bare.Main)
	assert.Empty(t, bare.Secondary)
}
