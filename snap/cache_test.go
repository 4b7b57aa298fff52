package snap

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T, path string, next Snapper) *Cache {
	t.Helper()
	c, err := OpenCache(path, next)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCache_HitsAndMisses(t *testing.T) {
	ctx := context.Background()
	svc := &fakeService{}
	c := openTestCache(t, filepath.Join(t.TempDir(), "snap.db"), svc)

	req := Request{Path: walk(5)}
	first, err := c.Snap(ctx, req)
	require.NoError(t, err)
	second, err := c.Snap(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, svc.calls())
	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)

	// the interpolate flag is part of the key
	_, err = c.Snap(ctx, Request{Path: walk(5), Interpolate: true})
	require.NoError(t, err)
	assert.Equal(t, 2, svc.calls())

	n, err := c.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCache_FailuresAreNotStored(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	svc := &fakeService{failAt: 1, err: boom}
	c := openTestCache(t, filepath.Join(t.TempDir(), "snap.db"), svc)

	_, err := c.Snap(ctx, Request{Path: walk(2)})
	assert.ErrorIs(t, err, boom)

	n, err := c.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = c.Snap(ctx, Request{Path: walk(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, svc.calls())
}

func TestCache_PersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snap.db")

	c, err := OpenCache(path, &fakeService{})
	require.NoError(t, err)
	_, err = c.Snap(ctx, Request{Path: walk(3)})
	require.NoError(t, err)
	require.NoError(t, c.Close())

	svc := &fakeService{}
	reopened := openTestCache(t, path, svc)
	out, err := reopened.Snap(ctx, Request{Path: walk(3)})
	require.NoError(t, err)
	assert.Len(t, out, 3)
	assert.Zero(t, svc.calls())
}

func TestRequestKey(t *testing.T) {
	a := Request{Path: walk(3)}
	assert.Equal(t, requestKey(a), requestKey(Request{Path: walk(3)}))
	assert.NotEqual(t, requestKey(a), requestKey(Request{Path: walk(4)}))
	assert.NotEqual(t, requestKey(a), requestKey(Request{Path: walk(3), Interpolate: true}))
}
