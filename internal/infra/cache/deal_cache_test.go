//go:build unit

package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryKey(t *testing.T) {
	a := entryKey(3, "deals:list:q=pizza|l=200")

	assert.Equal(t, a, entryKey(3, "deals:list:q=pizza|l=200"))
	assert.NotEqual(t, a, entryKey(4, "deals:list:q=pizza|l=200"), "version bump must change every key")
	assert.NotEqual(t, a, entryKey(3, "deals:list:q=burger|l=200"))
	assert.Contains(t, a, "deals:list:v3:")
}

func TestNopDealCache(t *testing.T) {
	var c NopDealCache
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []string{"x"}))
	var dst []string
	hit, err := c.Get(ctx, "k", &dst)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Invalidate(ctx))
}
