//go:build unit

package patch

import (
	"testing"

	"local-deals/internal/pkg/ptr"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(ptr.Of(3), 7))
	assert.Equal(t, 7, Coalesce[int](nil, 7))
}

func TestTrimmedOr(t *testing.T) {
	assert.Equal(t, "old", TrimmedOr(nil, "old"))
	assert.Equal(t, "old", TrimmedOr(ptr.Of("   "), "old"))
	assert.Equal(t, "new", TrimmedOr(ptr.Of(" new "), "old"))
}
