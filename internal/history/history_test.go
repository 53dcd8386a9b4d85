package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visited(t *testing.T, capacity int, paths ...string) *Trail {
	t.Helper()
	trail := NewTrail(capacity)
	for _, p := range paths {
		trail.Visit(p)
	}
	return trail
}

func TestTrailBackAndForward(t *testing.T) {
	trail := visited(t, 10, "a", "b", "c")

	p, ok := trail.Back()
	require.True(t, ok)
	assert.Equal(t, "b", p)
	p, ok = trail.Back()
	require.True(t, ok)
	assert.Equal(t, "a", p)
	_, ok = trail.Back()
	assert.False(t, ok)

	p, ok = trail.Forward()
	require.True(t, ok)
	assert.Equal(t, "b", p)
	assert.True(t, trail.CanGoForward())
	assert.True(t, trail.CanGoBack())
}

func TestTrailVisitDropsForwardEntries(t *testing.T) {
	trail := visited(t, 10, "a", "b", "c")
	trail.Back()
	trail.Back()
	trail.Visit("d")

	assert.Equal(t, 2, trail.Len())
	assert.False(t, trail.CanGoForward())
	current, _ := trail.Current()
	assert.Equal(t, "d", current)
}

func TestTrailIgnoresRepeatedVisit(t *testing.T) {
	trail := visited(t, 10, "a", "a", "b", "b")
	assert.Equal(t, 2, trail.Len())
}

func TestTrailRevisitAfterBackKeepsForward(t *testing.T) {
	trail := visited(t, 10, "a", "b", "c")
	p, _ := trail.Back()
	trail.Visit(p)

	assert.Equal(t, 3, trail.Len())
	assert.True(t, trail.CanGoForward())
}

func TestTrailCapacity(t *testing.T) {
	trail := visited(t, 2, "a", "b", "c")
	assert.Equal(t, 2, trail.Len())
	p, ok := trail.Back()
	require.True(t, ok)
	assert.Equal(t, "b", p)
	_, ok = trail.Back()
	assert.False(t, ok)
}

func TestTrailDisabled(t *testing.T) {
	for _, capacity := range []int{0, -3} {
		trail := visited(t, capacity, "a", "b")
		assert.False(t, trail.Enabled())
		assert.Zero(t, trail.Len())
		_, ok := trail.Current()
		assert.False(t, ok)
	}
}

func TestTrailForget(t *testing.T) {
	t.Run("current visit falls back", func(t *testing.T) {
		trail := visited(t, 10, "a", "b", "c")
		trail.Forget("c")
		current, ok := trail.Current()
		require.True(t, ok)
		assert.Equal(t, "b", current)
	})

	t.Run("earlier visits shift the cursor", func(t *testing.T) {
		trail := visited(t, 10, "a", "b", "a", "c", "d")
		trail.Back()
		trail.Forget("a")
		current, _ := trail.Current()
		assert.Equal(t, "c", current)
		assert.Equal(t, 3, trail.Len())
	})

	t.Run("first visit removed", func(t *testing.T) {
		trail := visited(t, 10, "a", "b")
		trail.Back()
		trail.Forget("a")
		current, _ := trail.Current()
		assert.Equal(t, "b", current)
	})

	t.Run("everything removed", func(t *testing.T) {
		trail := visited(t, 10, "a", "a")
		trail.Forget("a")
		_, ok := trail.Current()
		assert.False(t, ok)
		assert.Zero(t, trail.Len())
	})
}

func TestTrailReset(t *testing.T) {
	trail := visited(t, 10, "a", "b")
	trail.Reset()
	assert.Zero(t, trail.Len())
	assert.False(t, trail.CanGoBack())
	trail.Visit("c")
	current, _ := trail.Current()
	assert.Equal(t, "c", current)
}
