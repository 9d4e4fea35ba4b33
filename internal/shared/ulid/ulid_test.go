package ulid

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Not parallel: the shared entropy only stays monotonic while no other timestamp interleaves.
func TestNewAt_SameMillisecondSortsInOrder(t *testing.T) {
	at := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

	previous := newAt(at)
	for i := 0; i < 100; i++ {
		next := newAt(at)
		require.Less(t, previous, next)
		previous = next
	}

	parsed, err := ulid.ParseStrict(previous)
	require.NoError(t, err)
	assert.Equal(t, at, ulid.Time(parsed.Time()).UTC())
}

func TestNewULID(t *testing.T) {
	t.Parallel()

	id := NewULID()

	assert.Len(t, id, ulid.EncodedSize)
	_, err := ulid.ParseStrict(id)
	assert.NoError(t, err)
}
