package storage

import (
	"livevote/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteVoteStatusStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := NewSQLiteVoteStatusStore(dir, "dev-1", &testutil.MockLogger{})
	require.NoError(t, err)

	voted, err := s.Load()
	require.NoError(t, err)
	assert.False(t, voted)

	require.NoError(t, s.MarkVoted())
	require.NoError(t, s.MarkVoted())
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteVoteStatusStore(dir, "dev-1", &testutil.MockLogger{})
	require.NoError(t, err)
	defer reopened.Close()

	voted, err = reopened.Load()
	require.NoError(t, err)
	assert.True(t, voted)
}

func TestSQLiteVoteStatusStore_KeyedPerDevice(t *testing.T) {
	dir := t.TempDir()

	a, err := NewSQLiteVoteStatusStore(dir, "dev-a", &testutil.MockLogger{})
	require.NoError(t, err)
	require.NoError(t, a.MarkVoted())
	require.NoError(t, a.Close())

	b, err := NewSQLiteVoteStatusStore(dir, "dev-b", &testutil.MockLogger{})
	require.NoError(t, err)
	defer b.Close()

	voted, err := b.Load()
	require.NoError(t, err)
	assert.False(t, voted)
}
