package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcrews/plexkit/internal/library"
)

func TestStoreRoundTrip(t *testing.T) {
	s, err := Open(t.TempDir(), "http://plex.local:32400")
	require.NoError(t, err)
	defer s.Close()

	t.Run("identity", func(t *testing.T) {
		_, ok := s.GetIdentity()
		assert.False(t, ok)

		require.NoError(t, s.SaveIdentity("abc123"))
		id, ok := s.GetIdentity()
		assert.True(t, ok)
		assert.Equal(t, "abc123", id)
	})

	t.Run("sections", func(t *testing.T) {
		_, ok := s.GetSections()
		assert.False(t, ok)

		sections := []library.Section{
			{ID: "1", Title: "Movies", Type: "movie", AllowSync: true},
			{ID: "3", Title: "Music", Type: "artist"},
		}
		require.NoError(t, s.SaveSections(sections))

		got, ok := s.GetSections()
		assert.True(t, ok)
		assert.Equal(t, sections, got)
	})

	t.Run("invalidate all", func(t *testing.T) {
		s.InvalidateAll()
		_, ok := s.GetIdentity()
		assert.False(t, ok)
		_, ok = s.GetSections()
		assert.False(t, ok)
	})
}

func TestStorePersistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, "http://plex.local:32400")
	require.NoError(t, err)
	require.NoError(t, s.SaveIdentity("abc123"))
	require.NoError(t, s.Close())

	s2, err := Open(dir, "http://plex.local:32400")
	require.NoError(t, err)
	defer s2.Close()

	id, ok := s2.GetIdentity()
	assert.True(t, ok)
	assert.Equal(t, "abc123", id)
}

func TestStoreMemoryOnly(t *testing.T) {
	s, err := Open("", "")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveIdentity("abc123"))
	id, ok := s.GetIdentity()
	assert.True(t, ok)
	assert.Equal(t, "abc123", id)
}

func TestStoreScopesByServerURL(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir, "http://one:32400")
	require.NoError(t, err)
	require.NoError(t, s1.SaveIdentity("one"))
	require.NoError(t, s1.Close())

	s2, err := Open(dir, "http://two:32400")
	require.NoError(t, err)
	defer s2.Close()

	_, ok := s2.GetIdentity()
	assert.False(t, ok, "different servers must not share cache entries")
}
