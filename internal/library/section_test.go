package library

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcrews/plexkit/internal/domain"
	"github.com/mcrews/plexkit/internal/log"
	"github.com/mcrews/plexkit/internal/plex"
)

func sectionServer(t *testing.T) *plex.Client {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"MediaContainer": {"size": 2, "Directory": [
			{"key": "1", "type": "movie", "title": "Movies", "allowSync": true, "uuid": "u1"},
			{"key": "3", "type": "artist", "title": "Music", "allowSync": false, "uuid": "u3"}
		]}}`)
	}))
	t.Cleanup(ts.Close)
	return plex.NewClient(ts.URL, "token", log.NullLogger())
}

func TestSections(t *testing.T) {
	srv := sectionServer(t)

	sections, err := Sections(context.Background(), srv)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, Section{ID: "1", UUID: "u1", Title: "Movies", Type: "movie", AllowSync: true}, sections[0])
	assert.Equal(t, "artist", sections[1].Type)
}

func TestResolve(t *testing.T) {
	srv := sectionServer(t)
	ctx := context.Background()

	t.Run("matches title case-insensitively", func(t *testing.T) {
		section, err := Resolve(ctx, srv, "movies")
		require.NoError(t, err)
		assert.Equal(t, "1", section.ID)
	})

	t.Run("missing section", func(t *testing.T) {
		_, err := Resolve(ctx, srv, "Photos")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestByID(t *testing.T) {
	srv := sectionServer(t)
	ctx := context.Background()

	section, err := ByID(ctx, srv, 3)
	require.NoError(t, err)
	assert.Equal(t, "Music", section.Title)

	_, err = ByID(ctx, srv, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
