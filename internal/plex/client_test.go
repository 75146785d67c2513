package plex

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
)

func TestDoRequest(t *testing.T) {
	t.Run("sets identification headers", func(t *testing.T) {
		var got http.Header
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
			fmt.Fprint(w, `{"MediaContainer": {"size": 0}}`)
		}))
		defer ts.Close()

		c := NewClient(ts.URL, "secret", log.NullLogger())
		_, err := c.Get(context.Background(), "/library/sections", nil)
		require.NoError(t, err)

		assert.Equal(t, "secret", got.Get("X-Plex-Token"))
		assert.Equal(t, "application/json", got.Get("Accept"))
		assert.NotEmpty(t, got.Get("X-Plex-Client-Identifier"))
	})

	t.Run("maps 401 to auth failure", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer ts.Close()

		c := NewClient(ts.URL, "bad", log.NullLogger())
		_, err := c.Get(context.Background(), "/library/sections", nil)
		assert.ErrorIs(t, err, domain.ErrAuthFailed)
	})

	t.Run("rejects unexpected status codes", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer ts.Close()

		c := NewClient(ts.URL, "token", log.NullLogger())
		_, err := c.Get(context.Background(), "/library/sections", nil)
		assert.ErrorContains(t, err, "502")
	})

	t.Run("unreachable server", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1", "token", log.NullLogger())
		_, err := c.Get(context.Background(), "/library/sections", nil)
		assert.ErrorIs(t, err, domain.ErrServerOffline)
	})

	t.Run("accepts an empty mutation response", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		c := NewClient(ts.URL, "token", log.NullLogger())
		container, err := c.Put(context.Background(), "/library/metadata/1/prefs", nil)
		require.NoError(t, err)
		assert.Equal(t, 0, container.Size)
	})
}

func TestFetchIdentity(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/identity", r.URL.Path)
		fmt.Fprint(w, `<MediaContainer size="0" machineIdentifier="abc123"/>`)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "token", log.NullLogger())
	require.NoError(t, c.FetchIdentity(context.Background()))
	assert.Equal(t, "abc123", c.MachineIdentifier())
	assert.Equal(t, "server://abc123/com.plexapp.plugins.library", c.URIRoot())
}

func TestSetIdentity(t *testing.T) {
	c := NewClient("http://example", "token", log.NullLogger())
	c.SetIdentity("cached-id")
	assert.Equal(t, "server://cached-id/com.plexapp.plugins.library", c.URIRoot())
}

func TestMapItem(t *testing.T) {
	m := Metadata{
		RatingKey: "7",
		Key:       "/library/metadata/7",
		Type:      "movie",
		Title:     "Stalker",
		Year:      1979,
		AddedAt:   1700000000,
	}
	item := MapItem(m)
	assert.Equal(t, 7, item.RatingKey)
	assert.Equal(t, "movie", item.Type)
	assert.Equal(t, "Stalker", item.Title)
	assert.Equal(t, int64(1700000000), item.AddedAt.Unix())
}
