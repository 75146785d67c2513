package sync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcrews/plexkit/internal/domain"
	"github.com/mcrews/plexkit/internal/log"
)

func TestNewPolicy(t *testing.T) {
	t.Run("limit caps the item count", func(t *testing.T) {
		p := NewPolicy(25, true)
		assert.Equal(t, "count", p.Scope)
		assert.Equal(t, 25, p.Value)
		assert.True(t, p.Unwatched)
	})

	t.Run("zero limit syncs everything", func(t *testing.T) {
		p := NewPolicy(0, false)
		assert.Equal(t, "all", p.Scope)
		assert.Equal(t, 0, p.Value)
	})
}

func TestMediaSettings(t *testing.T) {
	t.Run("original video quality", func(t *testing.T) {
		s, err := NewVideoSettings(VideoQualityOriginal)
		require.NoError(t, err)
		assert.Equal(t, "original", s.VideoResolution)
		assert.Equal(t, 0, s.MaxVideoBitrate)
	})

	t.Run("preset video quality", func(t *testing.T) {
		s, err := NewVideoSettings(VideoQuality720p)
		require.NoError(t, err)
		assert.Equal(t, 3000, s.MaxVideoBitrate)
		assert.Equal(t, "1280x720", s.VideoResolution)
	})

	t.Run("out of range video quality", func(t *testing.T) {
		_, err := NewVideoSettings(99)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("music", func(t *testing.T) {
		s := NewMusicSettings(AudioBitrate192)
		assert.Equal(t, 192, s.MusicBitrate)
	})

	t.Run("photo", func(t *testing.T) {
		s := NewPhotoSettings(PhotoResolution1080p)
		assert.Equal(t, "1920x1080", s.PhotoResolution)
		assert.Equal(t, 74, s.PhotoQuality)
	})
}

func TestAccountSubmit(t *testing.T) {
	newTestAccount := func(t *testing.T, handler http.HandlerFunc) *Account {
		t.Helper()
		ts := httptest.NewServer(handler)
		t.Cleanup(ts.Close)
		a := NewAccount("token", "device-1", log.NullLogger())
		a.baseURL = ts.URL
		return a
	}

	item := Item{
		Title:             "Favorites",
		RootTitle:         "Favorites",
		ContentType:       "video",
		MetadataType:      "movie",
		MachineIdentifier: "abc123",
		Location:          "library:///directory/%2Flibrary%2Fmetadata%2F10%2Fchildren%3FexcludeAllLeaves%3D1",
		Policy:            NewPolicy(10, true),
		MediaSettings:     MediaSettings{VideoQuality: VideoQualityOriginal, VideoResolution: "original", AudioBoost: 100},
	}

	t.Run("posts the job parameters to the device endpoint", func(t *testing.T) {
		var gotPath string
		var gotQuery url.Values
		a := newTestAccount(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query()
			w.WriteHeader(http.StatusCreated)
		})

		require.NoError(t, a.Submit(context.Background(), item))

		assert.Equal(t, "/devices/device-1/sync_items", gotPath)
		assert.Equal(t, "Favorites", gotQuery.Get("SyncItem[title]"))
		assert.Equal(t, "video", gotQuery.Get("SyncItem[contentType]"))
		assert.Equal(t, "movie", gotQuery.Get("SyncItem[metadataType]"))
		assert.Equal(t, "abc123", gotQuery.Get("SyncItem[machineIdentifier]"))
		assert.Equal(t, "count", gotQuery.Get("SyncItem[Policy][scope]"))
		assert.Equal(t, "1", gotQuery.Get("SyncItem[Policy][unwatched]"))
		assert.Equal(t, "10", gotQuery.Get("SyncItem[Policy][value]"))
		assert.Equal(t, item.Location, gotQuery.Get("SyncItem[Location][uri]"))
		assert.Equal(t, "original", gotQuery.Get("SyncItem[MediaSettings][videoResolution]"))
	})

	t.Run("maps 401 to auth failure", func(t *testing.T) {
		a := newTestAccount(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		err := a.Submit(context.Background(), item)
		assert.ErrorIs(t, err, domain.ErrAuthFailed)
	})

	t.Run("rejects server errors", func(t *testing.T) {
		a := newTestAccount(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		err := a.Submit(context.Background(), item)
		assert.ErrorContains(t, err, "500")
	})
}
