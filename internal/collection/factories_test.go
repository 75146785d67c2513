package collection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcrews/plexkit/internal/domain"
	"github.com/mcrews/plexkit/internal/playqueue"
	syncjob "github.com/mcrews/plexkit/internal/sync"
)

// fakeDispatcher records submitted sync jobs
type fakeDispatcher struct {
	submitted []syncjob.Item
	err       error
}

func (d *fakeDispatcher) Submit(_ context.Context, item syncjob.Item) error {
	if d.err != nil {
		return d.err
	}
	d.submitted = append(d.submitted, item)
	return nil
}

func TestPlayQueue(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a queue from the member list", func(t *testing.T) {
		f := newFakeServer(t)
		f.respond("GET", "/library/metadata/10/children", childrenBody)
		f.respond("POST", "/playQueues", `{"MediaContainer": {
			"playQueueID": 77, "playQueueSelectedItemID": 101, "playQueueTotalCount": 2,
			"Metadata": [
				{"ratingKey": "1", "type": "movie", "title": "Alien"},
				{"ratingKey": "2", "type": "movie", "title": "BLADE RUNNER"}
			]}}`)
		c := newTestCollection(f)

		queue, err := c.PlayQueue(ctx, playqueue.Options{Shuffle: true})
		require.NoError(t, err)
		assert.Equal(t, 77, queue.ID)
		assert.Equal(t, 2, queue.TotalCount)
		assert.Len(t, queue.Items, 2)

		reqs := f.recorded()
		require.Len(t, reqs, 2)
		post := reqs[1]
		assert.Equal(t, "/playQueues", post.Path)
		assert.Equal(t, "video", post.Query.Get("type"))
		assert.Equal(t, "1", post.Query.Get("shuffle"))
		assert.Equal(t,
			"server://abc123/com.plexapp.plugins.library/library/metadata/1,2",
			post.Query.Get("uri"))
	})

	t.Run("unsupported subtype", func(t *testing.T) {
		f := newFakeServer(t)
		m := testMetadata()
		m.Subtype = "collection"
		c := New(f.client(), m)

		_, err := c.PlayQueue(ctx, playqueue.Options{})
		assert.ErrorIs(t, err, domain.ErrUnsupportedKind)
		assert.Empty(t, f.recorded())
	})
}

func TestSync(t *testing.T) {
	ctx := context.Background()

	t.Run("builds and submits the job descriptor", func(t *testing.T) {
		f := newFakeServer(t)
		f.respond("GET", "/library/sections", sectionsBody)
		c := newTestCollection(f)
		dispatcher := &fakeDispatcher{}

		item, err := c.Sync(ctx, dispatcher, SyncOptions{
			Limit:        10,
			Unwatched:    true,
			VideoQuality: syncjob.VideoQualityOriginal,
		})
		require.NoError(t, err)
		require.Len(t, dispatcher.submitted, 1)

		got := dispatcher.submitted[0]
		assert.Equal(t, *item, got)
		assert.Equal(t, "Favorites", got.Title)
		assert.Equal(t, "Favorites", got.RootTitle)
		assert.Equal(t, "video", got.ContentType)
		assert.Equal(t, "movie", got.MetadataType)
		assert.Equal(t, "abc123", got.MachineIdentifier)
		assert.Equal(t,
			"library:///directory/%2Flibrary%2Fmetadata%2F10%2Fchildren%3FexcludeAllLeaves%3D1",
			got.Location)
		assert.Equal(t, "count", got.Policy.Scope)
		assert.Equal(t, 10, got.Policy.Value)
		assert.True(t, got.Policy.Unwatched)
		assert.Equal(t, "original", got.MediaSettings.VideoResolution)
	})

	t.Run("custom title", func(t *testing.T) {
		f := newFakeServer(t)
		f.respond("GET", "/library/sections", sectionsBody)
		c := newTestCollection(f)
		dispatcher := &fakeDispatcher{}

		item, err := c.Sync(ctx, dispatcher, SyncOptions{
			Title:        "Road trip",
			VideoQuality: syncjob.VideoQualityOriginal,
		})
		require.NoError(t, err)
		assert.Equal(t, "Road trip", item.Title)
		assert.Equal(t, "Favorites", item.RootTitle)
		assert.Equal(t, "all", item.Policy.Scope)
	})

	t.Run("rejected when the section forbids sync", func(t *testing.T) {
		f := newFakeServer(t)
		f.respond("GET", "/library/sections", `{"MediaContainer": {"size": 1, "Directory": [
			{"key": "2", "type": "movie", "title": "Movies", "allowSync": false}
		]}}`)
		c := newTestCollection(f)
		dispatcher := &fakeDispatcher{}

		_, err := c.Sync(ctx, dispatcher, SyncOptions{})
		assert.ErrorIs(t, err, domain.ErrInvalidOperation)
		assert.Empty(t, dispatcher.submitted)
	})

	t.Run("audio settings for audio collections", func(t *testing.T) {
		f := newFakeServer(t)
		f.respond("GET", "/library/sections", `{"MediaContainer": {"size": 1, "Directory": [
			{"key": "2", "type": "artist", "title": "Music", "allowSync": true}
		]}}`)
		m := testMetadata()
		m.Subtype = "album"
		c := New(f.client(), m)
		dispatcher := &fakeDispatcher{}

		item, err := c.Sync(ctx, dispatcher, SyncOptions{AudioBitrate: 320})
		require.NoError(t, err)
		assert.Equal(t, "audio", item.ContentType)
		assert.Equal(t, 320, item.MediaSettings.MusicBitrate)
	})
}
