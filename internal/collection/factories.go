package collection

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mcrews/plexkit/internal/domain"
	"github.com/mcrews/plexkit/internal/playqueue"
	syncjob "github.com/mcrews/plexkit/internal/sync"
)

// PlayQueue creates a server-side play queue from the collection's members
func (c *Collection) PlayQueue(ctx context.Context, opts playqueue.Options) (*playqueue.PlayQueue, error) {
	listType, err := c.ListType()
	if err != nil {
		return nil, err
	}
	items, err := c.Items(ctx)
	if err != nil {
		return nil, err
	}
	return playqueue.Create(ctx, c.srv, listType, items, opts)
}

// SyncOptions configure a collection sync job
type SyncOptions struct {
	Title           string // descriptive title, defaults to the collection title
	Limit           int    // item cap, 0 for unlimited
	Unwatched       bool   // skip watched videos
	VideoQuality    int    // video collections only
	AudioBitrate    int    // audio collections only, kbps
	PhotoResolution string // photo collections only
}

// Sync registers the collection as a sync job for the account's target
// device. The owning section must permit sync.
func (c *Collection) Sync(ctx context.Context, account syncjob.Dispatcher, opts SyncOptions) (*syncjob.Item, error) {
	section, err := c.Section(ctx)
	if err != nil {
		return nil, err
	}
	if !section.AllowSync {
		return nil, fmt.Errorf("the collection is not allowed to sync: %w", domain.ErrInvalidOperation)
	}

	listType, err := c.ListType()
	if err != nil {
		return nil, err
	}

	var settings syncjob.MediaSettings
	switch listType {
	case "video":
		settings, err = syncjob.NewVideoSettings(opts.VideoQuality)
		if err != nil {
			return nil, err
		}
	case "audio":
		settings = syncjob.NewMusicSettings(opts.AudioBitrate)
	case "photo":
		settings = syncjob.NewPhotoSettings(opts.PhotoResolution)
	}

	title := opts.Title
	if title == "" {
		title = c.Title
	}

	item := syncjob.Item{
		Title:             title,
		RootTitle:         c.Title,
		ContentType:       listType,
		MetadataType:      c.MetadataType(),
		MachineIdentifier: c.srv.MachineIdentifier(),
		Location: "library:///directory/" + url.QueryEscape(
			c.Key+"/children?excludeAllLeaves=1"),
		Policy:        syncjob.NewPolicy(opts.Limit, opts.Unwatched),
		MediaSettings: settings,
	}

	if err := account.Submit(ctx, item); err != nil {
		return nil, err
	}
	return &item, nil
}
