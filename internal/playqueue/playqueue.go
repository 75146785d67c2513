// Package playqueue creates server-side play queues from item lists.
package playqueue

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mcrews/plexkit/internal/domain"
	"github.com/mcrews/plexkit/internal/plex"
)

// Options configure play queue creation
type Options struct {
	Shuffle    bool
	Repeat     bool
	Continuous bool
	StartItem  int // ratingKey of the item to start from, 0 for the first
}

// PlayQueue is a server-side ordered queue of playable items
type PlayQueue struct {
	ID             int
	SelectedItemID int
	TotalCount     int
	Items          []domain.Item
}

// Create builds a new play queue on the server from the given items.
// listType is the content kind of the items (video, audio, photo).
func Create(ctx context.Context, srv *plex.Client, listType string, items []domain.Item, opts Options) (*PlayQueue, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("cannot create a play queue with no items: %w", domain.ErrInvalidOperation)
	}

	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, strconv.Itoa(item.RatingKey))
	}
	uri := fmt.Sprintf("%s/library/metadata/%s", srv.URIRoot(), strings.Join(keys, ","))

	query := url.Values{}
	query.Set("type", listType)
	query.Set("uri", uri)
	query.Set("shuffle", boolFlag(opts.Shuffle))
	query.Set("repeat", boolFlag(opts.Repeat))
	query.Set("continuous", boolFlag(opts.Continuous))
	if opts.StartItem > 0 {
		query.Set("key", fmt.Sprintf("/library/metadata/%d", opts.StartItem))
	}

	container, err := srv.Post(ctx, "/playQueues", query)
	if err != nil {
		return nil, err
	}

	return &PlayQueue{
		ID:             container.PlayQueueID,
		SelectedItemID: container.PlayQueueSelectedItemID,
		TotalCount:     container.PlayQueueTotalCount,
		Items:          plex.MapItems(container.Metadata),
	}, nil
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
