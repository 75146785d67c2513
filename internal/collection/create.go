package collection

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mcrews/plexkit/internal/domain"
	"github.com/mcrews/plexkit/internal/library"
	"github.com/mcrews/plexkit/internal/plex"
)

// Create creates a regular collection from an explicit item list. All items
// must share one type; the first item's type is authoritative.
func Create(ctx context.Context, srv *plex.Client, title string, section library.Section, items []domain.Item) (*Collection, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("must include items to add when creating new collection: %w", domain.ErrInvalidOperation)
	}

	itemType := items[0].Type
	keys := make([]string, 0, len(items))
	for _, item := range items {
		if item.Type != itemType {
			return nil, fmt.Errorf("cannot mix media types when building a collection: %s and %s: %w",
				itemType, item.Type, domain.ErrInvalidOperation)
		}
		keys = append(keys, strconv.Itoa(item.RatingKey))
	}

	typeCode, err := library.SearchType(itemType)
	if err != nil {
		return nil, err
	}

	uri := fmt.Sprintf("%s/library/metadata/%s", srv.URIRoot(), strings.Join(keys, ","))

	query := url.Values{}
	query.Set("uri", uri)
	query.Set("type", strconv.Itoa(typeCode))
	query.Set("title", title)
	query.Set("smart", "0")
	query.Set("sectionId", section.ID)

	container, err := srv.Post(ctx, "/library/collections", query)
	if err != nil {
		return nil, err
	}
	if len(container.Metadata) == 0 {
		return nil, fmt.Errorf("no collection returned from server")
	}
	return New(srv, container.Metadata[0]), nil
}

// CreateSmart creates a smart collection whose membership is computed from a
// filter query built by the target section. The libtype defaults to the
// section's native type.
func CreateSmart(ctx context.Context, srv *plex.Client, title string, section library.Section, opts library.FilterOptions) (*Collection, error) {
	libtype := opts.Libtype
	if libtype == "" {
		libtype = section.Type
		opts.Libtype = libtype
	}

	typeCode, err := library.SearchType(libtype)
	if err != nil {
		return nil, err
	}

	searchKey, err := section.BuildSearchKey(opts)
	if err != nil {
		return nil, err
	}
	uri := srv.URIRoot() + searchKey

	query := url.Values{}
	query.Set("uri", uri)
	query.Set("type", strconv.Itoa(typeCode))
	query.Set("title", title)
	query.Set("smart", "1")
	query.Set("sectionId", section.ID)

	container, err := srv.Post(ctx, "/library/collections", query)
	if err != nil {
		return nil, err
	}
	if len(container.Metadata) == 0 {
		return nil, fmt.Errorf("no collection returned from server")
	}
	return New(srv, container.Metadata[0]), nil
}
