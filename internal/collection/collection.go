// Package collection is a typed client-side view of a server collection: a
// named grouping of media items that is either a regular collection (explicit
// member list) or a smart collection (membership computed from a stored
// filter query). Which of the two mutation sets is legal depends on the
// Smart flag.
package collection

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mcrews/plexkit/internal/domain"
	"github.com/mcrews/plexkit/internal/library"
	"github.com/mcrews/plexkit/internal/plex"
)

// Collection display modes
const (
	ModeDefault   = -1
	ModeHide      = 0
	ModeHideItems = 1
	ModeShowItems = 2
)

// Collection sort orders
const (
	SortRelease = 0
	SortAlpha   = 1
	SortCustom  = 2
)

var collectionModes = map[string]int{
	"default":   ModeDefault,
	"hide":      ModeHide,
	"hideItems": ModeHideItems,
	"showItems": ModeShowItems,
}

var collectionSorts = map[string]int{
	"release": SortRelease,
	"alpha":   SortAlpha,
	"custom":  SortCustom,
}

// Collection represents a single server collection. Construct one with New
// (from a parsed record), Fetch, or the Create factories. The member list and
// owning section are fetched once and memoized for the life of the value;
// re-fetch the collection for a fresh view.
type Collection struct {
	srv *plex.Client

	RatingKey           int
	Key                 string // canonical path, /children suffix stripped
	GUID                string
	Type                string
	Subtype             string
	Smart               bool
	Title               string
	TitleSort           string
	Summary             string
	ContentRating       string
	Content             string // filter URI, smart collections only
	CollectionMode      int
	CollectionSort      int
	CollectionPublished bool
	Index               int
	ChildCount          int
	MinYear             int
	MaxYear             int
	RatingCount         int
	LibrarySectionID    int
	LibrarySectionKey   string
	LibrarySectionTitle string
	Art                 string
	ArtBlurHash         string
	Thumb               string
	ThumbBlurHash       string
	Fields              []domain.Field
	Labels              []domain.Label
	AddedAt             time.Time
	UpdatedAt           time.Time

	items   []domain.Item
	section *library.Section
}

// New builds a Collection from a server metadata record, applying the
// per-field defaulting rules: collectionMode defaults to -1, collectionSort
// to 0, smart and collectionPublished to false, and titleSort to the title.
// A trailing /children segment on the key is stripped so operations can
// append a fresh suffix.
func New(srv *plex.Client, m plex.Metadata) *Collection {
	c := &Collection{
		srv:                 srv,
		Key:                 strings.TrimSuffix(m.Key, "/children"),
		GUID:                m.GUID,
		Type:                m.Type,
		Subtype:             m.Subtype,
		Smart:               m.Smart == "1",
		Title:               m.Title,
		TitleSort:           m.TitleSort,
		Summary:             m.Summary,
		ContentRating:       m.ContentRating,
		Content:             m.Content,
		CollectionMode:      atoiDefault(m.CollectionMode, ModeDefault),
		CollectionSort:      atoiDefault(m.CollectionSort, SortRelease),
		CollectionPublished: m.CollectionPublished == "1",
		Index:               m.Index,
		ChildCount:          m.ChildCount,
		MinYear:             m.MinYear,
		MaxYear:             m.MaxYear,
		RatingCount:         m.RatingCount,
		LibrarySectionID:    m.LibrarySectionID,
		LibrarySectionKey:   m.LibrarySectionKey,
		LibrarySectionTitle: m.LibrarySectionTitle,
		Art:                 m.Art,
		ArtBlurHash:         m.ArtBlurHash,
		Thumb:               m.Thumb,
		ThumbBlurHash:       m.ThumbBlurHash,
		Fields:              plex.MapFields(m.Field),
		Labels:              plex.MapLabels(m.Label),
	}
	c.RatingKey, _ = strconv.Atoi(m.RatingKey)
	if c.TitleSort == "" {
		c.TitleSort = c.Title
	}
	if m.AddedAt > 0 {
		c.AddedAt = time.Unix(m.AddedAt, 0)
	}
	if m.UpdatedAt > 0 {
		c.UpdatedAt = time.Unix(m.UpdatedAt, 0)
	}
	return c
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Fetch retrieves a collection by its rating key
func Fetch(ctx context.Context, srv *plex.Client, ratingKey int) (*Collection, error) {
	path := fmt.Sprintf("/library/metadata/%d", ratingKey)
	container, err := srv.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	if len(container.Metadata) == 0 {
		return nil, fmt.Errorf("collection %d: %w", ratingKey, domain.ErrNotFound)
	}
	return New(srv, container.Metadata[0]), nil
}

// List returns all collections in a library section
func List(ctx context.Context, srv *plex.Client, section library.Section) ([]*Collection, error) {
	path := fmt.Sprintf("/library/sections/%s/collections", section.ID)
	container, err := srv.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	collections := make([]*Collection, 0, len(container.Metadata))
	for _, m := range container.Metadata {
		collections = append(collections, New(srv, m))
	}
	return collections, nil
}

// IsVideo reports whether this is a video collection
func (c *Collection) IsVideo() bool {
	switch c.Subtype {
	case domain.TypeMovie, domain.TypeShow, domain.TypeSeason, domain.TypeEpisode:
		return true
	}
	return false
}

// IsAudio reports whether this is an audio collection
func (c *Collection) IsAudio() bool {
	switch c.Subtype {
	case domain.TypeArtist, domain.TypeAlbum, domain.TypeTrack:
		return true
	}
	return false
}

// IsPhoto reports whether this is a photo collection
func (c *Collection) IsPhoto() bool {
	switch c.Subtype {
	case domain.TypePhotoAlbum, domain.TypePhoto:
		return true
	}
	return false
}

// ListType returns the content kind of the collection: video, audio, or photo
func (c *Collection) ListType() (string, error) {
	switch {
	case c.IsVideo():
		return "video", nil
	case c.IsAudio():
		return "audio", nil
	case c.IsPhoto():
		return "photo", nil
	}
	return "", fmt.Errorf("unexpected collection subtype %q: %w", c.Subtype, domain.ErrUnsupportedKind)
}

// MetadataType returns the subtype of the items in the collection
func (c *Collection) MetadataType() string {
	return c.Subtype
}

// Items returns the members of the collection. The list is fetched on first
// call and memoized; later calls return the cached list without a request.
func (c *Collection) Items(ctx context.Context) ([]domain.Item, error) {
	if c.items == nil {
		container, err := c.srv.Get(ctx, c.Key+"/children", nil)
		if err != nil {
			return nil, err
		}
		c.items = plex.MapItems(container.Metadata)
	}
	return c.items, nil
}

// Item returns the member whose title matches (case-insensitive)
func (c *Collection) Item(ctx context.Context, title string) (domain.Item, error) {
	items, err := c.Items(ctx)
	if err != nil {
		return domain.Item{}, err
	}
	for _, item := range items {
		if strings.EqualFold(item.Title, title) {
			return item, nil
		}
	}
	return domain.Item{}, fmt.Errorf("item with title %q not found in the collection: %w", title, domain.ErrNotFound)
}

// Get is an alias for Item
func (c *Collection) Get(ctx context.Context, title string) (domain.Item, error) {
	return c.Item(ctx, title)
}

// Contains reports whether the given item is a member of the collection
func (c *Collection) Contains(ctx context.Context, item domain.Item) (bool, error) {
	items, err := c.Items(ctx)
	if err != nil {
		return false, err
	}
	for _, member := range items {
		if member.RatingKey == item.RatingKey {
			return true, nil
		}
	}
	return false, nil
}

// Len returns the number of members, fetching the member list if needed
func (c *Collection) Len(ctx context.Context) (int, error) {
	items, err := c.Items(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Section returns the library section that owns this collection. The section
// is resolved on first call and memoized.
func (c *Collection) Section(ctx context.Context) (library.Section, error) {
	if c.section == nil {
		section, err := library.ByID(ctx, c.srv, c.LibrarySectionID)
		if err != nil {
			return library.Section{}, err
		}
		c.section = &section
	}
	return *c.section, nil
}

// ModeUpdate updates the collection display mode advanced setting.
// Accepted modes: default, hide, hideItems, showItems.
func (c *Collection) ModeUpdate(ctx context.Context, mode string) error {
	code, ok := collectionModes[mode]
	if !ok {
		return fmt.Errorf("unknown collection mode %q (options: default, hide, hideItems, showItems): %w",
			mode, domain.ErrInvalidArgument)
	}
	return c.editAdvanced(ctx, "collectionMode", strconv.Itoa(code))
}

// SortUpdate updates the collection order advanced setting.
// Accepted sorts: release, alpha, custom.
func (c *Collection) SortUpdate(ctx context.Context, sort string) error {
	code, ok := collectionSorts[sort]
	if !ok {
		return fmt.Errorf("unknown collection sort %q (options: release, alpha, custom): %w",
			sort, domain.ErrInvalidArgument)
	}
	return c.editAdvanced(ctx, "collectionSort", strconv.Itoa(code))
}

// editAdvanced issues an advanced-setting update against the prefs endpoint
func (c *Collection) editAdvanced(ctx context.Context, setting, value string) error {
	query := url.Values{}
	query.Set(setting, value)
	_, err := c.srv.Put(ctx, c.Key+"/prefs", query)
	return err
}

// AddItems adds items to a regular collection. Every item must match the
// collection's subtype; nothing is sent if validation fails.
func (c *Collection) AddItems(ctx context.Context, items ...domain.Item) error {
	if c.Smart {
		return fmt.Errorf("cannot add items to a smart collection: %w", domain.ErrInvalidOperation)
	}

	keys := make([]string, 0, len(items))
	for _, item := range items {
		if item.Type != c.Subtype {
			return fmt.Errorf("cannot mix media types when building a collection: %s and %s: %w",
				c.Subtype, item.Type, domain.ErrInvalidOperation)
		}
		keys = append(keys, strconv.Itoa(item.RatingKey))
	}

	uri := fmt.Sprintf("%s/library/metadata/%s", c.srv.URIRoot(), strings.Join(keys, ","))
	query := url.Values{}
	query.Set("uri", uri)
	_, err := c.srv.Put(ctx, c.Key+"/items", query)
	return err
}

// RemoveItems removes items from a regular collection, one request per item
func (c *Collection) RemoveItems(ctx context.Context, items ...domain.Item) error {
	if c.Smart {
		return fmt.Errorf("cannot remove items from a smart collection: %w", domain.ErrInvalidOperation)
	}

	for _, item := range items {
		path := fmt.Sprintf("%s/items/%d", c.Key, item.RatingKey)
		if err := c.srv.Delete(ctx, path, nil); err != nil {
			return err
		}
	}
	return nil
}

// UpdateFilters replaces the stored filter query of a smart collection.
// The query is built by the owning section; filter keys are passed through
// without validation at this layer.
func (c *Collection) UpdateFilters(ctx context.Context, opts library.FilterOptions) error {
	if !c.Smart {
		return fmt.Errorf("cannot update filters for a regular collection: %w", domain.ErrInvalidOperation)
	}

	section, err := c.Section(ctx)
	if err != nil {
		return err
	}
	searchKey, err := section.BuildSearchKey(opts)
	if err != nil {
		return err
	}

	uri := c.srv.URIRoot() + searchKey
	query := url.Values{}
	query.Set("uri", uri)
	_, err = c.srv.Put(ctx, c.Key+"/items", query)
	return err
}

// EditOptions is a sparse set of metadata edits. Empty fields are left
// unchanged; each set field is written and locked as an explicit override.
// Extra entries are merged into the request verbatim.
type EditOptions struct {
	Title         string
	TitleSort     string
	ContentRating string
	Summary       string
	Extra         map[string]string
}

// Edit updates the collection's metadata fields
func (c *Collection) Edit(ctx context.Context, opts EditOptions) error {
	query := url.Values{}
	setLocked := func(field, value string) {
		if value != "" {
			query.Set(field+".value", value)
			query.Set(field+".locked", "1")
		}
	}
	setLocked("title", opts.Title)
	setLocked("titleSort", opts.TitleSort)
	setLocked("contentRating", opts.ContentRating)
	setLocked("summary", opts.Summary)
	for k, v := range opts.Extra {
		query.Set(k, v)
	}

	_, err := c.srv.Put(ctx, c.Key, query)
	return err
}

// Delete removes the collection from the server
func (c *Collection) Delete(ctx context.Context) error {
	return c.srv.Delete(ctx, c.Key, nil)
}
