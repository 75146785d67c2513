package library

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mcrews/plexkit/internal/domain"
	"github.com/mcrews/plexkit/internal/plex"
)

// Section is a top-level library grouping (e.g. "Movies", "Music") that owns
// collections and defines searchable fields.
type Section struct {
	ID        string // section key, numeric on the wire
	UUID      string
	Title     string
	Type      string // native item type: movie, show, artist, photo
	AllowSync bool
}

// Sections returns all library sections on the server
func Sections(ctx context.Context, srv *plex.Client) ([]Section, error) {
	container, err := srv.Get(ctx, "/library/sections", nil)
	if err != nil {
		return nil, err
	}

	sections := make([]Section, 0, len(container.Directory))
	for _, d := range container.Directory {
		sections = append(sections, Section{
			ID:        d.Key,
			UUID:      d.UUID,
			Title:     d.Title,
			Type:      d.Type,
			AllowSync: d.AllowSync,
		})
	}
	return sections, nil
}

// Resolve finds a section by title (case-insensitive)
func Resolve(ctx context.Context, srv *plex.Client, title string) (Section, error) {
	sections, err := Sections(ctx, srv)
	if err != nil {
		return Section{}, err
	}
	for _, s := range sections {
		if strings.EqualFold(s.Title, title) {
			return s, nil
		}
	}
	return Section{}, fmt.Errorf("library section %q: %w", title, domain.ErrNotFound)
}

// ByID finds a section by its numeric key
func ByID(ctx context.Context, srv *plex.Client, id int) (Section, error) {
	sections, err := Sections(ctx, srv)
	if err != nil {
		return Section{}, err
	}
	key := strconv.Itoa(id)
	for _, s := range sections {
		if s.ID == key {
			return s, nil
		}
	}
	return Section{}, fmt.Errorf("library section %d: %w", id, domain.ErrNotFound)
}
