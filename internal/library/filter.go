package library

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mcrews/plexkit/internal/domain"
)

// searchTypes maps item types to the server's numeric search type codes
var searchTypes = map[string]int{
	domain.TypeMovie:      1,
	domain.TypeShow:       2,
	domain.TypeSeason:     3,
	domain.TypeEpisode:    4,
	domain.TypeArtist:     8,
	domain.TypeAlbum:      9,
	domain.TypeTrack:      10,
	domain.TypePhotoAlbum: 12,
	domain.TypePhoto:      13,
	"collection":          18,
}

// SearchType returns the numeric search type code for an item type
func SearchType(libtype string) (int, error) {
	code, ok := searchTypes[libtype]
	if !ok {
		return 0, fmt.Errorf("unknown libtype %q: %w", libtype, domain.ErrInvalidArgument)
	}
	return code, nil
}

// FilterOptions describes a search query against a section. Filters are named
// filter predicates (e.g. "genre", "year"); Extra carries any additional
// filter keys, passed through to the server without validation here.
type FilterOptions struct {
	Libtype string
	Limit   int
	Sort    []string // column:dir sort fields, applied in order
	Filters map[string]string
	Extra   map[string]string
}

// BuildSearchKey builds the section search path for the given options.
// The libtype defaults to the section's native type. Query parameters are
// encoded in sorted key order so generated URIs are deterministic.
func (s Section) BuildSearchKey(opts FilterOptions) (string, error) {
	libtype := opts.Libtype
	if libtype == "" {
		libtype = s.Type
	}
	code, err := SearchType(libtype)
	if err != nil {
		return "", err
	}

	args := url.Values{}
	args.Set("type", strconv.Itoa(code))
	if len(opts.Sort) > 0 {
		args.Set("sort", strings.Join(opts.Sort, ","))
	}
	if opts.Limit > 0 {
		args.Set("limit", strconv.Itoa(opts.Limit))
	}
	for k, v := range opts.Filters {
		args.Set(k, v)
	}
	for k, v := range opts.Extra {
		args.Set(k, v)
	}

	return fmt.Sprintf("/library/sections/%s/all?%s", s.ID, args.Encode()), nil
}
