package plex

// MediaContainer is the root container for Plex API responses
type MediaContainer struct {
	Size                    int         `json:"size"`
	TotalSize               int         `json:"totalSize,omitempty"`
	Offset                  int         `json:"offset,omitempty"`
	AllowSync               bool        `json:"allowSync,omitempty"`
	Identifier              string      `json:"identifier,omitempty"`
	LibrarySectionID        int         `json:"librarySectionID,omitempty"`
	LibrarySectionTitle     string      `json:"librarySectionTitle,omitempty"`
	LibrarySectionUUID      string      `json:"librarySectionUUID,omitempty"`
	PlayQueueID             int         `json:"playQueueID,omitempty"`
	PlayQueueSelectedItemID int         `json:"playQueueSelectedItemID,omitempty"`
	PlayQueueTotalCount     int         `json:"playQueueTotalCount,omitempty"`
	Directory               []Directory `json:"Directory,omitempty"`
	Metadata                []Metadata  `json:"Metadata,omitempty"`
}

// Directory represents a library section
type Directory struct {
	Key       string `json:"key"`
	UUID      string `json:"uuid,omitempty"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	AllowSync bool   `json:"allowSync,omitempty"`
	Art       string `json:"art,omitempty"`
	Composite string `json:"composite,omitempty"`
	Thumb     string `json:"thumb,omitempty"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

// FieldTag is a locked metadata field on a record
type FieldTag struct {
	Locked bool   `json:"locked,omitempty"`
	Name   string `json:"name"`
}

// LabelTag is a label applied to a record
type LabelTag struct {
	ID  int    `json:"id,omitempty"`
	Tag string `json:"tag"`
}

// Metadata represents a media record (collection, movie, show, track, ...).
// Numeric display attributes (collectionMode, collectionSort, smart) arrive
// as strings on the wire; defaulting rules are applied by the consumer.
type Metadata struct {
	RatingKey           string     `json:"ratingKey"`
	Key                 string     `json:"key"`
	GUID                string     `json:"guid,omitempty"`
	Type                string     `json:"type"`
	Subtype             string     `json:"subtype,omitempty"`
	Title               string     `json:"title"`
	TitleSort           string     `json:"titleSort,omitempty"`
	Summary             string     `json:"summary,omitempty"`
	ContentRating       string     `json:"contentRating,omitempty"`
	Content             string     `json:"content,omitempty"`
	Smart               string     `json:"smart,omitempty"`
	CollectionMode      string     `json:"collectionMode,omitempty"`
	CollectionSort      string     `json:"collectionSort,omitempty"`
	CollectionPublished string     `json:"collectionPublished,omitempty"`
	Index               int        `json:"index,omitempty"`
	ChildCount          int        `json:"childCount,omitempty"`
	MinYear             int        `json:"minYear,omitempty"`
	MaxYear             int        `json:"maxYear,omitempty"`
	Year                int        `json:"year,omitempty"`
	RatingCount         int        `json:"ratingCount,omitempty"`
	LibrarySectionID    int        `json:"librarySectionID,omitempty"`
	LibrarySectionKey   string     `json:"librarySectionKey,omitempty"`
	LibrarySectionTitle string     `json:"librarySectionTitle,omitempty"`
	Thumb               string     `json:"thumb,omitempty"`
	ThumbBlurHash       string     `json:"thumbBlurHash,omitempty"`
	Art                 string     `json:"art,omitempty"`
	ArtBlurHash         string     `json:"artBlurHash,omitempty"`
	AddedAt             int64      `json:"addedAt,omitempty"`
	UpdatedAt           int64      `json:"updatedAt,omitempty"`
	Field               []FieldTag `json:"Field,omitempty"`
	Label               []LabelTag `json:"Label,omitempty"`
}

// APIResponse wraps the MediaContainer for JSON unmarshaling
type APIResponse struct {
	MediaContainer MediaContainer `json:"MediaContainer"`
}
