package domain

import "time"

// Media subtypes as reported by the server
const (
	TypeMovie      = "movie"
	TypeShow       = "show"
	TypeSeason     = "season"
	TypeEpisode    = "episode"
	TypeArtist     = "artist"
	TypeAlbum      = "album"
	TypeTrack      = "track"
	TypePhotoAlbum = "photoalbum"
	TypePhoto      = "photo"
)

// Item is a single media entity referenced by a collection (a movie,
// episode, track, photo, etc.). RatingKey is the server-unique identifier.
type Item struct {
	RatingKey int
	Key       string
	Type      string // movie, show, season, episode, artist, album, track, photoalbum, photo
	Title     string
	Year      int
	Thumb     string
	Art       string
	AddedAt   time.Time
	UpdatedAt time.Time
}

// Field is a locked metadata field on an entity. A locked field is an
// explicit override that no longer inherits from source metadata.
type Field struct {
	Name   string
	Locked bool
}

// Label is a user-assigned label tag on an entity
type Label struct {
	ID  int
	Tag string
}
