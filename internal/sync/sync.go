// Package sync builds and submits offline sync jobs for a linked account.
package sync

import (
	"fmt"

	"github.com/mcrews/plexkit/internal/domain"
)

// Video quality presets for synchronized video
const (
	VideoQualityOriginal = -1
	VideoQuality480p     = 6 // 2 Mbps
	VideoQuality720p     = 8 // 4 Mbps
	VideoQuality1080p    = 10
)

// Audio bitrate presets (kbps) for synchronized music
const (
	AudioBitrate96  = 96
	AudioBitrate192 = 192
	AudioBitrate320 = 320
)

// Photo resolution presets for synchronized photos
const (
	PhotoResolution720p  = "720x480"
	PhotoResolution1080p = "1920x1080"
)

// videoProfiles indexes quality presets to bitrate/resolution pairs
var videoProfiles = []struct {
	bitrate    int // kbps
	resolution string
}{
	{64, "220x128"},
	{96, "220x128"},
	{208, "284x160"},
	{320, "420x240"},
	{720, "576x320"},
	{1500, "720x480"},
	{2000, "720x480"},
	{3000, "1280x720"},
	{4000, "1280x720"},
	{8000, "1920x1080"},
	{10000, "1920x1080"},
	{12000, "1920x1080"},
	{20000, "1920x1080"},
}

// Policy is the retention policy for a sync job
type Policy struct {
	Scope     string // "all" or "count"
	Unwatched bool
	Value     int // item cap when Scope is "count"
}

// NewPolicy builds a retention policy. A positive limit caps the item count;
// zero means sync everything.
func NewPolicy(limit int, unwatched bool) Policy {
	if limit > 0 {
		return Policy{Scope: "count", Unwatched: unwatched, Value: limit}
	}
	return Policy{Scope: "all", Unwatched: unwatched}
}

// MediaSettings holds the transcode targets for synchronized media
type MediaSettings struct {
	AudioBoost      int
	MaxVideoBitrate int // kbps
	MusicBitrate    int // kbps
	PhotoQuality    int
	PhotoResolution string
	SubtitleSize    int
	VideoQuality    int
	VideoResolution string
}

// NewVideoSettings builds media settings for video content from a quality
// preset index, or the original quality when VideoQualityOriginal is given.
func NewVideoSettings(videoQuality int) (MediaSettings, error) {
	if videoQuality == VideoQualityOriginal {
		return MediaSettings{VideoQuality: videoQuality, VideoResolution: "original", AudioBoost: 100}, nil
	}
	if videoQuality < 0 || videoQuality >= len(videoProfiles) {
		return MediaSettings{}, fmt.Errorf("unknown video quality %d: %w", videoQuality, domain.ErrInvalidArgument)
	}
	profile := videoProfiles[videoQuality]
	return MediaSettings{
		VideoQuality:    videoQuality,
		MaxVideoBitrate: profile.bitrate,
		VideoResolution: profile.resolution,
		AudioBoost:      100,
	}, nil
}

// NewMusicSettings builds media settings for audio content
func NewMusicSettings(bitrate int) MediaSettings {
	return MediaSettings{MusicBitrate: bitrate}
}

// NewPhotoSettings builds media settings for photo content
func NewPhotoSettings(resolution string) MediaSettings {
	return MediaSettings{PhotoQuality: 74, PhotoResolution: resolution}
}

// Item is a sync job descriptor submitted to the account dispatcher
type Item struct {
	Title             string
	RootTitle         string
	ContentType       string // video, audio, photo
	MetadataType      string // item subtype within the content kind
	MachineIdentifier string
	Location          string // library:///directory/<encoded path>
	Policy            Policy
	MediaSettings     MediaSettings
}
