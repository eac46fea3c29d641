package models

import "strings"

// MediaKind tags an evidence item as a photo or a video
type MediaKind string

// Media kinds, exclusive of each other
const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// MediaKindFor classifies a content type. Anything that is not a video is shown as an image.
func MediaKindFor(contentType string) MediaKind {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "video") {
		return MediaKindVideo
	}
	return MediaKindImage
}

// EvidenceItem holds the structure for a file attached to a report draft. The blob behind URL
// lives only as long as the session that uploaded it.
type EvidenceItem struct {
	Token        string    `json:"token"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	Kind         MediaKind `json:"kind"`
	FileName     string    `json:"fileName"`
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
}

// IsVideo reports whether the item must be rendered with a video element
func (e EvidenceItem) IsVideo() bool {
	return e.Kind == MediaKindVideo
}
