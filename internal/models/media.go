package models

import "strings"

// MediaType classifies an attached media URL.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
	MediaTypeFile  MediaType = "file"
	MediaTypeNone  MediaType = "none"
)

// Media is an opaque reference into the external media intake service. Only the URL
// and a coarse type are persisted; the binary itself lives elsewhere.
type Media struct {
	URL  string    `json:"url" bson:"url"`
	Type MediaType `json:"type" bson:"type"`
}

// MediaTypeFromContentType infers a MediaType from the coarse content type the media
// intake service reports for an upload.
func MediaTypeFromContentType(contentType string) MediaType {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return MediaTypeImage
	case strings.HasPrefix(contentType, "video/"):
		return MediaTypeVideo
	case contentType == "":
		return MediaTypeNone
	default:
		return MediaTypeFile
	}
}
