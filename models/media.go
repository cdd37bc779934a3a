package models

import (
	"fmt"
	"strings"
)

// MediaType tells the page how to render a block.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// ParseMediaType maps an explicit selection to a MediaType. The empty
// string means image.
func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(strings.ToLower(strings.TrimSpace(s))) {
	case "", MediaImage:
		return MediaImage, nil
	case MediaVideo:
		return MediaVideo, nil
	}
	return "", fmt.Errorf("unknown media type %q", s)
}

// Normalize returns the stored form of m. Anything ParseMediaType rejects
// reads as image.
func (m MediaType) Normalize() MediaType {
	parsed, err := ParseMediaType(string(m))
	if err != nil {
		return MediaImage
	}
	return parsed
}

// LayoutMode controls whether blocks render as a grid or a vertical stack.
type LayoutMode string

const (
	LayoutCollage LayoutMode = "collage"
	LayoutStacked LayoutMode = "stacked"
)

// ParseLayoutMode accepts the stored values; "pdf" is the legacy name of
// the stacked mode.
func ParseLayoutMode(s string) (LayoutMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(LayoutCollage):
		return LayoutCollage, nil
	case string(LayoutStacked), "pdf":
		return LayoutStacked, nil
	}
	return "", fmt.Errorf("unknown layout mode %q", s)
}

// Normalize returns the stored form of m. Anything ParseLayoutMode rejects
// reads as collage.
func (m LayoutMode) Normalize() LayoutMode {
	parsed, err := ParseLayoutMode(string(m))
	if err != nil {
		return LayoutCollage
	}
	return parsed
}

const (
	PlaceholderImage = "https://placehold.co/800x600/111/FFF?text=Image"
	PlaceholderVideo = "https://placehold.co/800x600/111/FFF?text=Video"
	PlaceholderCover = "https://placehold.co/800x600/111/FFF?text=New+Project"
)

// PlaceholderFor returns the stand-in reference for a new block of type m.
func PlaceholderFor(m MediaType) string {
	if m == MediaVideo {
		return PlaceholderVideo
	}
	return PlaceholderImage
}

// IsPlaceholder reports whether ref means "no real media set yet".
func IsPlaceholder(ref string) bool {
	return ref == "" || strings.Contains(ref, "placehold.co") || strings.Contains(ref, "placeholder")
}
