package storage

import (
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
	ErrInvalidMimeType = errors.New("file type not allowed")
	ErrEmptyFile       = errors.New("file is empty")
)

// AllowedMimeTypes lists the content types accepted per category.
var AllowedMimeTypes = map[Category][]string{
	CategoryImage:  {"image/jpeg", "image/png", "image/webp", "image/gif"},
	CategoryHero:   {"image/jpeg", "image/png", "image/webp"},
	CategoryAvatar: {"image/jpeg", "image/png", "image/webp"},
	CategoryVideo:  {"video/mp4", "video/webm", "video/quicktime"},
}

// MaxFileSizes caps the upload size per category.
var MaxFileSizes = map[Category]int{
	CategoryImage:  15 << 20,
	CategoryHero:   15 << 20,
	CategoryAvatar: 5 << 20,
	CategoryVideo:  200 << 20,
}

// Detected is the sniffed type of an upload.
type Detected struct {
	MimeType  string
	Extension string
}

// Validate sniffs data from its magic bytes and checks it against the
// category. The declared category is authoritative; data that does not
// match it is rejected rather than reclassified.
func Validate(data []byte, category Category) (Detected, error) {
	if len(data) == 0 {
		return Detected{}, ErrEmptyFile
	}

	allowed, ok := AllowedMimeTypes[category]
	if !ok {
		return Detected{}, fmt.Errorf("unknown category: %s", category)
	}
	if limit := MaxFileSizes[category]; limit > 0 && len(data) > limit {
		return Detected{}, ErrFileTooLarge
	}

	mtype := mimetype.Detect(data)
	for _, t := range allowed {
		if mtype.Is(t) {
			return Detected{MimeType: t, Extension: mtype.Extension()}, nil
		}
	}
	return Detected{}, fmt.Errorf("%w: %s is not accepted for %s", ErrInvalidMimeType, mtype.String(), category)
}
