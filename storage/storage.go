package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rpupo63/portfolio-studio-backend/models"
)

// Storage is the object store behind uploads.
type Storage interface {
	// Put stores the object at key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes the object at key. Missing objects are not an error.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL of key.
	GetURL(key string) string
}

// Category groups uploads by what they are used for. It decides the
// accepted content types and the key prefix.
type Category string

const (
	CategoryImage  Category = "image"
	CategoryVideo  Category = "video"
	CategoryHero   Category = "hero"
	CategoryAvatar Category = "avatar"
)

// CategoryFor maps a block media type to its upload category.
func CategoryFor(m models.MediaType) Category {
	if m == models.MediaVideo {
		return CategoryVideo
	}
	return CategoryImage
}

// ParseCategory validates a category taken from a request path.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryImage, CategoryVideo, CategoryHero, CategoryAvatar:
		return c, nil
	}
	return "", fmt.Errorf("unknown upload category %q", s)
}

// IsImage reports whether uploads in c are still images.
func (c Category) IsImage() bool {
	return c != CategoryVideo
}
