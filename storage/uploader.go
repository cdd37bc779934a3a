package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MediaUploader validates, prepares and stores uploaded media, returning
// the public reference.
type MediaUploader struct {
	storage   Storage
	processor *Processor
	now       func() time.Time
	newID     func() string
	logger    zerolog.Logger
}

// NewMediaUploader wraps storage. A nil processor stores images as received.
func NewMediaUploader(storage Storage, processor *Processor) *MediaUploader {
	return &MediaUploader{
		storage:   storage,
		processor: processor,
		now:       time.Now,
		newID:     uuid.NewString,
		logger:    log.With().Str("component", "uploader").Logger(),
	}
}

// Upload stores data under category/<unix-ms>-<uuid><ext>.
func (u *MediaUploader) Upload(ctx context.Context, data []byte, category Category) (string, error) {
	detected, err := Validate(data, category)
	if err != nil {
		return "", err
	}

	if category.IsImage() && u.processor != nil {
		data, err = u.processor.Fit(data, detected.MimeType)
		if err != nil {
			return "", err
		}
	}

	key := u.key(category, detected.Extension)
	if err := u.storage.Put(ctx, key, bytes.NewReader(data), detected.MimeType); err != nil {
		return "", err
	}

	url := u.storage.GetURL(key)
	u.logger.Info().
		Str("key", key).
		Str("contentType", detected.MimeType).
		Int("bytes", len(data)).
		Msg("media stored")
	return url, nil
}

func (u *MediaUploader) key(category Category, ext string) string {
	return fmt.Sprintf("%s/%d-%s%s", category, u.now().UnixMilli(), u.newID(), ext)
}
