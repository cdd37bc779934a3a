package editor

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-studio-backend/models"
	"github.com/rpupo63/portfolio-studio-backend/storage"
)

// Upload stores data through the uploader and points the block at the
// returned reference. The media type is the caller's explicit choice; the
// uploader validates the bytes against it.
//
// While the upload runs the block is reported busy and a second upload for
// it fails with ErrUploadInFlight. On failure the block keeps its reference.
func (e *Editor) Upload(ctx context.Context, blockID string, data []byte, mediaType models.MediaType) (models.Block, error) {
	mediaType = mediaType.Normalize()

	if err := e.beginUpload(blockID); err != nil {
		return models.Block{}, err
	}
	defer e.endUpload(blockID)

	ref, err := e.uploader.Upload(ctx, data, storage.CategoryFor(mediaType))
	if err != nil {
		e.logger.Error().Err(err).Str("blockID", blockID).Msg("upload failed")
		return models.Block{}, fmt.Errorf("upload media: %w", err)
	}

	return e.replaceMedia(blockID, ref, mediaType)
}

func (e *Editor) beginUpload(blockID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.indexOf(blockID) < 0 {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, blockID)
	}
	if _, busy := e.inFlight[blockID]; busy {
		return ErrUploadInFlight
	}
	e.inFlight[blockID] = struct{}{}
	return nil
}

func (e *Editor) endUpload(blockID string) {
	e.mu.Lock()
	delete(e.inFlight, blockID)
	e.mu.Unlock()
}
