package editor

import (
	"context"
	"fmt"
	"slices"

	"github.com/rpupo63/portfolio-studio-backend/models"
)

// snapshot is the data a commit hands to the store, captured at invocation.
type snapshot struct {
	project  models.Project
	blocks   []models.Block
	revision uint64
	cover    string
}

func (e *Editor) capture() snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	blocks := slices.Clone(e.blocks)
	renumber(blocks)

	project := e.project
	finalCover := project.CoverImage
	if models.IsPlaceholder(finalCover) && len(blocks) > 0 {
		finalCover = blocks[0].URL
	}
	project.CoverImage = finalCover

	return snapshot{
		project:  project,
		blocks:   blocks,
		revision: e.revision,
		cover:    e.project.CoverImage,
	}
}

// Commit persists the full block sequence and scalar fields, replacing what
// the store holds for the project. The sequence is captured when Commit is
// called; mutations made while the store call runs need another commit.
//
// On failure local state is left as is and stays dirty.
func (e *Editor) Commit(ctx context.Context) (models.Project, error) {
	snap := e.capture()

	err := e.store.ReplaceProjectBlocks(ctx, snap.project.ID, models.FieldsOf(snap.project), snap.blocks)
	if err != nil {
		e.logger.Error().Err(err).Int("blocks", len(snap.blocks)).Msg("commit failed")
		return models.Project{}, fmt.Errorf("commit project: %w", err)
	}

	e.mu.Lock()
	if e.project.CoverImage == snap.cover {
		e.project.CoverImage = snap.project.CoverImage
	}
	if e.revision == snap.revision {
		e.dirty = false
	}
	e.savedUntil = e.now().Add(e.savedAck)
	e.mu.Unlock()

	e.logger.Info().Int("blocks", len(snap.blocks)).Msg("project committed")

	committed := snap.project
	committed.Blocks = snap.blocks
	return committed, nil
}

// Reload discards local changes and re-reads the project from the store.
func (e *Editor) Reload(ctx context.Context) error {
	id := e.ProjectID()
	project, err := e.store.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("reload project: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.load(*project)
	return nil
}
