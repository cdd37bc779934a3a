package editor

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-studio-backend/layout"
	"github.com/rpupo63/portfolio-studio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultSavedAck is how long a successful commit is reported as saved.
const DefaultSavedAck = 2 * time.Second

// Editor holds the optimistic in-memory copy of one project while it is
// being edited. Mutations apply immediately in call order; nothing reaches
// the store until Commit.
type Editor struct {
	mu sync.Mutex

	project  models.Project
	blocks   []models.Block
	dirty    bool
	revision uint64
	inFlight map[string]struct{}

	savedUntil time.Time
	savedAck   time.Duration

	store    Store
	uploader Uploader
	now      func() time.Time
	newID    func() string
	logger   zerolog.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithClock overrides the time source used for the saved acknowledgement.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) { e.now = now }
}

// WithSavedAck sets how long Saved stays true after a commit.
func WithSavedAck(d time.Duration) Option {
	return func(e *Editor) { e.savedAck = d }
}

// WithIDGenerator overrides block id generation.
func WithIDGenerator(newID func() string) Option {
	return func(e *Editor) { e.newID = newID }
}

// New starts an editor session over a copy of project.
func New(project models.Project, store Store, uploader Uploader, opts ...Option) *Editor {
	e := &Editor{
		inFlight: make(map[string]struct{}),
		savedAck: DefaultSavedAck,
		store:    store,
		uploader: uploader,
		now:      time.Now,
		newID:    uuid.NewString,
		logger: log.With().
			Str("component", "editor").
			Str("projectID", project.ID.String()).
			Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.load(project)
	return e
}

func (e *Editor) load(project models.Project) {
	e.blocks = slices.Clone(project.Blocks)
	for i := range e.blocks {
		e.blocks[i].ProjectID = project.ID
		e.blocks[i].Type = e.blocks[i].Type.Normalize()
	}
	renumber(e.blocks)
	project.Blocks = nil
	project.LayoutMode = project.LayoutMode.Normalize()
	e.project = project
	e.dirty = false
	e.revision++
}

// State is a point-in-time view of the editor.
type State struct {
	Project         models.Project `json:"project"`
	Dirty           bool           `json:"dirty"`
	Uploading       bool           `json:"uploading"`
	UploadingBlocks []string       `json:"uploadingBlocks"`
	Saved           bool           `json:"saved"`
}

// ProjectID returns the id of the project being edited.
func (e *Editor) ProjectID() uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.project.ID
}

// State returns a copy of the current editor state.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	project := e.project
	project.Blocks = slices.Clone(e.blocks)

	uploading := make([]string, 0, len(e.inFlight))
	for _, b := range e.blocks {
		if _, ok := e.inFlight[b.ID]; ok {
			uploading = append(uploading, b.ID)
		}
	}

	return State{
		Project:         project,
		Dirty:           e.dirty,
		Uploading:       len(e.inFlight) > 0,
		UploadingBlocks: uploading,
		Saved:           e.now().Before(e.savedUntil),
	}
}

// Blocks returns a copy of the ordered block sequence.
func (e *Editor) Blocks() []models.Block {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.blocks)
}

// AddBlock appends a placeholder block of the given media type.
func (e *Editor) AddBlock(mediaType models.MediaType) models.Block {
	e.mu.Lock()
	defer e.mu.Unlock()

	mediaType = mediaType.Normalize()
	block := models.Block{
		ProjectID: e.project.ID,
		ID:        e.newID(),
		URL:       models.PlaceholderFor(mediaType),
		Size:      layout.Square,
		Type:      mediaType,
		Position:  len(e.blocks),
	}
	e.blocks = append(e.blocks, block)
	e.touch()
	return block
}

// DeleteBlock removes the block with id. The last remaining block cannot be removed.
func (e *Editor) DeleteBlock(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.blocks) <= 1 {
		return ErrLastBlock
	}
	i := e.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	e.blocks = slices.Delete(e.blocks, i, i+1)
	renumber(e.blocks)
	e.touch()
	return nil
}

// Reorder replaces the block order with ids, which must name every current
// block exactly once.
func (e *Editor) Reorder(ids []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(ids) != len(e.blocks) {
		return fmt.Errorf("%w: got %d ids for %d blocks", ErrNotPermutation, len(ids), len(e.blocks))
	}

	byID := make(map[string]models.Block, len(e.blocks))
	for _, b := range e.blocks {
		byID[b.ID] = b
	}

	reordered := make([]models.Block, 0, len(ids))
	for _, id := range ids {
		b, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: unknown or repeated id %s", ErrNotPermutation, id)
		}
		delete(byID, id)
		reordered = append(reordered, b)
	}

	renumber(reordered)
	e.blocks = reordered
	e.touch()
	return nil
}

// SetSize changes one block's grid footprint.
func (e *Editor) SetSize(id string, size layout.Size) error {
	if !size.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSize, size)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	e.blocks[i].Size = size
	e.touch()
	return nil
}

// ReplaceMedia points one block at a new reference.
func (e *Editor) ReplaceMedia(id, ref string, mediaType models.MediaType) error {
	_, err := e.replaceMedia(id, ref, mediaType)
	return err
}

func (e *Editor) replaceMedia(id, ref string, mediaType models.MediaType) (models.Block, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Block{}, ErrEmptyImport
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexOf(id)
	if i < 0 {
		return models.Block{}, fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	e.blocks[i].URL = ref
	e.blocks[i].Type = mediaType.Normalize()
	e.touch()
	return e.blocks[i], nil
}

// ImportBatch appends one block per reference, in input order. The whole
// batch is rejected when any reference is blank.
func (e *Editor) ImportBatch(refs []string, size layout.Size, mediaType models.MediaType) ([]models.Block, error) {
	if len(refs) == 0 {
		return nil, ErrEmptyImport
	}
	if !size.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSize, size)
	}
	cleaned := make([]string, len(refs))
	for i, ref := range refs {
		cleaned[i] = strings.TrimSpace(ref)
		if cleaned[i] == "" {
			return nil, fmt.Errorf("%w: entry %d is blank", ErrEmptyImport, i)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	mediaType = mediaType.Normalize()
	added := make([]models.Block, 0, len(cleaned))
	for _, ref := range cleaned {
		block := models.Block{
			ProjectID: e.project.ID,
			ID:        e.newID(),
			URL:       ref,
			Size:      size,
			Type:      mediaType,
			Position:  len(e.blocks),
		}
		e.blocks = append(e.blocks, block)
		added = append(added, block)
	}
	e.touch()
	return added, nil
}

// SetFields edits the project's scalar fields in memory.
func (e *Editor) SetFields(fields models.ProjectFields) error {
	if fields.Gap != nil && *fields.Gap < 0 {
		return fmt.Errorf("%w: gap must not be negative", ErrInvalidFields)
	}
	if fields.LayoutMode != nil {
		mode, err := models.ParseLayoutMode(string(*fields.LayoutMode))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFields, err)
		}
		fields.LayoutMode = &mode
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	fields.Apply(&e.project)
	e.touch()
	return nil
}

// touch records a local mutation. Callers hold mu.
func (e *Editor) touch() {
	e.dirty = true
	e.revision++
}

func (e *Editor) indexOf(id string) int {
	return slices.IndexFunc(e.blocks, func(b models.Block) bool { return b.ID == id })
}

func renumber(blocks []models.Block) {
	for i := range blocks {
		blocks[i].Position = i
	}
}
