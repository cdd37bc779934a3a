package editor

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Registry keeps the open editor session of each project.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Editor

	store    Store
	uploader Uploader
	opts     []Option
}

// NewRegistry returns an empty registry whose editors share store, uploader and opts.
func NewRegistry(store Store, uploader Uploader, opts ...Option) *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*Editor),
		store:    store,
		uploader: uploader,
		opts:     opts,
	}
}

// Open returns the project's editor, loading the project when no session exists yet.
func (r *Registry) Open(ctx context.Context, projectID uuid.UUID) (*Editor, error) {
	if e, err := r.Get(projectID); err == nil {
		return e, nil
	}

	project, err := r.store.FindByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("open editor: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[projectID]; ok {
		return e, nil
	}
	e := New(*project, r.store, r.uploader, r.opts...)
	r.sessions[projectID] = e
	return e, nil
}

// Get returns the open editor for the project.
func (r *Registry) Get(projectID uuid.UUID) (*Editor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[projectID]
	if !ok {
		return nil, ErrNotOpen
	}
	return e, nil
}

// Close drops the project's session, discarding uncommitted changes.
func (r *Registry) Close(projectID uuid.UUID) {
	r.mu.Lock()
	delete(r.sessions, projectID)
	r.mu.Unlock()
}
