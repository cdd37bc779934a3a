package portfolio

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-studio-backend/layout"
	"github.com/rpupo63/portfolio-studio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Catalog is the visible project sequence with layout tags assigned.
// Every change to the sequence recomputes all tags and swaps the whole
// sequence under the lock, so readers never see a partially tagged list.
type Catalog struct {
	mu       sync.RWMutex
	projects []models.Project
	// gen counts local changes; a refresh that overlaps one is discarded.
	gen uint64

	repo   Repository
	group  singleflight.Group
	logger zerolog.Logger
}

func NewCatalog(repo Repository) *Catalog {
	return &Catalog{
		repo:   repo,
		logger: log.With().Str("component", "catalog").Logger(),
	}
}

// Projects returns a copy of the current sequence.
func (c *Catalog) Projects() []models.Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.projects)
}

// Get returns the catalog entry for id.
func (c *Catalog) Get(id uuid.UUID) (models.Project, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := indexOf(c.projects, id)
	if i < 0 {
		return models.Project{}, false
	}
	return c.projects[i], true
}

// Refresh reloads the sequence from the repository. Concurrent calls share
// one query. If the catalog changed locally while the query ran, the result
// is dropped and the current sequence is returned.
func (c *Catalog) Refresh(ctx context.Context) ([]models.Project, error) {
	v, err, _ := c.group.Do(refreshKey, func() (any, error) {
		c.mu.RLock()
		gen := c.gen
		c.mu.RUnlock()

		projects, err := c.repo.FindAll(ctx)
		if err != nil {
			c.logger.Error().Err(err).Msg("refresh failed")
			return nil, err
		}
		return c.install(projects, gen), nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]models.Project)), nil
}

// Reload is Refresh without joining a query that started earlier. Writers
// call it so the result includes their own change.
func (c *Catalog) Reload(ctx context.Context) ([]models.Project, error) {
	c.group.Forget(refreshKey)
	return c.Refresh(ctx)
}

// Replace installs projects as the new sequence and returns it tagged.
func (c *Catalog) Replace(projects []models.Project) []models.Project {
	tagged := reflow(projects)

	c.mu.Lock()
	c.projects = tagged
	c.gen++
	c.mu.Unlock()

	return slices.Clone(tagged)
}

func (c *Catalog) install(projects []models.Project, gen uint64) []models.Project {
	tagged := reflow(projects)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		c.logger.Debug().Msg("discarding stale refresh")
		return slices.Clone(c.projects)
	}
	c.projects = tagged
	c.gen++
	return slices.Clone(tagged)
}

// Remove drops the project from the sequence and reflows the rest.
func (c *Catalog) Remove(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	remaining := slices.DeleteFunc(slices.Clone(c.projects), func(p models.Project) bool {
		return p.ID == id
	})
	c.projects = reflow(remaining)
	c.gen++
}

// Upsert replaces the project in place, or puts it first when it is new.
func (c *Catalog) Upsert(project models.Project) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := slices.Clone(c.projects)
	if i := indexOf(next, project.ID); i >= 0 {
		next[i] = project
	} else {
		next = append([]models.Project{project}, next...)
	}
	c.projects = reflow(next)
	c.gen++
}

// SetLikes updates the like count of one entry. Order does not change.
func (c *Catalog) SetLikes(id uuid.UUID, likes int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := indexOf(c.projects, id); i >= 0 {
		next := slices.Clone(c.projects)
		next[i].Likes = likes
		c.projects = next
	}
}

const refreshKey = "refresh"

func reflow(projects []models.Project) []models.Project {
	placed := layout.Reflow(projects)
	out := make([]models.Project, len(placed))
	for i, pl := range placed {
		out[i] = pl.Item
		out[i].LayoutTag = pl.Tag
	}
	return out
}

func indexOf(projects []models.Project, id uuid.UUID) int {
	return slices.IndexFunc(projects, func(p models.Project) bool { return p.ID == id })
}
