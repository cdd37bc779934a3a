package content

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rpupo63/portfolio-studio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Repository persists content entries.
type Repository interface {
	FindAll(ctx context.Context) ([]models.SiteSetting, error)
	Upsert(ctx context.Context, key, value string) error
}

// Content is a snapshot of all page copy.
type Content struct {
	Values       map[Key]string `json:"values"`
	Testimonials []Testimonial  `json:"testimonials"`
}

// Store holds the page copy in memory. Reads never touch the repository;
// updates apply in memory first and are written in the background, in the
// order they were made.
type Store struct {
	mu           sync.RWMutex
	values       map[Key]string
	testimonials []Testimonial

	repo      Repository
	dispatch  func(job func())
	closeOnce sync.Once

	qmu     sync.Mutex
	pending []func()
	closed  bool
	wake    chan struct{}
	done    chan struct{}

	writeTimeout time.Duration
	now          func() time.Time
	logger       zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithDispatch replaces the background writer, e.g. with a synchronous one in tests.
func WithDispatch(dispatch func(job func())) Option {
	return func(s *Store) { s.dispatch = dispatch }
}

// WithClock overrides the time source used for testimonial ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a store holding the defaults.
func New(repo Repository, opts ...Option) *Store {
	s := &Store{
		values:       make(map[Key]string, len(defaults)),
		testimonials: []Testimonial{},
		repo:         repo,
		writeTimeout: 10 * time.Second,
		now:          time.Now,
		logger:       log.With().Str("component", "content").Logger(),
	}
	for k, v := range defaults {
		s.values[k] = v
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dispatch == nil {
		s.wake = make(chan struct{}, 1)
		s.done = make(chan struct{})
		go s.run()
		s.dispatch = s.enqueue
	}
	return s
}

// enqueue appends job to the pending writes and wakes the writer. It never
// blocks on the repository.
func (s *Store) enqueue(job func()) {
	s.qmu.Lock()
	if s.closed {
		s.qmu.Unlock()
		s.logger.Warn().Msg("content store closed, dropping write")
		return
	}
	s.pending = append(s.pending, job)
	s.qmu.Unlock()
	s.signal()
}

func (s *Store) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Store) run() {
	defer close(s.done)
	for {
		s.qmu.Lock()
		jobs, closed := s.pending, s.closed
		s.pending = nil
		s.qmu.Unlock()

		for _, job := range jobs {
			job()
		}
		if len(jobs) > 0 {
			continue
		}
		if closed {
			return
		}
		<-s.wake
	}
}

// Close waits for queued writes to finish. Later updates still apply in
// memory but are not persisted.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		if s.done == nil {
			return
		}
		s.qmu.Lock()
		s.closed = true
		s.qmu.Unlock()
		s.signal()
		<-s.done
	})
}

// Load replaces the in-memory values with what the repository holds.
// Unknown keys are ignored; a malformed testimonials entry loads as an
// empty list.
func (s *Store) Load(ctx context.Context) error {
	settings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("load content failed")
		return fmt.Errorf("load content: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, setting := range settings {
		key := Key(setting.Key)
		if _, ok := defaults[key]; !ok {
			s.logger.Debug().Str("key", setting.Key).Msg("ignoring unknown content key")
			continue
		}
		if key == Testimonials {
			list, err := parseTestimonials(setting.Value)
			if err != nil {
				s.logger.Error().Err(err).Msg("stored testimonials are malformed")
				list = []Testimonial{}
			}
			s.testimonials = list
			s.values[key] = encodeTestimonials(list)
			continue
		}
		s.values[key] = setting.Value
	}
	return nil
}

// Get returns the current value of key.
func (s *Store) Get(key Key) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// Snapshot returns a copy of all values and testimonials.
func (s *Store) Snapshot() Content {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make(map[Key]string, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}
	return Content{Values: values, Testimonials: slices.Clone(s.testimonials)}
}

// Update sets key to value. Setting the testimonials key replaces the
// whole list and requires valid JSON.
func (s *Store) Update(key Key, value string) error {
	if _, ok := defaults[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if key == Testimonials {
		list, err := parseTestimonials(value)
		if err != nil {
			return err
		}
		s.setTestimonials(list)
		return nil
	}

	s.values[key] = value
	s.persist(key, value)
	return nil
}

// Testimonials returns the current list.
func (s *Store) Testimonials() []Testimonial {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.testimonials)
}

// AddTestimonial appends a testimonial with editable default text.
func (s *Store) AddTestimonial() Testimonial {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := Testimonial{
		ID:     fmt.Sprintf("t-%d", s.now().UnixMilli()),
		Text:   newTestimonialText,
		Author: newTestimonialAuthor,
		Role:   newTestimonialRole,
	}
	for s.indexOf(t.ID) >= 0 {
		t.ID += "x"
	}
	s.setTestimonials(append(slices.Clone(s.testimonials), t))
	return t
}

// UpdateTestimonial sets one field (text, author, role or avatar).
func (s *Store) UpdateTestimonial(id, field, value string) (Testimonial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Testimonial{}, fmt.Errorf("%w: %s", ErrTestimonialNotFound, id)
	}
	list := slices.Clone(s.testimonials)
	if err := list[i].set(field, value); err != nil {
		return Testimonial{}, err
	}
	s.setTestimonials(list)
	return list[i], nil
}

// DeleteTestimonial removes the testimonial with id.
func (s *Store) DeleteTestimonial(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTestimonialNotFound, id)
	}
	s.setTestimonials(slices.Delete(slices.Clone(s.testimonials), i, i+1))
	return nil
}

// setTestimonials installs list and queues its write. Callers hold mu.
func (s *Store) setTestimonials(list []Testimonial) {
	s.testimonials = list
	encoded := encodeTestimonials(list)
	s.values[Testimonials] = encoded
	s.persist(Testimonials, encoded)
}

// persist queues a background upsert. Callers hold mu so that queue order
// matches update order; queuing itself never waits on the repository.
func (s *Store) persist(key Key, value string) {
	s.dispatch(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
		defer cancel()
		if err := s.repo.Upsert(ctx, string(key), value); err != nil {
			s.logger.Error().Err(err).Str("key", string(key)).Msg("persist content failed")
		}
	})
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.testimonials, func(t Testimonial) bool { return t.ID == id })
}
