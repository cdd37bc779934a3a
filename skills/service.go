package skills

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-studio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrImageNotFound = errors.New("image not in slideshow")
)

// DefaultSlides are shown on cards without slideshow images of their own.
var DefaultSlides = []string{
	"https://images.unsplash.com/photo-1550751827-4bd374c3f58b?auto=format&fit=crop&q=80&w=600",
	"https://images.unsplash.com/photo-1518770660439-4636190af475?auto=format&fit=crop&q=80&w=600",
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type Repository interface {
	FindAll(ctx context.Context) ([]models.Skill, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Skill, error)
	Create(ctx context.Context, skill *models.Skill) error
	Update(ctx context.Context, skill *models.Skill) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Card is a skill ready to render.
type Card struct {
	models.Skill
	Badge  BadgeStyle `json:"badge"`
	Slides []string   `json:"slides"`
}

// Patch is a partial skill update. Nil fields are left unchanged.
type Patch struct {
	Title       *string
	Category    *string
	Color       *string
	Proficiency *int
	IconType    *string
	RandomOrder *bool
	SortOrder   *int
}

type Service struct {
	repo    Repository
	shuffle func([]string)
	logger  zerolog.Logger
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		shuffle: func(s []string) {
			rand.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
		},
		logger: log.With().Str("component", "skills").Logger(),
	}
}

// List returns every card in sort order.
func (s *Service) List(ctx context.Context) ([]Card, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	cards := make([]Card, len(list))
	for i, skill := range list {
		cards[i] = s.card(skill)
	}
	return cards, nil
}

func (s *Service) card(skill models.Skill) Card {
	skill.IconType = string(ParseBadge(skill.IconType))
	slides := slices.Clone([]string(skill.Images))
	if len(slides) == 0 {
		slides = slices.Clone(DefaultSlides)
	}
	if skill.RandomOrder && len(slides) > 1 {
		s.shuffle(slides)
	}
	return Card{
		Skill:  skill,
		Badge:  Badge(skill.IconType).Style(),
		Slides: slides,
	}
}

// Create adds a skill card with default values at the end of the list.
func (s *Service) Create(ctx context.Context) (Card, error) {
	existing, err := s.repo.FindAll(ctx)
	if err != nil {
		return Card{}, err
	}

	skill := models.Skill{
		ID:          uuid.New(),
		Title:       "New Skill",
		Category:    "Software",
		Color:       "#00c05e",
		Proficiency: 50,
		IconType:    string(BadgeGeneric),
		Images:      datatypes.JSONSlice[string](slices.Clone(DefaultSlides)),
		SortOrder:   len(existing) + 1,
	}
	if err := s.repo.Create(ctx, &skill); err != nil {
		s.logger.Error().Err(err).Msg("create skill failed")
		return Card{}, err
	}
	return s.card(skill), nil
}

// Update applies patch to one skill.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (Card, error) {
	if err := patch.validate(); err != nil {
		return Card{}, err
	}

	return s.modify(ctx, id, func(skill *models.Skill) error {
		if patch.Title != nil {
			skill.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Category != nil {
			skill.Category = strings.TrimSpace(*patch.Category)
		}
		if patch.Color != nil {
			skill.Color = *patch.Color
		}
		if patch.Proficiency != nil {
			skill.Proficiency = *patch.Proficiency
		}
		if patch.IconType != nil {
			skill.IconType = string(ParseBadge(*patch.IconType))
		}
		if patch.RandomOrder != nil {
			skill.RandomOrder = *patch.RandomOrder
		}
		if patch.SortOrder != nil {
			skill.SortOrder = *patch.SortOrder
		}
		return nil
	})
}

func (p Patch) validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title must not be blank", ErrInvalidInput)
	}
	if p.Proficiency != nil && (*p.Proficiency < 0 || *p.Proficiency > 100) {
		return fmt.Errorf("%w: proficiency must be between 0 and 100", ErrInvalidInput)
	}
	if p.Color != nil && !hexColor.MatchString(*p.Color) {
		return fmt.Errorf("%w: color must be a hex value", ErrInvalidInput)
	}
	return nil
}

// AddImage appends a slideshow image or video reference.
func (s *Service) AddImage(ctx context.Context, id uuid.UUID, ref string) (Card, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Card{}, fmt.Errorf("%w: image reference is empty", ErrInvalidInput)
	}
	return s.modify(ctx, id, func(skill *models.Skill) error {
		skill.Images = append(slices.Clone(skill.Images), ref)
		return nil
	})
}

// RemoveImage drops every occurrence of ref from the slideshow.
func (s *Service) RemoveImage(ctx context.Context, id uuid.UUID, ref string) (Card, error) {
	return s.modify(ctx, id, func(skill *models.Skill) error {
		if !slices.Contains(skill.Images, ref) {
			return ErrImageNotFound
		}
		skill.Images = slices.DeleteFunc(slices.Clone(skill.Images), func(img string) bool { return img == ref })
		return nil
	})
}

// Delete removes a skill card.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("skillID", id.String()).Msg("delete skill failed")
		return err
	}
	return nil
}

func (s *Service) modify(ctx context.Context, id uuid.UUID, change func(*models.Skill) error) (Card, error) {
	skill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Card{}, err
	}
	if err := change(skill); err != nil {
		return Card{}, err
	}
	if err := s.repo.Update(ctx, skill); err != nil {
		s.logger.Error().Err(err).Str("skillID", id.String()).Msg("update skill failed")
		return Card{}, err
	}
	return s.card(*skill), nil
}
