package skills_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-studio-backend/mocks"
	"github.com/rpupo63/portfolio-studio-backend/models"
	"github.com/rpupo63/portfolio-studio-backend/skills"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestParseBadge(t *testing.T) {
	require.Equal(t, skills.BadgePhotoshop, skills.ParseBadge("PS"))
	require.Equal(t, skills.BadgeGeneric, skills.ParseBadge("figma"))
	require.Equal(t, skills.BadgeGeneric, skills.ParseBadge(""))
	require.Equal(t, "Xd", skills.BadgeXD.Style().Label)
	require.Equal(t, skills.BadgeGeneric, skills.Badge("blender").Style().Badge)

	for _, b := range skills.Badges() {
		require.Equal(t, b, b.Style().Badge)
	}
}

func TestService_ListFallsBack(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SkillRepository{}
	repo.On("FindAll", ctx).Return([]models.Skill{
		{ID: uuid.New(), Title: "After Effects", IconType: "ae", Images: datatypes.JSONSlice[string]{"https://x/ae.mp4"}},
		{ID: uuid.New(), Title: "Blender", IconType: "blender"},
	}, nil)

	cards, err := skills.NewService(repo).List(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	require.Equal(t, skills.BadgeAfterEffects, cards[0].Badge.Badge)
	require.Equal(t, []string{"https://x/ae.mp4"}, cards[0].Slides)

	require.Equal(t, skills.BadgeGeneric, cards[1].Badge.Badge)
	require.Equal(t, "generic", cards[1].IconType)
	require.Equal(t, skills.DefaultSlides, cards[1].Slides)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SkillRepository{}
	repo.On("FindAll", ctx).Return([]models.Skill{{}, {}}, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*models.Skill")).Return(nil)

	card, err := skills.NewService(repo).Create(ctx)
	require.NoError(t, err)
	require.Equal(t, "New Skill", card.Title)
	require.Equal(t, 50, card.Proficiency)
	require.Equal(t, 3, card.SortOrder)
	require.Equal(t, skills.BadgeGeneric, card.Badge.Badge)
}

func TestService_UpdateValidates(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SkillRepository{}
	svc := skills.NewService(repo)
	id := uuid.New()

	over := 101
	_, err := svc.Update(ctx, id, skills.Patch{Proficiency: &over})
	require.ErrorIs(t, err, skills.ErrInvalidInput)

	color := "green"
	_, err = svc.Update(ctx, id, skills.Patch{Color: &color})
	require.ErrorIs(t, err, skills.ErrInvalidInput)

	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := &mocks.SkillRepository{}
	repo.On("FindByID", ctx, id).Return(&models.Skill{ID: id, Title: "Ps", IconType: "ps", Proficiency: 10}, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*models.Skill")).Return(nil)

	level := 90
	icon := "unknown-tool"
	card, err := skills.NewService(repo).Update(ctx, id, skills.Patch{Proficiency: &level, IconType: &icon})
	require.NoError(t, err)
	require.Equal(t, 90, card.Proficiency)
	require.Equal(t, skills.BadgeGeneric, card.Badge.Badge)

	saved := repo.Calls[1].Arguments.Get(1).(*models.Skill)
	require.Equal(t, "generic", saved.IconType)
}

func TestService_SlideshowImages(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	stored := &models.Skill{ID: id, Images: datatypes.JSONSlice[string]{"https://x/a.png"}}

	repo := &mocks.SkillRepository{}
	repo.On("FindByID", ctx, id).Return(stored, nil)
	repo.On("Update", ctx, stored).Return(nil)

	svc := skills.NewService(repo)

	card, err := svc.AddImage(ctx, id, " https://x/b.mp4 ")
	require.NoError(t, err)
	require.Equal(t, []string{"https://x/a.png", "https://x/b.mp4"}, card.Slides)

	card, err = svc.RemoveImage(ctx, id, "https://x/a.png")
	require.NoError(t, err)
	require.Equal(t, []string{"https://x/b.mp4"}, card.Slides)

	_, err = svc.RemoveImage(ctx, id, "https://x/none.png")
	require.ErrorIs(t, err, skills.ErrImageNotFound)

	_, err = svc.AddImage(ctx, id, "  ")
	require.ErrorIs(t, err, skills.ErrInvalidInput)
}

func TestService_DeleteError(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := &mocks.SkillRepository{}
	repo.On("Delete", ctx, id).Return(errors.New("locked"))

	require.Error(t, skills.NewService(repo).Delete(ctx, id))
}
