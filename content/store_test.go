package content_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-studio-backend/content"
	"github.com/rpupo63/portfolio-studio-backend/mocks"
	"github.com/rpupo63/portfolio-studio-backend/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func syncDispatch(job func()) { job() }

func TestStore_DefaultsBeforeLoad(t *testing.T) {
	s := content.New(&mocks.SettingRepository{}, content.WithDispatch(syncDispatch))

	require.Equal(t, "Freelance", s.Get(content.HeroTitle))
	require.Equal(t, "[]", s.Get(content.Testimonials))
	require.Empty(t, s.Testimonials())
	require.Len(t, s.Snapshot().Values, len(content.Keys()))
}

func TestStore_Load(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SettingRepository{}
	repo.On("FindAll", ctx).Return([]models.SiteSetting{
		{Key: "hero_title", Value: "Studio"},
		{Key: "legacy_banner", Value: "ignored"},
		{Key: "testimonials_json", Value: `[{"id":"t-1","text":"Great","author":"Ana","role":"CEO","avatar":""}]`},
	}, nil)

	s := content.New(repo, content.WithDispatch(syncDispatch))
	require.NoError(t, s.Load(ctx))

	require.Equal(t, "Studio", s.Get(content.HeroTitle))
	require.Equal(t, "Designer & Developer", s.Get(content.HeroSubtitle))
	require.Equal(t, []content.Testimonial{{ID: "t-1", Text: "Great", Author: "Ana", Role: "CEO"}}, s.Testimonials())
	require.NotContains(t, s.Snapshot().Values, content.Key("legacy_banner"))
}

func TestStore_LoadMalformedTestimonials(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SettingRepository{}
	repo.On("FindAll", ctx).Return([]models.SiteSetting{
		{Key: "testimonials_json", Value: `[{"id":`},
	}, nil)

	s := content.New(repo, content.WithDispatch(syncDispatch))
	require.NoError(t, s.Load(ctx))
	require.Empty(t, s.Testimonials())
	require.Equal(t, "[]", s.Get(content.Testimonials))
}

func TestStore_LoadFailureKeepsDefaults(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SettingRepository{}
	repo.On("FindAll", ctx).Return(nil, errors.New("offline"))

	s := content.New(repo, content.WithDispatch(syncDispatch))
	require.Error(t, s.Load(ctx))
	require.Equal(t, "Freelance", s.Get(content.HeroTitle))
}

func TestStore_UpdatePersistsInBackground(t *testing.T) {
	repo := &mocks.SettingRepository{}
	repo.On("Upsert", mock.Anything, "hero_title", "Hello").Return(nil).Once()

	s := content.New(repo, content.WithDispatch(syncDispatch))
	require.NoError(t, s.Update(content.HeroTitle, "Hello"))
	require.Equal(t, "Hello", s.Get(content.HeroTitle))
	repo.AssertExpectations(t)

	require.ErrorIs(t, s.Update(content.Key("nope"), "x"), content.ErrUnknownKey)
}

func TestStore_UpdateFailureIsOnlyLogged(t *testing.T) {
	repo := &mocks.SettingRepository{}
	repo.On("Upsert", mock.Anything, "footer_cta", "Hi").Return(errors.New("write failed"))

	s := content.New(repo, content.WithDispatch(syncDispatch))
	require.NoError(t, s.Update(content.FooterCTA, "Hi"))
	require.Equal(t, "Hi", s.Get(content.FooterCTA))
}

func TestStore_DefaultWriterKeepsOrder(t *testing.T) {
	repo := &mocks.SettingRepository{}
	var written []string
	repo.On("Upsert", mock.Anything, "work_desc", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { written = append(written, args.String(2)) }).
		Return(nil)

	s := content.New(repo)
	for _, v := range []string{"a", "b", "c"} {
		require.NoError(t, s.Update(content.WorkDesc, v))
	}
	s.Close()
	require.Equal(t, []string{"a", "b", "c"}, written)
}

func TestStore_SlowWriterDoesNotBlockReads(t *testing.T) {
	repo := &mocks.SettingRepository{}
	release := make(chan struct{})
	repo.On("Upsert", mock.Anything, "work_desc", mock.AnythingOfType("string")).
		Run(func(mock.Arguments) { <-release }).
		Return(nil)

	s := content.New(repo)
	updated := make(chan struct{})
	go func() {
		defer close(updated)
		for i := 0; i < 200; i++ {
			_ = s.Update(content.WorkDesc, fmt.Sprintf("v%d", i))
		}
	}()

	select {
	case <-updated:
	case <-time.After(2 * time.Second):
		t.Fatal("updates blocked on a stalled writer")
	}

	read := make(chan string)
	go func() { read <- s.Get(content.WorkDesc) }()
	select {
	case got := <-read:
		require.Equal(t, "v199", got)
	case <-time.After(2 * time.Second):
		t.Fatal("read blocked on a stalled writer")
	}

	close(release)
	s.Close()
	repo.AssertNumberOfCalls(t, "Upsert", 200)
}

func TestStore_UpdateAfterCloseIsNotPersisted(t *testing.T) {
	repo := &mocks.SettingRepository{}
	s := content.New(repo)
	s.Close()

	require.NotPanics(t, func() {
		require.NoError(t, s.Update(content.HeroTitle, "After"))
	})
	require.Equal(t, "After", s.Get(content.HeroTitle))
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestStore_Testimonials(t *testing.T) {
	repo := &mocks.SettingRepository{}
	repo.On("Upsert", mock.Anything, "testimonials_json", mock.AnythingOfType("string")).Return(nil)

	now := time.UnixMilli(1700000000000)
	s := content.New(repo, content.WithDispatch(syncDispatch), content.WithClock(func() time.Time { return now }))

	first := s.AddTestimonial()
	require.Equal(t, "t-1700000000000", first.ID)
	second := s.AddTestimonial()
	require.NotEqual(t, first.ID, second.ID)

	updated, err := s.UpdateTestimonial(first.ID, "author", "Rita")
	require.NoError(t, err)
	require.Equal(t, "Rita", updated.Author)

	_, err = s.UpdateTestimonial(first.ID, "salary", "1")
	require.ErrorIs(t, err, content.ErrUnknownField)
	_, err = s.UpdateTestimonial("missing", "text", "x")
	require.ErrorIs(t, err, content.ErrTestimonialNotFound)

	require.NoError(t, s.DeleteTestimonial(second.ID))
	require.ErrorIs(t, s.DeleteTestimonial(second.ID), content.ErrTestimonialNotFound)

	list := s.Testimonials()
	require.Len(t, list, 1)
	require.Equal(t, "Rita", list[0].Author)

	last := repo.Calls[len(repo.Calls)-1]
	require.JSONEq(t, s.Get(content.Testimonials), last.Arguments.String(2))
	repo.AssertNumberOfCalls(t, "Upsert", 4)
}

func TestParseKey(t *testing.T) {
	k, err := content.ParseKey("about_text")
	require.NoError(t, err)
	require.Equal(t, content.AboutText, k)

	k, err = content.ParseKey("testimonials")
	require.NoError(t, err)
	require.Equal(t, content.Testimonials, k)

	_, err = content.ParseKey("admin_password")
	require.ErrorIs(t, err, content.ErrUnknownKey)
}
