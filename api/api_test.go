package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-studio-backend/auth"
	"github.com/rpupo63/portfolio-studio-backend/content"
	"github.com/rpupo63/portfolio-studio-backend/editor"
	"github.com/rpupo63/portfolio-studio-backend/layout"
	"github.com/rpupo63/portfolio-studio-backend/mocks"
	"github.com/rpupo63/portfolio-studio-backend/models"
	"github.com/rpupo63/portfolio-studio-backend/portfolio"
	"github.com/rpupo63/portfolio-studio-backend/services"
	"github.com/rpupo63/portfolio-studio-backend/skills"
	"github.com/rpupo63/portfolio-studio-backend/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	ownerEmail    = "owner@example.com"
	ownerPassword = "s3cret"
)

type testServer struct {
	router   *chi.Mux
	projects *mocks.ProjectRepository
	settings *mocks.SettingRepository
	skills   *mocks.SkillRepository
	uploader *mocks.Uploader
	catalog  *portfolio.Catalog
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(ownerPassword), bcrypt.MinCost)
	require.NoError(t, err)

	ts := &testServer{
		projects: &mocks.ProjectRepository{},
		settings: &mocks.SettingRepository{},
		skills:   &mocks.SkillRepository{},
		uploader: &mocks.Uploader{},
	}
	ts.catalog = portfolio.NewCatalog(ts.projects)

	store := content.New(ts.settings, content.WithDispatch(func(job func()) { job() }))
	t.Cleanup(store.Close)

	deps := Dependencies{
		Auth: auth.NewService(auth.Config{
			Email:        ownerEmail,
			PasswordHash: string(hash),
			Secret:       "test-secret",
			TTL:          time.Hour,
		}, auth.NewMemoryRevocations()),
		Projects:       portfolio.NewService(ts.projects, ts.catalog),
		Likes:          portfolio.NewLikeService(ts.projects, ts.catalog, portfolio.NewMemoryGuard()),
		Editors:        editor.NewRegistry(ts.projects, ts.uploader),
		Content:        store,
		Skills:         skills.NewService(ts.skills),
		Uploader:       ts.uploader,
		Importer:       services.NewImporter(2 * time.Second),
		MaxUploadBytes: 1 << 20,
	}
	ts.router = newRouter(deps, withConfig(map[string]string{}), withStartupTime(time.Now()))
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) signIn(t *testing.T) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/auth/sign-in", "", map[string]string{"email": ownerEmail, "password": ownerPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var session auth.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func projectWithBlocks(n int) models.Project {
	id := uuid.New()
	p := models.Project{ID: id, Title: "Brand", CoverImage: models.PlaceholderCover, LayoutMode: models.LayoutCollage, Gap: 8}
	for i := 0; i < n; i++ {
		p.Blocks = append(p.Blocks, models.Block{
			ProjectID: id,
			ID:        "b" + string(rune('1'+i)),
			URL:       "https://cdn.test/img" + string(rune('1'+i)) + ".png",
			Size:      layout.Square,
			Type:      models.MediaImage,
			Position:  i,
		})
	}
	return p
}

func TestProjects_ListIsReflowed(t *testing.T) {
	ts := newTestServer(t)
	ts.catalog.Replace([]models.Project{projectWithBlocks(1), projectWithBlocks(1), projectWithBlocks(1)})

	rec := ts.do(t, http.MethodGet, "/projects", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[ProjectCollection](t, rec)
	require.Equal(t, 3, got.Total)
	assert.Equal(t, layout.Big, got.Projects[0].LayoutTag)
	assert.Equal(t, layout.Tall, got.Projects[1].LayoutTag)
	assert.Equal(t, layout.Square, got.Projects[2].LayoutTag)
	assert.Equal(t, "https://cdn.test/img1.png", got.Projects[0].DisplayImage)
}

func TestProjects_MutationsRequireSession(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/project", "", map[string]string{"title": "New"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/project", "not-a-token", map[string]string{"title": "New"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	ts.projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjects_CreateValidatesAndCreates(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signIn(t)

	rec := ts.do(t, http.MethodPost, "/project", token, map[string]string{"title": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "title")

	var created models.Project
	ts.projects.On("Create", mock.Anything, mock.AnythingOfType("*models.Project")).
		Run(func(args mock.Arguments) { created = *args.Get(1).(*models.Project) }).
		Return(nil)
	ts.projects.On("FindAll", mock.Anything).Return(nil, errors.New("offline"))

	rec = ts.do(t, http.MethodPost, "/project", token, map[string]string{"title": "Poster Series", "category": "Print"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	got := decode[ProjectView](t, rec)
	assert.Equal(t, "Poster Series", got.Title)
	assert.Equal(t, created.ID, got.ID)
	require.Len(t, got.Blocks, 1)
	assert.True(t, models.IsPlaceholder(got.Blocks[0].URL))
	assert.Len(t, ts.catalog.Projects(), 1)
}

func TestProjects_DeleteReflowsCatalog(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signIn(t)
	list := []models.Project{projectWithBlocks(1), projectWithBlocks(1), projectWithBlocks(1)}
	ts.catalog.Replace(list)
	ts.projects.On("Delete", mock.Anything, list[0].ID).Return(nil)

	rec := ts.do(t, http.MethodDelete, "/project/"+list[0].ID.String(), token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	remaining := ts.catalog.Projects()
	require.Len(t, remaining, 2)
	assert.Equal(t, layout.Big, remaining[0].LayoutTag)
	assert.Equal(t, layout.Tall, remaining[1].LayoutTag)
}

func TestProjects_DeleteClosesEditorSession(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signIn(t)
	p := projectWithBlocks(1)
	base := "/project/" + p.ID.String() + "/editor"

	ts.projects.On("FindByID", mock.Anything, p.ID).Return(&p, nil)
	ts.projects.On("Delete", mock.Anything, p.ID).Return(nil)

	rec := ts.do(t, http.MethodPost, base, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodDelete, "/project/"+p.ID.String(), token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, base, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjects_UpdateStoresCanonicalLayoutMode(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signIn(t)
	p := projectWithBlocks(1)
	path := "/project/" + p.ID.String()

	rec := ts.do(t, http.MethodPut, path, token, map[string]string{"layoutMode": "slideshow"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "collage or stacked")

	ts.projects.On("UpdateFields", mock.Anything, p.ID, mock.MatchedBy(func(f models.ProjectFields) bool {
		return f.LayoutMode != nil && *f.LayoutMode == models.LayoutStacked
	})).Return(nil).Once()
	stacked := p
	stacked.LayoutMode = models.LayoutStacked
	ts.projects.On("FindByID", mock.Anything, p.ID).Return(&stacked, nil)

	rec = ts.do(t, http.MethodPut, path, token, map[string]string{"layoutMode": "PDF"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, models.LayoutStacked, decode[ProjectView](t, rec).LayoutMode)
	ts.projects.AssertExpectations(t)
}

func TestProjects_InvalidID(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/project/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjects_LikeOncePerSession(t *testing.T) {
	ts := newTestServer(t)
	p := projectWithBlocks(1)
	ts.catalog.Replace([]models.Project{p})
	ts.projects.On("IncrementLikes", mock.Anything, p.ID).Return(1, nil).Once()

	like := func(session string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/project/"+p.ID.String()+"/like", nil)
		if session != "" {
			req.Header.Set(clientSessionHeader, session)
		}
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)
		return rec
	}

	rec := like("visitor-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, LikeResponse{Likes: 1, Counted: true}, decode[LikeResponse](t, rec))

	rec = like("visitor-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, LikeResponse{Likes: 1, Counted: false}, decode[LikeResponse](t, rec))

	rec = like("")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ts.projects.AssertNumberOfCalls(t, "IncrementLikes", 1)
}

func TestAuth_SessionLifecycle(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/auth/sign-in", "", map[string]string{"email": ownerEmail, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := ts.signIn(t)

	rec = ts.do(t, http.MethodGet, "/auth/session", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[SessionResponse](t, rec).Authorized)

	rec = ts.do(t, http.MethodPost, "/auth/sign-out", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, "/auth/session", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[SessionResponse](t, rec).Authorized)
}

func TestEditor_Flow(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signIn(t)
	p := projectWithBlocks(1)
	base := "/project/" + p.ID.String() + "/editor"

	rec := ts.do(t, http.MethodGet, base, token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	ts.projects.On("FindByID", mock.Anything, p.ID).Return(&p, nil)
	rec = ts.do(t, http.MethodPost, base, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodDelete, base+"/blocks/b1", token, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodPost, base+"/blocks", token, map[string]string{"type": "video"})
	require.Equal(t, http.StatusCreated, rec.Code)
	added := decode[models.Block](t, rec)
	assert.Equal(t, models.MediaVideo, added.Type)

	rec = ts.do(t, http.MethodPut, base+"/blocks/"+added.ID+"/size", token, map[string]string{"size": "huge"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPut, base+"/blocks/"+added.ID+"/size", token, map[string]string{"size": "wide"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPut, base+"/order", token, map[string][]string{"order": {"b1"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPut, base+"/order", token, map[string][]string{"order": {added.ID, "b1"}})
	require.Equal(t, http.StatusOK, rec.Code)
	state := decode[editor.State](t, rec)
	assert.True(t, state.Dirty)
	assert.Equal(t, added.ID, state.Project.Blocks[0].ID)

	ts.projects.On("ReplaceProjectBlocks", mock.Anything, p.ID, mock.Anything, mock.MatchedBy(func(blocks []models.Block) bool {
		return len(blocks) == 2 && blocks[0].ID == added.ID && blocks[0].Position == 0 && blocks[0].Size == layout.Wide
	})).Return(nil)

	rec = ts.do(t, http.MethodPost, base+"/commit", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	state = decode[editor.State](t, rec)
	assert.False(t, state.Dirty)
	assert.True(t, state.Saved)

	rec = ts.do(t, http.MethodDelete, base, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = ts.do(t, http.MethodGet, base, token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditor_ImportGalleryFallback(t *testing.T) {
	gallery := httptest.NewServer(http.NotFoundHandler())
	defer gallery.Close()

	ts := newTestServer(t)
	token := ts.signIn(t)
	p := projectWithBlocks(1)
	ts.projects.On("FindByID", mock.Anything, p.ID).Return(&p, nil)
	base := "/project/" + p.ID.String() + "/editor"
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, base, token, nil).Code)

	rec := ts.do(t, http.MethodPost, base+"/import", token, map[string]any{"galleryUrl": gallery.URL + "/album"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	fallback := decode[ImportFallbackResponse](t, rec)
	assert.Equal(t, []string{gallery.URL + "/album"}, fallback.Fallback)

	rec = ts.do(t, http.MethodPost, base+"/import", token, map[string]any{"galleryUrl": gallery.URL + "/album", "acceptFallback": true})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, decode[[]models.Block](t, rec), 1)

	rec = ts.do(t, http.MethodPost, base+"/import", token, map[string]any{"refs": []string{"https://a.test/1.png, https://a.test/2.png"}, "size": "tall"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	blocks := decode[[]models.Block](t, rec)
	require.Len(t, blocks, 2)
	assert.Equal(t, layout.Tall, blocks[1].Size)
}

func multipartFile(t *testing.T, path, token string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile("file", "upload.bin")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestEditor_UploadReplacesBlockMedia(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signIn(t)
	p := projectWithBlocks(1)
	ts.projects.On("FindByID", mock.Anything, p.ID).Return(&p, nil)
	base := "/project/" + p.ID.String() + "/editor"
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, base, token, nil).Code)

	ts.uploader.On("Upload", mock.Anything, []byte("video-bytes"), storage.CategoryVideo).
		Return("https://cdn.test/video/clip.mp4", nil)

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, multipartFile(t, base+"/blocks/b1/upload", token, []byte("video-bytes"), map[string]string{"type": "video"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	block := decode[models.Block](t, rec)
	assert.Equal(t, "https://cdn.test/video/clip.mp4", block.URL)
	assert.Equal(t, models.MediaVideo, block.Type)
}

func TestUpload_RejectsDisallowedType(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signIn(t)
	ts.uploader.On("Upload", mock.Anything, mock.Anything, storage.CategoryAvatar).
		Return("", storage.ErrInvalidMimeType)

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, multipartFile(t, "/upload/avatar", token, []byte("%PDF-1.4"), nil))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = httptest.NewRecorder()
	ts.router.ServeHTTP(rec, multipartFile(t, "/upload/document", token, []byte("x"), nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContent_UpdateAndTestimonials(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signIn(t)
	ts.settings.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	rec := ts.do(t, http.MethodPut, "/content/hero_title", token, map[string]string{"value": "Motion Studio"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Motion Studio", decode[content.Content](t, rec).Values[content.HeroTitle])
	ts.settings.AssertCalled(t, "Upsert", mock.Anything, "hero_title", "Motion Studio")

	rec = ts.do(t, http.MethodPut, "/content/banner", token, map[string]string{"value": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPost, "/content/testimonials", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	added := decode[content.Testimonial](t, rec)

	rec = ts.do(t, http.MethodPut, "/content/testimonials/"+added.ID, token, map[string]string{"field": "author", "value": "Jo"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Jo", decode[content.Testimonial](t, rec).Author)

	rec = ts.do(t, http.MethodPut, "/content/testimonials/"+added.ID, token, map[string]string{"field": "id", "value": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/content/testimonials/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/content", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[content.Content](t, rec).Testimonials, 1)
}

func TestSkills_ListAndValidate(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signIn(t)
	skill := models.Skill{ID: uuid.New(), Title: "After Effects", IconType: "ae", Proficiency: 90}
	ts.skills.On("FindAll", mock.Anything).Return([]models.Skill{skill}, nil)

	rec := ts.do(t, http.MethodGet, "/skills", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[SkillCollection](t, rec)
	require.Len(t, got.Skills, 1)
	assert.Equal(t, skills.BadgeAfterEffects, got.Skills[0].Badge.Badge)
	assert.Equal(t, skills.DefaultSlides, got.Skills[0].Slides)
	assert.Len(t, got.Badges, len(skills.Badges()))

	rec = ts.do(t, http.MethodPut, "/skill/"+skill.ID.String(), token, map[string]any{"proficiency": 140})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "proficiency"))

	rec = ts.do(t, http.MethodDelete, "/skill/"+skill.ID.String()+"/images", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMapError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{editor.ErrLastBlock, http.StatusConflict},
		{editor.ErrNotOpen, http.StatusNotFound},
		{content.ErrUnknownKey, http.StatusNotFound},
		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{storage.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		NewResponder(zerolog.Nop()).WriteError(rec, tc.err)
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
	}

	rec := httptest.NewRecorder()
	NewResponder(zerolog.Nop()).WriteError(rec, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}
