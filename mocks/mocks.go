package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-studio-backend/models"
	"github.com/rpupo63/portfolio-studio-backend/storage"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for the project persistence used by the editor and portfolio services.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) FindAll(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]models.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*models.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *ProjectRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields models.ProjectFields) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *ProjectRepository) ReplaceProjectBlocks(ctx context.Context, projectID uuid.UUID, fields models.ProjectFields, blocks []models.Block) error {
	args := m.Called(ctx, projectID, fields, blocks)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProjectRepository) IncrementLikes(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

// SettingRepository is a mock for site content persistence.
type SettingRepository struct {
	mock.Mock
}

func (m *SettingRepository) FindAll(ctx context.Context) ([]models.SiteSetting, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]models.SiteSetting); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SettingRepository) Upsert(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// SkillRepository is a mock for skill card persistence.
type SkillRepository struct {
	mock.Mock
}

func (m *SkillRepository) FindAll(ctx context.Context) ([]models.Skill, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]models.Skill); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SkillRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Skill, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*models.Skill); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SkillRepository) Create(ctx context.Context, skill *models.Skill) error {
	args := m.Called(ctx, skill)
	return args.Error(0)
}

func (m *SkillRepository) Update(ctx context.Context, skill *models.Skill) error {
	args := m.Called(ctx, skill)
	return args.Error(0)
}

func (m *SkillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Uploader is a mock for media upload.
type Uploader struct {
	mock.Mock
}

func (m *Uploader) Upload(ctx context.Context, data []byte, category storage.Category) (string, error) {
	args := m.Called(ctx, data, category)
	return args.String(0), args.Error(1)
}
