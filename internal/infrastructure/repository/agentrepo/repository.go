package agentrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "agent-platform/services/agent-api/internal/domain/agent"
	"agent-platform/services/agent-api/internal/infrastructure/database/entities"
	"agent-platform/services/agent-api/internal/utils/platformerrors"
)

// Repository handles agent persistence.
type Repository struct {
	db *gorm.DB
}

var _ domain.Repository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, a *domain.Agent) error {
	entity := entities.Agent{
		ID:     a.ID,
		Name:   a.Name,
		Prompt: a.Prompt,
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create agent",
			err,
			"5b8e2d4f-7a1c-43e9-b6d0-9f3a5c7e1b40",
		)
	}
	a.CreatedAt = entity.CreatedAt
	a.UpdatedAt = entity.UpdatedAt
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	var entity entities.Agent
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to get agent by id",
			err,
			"2c6a8e0d-4f7b-49c1-a3e5-1b5d7f9a3c44",
		)
	}
	a := mapEntity(entity)
	return &a, nil
}

func (r *Repository) List(ctx context.Context, skip, limit int) ([]*domain.Agent, error) {
	var rows []entities.Agent
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(skip).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list agents",
			err,
			"8d0f4a2c-6b9e-45d3-b7a1-3f7b9d1c5e48",
		)
	}
	agents := make([]*domain.Agent, 0, len(rows))
	for _, row := range rows {
		a := mapEntity(row)
		agents = append(agents, &a)
	}
	return agents, nil
}

func (r *Repository) Update(ctx context.Context, a *domain.Agent) error {
	updates := map[string]any{
		"name":   a.Name,
		"prompt": a.Prompt,
	}
	tx := r.db.WithContext(ctx).Model(&entities.Agent{}).Where("id = ?", a.ID).Updates(updates)
	if tx.Error != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update agent",
			tx.Error,
			"4e2b6c8a-0d3f-47e5-b9c1-5d9f1b3e7a52",
		)
	}
	var entity entities.Agent
	if err := r.db.WithContext(ctx).Where("id = ?", a.ID).First(&entity).Error; err == nil {
		a.UpdatedAt = entity.UpdatedAt
	}
	return nil
}

// Delete removes the agent row; sessions and messages underneath it are
// removed by the store's ON DELETE CASCADE constraints.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Agent{}).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete agent",
			err,
			"0a4c8e2b-6d1f-49a7-b3e5-7f1b3d5c9e56",
		)
	}
	return nil
}

func mapEntity(entity entities.Agent) domain.Agent {
	return domain.Agent{
		ID:        entity.ID,
		Name:      entity.Name,
		Prompt:    entity.Prompt,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}
}
