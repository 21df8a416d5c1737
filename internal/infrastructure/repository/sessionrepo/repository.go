package sessionrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"agent-platform/services/agent-api/internal/domain/chat"
	"agent-platform/services/agent-api/internal/infrastructure/database/entities"
	"agent-platform/services/agent-api/internal/utils/platformerrors"
)

// Repository handles session persistence.
type Repository struct {
	db *gorm.DB
}

var _ chat.SessionRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, s *chat.Session) error {
	entity := entities.Session{
		ID:      s.ID,
		AgentID: s.AgentID,
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create session",
			err,
			"6c0e4a8d-2f5b-41c9-b7a3-9d3f5b7e1c60",
		)
	}
	s.CreatedAt = entity.CreatedAt
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*chat.Session, error) {
	var entity entities.Session
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to get session by id",
			err,
			"3e7b1d5f-9a2c-46e8-b0d4-1f5b7d9a3e64",
		)
	}
	return &chat.Session{
		ID:        entity.ID,
		AgentID:   entity.AgentID,
		CreatedAt: entity.CreatedAt,
	}, nil
}

// Delete removes the session row; its messages are removed by the store's
// ON DELETE CASCADE constraint.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Session{}).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete session",
			err,
			"9f3d7b1e-5c8a-40f2-b4e6-3b7d9f1c5a68",
		)
	}
	return nil
}
