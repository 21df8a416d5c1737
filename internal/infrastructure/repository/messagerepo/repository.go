package messagerepo

import (
	"context"

	"gorm.io/gorm"

	"agent-platform/services/agent-api/internal/domain/chat"
	"agent-platform/services/agent-api/internal/infrastructure/database/entities"
	"agent-platform/services/agent-api/internal/utils/platformerrors"
)

// Repository handles message persistence.
type Repository struct {
	db *gorm.DB
}

var _ chat.MessageRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, m *chat.Message) error {
	entity := mapDomain(m)
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create message",
			err,
			"1b5f9d3a-7e0c-42b8-a6d2-5d9f1b3e7c72",
		)
	}
	m.CreatedAt = entity.CreatedAt
	return nil
}

// CreatePair inserts the user and assistant messages inside one transaction
// so a pipeline never leaves half an exchange behind.
func (r *Repository) CreatePair(ctx context.Context, userMsg, assistantMsg *chat.Message) error {
	userEntity := mapDomain(userMsg)
	assistantEntity := mapDomain(assistantMsg)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&userEntity).Error; err != nil {
			return err
		}
		return tx.Create(&assistantEntity).Error
	})
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to persist message exchange",
			err,
			"7d1f5b9c-3a6e-48d0-b2f4-9f3b5d7e1a76",
		)
	}
	userMsg.CreatedAt = userEntity.CreatedAt
	assistantMsg.CreatedAt = assistantEntity.CreatedAt
	return nil
}

// ListBySession returns all messages for a session in canonical
// conversation order: created_at ascending, id as tiebreaker.
func (r *Repository) ListBySession(ctx context.Context, sessionID string) ([]chat.Message, error) {
	var rows []entities.Message
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list session messages",
			err,
			"5a9e3d7f-1c4b-46a2-b8e0-3d7f9b1e5c80",
		)
	}
	messages := make([]chat.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, chat.Message{
			ID:        row.ID,
			SessionID: row.SessionID,
			Role:      chat.Role(row.Role),
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
		})
	}
	return messages, nil
}

func mapDomain(m *chat.Message) entities.Message {
	return entities.Message{
		ID:        m.ID,
		SessionID: m.SessionID,
		Role:      string(m.Role),
		Content:   m.Content,
	}
}
