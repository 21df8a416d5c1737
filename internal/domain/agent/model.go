package agent

import (
	"context"
	"time"
)

// Agent is a named configuration bundling a system prompt that defines an
// AI persona.
type Agent struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateParams carries a partial update; nil fields keep their prior value.
type UpdateParams struct {
	Name   *string
	Prompt *string
}

// Repository defines persistence operations needed by the service.
// Lookups return (nil, nil) when no row matches so callers decide how to
// report absence.
type Repository interface {
	Create(ctx context.Context, a *Agent) error
	GetByID(ctx context.Context, id string) (*Agent, error)
	List(ctx context.Context, skip, limit int) ([]*Agent, error)
	Update(ctx context.Context, a *Agent) error
	Delete(ctx context.Context, id string) error
}
