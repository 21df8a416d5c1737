package agent

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"agent-platform/services/agent-api/internal/utils/platformerrors"
	"agent-platform/services/agent-api/utils/chatid"
)

const (
	defaultListLimit = 100
)

// Service orchestrates agent CRUD.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "agent-service").Logger(),
	}
}

// Create stores a new agent. Name and prompt must be non-empty.
func (s *Service) Create(ctx context.Context, name, prompt string) (*Agent, error) {
	if strings.TrimSpace(name) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"agent name must not be empty", nil, "3f2b8a41-9c47-4f2e-b1d6-8e5a0c9d2f13")
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"agent prompt must not be empty", nil, "b7c1e9d4-52a8-4b3f-9e0c-1d6f4a8b2c35")
	}

	a := &Agent{
		ID:     chatid.NewAgentID(),
		Name:   name,
		Prompt: prompt,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.log.Info().Str("agent_id", a.ID).Str("name", a.Name).Msg("created agent")
	return a, nil
}

// Get fetches an agent by id, reporting absence as a not-found error.
func (s *Service) Get(ctx context.Context, id string) (*Agent, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"agent not found", nil, "6a4d2e8f-1b3c-45d7-8a9e-0f2c6b4d8e17")
	}
	return a, nil
}

// List returns a page of agents. skip defaults to 0, limit to 100.
func (s *Service) List(ctx context.Context, skip, limit int) ([]*Agent, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.List(ctx, skip, limit)
}

// Update applies a partial update; nil params leave fields untouched.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Agent, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
				"agent name must not be empty", nil, "9e3c5b7a-4d1f-42e8-b6a0-2c8f4d6e0a19")
		}
		a.Name = *params.Name
	}
	if params.Prompt != nil {
		if strings.TrimSpace(*params.Prompt) == "" {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
				"agent prompt must not be empty", nil, "d2f6a8c4-7e9b-4c1d-a3e5-6b0d8f2a4c21")
		}
		a.Prompt = *params.Prompt
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.log.Info().Str("agent_id", a.ID).Msg("updated agent")
	return a, nil
}

// Delete removes an agent. Dependent sessions and messages are removed by
// the store's cascade rules.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("agent_id", id).Msg("deleted agent")
	return nil
}
