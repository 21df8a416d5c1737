package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"agent-platform/services/agent-api/internal/config"
	"agent-platform/services/agent-api/internal/domain/agent"
	"agent-platform/services/agent-api/internal/utils/platformerrors"
	"agent-platform/services/agent-api/utils/chatid"
)

// VoiceExchange is the outcome of a completed voice pipeline run.
type VoiceExchange struct {
	Transcription    string
	ReplyText        string
	Audio            []byte
	UserMessage      *Message
	AssistantMessage *Message
}

// Service runs the text and voice conversation pipelines. Each pipeline is
// a strictly sequential chain; messages are persisted only after every
// provider call has succeeded, so a failed run leaves the session untouched.
type Service struct {
	cfg      *config.Config
	agents   agent.Repository
	sessions SessionRepository
	messages MessageRepository
	provider Capability
	log      zerolog.Logger
}

func NewService(
	cfg *config.Config,
	agents agent.Repository,
	sessions SessionRepository,
	messages MessageRepository,
	provider Capability,
	log zerolog.Logger,
) *Service {
	return &Service{
		cfg:      cfg,
		agents:   agents,
		sessions: sessions,
		messages: messages,
		provider: provider,
		log:      log.With().Str("component", "chat-service").Logger(),
	}
}

// CreateSession opens a new conversation thread under an existing agent.
func (s *Service) CreateSession(ctx context.Context, agentID string) (*Session, error) {
	a, err := s.agents.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"agent not found", nil, "4c8e2a6d-0f3b-47c9-a1e5-7d9b3f5c8e20")
	}

	sess := &Session{
		ID:      chatid.NewSessionID(),
		AgentID: agentID,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}

	s.log.Info().Str("session_id", sess.ID).Str("agent_id", agentID).Msg("created session")
	return sess, nil
}

// GetSession returns a session and its full message history in creation order.
func (s *Service) GetSession(ctx context.Context, id string) (*Session, []Message, error) {
	sess, err := s.requireSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	history, err := s.messages.ListBySession(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return sess, history, nil
}

// SendText runs the text pipeline: validate session, assemble context,
// generate a reply, then persist the user/assistant pair atomically.
func (s *Service) SendText(ctx context.Context, sessionID, content string) (*Message, *Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"message content must not be empty", nil, "8b5d3f7a-2c9e-41b6-8d0a-4f6c2e8a0b24")
	}

	sess, err := s.requireSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	reply, _, err := s.generateReply(ctx, sess, content)
	if err != nil {
		return nil, nil, err
	}

	userMsg, assistantMsg, err := s.persistExchange(ctx, sessionID, content, reply)
	if err != nil {
		return nil, nil, err
	}

	return userMsg, assistantMsg, nil
}

// SendVoice runs the full voice pipeline: transcribe the uploaded audio,
// generate a reply with the session history, synthesize it to speech, then
// persist both messages. No message is written unless all three provider
// calls succeed.
func (s *Service) SendVoice(ctx context.Context, sessionID string, audio []byte, filename string) (*VoiceExchange, error) {
	sess, err := s.requireSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if len(audio) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"audio file is empty", nil, "1e7a9c3b-5d2f-48e0-b4c6-8a0e2d4f6b28")
	}

	transcription, err := s.provider.Transcribe(ctx, audio, filename)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "speech-to-text failed")
	}

	reply, agentID, err := s.generateReply(ctx, sess, transcription)
	if err != nil {
		return nil, err
	}

	speech, err := s.provider.Synthesize(ctx, reply, s.cfg.TTSVoice)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "text-to-speech failed")
	}

	userMsg, assistantMsg, err := s.persistExchange(ctx, sessionID, transcription, reply)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("session_id", sessionID).
		Str("agent_id", agentID).
		Int("transcription_chars", len(transcription)).
		Int("reply_chars", len(reply)).
		Int("audio_bytes", len(speech)).
		Msg("voice pipeline complete")

	return &VoiceExchange{
		Transcription:    transcription,
		ReplyText:        reply,
		Audio:            speech,
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
	}, nil
}

// DeleteSession removes a session; its messages go with it.
func (s *Service) DeleteSession(ctx context.Context, id string) error {
	if _, err := s.requireSession(ctx, id); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("session_id", id).Msg("deleted session")
	return nil
}

func (s *Service) requireSession(ctx context.Context, id string) (*Session, error) {
	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"session not found", nil, "7f1b5d9e-3a6c-40d2-8e4b-0c2a6e8d0f32")
	}
	return sess, nil
}

// generateReply assembles the conversation context and calls the provider.
// Returns the reply text and the owning agent id.
func (s *Service) generateReply(ctx context.Context, sess *Session, userText string) (string, string, error) {
	a, err := s.agents.GetByID(ctx, sess.AgentID)
	if err != nil {
		return "", "", err
	}
	if a == nil {
		return "", "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"agent not found", nil, "a3d7f1b5-9e2c-46a8-b0d4-6f8a2c4e6d36")
	}

	history, err := s.messages.ListBySession(ctx, sess.ID)
	if err != nil {
		return "", "", err
	}

	chatMessages := BuildChatMessages(a.Prompt, history, userText)
	reply, err := s.provider.GenerateReply(ctx, chatMessages, s.cfg.ChatModel)
	if err != nil {
		return "", "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "chat completion failed")
	}
	return reply, a.ID, nil
}

func (s *Service) persistExchange(ctx context.Context, sessionID, userText, replyText string) (*Message, *Message, error) {
	userMsg := &Message{
		ID:        chatid.NewMessageID(),
		SessionID: sessionID,
		Role:      RoleUser,
		Content:   userText,
	}
	assistantMsg := &Message{
		ID:        chatid.NewMessageID(),
		SessionID: sessionID,
		Role:      RoleAssistant,
		Content:   replyText,
	}
	if err := s.messages.CreatePair(ctx, userMsg, assistantMsg); err != nil {
		return nil, nil, err
	}
	return userMsg, assistantMsg, nil
}
