package chat

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agent-platform/services/agent-api/internal/config"
	"agent-platform/services/agent-api/internal/domain/agent"
	"agent-platform/services/agent-api/internal/utils/platformerrors"
)

type mockAgentRepo struct {
	GetByIDFunc func(ctx context.Context, id string) (*agent.Agent, error)
}

func (m *mockAgentRepo) Create(ctx context.Context, a *agent.Agent) error { return nil }
func (m *mockAgentRepo) GetByID(ctx context.Context, id string) (*agent.Agent, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}
func (m *mockAgentRepo) List(ctx context.Context, skip, limit int) ([]*agent.Agent, error) {
	return nil, nil
}
func (m *mockAgentRepo) Update(ctx context.Context, a *agent.Agent) error { return nil }
func (m *mockAgentRepo) Delete(ctx context.Context, id string) error      { return nil }

type mockSessionRepo struct {
	CreateFunc  func(ctx context.Context, s *Session) error
	GetByIDFunc func(ctx context.Context, id string) (*Session, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *mockSessionRepo) Create(ctx context.Context, s *Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	return nil
}
func (m *mockSessionRepo) GetByID(ctx context.Context, id string) (*Session, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}
func (m *mockSessionRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockMessageRepo struct {
	CreatePairFunc    func(ctx context.Context, userMsg, assistantMsg *Message) error
	ListBySessionFunc func(ctx context.Context, sessionID string) ([]Message, error)
	createPairCalls   int
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *Message) error { return nil }
func (m *mockMessageRepo) CreatePair(ctx context.Context, userMsg, assistantMsg *Message) error {
	m.createPairCalls++
	if m.CreatePairFunc != nil {
		return m.CreatePairFunc(ctx, userMsg, assistantMsg)
	}
	return nil
}
func (m *mockMessageRepo) ListBySession(ctx context.Context, sessionID string) ([]Message, error) {
	if m.ListBySessionFunc != nil {
		return m.ListBySessionFunc(ctx, sessionID)
	}
	return nil, nil
}

type mockCapability struct {
	GenerateReplyFunc func(ctx context.Context, messages []openai.ChatCompletionMessage, model string) (string, error)
	TranscribeFunc    func(ctx context.Context, audio []byte, filename string) (string, error)
	SynthesizeFunc    func(ctx context.Context, text, voice string) ([]byte, error)
	transcribeCalls   int
}

func (m *mockCapability) GenerateReply(ctx context.Context, messages []openai.ChatCompletionMessage, model string) (string, error) {
	if m.GenerateReplyFunc != nil {
		return m.GenerateReplyFunc(ctx, messages, model)
	}
	return "mock reply", nil
}
func (m *mockCapability) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	m.transcribeCalls++
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, audio, filename)
	}
	return "mock transcription", nil
}
func (m *mockCapability) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, text, voice)
	}
	return []byte("mock audio"), nil
}

func testConfig() *config.Config {
	return &config.Config{
		ChatModel: "gpt-4o-mini",
		STTModel:  "whisper-1",
		TTSModel:  "tts-1",
		TTSVoice:  "alloy",
	}
}

func knownAgentRepo() *mockAgentRepo {
	return &mockAgentRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*agent.Agent, error) {
			return &agent.Agent{ID: id, Name: "helper", Prompt: "You help."}, nil
		},
	}
}

func knownSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*Session, error) {
			return &Session{ID: id, AgentID: "agent_1"}, nil
		},
	}
}

func newTestService(agents agent.Repository, sessions SessionRepository, messages MessageRepository, provider Capability) *Service {
	return NewService(testConfig(), agents, sessions, messages, provider, zerolog.Nop())
}

func TestCreateSessionUnknownAgent(t *testing.T) {
	svc := newTestService(&mockAgentRepo{}, &mockSessionRepo{}, &mockMessageRepo{}, &mockCapability{})

	_, err := svc.CreateSession(context.Background(), "agent_missing")

	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestCreateSession(t *testing.T) {
	var stored *Session
	sessions := &mockSessionRepo{
		CreateFunc: func(ctx context.Context, s *Session) error {
			stored = s
			return nil
		},
	}
	svc := newTestService(knownAgentRepo(), sessions, &mockMessageRepo{}, &mockCapability{})

	sess, err := svc.CreateSession(context.Background(), "agent_1")

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "agent_1", sess.AgentID)
	assert.Contains(t, sess.ID, "sess_")
}

func TestSendTextEmptyContent(t *testing.T) {
	provider := &mockCapability{}
	messages := &mockMessageRepo{}
	svc := newTestService(knownAgentRepo(), knownSessionRepo(), messages, provider)

	_, _, err := svc.SendText(context.Background(), "sess_1", "   ")

	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
	assert.Zero(t, messages.createPairCalls)
}

func TestSendTextUnknownSession(t *testing.T) {
	svc := newTestService(knownAgentRepo(), &mockSessionRepo{}, &mockMessageRepo{}, &mockCapability{})

	_, _, err := svc.SendText(context.Background(), "sess_missing", "hello")

	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestSendTextPersistsExchange(t *testing.T) {
	messages := &mockMessageRepo{
		ListBySessionFunc: func(ctx context.Context, sessionID string) ([]Message, error) {
			return []Message{
				{Role: RoleUser, Content: "earlier"},
				{Role: RoleAssistant, Content: "before"},
			}, nil
		},
	}
	var seen []openai.ChatCompletionMessage
	provider := &mockCapability{
		GenerateReplyFunc: func(ctx context.Context, msgs []openai.ChatCompletionMessage, model string) (string, error) {
			seen = msgs
			return "generated reply", nil
		},
	}
	svc := newTestService(knownAgentRepo(), knownSessionRepo(), messages, provider)

	userMsg, assistantMsg, err := svc.SendText(context.Background(), "sess_1", "hello")

	require.NoError(t, err)
	assert.Equal(t, 1, messages.createPairCalls)
	assert.Equal(t, RoleUser, userMsg.Role)
	assert.Equal(t, "hello", userMsg.Content)
	assert.Equal(t, RoleAssistant, assistantMsg.Role)
	assert.Equal(t, "generated reply", assistantMsg.Content)

	// system prompt + two history turns + new user turn
	require.Len(t, seen, 4)
	assert.Equal(t, openai.ChatMessageRoleSystem, seen[0].Role)
	assert.Equal(t, "You help.", seen[0].Content)
	assert.Equal(t, "hello", seen[3].Content)
}

func TestSendTextProviderFailureSkipsPersistence(t *testing.T) {
	messages := &mockMessageRepo{}
	provider := &mockCapability{
		GenerateReplyFunc: func(ctx context.Context, msgs []openai.ChatCompletionMessage, model string) (string, error) {
			return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
				platformerrors.ErrorTypeExternal, "chat completion failed", errors.New("upstream 500"),
				"00000000-0000-0000-0000-000000000001")
		},
	}
	svc := newTestService(knownAgentRepo(), knownSessionRepo(), messages, provider)

	_, _, err := svc.SendText(context.Background(), "sess_1", "hello")

	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))
	assert.Zero(t, messages.createPairCalls)
}

func TestSendVoiceEmptyAudio(t *testing.T) {
	provider := &mockCapability{}
	messages := &mockMessageRepo{}
	svc := newTestService(knownAgentRepo(), knownSessionRepo(), messages, provider)

	_, err := svc.SendVoice(context.Background(), "sess_1", nil, "audio.webm")

	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
	assert.Zero(t, provider.transcribeCalls)
	assert.Zero(t, messages.createPairCalls)
}

func TestSendVoicePipeline(t *testing.T) {
	messages := &mockMessageRepo{}
	provider := &mockCapability{
		TranscribeFunc: func(ctx context.Context, audio []byte, filename string) (string, error) {
			return "what is the weather", nil
		},
		GenerateReplyFunc: func(ctx context.Context, msgs []openai.ChatCompletionMessage, model string) (string, error) {
			return "it is sunny", nil
		},
		SynthesizeFunc: func(ctx context.Context, text, voice string) ([]byte, error) {
			assert.Equal(t, "it is sunny", text)
			assert.Equal(t, "alloy", voice)
			return []byte("mp3 bytes"), nil
		},
	}
	svc := newTestService(knownAgentRepo(), knownSessionRepo(), messages, provider)

	exchange, err := svc.SendVoice(context.Background(), "sess_1", []byte("opus bytes"), "audio.webm")

	require.NoError(t, err)
	assert.Equal(t, "what is the weather", exchange.Transcription)
	assert.Equal(t, "it is sunny", exchange.ReplyText)
	assert.Equal(t, []byte("mp3 bytes"), exchange.Audio)
	assert.Equal(t, 1, messages.createPairCalls)
	assert.Equal(t, "what is the weather", exchange.UserMessage.Content)
	assert.Equal(t, RoleUser, exchange.UserMessage.Role)
	assert.Equal(t, "it is sunny", exchange.AssistantMessage.Content)
	assert.Equal(t, RoleAssistant, exchange.AssistantMessage.Role)
}

func TestSendVoiceTranscriptionFailure(t *testing.T) {
	messages := &mockMessageRepo{}
	provider := &mockCapability{
		TranscribeFunc: func(ctx context.Context, audio []byte, filename string) (string, error) {
			return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
				platformerrors.ErrorTypeExternal, "speech-to-text failed", errors.New("bad audio"),
				"00000000-0000-0000-0000-000000000002")
		},
	}
	svc := newTestService(knownAgentRepo(), knownSessionRepo(), messages, provider)

	_, err := svc.SendVoice(context.Background(), "sess_1", []byte("noise"), "audio.webm")

	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))
	assert.Zero(t, messages.createPairCalls)
}

func TestSendVoiceSynthesisFailureSkipsPersistence(t *testing.T) {
	messages := &mockMessageRepo{}
	provider := &mockCapability{
		SynthesizeFunc: func(ctx context.Context, text, voice string) ([]byte, error) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
				platformerrors.ErrorTypeExternal, "text-to-speech failed", errors.New("tts down"),
				"00000000-0000-0000-0000-000000000003")
		},
	}
	svc := newTestService(knownAgentRepo(), knownSessionRepo(), messages, provider)

	_, err := svc.SendVoice(context.Background(), "sess_1", []byte("opus bytes"), "audio.webm")

	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))
	assert.Zero(t, messages.createPairCalls)
}

func TestDeleteSessionUnknown(t *testing.T) {
	svc := newTestService(knownAgentRepo(), &mockSessionRepo{}, &mockMessageRepo{}, &mockCapability{})

	err := svc.DeleteSession(context.Background(), "sess_missing")

	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestGetSessionReturnsHistory(t *testing.T) {
	messages := &mockMessageRepo{
		ListBySessionFunc: func(ctx context.Context, sessionID string) ([]Message, error) {
			return []Message{
				{ID: "msg_1", Role: RoleUser, Content: "hi"},
				{ID: "msg_2", Role: RoleAssistant, Content: "hello"},
			}, nil
		},
	}
	svc := newTestService(knownAgentRepo(), knownSessionRepo(), messages, &mockCapability{})

	sess, history, err := svc.GetSession(context.Background(), "sess_1")

	require.NoError(t, err)
	assert.Equal(t, "sess_1", sess.ID)
	require.Len(t, history, 2)
	assert.Equal(t, "msg_1", history[0].ID)
	assert.Equal(t, "msg_2", history[1].ID)
}
