package inference

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"agent-platform/services/agent-api/internal/config"
	"agent-platform/services/agent-api/internal/domain/chat"
	"agent-platform/services/agent-api/internal/infrastructure/metrics"
	"agent-platform/services/agent-api/internal/utils/platformerrors"
)

const (
	opChat       = "chat_completion"
	opTranscribe = "transcription"
	opSynthesize = "speech"
)

// OpenAIClient adapts the go-openai SDK to the chat.Capability interface.
// It is constructed once at startup and injected into the pipeline service;
// every upstream failure is collapsed into an EXTERNAL platform error with
// the provider's fault logged, never surfaced.
type OpenAIClient struct {
	cfg    *config.Config
	client *openai.Client
	log    zerolog.Logger
}

var _ chat.Capability = (*OpenAIClient)(nil)

func NewOpenAIClient(cfg *config.Config, log zerolog.Logger) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.ProviderTimeout}

	return &OpenAIClient{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientConfig),
		log:    log.With().Str("component", "openai-client").Logger(),
	}
}

// GenerateReply implements chat.Capability.
func (c *OpenAIClient) GenerateReply(ctx context.Context, messages []openai.ChatCompletionMessage, model string) (string, error) {
	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	})
	if err != nil {
		metrics.RecordProviderCall(opChat, "error", time.Since(start).Seconds())
		return "", c.asExternalError(ctx, err, opChat, "chat completion request failed",
			"e5b9d3f7-1a4c-48e2-b6d0-7f1b3d5e9a84")
	}
	metrics.RecordProviderCall(opChat, "ok", time.Since(start).Seconds())

	if len(resp.Choices) == 0 {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"chat completion returned no choices", nil, "b1d5f9a3-7c0e-44b6-a2d8-3f7b9d1e5c88")
	}

	content := resp.Choices[0].Message.Content
	c.log.Debug().
		Str("model", model).
		Int("messages", len(messages)).
		Int("reply_chars", len(content)).
		Int("total_tokens", resp.Usage.TotalTokens).
		Msg("chat completion returned")
	return content, nil
}

// Transcribe implements chat.Capability. The filename carries the audio
// encoding hint the provider uses to detect the container format.
func (c *OpenAIClient) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if filename == "" {
		filename = "audio.webm"
	}

	start := time.Now()
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.cfg.STTModel,
		FilePath: filename,
		Reader:   bytes.NewReader(audio),
	})
	if err != nil {
		metrics.RecordProviderCall(opTranscribe, "error", time.Since(start).Seconds())
		return "", c.asExternalError(ctx, err, opTranscribe, "transcription request failed",
			"f3a7c1e5-9b2d-46f8-b0c4-5d9f1b3e7a92")
	}
	metrics.RecordProviderCall(opTranscribe, "ok", time.Since(start).Seconds())

	c.log.Debug().
		Str("file", filename).
		Int("audio_bytes", len(audio)).
		Int("text_chars", len(resp.Text)).
		Msg("transcription returned")
	return resp.Text, nil
}

// Synthesize implements chat.Capability, returning MP3 bytes.
func (c *OpenAIClient) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if voice == "" {
		voice = c.cfg.TTSVoice
	}

	start := time.Now()
	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(c.cfg.TTSModel),
		Input:          text,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		metrics.RecordProviderCall(opSynthesize, "error", time.Since(start).Seconds())
		return nil, c.asExternalError(ctx, err, opSynthesize, "speech request failed",
			"a9c3e7f1-5d8b-42a4-b6e0-9f3b5d7e1c96")
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		metrics.RecordProviderCall(opSynthesize, "error", time.Since(start).Seconds())
		return nil, c.asExternalError(ctx, err, opSynthesize, "reading speech response failed",
			"c7e1a5b9-3f0d-48c6-b2a4-1b5d7f9e3c00")
	}
	metrics.RecordProviderCall(opSynthesize, "ok", time.Since(start).Seconds())
	metrics.SynthesizedAudioBytes.Add(float64(len(audio)))

	c.log.Debug().
		Str("voice", voice).
		Int("text_chars", len(text)).
		Int("audio_bytes", len(audio)).
		Msg("speech synthesis returned")
	return audio, nil
}

// asExternalError logs the provider fault with full detail and returns a
// generic EXTERNAL error; the caller must not see the upstream cause.
func (c *OpenAIClient) asExternalError(ctx context.Context, err error, operation, message, uuid string) *platformerrors.PlatformError {
	event := c.log.Error().Err(err).Str("operation", operation)

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		event = event.Int("upstream_status", apiErr.HTTPStatusCode).Str("upstream_type", apiErr.Type)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		event = event.Int("upstream_status", reqErr.HTTPStatusCode)
	}
	event.Msg(message)

	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		message, err, uuid)
}
