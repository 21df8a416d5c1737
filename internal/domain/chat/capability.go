package chat

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Capability is the upstream AI provider, treated as a black box. Every
// failed call returns an EXTERNAL platform error; callers never see the
// provider's raw fault.
type Capability interface {
	// GenerateReply sends the assembled conversation and returns the
	// assistant's reply text.
	GenerateReply(ctx context.Context, messages []openai.ChatCompletionMessage, model string) (string, error)

	// Transcribe converts raw audio bytes to text. The filename hint conveys
	// the audio encoding to the provider.
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)

	// Synthesize converts text to encoded speech audio (MP3).
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}
