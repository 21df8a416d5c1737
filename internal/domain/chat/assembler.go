package chat

import (
	openai "github.com/sashabaranov/go-openai"
)

// BuildChatMessages constructs the provider message array: the agent's
// system prompt first, then every prior turn in creation order with its
// original role, then the new user text. The full history is replayed on
// every turn; nothing is filtered or truncated.
func BuildChatMessages(systemPrompt string, history []Message, userText string) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, msg := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userText,
	})
	return messages
}
