package internal

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Greeting is shown by clients while a conversation has no turns yet.
const Greeting = "Hi, how can I help you?"

// Message is a single conversation turn. Treat it as a value: once appended
// to a log it is never modified.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content, CreatedAt: time.Now()}
}

type ChatHistory struct {
	Messages []Message `json:"messages"`
	Greeting string    `json:"greeting,omitempty"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

type SendMessageResponse struct {
	Reply Message `json:"reply"`
	Model string  `json:"model"`
	Topic string  `json:"topic"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}
