package models

import (
	"encoding/json"
	"time"
)

// Role identifies who produced a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleThinking  Role = "thinking"
	RoleError     Role = "error"
)

// Message is a single entry in a conversation. Messages are never mutated after
// they are appended; the thinking placeholder is replaced wholesale.
type Message struct {
	ID        string          `json:"id"`
	Role      Role            `json:"role"`
	Content   string          `json:"content"`
	Context   json.RawMessage `json:"context,omitempty"` // only on assistant messages
	CreatedAt time.Time       `json:"created_at"`
}

// NewUserMessage creates a user message
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content, CreatedAt: time.Now()}
}

// NewThinkingMessage creates the pending-turn placeholder
func NewThinkingMessage() Message {
	return Message{Role: RoleThinking, Content: ThinkingText, CreatedAt: time.Now()}
}

// NewAssistantMessage creates an assistant message from a reply
func NewAssistantMessage(reply *Reply) Message {
	msg := Message{Role: RoleAssistant, CreatedAt: time.Now()}
	if reply != nil {
		msg.Content = reply.Content
		if len(reply.Context) > 0 {
			msg.Context = append(json.RawMessage(nil), reply.Context...)
		}
	}
	return msg
}

// NewErrorMessage creates the generic error message shown for a failed turn
func NewErrorMessage() Message {
	return Message{Role: RoleError, Content: GenericErrorText, CreatedAt: time.Now()}
}

// IsPending reports whether the message is a thinking placeholder
func (m Message) IsPending() bool {
	return m.Role == RoleThinking
}
