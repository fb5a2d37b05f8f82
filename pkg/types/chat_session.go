package types

type ChatSessionType string

const (
	CHAT_SESSION_TYPE_GENERAL   ChatSessionType = "general"
	CHAT_SESSION_TYPE_DOCUMENT  ChatSessionType = "document"
	CHAT_SESSION_TYPE_KNOWLEDGE ChatSessionType = "knowledge"

	DEFAULT_CHAT_SESSION_TITLE = "New Chat"
)

type MessageRole string

const (
	MESSAGE_ROLE_USER      MessageRole = "user"
	MESSAGE_ROLE_ASSISTANT MessageRole = "assistant"
	MESSAGE_ROLE_SYSTEM    MessageRole = "system"
)

type ChatSession struct {
	ID        string          `json:"id" validate:"required"`
	Type      ChatSessionType `json:"type"`
	RelatedID string          `json:"relatedId"`
	Title     string          `json:"title"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

// ChatSessionHistory is a session together with its message history.
type ChatSessionHistory struct {
	ChatSession
	Messages []ChatMessage `json:"messages" validate:"dive"`
}

type ChatMessage struct {
	ID        string      `json:"id" validate:"required"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt string      `json:"createdAt"`
}

type CreateChatSessionRequest struct {
	Type      ChatSessionType `json:"type"`
	RelatedID string          `json:"relatedId"`
	Title     string          `json:"title"`
}

type SendMessageRequest struct {
	Content          string `json:"content"`
	UseKnowledgeBase bool   `json:"useKnowledgeBase,omitempty"`
}

// ChatSessionView is the list-item shape used by chat screens.
type ChatSessionView struct {
	ID        string
	Title     string
	Type      ChatSessionType
	RelatedID string
	UpdatedAt string
}

type ChatMessageView struct {
	ID        string
	Role      MessageRole
	Content   string
	CreatedAt string
	FromUser  bool
}
