package ai

// Role identifies the author of a chat message.
type Role string

const (
	// RoleSystem carries instructions and grounding context.
	RoleSystem Role = "system"
	// RoleUser carries the user's question.
	RoleUser Role = "user"
	// RoleAssistant carries a prior model answer.
	RoleAssistant Role = "assistant"
)

// Message is one entry in a chat exchange.
type Message struct {
	Role    Role
	Content string
}
