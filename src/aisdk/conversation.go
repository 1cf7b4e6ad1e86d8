package aisdk

import (
	"time"
)

// Conversation represents an ongoing conversation with the travel agent.
type Conversation struct {
	ID            string
	Messages      []*Message
	SystemPrompt  string
	Tools         []*ChatTool
	CreatedAt     time.Time
	LastMessageAt time.Time
	TurnCount     int
}
