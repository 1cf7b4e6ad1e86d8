package storage

import (
	"database/sql"
	"time"
)

// Session phases. The planner drives transitions; storage only records them.
const (
	PhaseExtracting = "extracting"
	PhaseTooling    = "tooling"
	PhaseFinalizing = "finalizing"
	PhaseDelivered  = "delivered"
	PhaseFailed     = "failed"
)

// Session is one travel-planning request. A session in the finalizing phase
// holds a complete itinerary and is waiting for an explicit resume.
type Session struct {
	ID          string       `json:"id" db:"id"`
	Phase       string       `json:"phase" db:"phase"`
	Query       string       `json:"query" db:"query"`
	Recipient   string       `json:"recipient" db:"recipient"`
	TripParams  JSONText     `json:"trip_params" db:"trip_params"`
	Itinerary   string       `json:"itinerary" db:"itinerary"`
	Failure     string       `json:"failure" db:"failure"`
	DeliveredAt sql.NullTime `json:"delivered_at" db:"delivered_at"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// Message is one conversation turn within a session.
type Message struct {
	ID        string    `json:"id" db:"id"`
	SessionID string    `json:"session_id" db:"session_id"`
	Role      string    `json:"role" db:"role"`
	Provider  string    `json:"provider" db:"provider"`
	Model     string    `json:"model" db:"model"`
	Content   string    `json:"content" db:"content"`
	ToolCalls JSONText  `json:"tool_calls" db:"tool_calls"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ToolExecution records one tool invocation for diagnostics.
type ToolExecution struct {
	ID         string    `json:"id" db:"id"`
	SessionID  string    `json:"session_id" db:"session_id"`
	MessageID  string    `json:"message_id" db:"message_id"`
	ToolName   string    `json:"tool_name" db:"tool_name"`
	Input      string    `json:"input" db:"input"`
	Output     string    `json:"output" db:"output"`
	Error      string    `json:"error" db:"error"`
	DurationMs int64     `json:"duration_ms" db:"duration_ms"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
