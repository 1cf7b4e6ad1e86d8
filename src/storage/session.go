package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
)

const sessionColumns = `id, phase, query, recipient, trip_params, itinerary, failure, delivered_at, created_at, updated_at`

// GetSessionByID retrieves a session by its ID
func GetSessionByID(ctx context.Context, db sqlscan.Querier, sessionID string) (*Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	var s Session
	err := sqlscan.Get(ctx, db, &s, query, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, err
	}
	return &s, nil
}

// GetLatestSession retrieves the most recently updated session
func GetLatestSession(ctx context.Context, db sqlscan.Querier) (*Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY updated_at DESC LIMIT 1`
	var s Session
	err := sqlscan.Get(ctx, db, &s, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // No sessions exist
		}
		return nil, err
	}
	return &s, nil
}

// ListSessions retrieves sessions ordered most recent first.
func ListSessions(ctx context.Context, db sqlscan.Querier, limit int) ([]Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY updated_at DESC LIMIT ?`
	var sessions []Session
	if err := sqlscan.Select(ctx, db, &sessions, query, limit); err != nil {
		return nil, err
	}
	return sessions, nil
}

// CreateSession creates a new session in the database
func CreateSession(ctx context.Context, db Execer, session *Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.Phase == "" {
		session.Phase = PhaseExtracting
	}
	if session.TripParams == nil {
		session.TripParams = JSONText("{}")
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = time.Now()
	}

	query := `INSERT INTO sessions (` + sessionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query,
		session.ID,
		session.Phase,
		session.Query,
		session.Recipient,
		session.TripParams,
		session.Itinerary,
		session.Failure,
		session.DeliveredAt,
		session.CreatedAt,
		session.UpdatedAt,
	)
	return err
}

// UpdateSession updates an existing session
func UpdateSession(ctx context.Context, db Execer, session *Session) error {
	session.UpdatedAt = time.Now()

	query := `UPDATE sessions SET phase = ?, recipient = ?, trip_params = ?, itinerary = ?, failure = ?, delivered_at = ?, updated_at = ? WHERE id = ?`
	_, err := db.ExecContext(ctx, query,
		session.Phase,
		session.Recipient,
		session.TripParams,
		session.Itinerary,
		session.Failure,
		session.DeliveredAt,
		session.UpdatedAt,
		session.ID,
	)
	return err
}

// GetMessagesBySessionID retrieves all messages for a session ordered by creation time
func GetMessagesBySessionID(ctx context.Context, db sqlscan.Querier, sessionID string) ([]Message, error) {
	query := `SELECT id, session_id, role, provider, model, content, tool_calls, created_at FROM messages WHERE session_id = ? ORDER BY created_at`
	var messages []Message
	err := sqlscan.Select(ctx, db, &messages, query, sessionID)
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// CreateMessage creates a new message in the database
func CreateMessage(ctx context.Context, db Execer, message *Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	query := `INSERT INTO messages (id, session_id, role, provider, model, content, tool_calls, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query,
		message.ID,
		message.SessionID,
		message.Role,
		message.Provider,
		message.Model,
		message.Content,
		message.ToolCalls,
		message.CreatedAt,
	)
	return err
}

// CreateToolExecution creates a new tool execution record in the database
func CreateToolExecution(ctx context.Context, db Execer, execution *ToolExecution) error {
	if execution.ID == "" {
		execution.ID = uuid.New().String()
	}
	if execution.CreatedAt.IsZero() {
		execution.CreatedAt = time.Now()
	}

	query := `INSERT INTO tool_executions (id, session_id, message_id, tool_name, input, output, error, duration_ms, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query,
		execution.ID,
		execution.SessionID,
		execution.MessageID,
		execution.ToolName,
		execution.Input,
		execution.Output,
		execution.Error,
		execution.DurationMs,
		execution.CreatedAt,
	)
	return err
}
