package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "voyagent.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voyagent.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// reopening must not re-apply migrations
	db, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestSessionRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	params, err := json.Marshal(map[string]string{
		"departure_city": "madrid",
		"arrival_city":   "new york",
	})
	require.NoError(t, err)

	session := &Session{
		Query:      "from madrid to new york",
		Recipient:  "traveler@example.com",
		TripParams: JSONText(params),
	}
	require.NoError(t, CreateSession(ctx, db.DB(), session))
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, PhaseExtracting, session.Phase)

	got, err := GetSessionByID(ctx, db.DB(), session.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, session.Query, got.Query)
	assert.Equal(t, "traveler@example.com", got.Recipient)
	assert.JSONEq(t, string(params), string(got.TripParams))

	// suspend with a stored itinerary, then read it back
	got.Phase = PhaseFinalizing
	got.Itinerary = "✈️ FLIGHTS\n\nOption 1: ..."
	require.NoError(t, UpdateSession(ctx, db.DB(), got))

	resumed, err := GetSessionByID(ctx, db.DB(), session.ID)
	require.NoError(t, err)
	require.NotNil(t, resumed)
	assert.Equal(t, PhaseFinalizing, resumed.Phase)
	assert.Equal(t, got.Itinerary, resumed.Itinerary)

	// delivery completes the session
	resumed.Phase = PhaseDelivered
	resumed.DeliveredAt = sql.NullTime{Time: time.Now(), Valid: true}
	require.NoError(t, UpdateSession(ctx, db.DB(), resumed))

	final, err := GetSessionByID(ctx, db.DB(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, PhaseDelivered, final.Phase)
	assert.True(t, final.DeliveredAt.Valid)
}

func TestGetSessionByIDNotFound(t *testing.T) {
	db := testDB(t)

	got, err := GetSessionByID(context.Background(), db.DB(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetLatestSessionAndList(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	older := &Session{Query: "first", CreatedAt: time.Now().Add(-time.Hour), UpdatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, CreateSession(ctx, db.DB(), older))

	newer := &Session{Query: "second"}
	require.NoError(t, CreateSession(ctx, db.DB(), newer))

	latest, err := GetLatestSession(ctx, db.DB())
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, newer.ID, latest.ID)

	sessions, err := ListSessions(ctx, db.DB(), 10)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, newer.ID, sessions[0].ID)
}

func TestMessagesAndToolExecutions(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	session := &Session{Query: "from madrid to new york"}
	require.NoError(t, CreateSession(ctx, db.DB(), session))

	first := &Message{
		SessionID: session.ID,
		Role:      "user",
		Content:   "from madrid to new york",
		CreatedAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, CreateMessage(ctx, db.DB(), first))

	second := &Message{
		SessionID: session.ID,
		Role:      "assistant",
		Provider:  "groq",
		Model:     "llama-3.3-70b-versatile",
		ToolCalls: JSONText(`[{"id":"call_1","type":"function"}]`),
	}
	require.NoError(t, CreateMessage(ctx, db.DB(), second))

	messages, err := GetMessagesBySessionID(ctx, db.DB(), session.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "assistant", messages[1].Role)

	exec := &ToolExecution{
		SessionID:  session.ID,
		MessageID:  second.ID,
		ToolName:   "search_flights",
		Input:      `{"departure_id":"MAD"}`,
		Output:     "1 option",
		DurationMs: 120,
	}
	require.NoError(t, CreateToolExecution(ctx, db.DB(), exec))
	assert.NotEmpty(t, exec.ID)
}
