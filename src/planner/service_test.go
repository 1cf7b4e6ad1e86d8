package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagent/voyagent/src/airports"
	"github.com/voyagent/voyagent/src/aisdk"
	"github.com/voyagent/voyagent/src/mailer"
	"github.com/voyagent/voyagent/src/storage"
	"github.com/voyagent/voyagent/src/travelapi"
	"github.com/voyagent/voyagent/src/tripagent"
	"github.com/voyagent/voyagent/src/tripquery"
)

type fakeModel struct {
	responses []*aisdk.ChatCompletionResponse
	errs      []error
	calls     int
}

func (m *fakeModel) CreateChatCompletion(ctx context.Context, req *aisdk.ChatCompletionRequest) (*aisdk.ChatCompletionResponse, error) {
	i := m.calls
	m.calls++
	if i < len(m.errs) && m.errs[i] != nil {
		return nil, m.errs[i]
	}
	if i >= len(m.responses) {
		return nil, fmt.Errorf("unexpected model call %d", i)
	}
	return m.responses[i], nil
}

func (m *fakeModel) ModelID() string { return "fake-model" }

func assistantToolCallResponse() *aisdk.ChatCompletionResponse {
	return &aisdk.ChatCompletionResponse{
		Choices: []aisdk.Choice{{
			Message: aisdk.Message{
				Role: "assistant",
				ToolCalls: []aisdk.ToolCall{{
					ID:   "call_1",
					Type: "function",
					Function: aisdk.FunctionCall{
						Name:      "search_flights",
						Arguments: json.RawMessage(`{}`),
					},
				}},
			},
		}},
	}
}

func assistantTextResponse(text string) *aisdk.ChatCompletionResponse {
	return &aisdk.ChatCompletionResponse{
		Choices: []aisdk.Choice{{
			Message: aisdk.Message{Role: "assistant", Content: text},
		}},
	}
}

type fakeMailer struct {
	sent    []mailer.Message
	failure error
}

func (m *fakeMailer) Send(ctx context.Context, msg mailer.Message) error {
	if m.failure != nil {
		return m.failure
	}
	m.sent = append(m.sent, msg)
	return nil
}

// searchServer serves canned flight and hotel responses and counts requests.
func searchServer(t *testing.T, requests *atomic.Int64) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			requests.Add(1)
		}
		switch r.URL.Query().Get("engine") {
		case "google_flights":
			w.Write([]byte(`{
				"search_metadata": {"google_flights_url": "https://flights.test"},
				"best_flights": [{
					"flights": [{
						"departure_airport": {"name": "Madrid Barajas", "id": "MAD", "time": "2025-10-01 10:30"},
						"arrival_airport": {"name": "John F Kennedy", "id": "JFK", "time": "2025-10-01 13:05"},
						"airline": "Iberia",
						"flight_number": "IB 6253"
					}],
					"price": 820
				}]
			}`))
		case "google_hotels":
			assert.Equal(t, "new york", r.URL.Query().Get("q"), "hotel query is the arrival city")
			assert.Equal(t, "8", r.URL.Query().Get("sort_by"), "hotels sorted by rating")
			w.Write([]byte(`{
				"properties": [{
					"name": "The Manhattan",
					"hotel_class": "4-star hotel",
					"overall_rating": 4.4,
					"reviews": 2311,
					"rate_per_night": {"lowest": "$289", "extracted_lowest": 289}
				}]
			}`))
		default:
			t.Errorf("unexpected engine %q", r.URL.Query().Get("engine"))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

type fixture struct {
	service *Service
	db      *storage.DB
	model   *fakeModel
	mail    *fakeMailer
}

func newFixture(t *testing.T, model *fakeModel, requests *atomic.Int64) *fixture {
	t.Helper()
	logger := slog.Default()

	db, err := storage.Open(filepath.Join(t.TempDir(), "voyagent.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	resolver, err := airports.NewResolver(logger)
	require.NoError(t, err)

	server := searchServer(t, requests)
	search, err := travelapi.NewClient(travelapi.Config{APIKey: "test", BaseURL: server.URL})
	require.NoError(t, err)

	ag, err := tripagent.NewAgent(model, search, resolver, logger)
	require.NoError(t, err)

	mail := &fakeMailer{}
	service := NewService(Config{
		DB:        db,
		Agent:     ag,
		Extractor: tripquery.NewExtractor(logger),
		Resolver:  resolver,
		Search:    search,
		Mailer:    mail,
		Currency:  "USD",
		Logger:    logger,
	})

	return &fixture{service: service, db: db, model: model, mail: mail}
}

const planQuery = "flights and hotels from Madrid to New York from 1st Oct to 7th Oct 2025, 4 star hotel"

func TestPlanWithToolingRound(t *testing.T) {
	var requests atomic.Int64
	f := newFixture(t, &fakeModel{responses: []*aisdk.ChatCompletionResponse{assistantToolCallResponse()}}, &requests)
	ctx := context.Background()

	result, err := f.service.Plan(ctx, planQuery, "traveler@example.com")
	require.NoError(t, err)

	assert.Equal(t, PhaseFinalizing, result.Phase)
	assert.Contains(t, result.Itinerary, "✈️ FLIGHTS")
	assert.Contains(t, result.Itinerary, "Iberia IB 6253")
	assert.Contains(t, result.Itinerary, "🏨 HOTELS")
	assert.Contains(t, result.Itinerary, "The Manhattan")
	assert.Contains(t, result.Itinerary, "DAILY ITINERARY FOR NEW YORK")
	assert.EqualValues(t, 2, requests.Load(), "one flight and one hotel search")

	session, err := storage.GetSessionByID(ctx, f.db.DB(), result.SessionID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, PhaseFinalizing, session.Phase)
	assert.Equal(t, result.Itinerary, session.Itinerary)

	var params tripParams
	require.NoError(t, json.Unmarshal(session.TripParams, &params))
	assert.Equal(t, "MAD", params.DepartureCode)
	assert.Equal(t, "JFK", params.ArrivalCode)
	assert.Equal(t, "2025-10-01", params.OutboundDate)
	assert.Equal(t, "4", params.HotelClass)

	messages, err := storage.GetMessagesBySessionID(ctx, f.db.DB(), result.SessionID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "assistant", messages[1].Role)
	assert.NotEmpty(t, messages[1].ToolCalls)
	assert.Equal(t, "tool", messages[2].Role)

	var executions int
	require.NoError(t, f.db.DB().
		QueryRow(`SELECT COUNT(*) FROM tool_executions WHERE session_id = ?`, result.SessionID).
		Scan(&executions))
	assert.Equal(t, 2, executions, "both searches recorded")
}

func TestPlanDirectAnswer(t *testing.T) {
	f := newFixture(t, &fakeModel{responses: []*aisdk.ChatCompletionResponse{
		assistantTextResponse("I need more details about your trip."),
	}}, nil)

	result, err := f.service.Plan(context.Background(), "can you help me travel somewhere from madrid to rome", "traveler@example.com")
	require.NoError(t, err)

	assert.Equal(t, PhaseFinalizing, result.Phase)
	assert.Equal(t, "I need more details about your trip.", result.Itinerary)
}

func TestPlanExtractionFailure(t *testing.T) {
	var requests atomic.Int64
	f := newFixture(t, &fakeModel{responses: []*aisdk.ChatCompletionResponse{assistantToolCallResponse()}}, &requests)
	ctx := context.Background()

	_, err := f.service.Plan(ctx, "show me something nice", "traveler@example.com")
	require.ErrorIs(t, err, tripquery.ErrNoCityPattern)
	assert.Zero(t, requests.Load(), "no searches run after an extraction failure")

	sessions, err := f.service.Sessions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, PhaseFailed, sessions[0].Phase)
	assert.NotEmpty(t, sessions[0].Failure)
}

func TestPlanUnknownAirport(t *testing.T) {
	var requests atomic.Int64
	f := newFixture(t, &fakeModel{responses: []*aisdk.ChatCompletionResponse{assistantToolCallResponse()}}, &requests)

	_, err := f.service.Plan(context.Background(), "from atlantis to xanadu", "traveler@example.com")
	require.ErrorIs(t, err, ErrAirportNotFound)
	assert.Contains(t, err.Error(), "atlantis")
	assert.Zero(t, requests.Load(), "no searches run after a resolution failure")
}

func TestPlanDegradesFailedSearches(t *testing.T) {
	f := newFixture(t, &fakeModel{responses: []*aisdk.ChatCompletionResponse{assistantToolCallResponse()}}, nil)

	// both searches hit a broken provider
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(broken.Close)
	search, err := travelapi.NewClient(travelapi.Config{APIKey: "test", BaseURL: broken.URL})
	require.NoError(t, err)
	f.service.search = search

	result, err := f.service.Plan(context.Background(), planQuery, "traveler@example.com")
	require.NoError(t, err)

	assert.Equal(t, PhaseFinalizing, result.Phase)
	assert.Contains(t, result.Itinerary, "No flights found.")
	assert.Contains(t, result.Itinerary, "No hotels found.")
	assert.Contains(t, result.Itinerary, "DAILY ITINERARY FOR NEW YORK")
}

func TestResumeDeliversAndCompletes(t *testing.T) {
	f := newFixture(t, &fakeModel{responses: []*aisdk.ChatCompletionResponse{
		assistantToolCallResponse(),
		assistantTextResponse("<html><body><h1>Your trip</h1></body></html>"),
	}}, nil)
	ctx := context.Background()

	planned, err := f.service.Plan(ctx, planQuery, "traveler@example.com")
	require.NoError(t, err)

	result, err := f.service.Resume(ctx, planned.SessionID)
	require.NoError(t, err)
	assert.Equal(t, PhaseDelivered, result.Phase)

	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, "traveler@example.com", f.mail.sent[0].To)
	assert.Equal(t, "Your trip to new york", f.mail.sent[0].Subject)
	assert.Contains(t, f.mail.sent[0].HTMLBody, "<h1>Your trip</h1>")

	_, err = f.service.Resume(ctx, planned.SessionID)
	require.ErrorIs(t, err, ErrAlreadyDelivered)
}

func TestResumeDeliveryFailureKeepsSessionPaused(t *testing.T) {
	f := newFixture(t, &fakeModel{responses: []*aisdk.ChatCompletionResponse{
		assistantToolCallResponse(),
		assistantTextResponse("<html><body>trip</body></html>"),
		assistantTextResponse("<html><body>trip</body></html>"),
	}}, nil)
	ctx := context.Background()

	planned, err := f.service.Plan(ctx, planQuery, "traveler@example.com")
	require.NoError(t, err)

	f.mail.failure = fmt.Errorf("smtp gateway on fire")
	_, err = f.service.Resume(ctx, planned.SessionID)
	require.Error(t, err)

	session, err := storage.GetSessionByID(ctx, f.db.DB(), planned.SessionID)
	require.NoError(t, err)
	assert.Equal(t, PhaseFinalizing, session.Phase, "failed delivery leaves the pause intact")
	assert.Equal(t, planned.Itinerary, session.Itinerary, "itinerary survives the failure")

	// retry once the mailer recovers
	f.mail.failure = nil
	result, err := f.service.Resume(ctx, planned.SessionID)
	require.NoError(t, err)
	assert.Equal(t, PhaseDelivered, result.Phase)
}

func TestResumeUnknownSession(t *testing.T) {
	f := newFixture(t, &fakeModel{}, nil)

	_, err := f.service.Resume(context.Background(), "no-such-session")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestResumeNotPaused(t *testing.T) {
	f := newFixture(t, &fakeModel{}, nil)
	ctx := context.Background()

	session := &storage.Session{Query: "pending"}
	require.NoError(t, storage.CreateSession(ctx, f.db.DB(), session))

	_, err := f.service.Resume(ctx, session.ID)
	require.ErrorIs(t, err, ErrSessionNotPaused)
}

func TestEmailBodyFallsBackWhenModelFails(t *testing.T) {
	f := newFixture(t, &fakeModel{
		responses: []*aisdk.ChatCompletionResponse{assistantToolCallResponse(), nil},
		errs:      []error{nil, fmt.Errorf("model unavailable")},
	}, nil)
	ctx := context.Background()

	planned, err := f.service.Plan(ctx, planQuery, "traveler@example.com")
	require.NoError(t, err)

	result, err := f.service.Resume(ctx, planned.SessionID)
	require.NoError(t, err)
	assert.Equal(t, PhaseDelivered, result.Phase)

	require.Len(t, f.mail.sent, 1)
	assert.Contains(t, f.mail.sent[0].HTMLBody, "<pre>")
	assert.Contains(t, f.mail.sent[0].HTMLBody, "FLIGHTS")
}
