package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/voyagent/voyagent/src/agent"
	"github.com/voyagent/voyagent/src/airports"
	"github.com/voyagent/voyagent/src/aisdk"
	"github.com/voyagent/voyagent/src/mailer"
	"github.com/voyagent/voyagent/src/storage"
	"github.com/voyagent/voyagent/src/travelapi"
	"github.com/voyagent/voyagent/src/tripagent"
	"github.com/voyagent/voyagent/src/tripquery"
)

// Deliverer sends a finished itinerary to its recipient.
type Deliverer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Config wires the planner's collaborators.
type Config struct {
	DB        *storage.DB
	Agent     *agent.Agent
	Extractor *tripquery.Extractor
	Resolver  *airports.Resolver
	Search    *travelapi.Client
	Mailer    Deliverer
	Currency  string
	Logger    *slog.Logger
}

// Service runs travel-planning sessions.
type Service struct {
	db        *storage.DB
	agent     *agent.Agent
	extractor *tripquery.Extractor
	resolver  *airports.Resolver
	search    *travelapi.Client
	mailer    Deliverer
	currency  string
	logger    *slog.Logger
	now       func() time.Time
}

// Result is the outcome of a planning turn.
type Result struct {
	SessionID string
	Phase     Phase
	Itinerary string
}

// NewService creates a planner service.
func NewService(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		db:        cfg.DB,
		agent:     cfg.Agent,
		extractor: cfg.Extractor,
		resolver:  cfg.Resolver,
		search:    cfg.Search,
		mailer:    cfg.Mailer,
		currency:  cfg.Currency,
		logger:    logger.With("component", "planner"),
		now:       time.Now,
	}
}

// Plan runs one travel request up to the finalizing pause. The returned
// session is persisted with its itinerary before delivery happens, so a
// failed or skipped delivery never loses the plan.
func (s *Service) Plan(ctx context.Context, query, recipient string) (*Result, error) {
	session := &storage.Session{
		Query:     query,
		Recipient: recipient,
		Phase:     PhaseExtracting,
	}
	if err := storage.CreateSession(ctx, s.db.DB(), session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	userMsg := &aisdk.Message{Role: "user", Content: query}
	if err := s.persistMessage(ctx, session.ID, userMsg); err != nil {
		return nil, err
	}

	conversation := &aisdk.Conversation{Messages: []*aisdk.Message{userMsg}}

	assistant, err := s.agent.SendMessage(ctx, conversation, nil)
	if err != nil {
		return nil, s.fail(ctx, session, fmt.Errorf("model turn failed: %w", err))
	}
	conversation.Messages = append(conversation.Messages, assistant)
	if err := s.persistMessage(ctx, session.ID, assistant); err != nil {
		return nil, err
	}

	if len(assistant.ToolCalls) == 0 {
		// the model answered directly, its text is the itinerary
		session.Itinerary = assistant.Content
		return s.suspend(ctx, session)
	}

	session.Phase = PhaseTooling
	if err := storage.UpdateSession(ctx, s.db.DB(), session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	itineraryText, err := s.runToolingRound(ctx, session)
	if err != nil {
		return nil, s.fail(ctx, session, err)
	}

	toolMsg := &aisdk.Message{
		Role:       "tool",
		Name:       assistant.ToolCalls[0].Function.Name,
		ToolCallID: assistant.ToolCalls[0].ID,
		Content:    itineraryText,
	}
	conversation.Messages = append(conversation.Messages, toolMsg)
	if err := s.persistMessage(ctx, session.ID, toolMsg); err != nil {
		return nil, err
	}

	session.Itinerary = itineraryText
	return s.suspend(ctx, session)
}

// Resume completes a paused session: the itinerary is converted to an HTML
// email by the model and delivered. Failures leave the session paused with
// its itinerary intact, so resuming again is safe.
func (s *Service) Resume(ctx context.Context, sessionID string) (*Result, error) {
	session, err := storage.GetSessionByID(ctx, s.db.DB(), sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	switch session.Phase {
	case PhaseFinalizing:
	case PhaseDelivered:
		return nil, fmt.Errorf("%w: %s", ErrAlreadyDelivered, sessionID)
	default:
		return nil, fmt.Errorf("%w: %s is %s", ErrSessionNotPaused, sessionID, session.Phase)
	}

	htmlBody, err := s.composeEmailBody(ctx, session.Itinerary)
	if err != nil {
		return nil, fmt.Errorf("failed to compose email body: %w", err)
	}

	subject := s.emailSubject(session)
	if err := s.mailer.Send(ctx, mailer.Message{
		To:       session.Recipient,
		Subject:  subject,
		HTMLBody: htmlBody,
	}); err != nil {
		s.logger.Warn("itinerary delivery failed, session stays paused",
			"session_id", session.ID, "error", err)
		return nil, fmt.Errorf("failed to deliver itinerary: %w", err)
	}

	session.Phase = PhaseDelivered
	session.DeliveredAt.Time = s.now()
	session.DeliveredAt.Valid = true
	if err := storage.UpdateSession(ctx, s.db.DB(), session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	s.logger.Info("session delivered", "session_id", session.ID, "to", session.Recipient)
	return &Result{SessionID: session.ID, Phase: session.Phase, Itinerary: session.Itinerary}, nil
}

// Sessions lists recent sessions, most recent first.
func (s *Service) Sessions(ctx context.Context, limit int) ([]storage.Session, error) {
	if limit <= 0 {
		limit = 20
	}
	return storage.ListSessions(ctx, s.db.DB(), limit)
}

// composeEmailBody asks the model to turn the itinerary into an HTML email
// body. Model failure degrades to a preformatted wrapper so delivery can
// still proceed.
func (s *Service) composeEmailBody(ctx context.Context, itineraryText string) (string, error) {
	req := &aisdk.ChatCompletionRequest{
		Messages: []*aisdk.Message{
			{Role: "system", Content: tripagent.EmailSystemPrompt},
			{Role: "user", Content: itineraryText},
		},
	}
	resp, err := s.agent.Model.CreateChatCompletion(ctx, req)
	if err != nil || len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		s.logger.Warn("email body synthesis failed, using preformatted fallback", "error", err)
		return "<html><body><pre>" + itineraryText + "</pre></body></html>", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *Service) emailSubject(session *storage.Session) string {
	var params tripParams
	if err := json.Unmarshal(session.TripParams, &params); err == nil && params.ArrivalCity != "" {
		return fmt.Sprintf("Your trip to %s", params.ArrivalCity)
	}
	return "Your travel itinerary"
}

// suspend persists the itinerary and parks the session at the delivery gate.
func (s *Service) suspend(ctx context.Context, session *storage.Session) (*Result, error) {
	session.Phase = PhaseFinalizing
	if err := storage.UpdateSession(ctx, s.db.DB(), session); err != nil {
		return nil, fmt.Errorf("failed to suspend session: %w", err)
	}
	s.logger.Info("session paused before delivery", "session_id", session.ID)
	return &Result{SessionID: session.ID, Phase: session.Phase, Itinerary: session.Itinerary}, nil
}

// fail marks the session failed and returns the original error.
func (s *Service) fail(ctx context.Context, session *storage.Session, cause error) error {
	session.Phase = PhaseFailed
	session.Failure = cause.Error()
	if updateErr := storage.UpdateSession(ctx, s.db.DB(), session); updateErr != nil {
		s.logger.Error("failed to record session failure",
			"session_id", session.ID, "error", updateErr)
	}
	return cause
}

func (s *Service) persistMessage(ctx context.Context, sessionID string, msg *aisdk.Message) error {
	record := &storage.Message{
		SessionID: sessionID,
		Role:      msg.Role,
		Content:   msg.Content,
	}
	if s.agent != nil && s.agent.Model != nil {
		record.Model = s.agent.Model.ModelID()
	}
	if len(msg.ToolCalls) > 0 {
		raw, err := json.Marshal(msg.ToolCalls)
		if err != nil {
			return fmt.Errorf("failed to marshal tool calls: %w", err)
		}
		record.ToolCalls = storage.JSONText(raw)
	}
	if err := storage.CreateMessage(ctx, s.db.DB(), record); err != nil {
		return fmt.Errorf("failed to persist message: %w", err)
	}
	return nil
}

// tripParams is the session row's trip_params document.
type tripParams struct {
	DepartureCity string `json:"departure_city"`
	ArrivalCity   string `json:"arrival_city"`
	DepartureCode string `json:"departure_code"`
	ArrivalCode   string `json:"arrival_code"`
	OutboundDate  string `json:"outbound_date"`
	ReturnDate    string `json:"return_date"`
	HotelClass    string `json:"hotel_class,omitempty"`
}
