// Package dialogue runs one chat turn end to end: classification, memory
// update, reply selection and the reply payload. It is the only entry point
// of the chatbot core.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"kisan-advisory/internal/chatbot/classifier"
	"kisan-advisory/internal/chatbot/knowledge"
	"kisan-advisory/internal/chatbot/memory"
	"kisan-advisory/internal/chatbot/response"
	"kisan-advisory/internal/common/metrics"
	"kisan-advisory/internal/common/observability"
	"kisan-advisory/internal/models"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var (
	ErrTurnFailed           = errors.New("TURN_PROCESSING_FAILED")
	ErrConversationNotFound = errors.New("CONVERSATION_NOT_FOUND")
	ErrInvalidRole          = errors.New("INVALID_ROLE")
)

const archiveTimeout = 5 * time.Second

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// Classifier resolves a message to an intent.
type Classifier interface {
	Classify(message string) classifier.Result
}

// Archiver receives every answered turn. Failures are logged, never
// surfaced.
type Archiver interface {
	IndexTurn(ctx context.Context, record models.TurnRecord) error
}

type Manager struct {
	classifier Classifier
	responder  response.Responder
	store      memory.Store
	catalog    *knowledge.Catalog
	archive    Archiver
	obs        *observability.Observability
	logger     Logger

	now   func() time.Time
	newID func() string
	// archiveSync indexes inline instead of in a goroutine.
	archiveSync bool
	inflight    sync.WaitGroup
}

type Option func(*Manager)

func WithArchive(a Archiver) Option {
	return func(m *Manager) { m.archive = a }
}

// WithSyncArchive indexes turns before ProcessMessage returns.
func WithSyncArchive() Option {
	return func(m *Manager) { m.archiveSync = true }
}

func WithObservability(o *observability.Observability) Option {
	return func(m *Manager) { m.obs = o }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(cls Classifier, responder response.Responder, store memory.Store, catalog *knowledge.Catalog, log Logger, opts ...Option) *Manager {
	m := &Manager{
		classifier: cls,
		responder:  responder,
		store:      store,
		catalog:    catalog,
		obs:        observability.NewNoop(),
		logger:     log.With(map[string]interface{}{"component": "dialogue-manager"}),
		now:        func() time.Time { return time.Now().UTC() },
		newID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ProcessMessage handles one turn. It never fails: any error or panic while
// classifying, updating memory or selecting the reply yields an ErrorReply.
// An empty userID is anonymous and touches no stored state.
func (m *Manager) ProcessMessage(ctx context.Context, message string, msgContext map[string]interface{}, userID string) Reply {
	start := time.Now()
	conversationID := userID
	if conversationID == "" {
		conversationID = AnonymousConversationID
	}

	ctx, span := m.obs.StartTurnSpan(ctx, userID)
	defer span.End()

	reply, turnID, err := m.turn(ctx, message, msgContext, userID, conversationID)
	status := "ok"
	if err != nil {
		status = "error"
		metrics.ChatTurnErrors.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		m.logger.Error("turn failed, returning error reply", map[string]interface{}{
			"conversationId": conversationID,
			"error":          err.Error(),
		})
		reply = newErrorReply(conversationID, err, m.now())
	}

	body := reply.Body()
	span.SetAttributes(
		attribute.String("chat.intent", string(body.Intent)),
		attribute.Float64("chat.confidence", body.Confidence),
	)
	metrics.ChatTurnsTotal.WithLabelValues(string(body.Intent)).Inc()
	metrics.ChatTurnDuration.Observe(time.Since(start).Seconds())
	m.obs.RecordTurn(ctx, time.Since(start), string(body.Intent), status)

	if err == nil {
		m.archiveTurn(models.TurnRecord{
			TurnID:         turnID,
			ConversationID: conversationID,
			Anonymous:      userID == "",
			Message:        message,
			Response:       body.Response,
			Intent:         body.Intent,
			Confidence:     body.Confidence,
			Entities:       body.Entities,
			Source:         body.Source,
			Timestamp:      body.Timestamp,
		})
	}
	return reply
}

func (m *Manager) turn(ctx context.Context, message string, msgContext map[string]interface{}, userID, conversationID string) (reply Reply, turnID string, err error) {
	defer func() {
		if r := recover(); r != nil {
			reply = nil
			err = fmt.Errorf("%w: panic: %v", ErrTurnFailed, r)
		}
	}()

	now := m.now()
	turnID = m.newID()

	if userID == "" {
		result := m.classifier.Classify(message)
		bundle, err := m.responder.Respond(ctx, response.Request{
			Message:    message,
			Intent:     result.Intent,
			Confidence: result.Confidence,
			Entities:   result.Entities,
		})
		if err != nil {
			return nil, turnID, fmt.Errorf("%w: %v", ErrTurnFailed, err)
		}
		return buildReply(bundle, result, conversationID, 1, false, now), turnID, nil
	}

	// Classification and reply generation run once, against a snapshot.
	// Only the memory mutations below are replayed when a concurrent write
	// forces the store to retry.
	result := m.classifier.Classify(message)
	entities := result.Entities.Clone()
	record := func(s *models.ConversationState) {
		ents := entities.Clone()
		s.AppendTurn(models.Turn{
			ID:        turnID,
			Role:      models.RoleUser,
			Content:   message,
			Timestamp: now,
			Intent:    result.Intent,
			Entities:  &ents,
			Metadata:  contextMetadata(msgContext),
		})
		s.LastIntent = result.Intent
		s.ApplyEntities(entities)
	}

	snapshot, ok, err := m.store.Get(ctx, userID)
	if err != nil {
		return nil, turnID, fmt.Errorf("%w: %v", ErrTurnFailed, err)
	}
	if !ok {
		snapshot = models.NewConversationState()
	}
	record(snapshot)

	bundle, err := m.responder.Respond(ctx, response.Request{
		Message:    message,
		Intent:     result.Intent,
		Confidence: result.Confidence,
		Entities:   result.Entities,
		State:      snapshot,
	})
	if err != nil {
		return nil, turnID, fmt.Errorf("%w: %v", ErrTurnFailed, err)
	}

	state, err := m.store.Update(ctx, userID, func(s *models.ConversationState) error {
		record(s)
		s.PushPendingQuestion(bundle.FollowUp)
		return nil
	})
	if err != nil {
		return nil, turnID, fmt.Errorf("%w: %v", ErrTurnFailed, err)
	}

	return buildReply(bundle, result, conversationID, len(state.History)+1, bundle.NeedsMoreInfo, now), turnID, nil
}

func buildReply(b response.Bundle, result classifier.Result, conversationID string, count int, needsFollowUp bool, now time.Time) Reply {
	p := Payload{
		Response:         b.Response,
		Intent:           b.Intent,
		Confidence:       b.Confidence,
		Entities:         result.Entities,
		ConversationID:   conversationID,
		MessageCount:     count,
		NeedsFollowUp:    needsFollowUp,
		FollowUpQuestion: b.FollowUp,
		SuggestedActions: b.Actions,
		Source:           b.Source,
		Timestamp:        now,
	}
	if b.Kind == response.KindFallback {
		return FallbackReply{Payload: p}
	}
	return RecognizedReply{Payload: p}
}

// contextMetadata flattens the caller's context map onto turn metadata.
func contextMetadata(msgContext map[string]interface{}) map[string]string {
	if len(msgContext) == 0 {
		return nil
	}
	out := make(map[string]string, len(msgContext))
	for k, v := range msgContext {
		out[k] = fmt.Sprint(v)
	}
	return out
}

func (m *Manager) archiveTurn(record models.TurnRecord) {
	if m.archive == nil {
		return
	}
	index := func() {
		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()
		if err := m.archive.IndexTurn(ctx, record); err != nil {
			metrics.ChatFallbacks.WithLabelValues("archive").Inc()
			m.logger.Warn("failed to archive turn", map[string]interface{}{
				"turnId": record.TurnID,
				"error":  err.Error(),
			})
		}
	}
	if m.archiveSync {
		index()
		return
	}
	m.inflight.Add(1)
	go func() {
		defer m.inflight.Done()
		index()
	}()
}

// Wait blocks until pending archive writes finish.
func (m *Manager) Wait() {
	m.inflight.Wait()
}

// ==========================
// Conversation accessors
// ==========================

func (m *Manager) History(ctx context.Context, userID string) ([]models.Turn, error) {
	state, err := m.existing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return state.History, nil
}

func (m *Manager) Profile(ctx context.Context, userID string) (models.UserProfile, error) {
	state, err := m.existing(ctx, userID)
	if err != nil {
		return models.UserProfile{}, err
	}
	return state.UserProfile, nil
}

func (m *Manager) PendingQuestions(ctx context.Context, userID string) ([]string, error) {
	state, err := m.existing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return state.PendingQuestions, nil
}

func (m *Manager) Clear(ctx context.Context, userID string) error {
	return m.store.Clear(ctx, userID)
}

// AddToMemory records a turn that did not go through ProcessMessage, such
// as an assistant message produced elsewhere.
func (m *Manager) AddToMemory(ctx context.Context, userID string, role models.Role, content string, metadata map[string]string) error {
	if role != models.RoleUser && role != models.RoleAssistant {
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	return m.store.AppendTurn(ctx, userID, models.Turn{
		ID:        m.newID(),
		Role:      role,
		Content:   content,
		Timestamp: m.now(),
		Metadata:  metadata,
	})
}

func (m *Manager) Export(ctx context.Context, userID string) ([]byte, error) {
	return m.store.Export(ctx, userID)
}

func (m *Manager) Import(ctx context.Context, userID string, snapshot []byte) error {
	return m.store.Import(ctx, userID, snapshot)
}

// Suggestions returns the starter questions shown to new users.
func (m *Manager) Suggestions() []string {
	return m.catalog.Suggestions()
}

func (m *Manager) existing(ctx context.Context, userID string) (*models.ConversationState, error) {
	state, ok, err := m.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConversationNotFound
	}
	return state, nil
}

// ==========================
// Summaries
// ==========================

type Summary struct {
	ConversationID   string             `json:"conversation_id"`
	TotalMessages    int                `json:"total_messages"`
	IntentsDiscussed []models.Intent    `json:"intents_discussed"`
	MainTopics       []string           `json:"main_topics"`
	LastInteraction  *time.Time         `json:"last_interaction,omitempty"`
	PendingQuestions int                `json:"pending_questions"`
	UserProfile      models.UserProfile `json:"user_profile"`
}

func (m *Manager) Summary(ctx context.Context, userID string) (*Summary, error) {
	state, err := m.existing(ctx, userID)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		ConversationID:   userID,
		TotalMessages:    len(state.History),
		IntentsDiscussed: []models.Intent{},
		MainTopics:       append([]string{}, state.UserProfile.Crops...),
		PendingQuestions: len(state.PendingQuestions),
		UserProfile:      state.UserProfile,
	}
	seen := make(map[models.Intent]bool)
	for _, t := range state.History {
		if t.Intent != "" && !seen[t.Intent] {
			seen[t.Intent] = true
			s.IntentsDiscussed = append(s.IntentsDiscussed, t.Intent)
		}
	}
	if ts, ok := state.LastInteraction(); ok {
		s.LastInteraction = &ts
	}
	return s, nil
}

type Stats struct {
	TotalUsers             int                   `json:"total_users"`
	TotalMessages          int                   `json:"total_messages"`
	AverageMessagesPerUser float64               `json:"average_messages_per_user"`
	IntentDistribution     map[models.Intent]int `json:"intent_distribution"`
}

// Stats aggregates over every stored conversation.
func (m *Manager) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{IntentDistribution: make(map[models.Intent]int)}
	err := memory.Scan(ctx, m.store, func(_ string, state *models.ConversationState) {
		st.TotalUsers++
		st.TotalMessages += len(state.History)
		for _, t := range state.History {
			if t.Intent != "" {
				st.IntentDistribution[t.Intent]++
			}
		}
	})
	if err != nil {
		return nil, err
	}
	if st.TotalUsers > 0 {
		st.AverageMessagesPerUser = float64(st.TotalMessages) / float64(st.TotalUsers)
	}
	return st, nil
}
