// internal/models/conversation.go
package models

import "time"

// MaxHistory bounds ConversationState.History.
const MaxHistory = 20

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of a conversation history. Intent and Entities are set
// on classified user turns only.
type Turn struct {
	ID        string            `json:"id"`
	Role      Role              `json:"role"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Intent    Intent            `json:"intent,omitempty"`
	Entities  *Entities         `json:"entities,omitempty"`
	Metadata  map[string]string `json:"metadata"`
}

// UserProfile accumulates slots across a conversation. Location is sticky
// once set. Crops are deduplicated in first-seen order.
type UserProfile struct {
	Location string   `json:"location"`
	Crops    []string `json:"crops"`
}

// ConversationState is everything remembered about one user.
type ConversationState struct {
	History          []Turn      `json:"history"`
	LastIntent       Intent      `json:"last_intent"`
	PendingQuestions []string    `json:"pending_questions"`
	UserProfile      UserProfile `json:"user_profile"`
}

// NewConversationState returns an empty state.
func NewConversationState() *ConversationState {
	return &ConversationState{}
}

// AppendTurn adds t and evicts the oldest turns beyond MaxHistory.
func (s *ConversationState) AppendTurn(t Turn) {
	s.History = append(s.History, t)
	if over := len(s.History) - MaxHistory; over > 0 {
		kept := make([]Turn, MaxHistory)
		copy(kept, s.History[over:])
		s.History = kept
	}
}

// ApplyEntities folds extracted slots into the profile.
func (s *ConversationState) ApplyEntities(e Entities) {
	if s.UserProfile.Location == "" && len(e.Locations) > 0 {
		s.UserProfile.Location = e.Locations[0]
	}
	for _, crop := range e.Crops {
		if !containsString(s.UserProfile.Crops, crop) {
			s.UserProfile.Crops = append(s.UserProfile.Crops, crop)
		}
	}
}

func (s *ConversationState) PushPendingQuestion(q string) {
	if q == "" {
		return
	}
	s.PendingQuestions = append(s.PendingQuestions, q)
}

// LastInteraction returns the timestamp of the newest turn.
func (s *ConversationState) LastInteraction() (time.Time, bool) {
	if len(s.History) == 0 {
		return time.Time{}, false
	}
	return s.History[len(s.History)-1].Timestamp, true
}

// Clone deep-copies s so callers can read it without holding the store lock.
func (s *ConversationState) Clone() *ConversationState {
	if s == nil {
		return nil
	}
	out := &ConversationState{
		LastIntent:       s.LastIntent,
		PendingQuestions: cloneStrings(s.PendingQuestions),
		UserProfile: UserProfile{
			Location: s.UserProfile.Location,
			Crops:    cloneStrings(s.UserProfile.Crops),
		},
	}
	if s.History != nil {
		out.History = make([]Turn, len(s.History))
		for i, t := range s.History {
			out.History[i] = t.clone()
		}
	}
	return out
}

func (t Turn) clone() Turn {
	c := t
	if t.Entities != nil {
		e := t.Entities.Clone()
		c.Entities = &e
	}
	if t.Metadata != nil {
		c.Metadata = make(map[string]string, len(t.Metadata))
		for k, v := range t.Metadata {
			c.Metadata[k] = v
		}
	}
	return c
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// TurnRecord is one answered turn as written to the turn archive.
type TurnRecord struct {
	TurnID         string    `json:"turn_id"`
	ConversationID string    `json:"conversation_id"`
	Anonymous      bool      `json:"anonymous"`
	Message        string    `json:"message"`
	Response       string    `json:"response"`
	Intent         Intent    `json:"intent"`
	Confidence     float64   `json:"confidence"`
	Entities       Entities  `json:"entities"`
	Source         string    `json:"source"`
	Timestamp      time.Time `json:"timestamp"`
}
