package dialogue

import (
	"time"

	"kisan-advisory/internal/models"
)

const (
	// AnonymousConversationID tags replies to callers without a user ID.
	AnonymousConversationID = "anonymous"

	ErrorResponseText = "I apologize, but I'm having trouble processing your request right now. Please try again or contact support if the problem persists."
)

var errorActions = []string{"Try again", "Contact support"}

type ReplyKind string

const (
	KindRecognized ReplyKind = "recognized"
	KindFallback   ReplyKind = "fallback"
	KindError      ReplyKind = "error"
)

// Payload is the outward reply shape shared by every Reply variant.
type Payload struct {
	Response         string          `json:"response"`
	Intent           models.Intent   `json:"intent"`
	Confidence       float64         `json:"confidence"`
	Entities         models.Entities `json:"entities"`
	ConversationID   string          `json:"conversation_id"`
	MessageCount     int             `json:"message_count"`
	NeedsFollowUp    bool            `json:"needs_follow_up"`
	FollowUpQuestion string          `json:"follow_up_question,omitempty"`
	SuggestedActions []string        `json:"suggested_actions"`
	Source           string          `json:"source,omitempty"`
	Timestamp        time.Time       `json:"timestamp"`
}

// Reply is one of RecognizedReply, FallbackReply or ErrorReply.
type Reply interface {
	Kind() ReplyKind
	Body() Payload
}

// RecognizedReply answers a catalog intent from its response pool or a
// remote model.
type RecognizedReply struct {
	Payload
}

func (r RecognizedReply) Kind() ReplyKind { return KindRecognized }
func (r RecognizedReply) Body() Payload   { return r.Payload }

// FallbackReply carries the fixed fallback template.
type FallbackReply struct {
	Payload
}

func (r FallbackReply) Kind() ReplyKind { return KindFallback }
func (r FallbackReply) Body() Payload   { return r.Payload }

// ErrorReply replaces a turn that failed. Err is for logs only.
type ErrorReply struct {
	Payload
	Err error `json:"-"`
}

func (r ErrorReply) Kind() ReplyKind { return KindError }
func (r ErrorReply) Body() Payload   { return r.Payload }

func newErrorReply(conversationID string, err error, now time.Time) ErrorReply {
	return ErrorReply{
		Payload: Payload{
			Response:         ErrorResponseText,
			Intent:           models.IntentError,
			Confidence:       0.0,
			ConversationID:   conversationID,
			SuggestedActions: append([]string(nil), errorActions...),
			Timestamp:        now,
		},
		Err: err,
	}
}
