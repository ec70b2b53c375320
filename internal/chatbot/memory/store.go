// Package memory keeps per-user conversation state. Every operation on one
// user is serialized; different users never contend on the same lock.
package memory

import (
	"context"
	"errors"

	"kisan-advisory/internal/models"
)

var (
	ErrSnapshotInvalid = errors.New("SNAPSHOT_INVALID")
	ErrBackendFailed   = errors.New("MEMORY_BACKEND_FAILED")
	ErrEmptyUserID     = errors.New("EMPTY_USER_ID")
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// Store is the conversation memory. States returned by Get and GetOrCreate
// are copies; mutate through Update.
type Store interface {
	GetOrCreate(ctx context.Context, userID string) (*models.ConversationState, error)
	// Get reports false for unknown users without creating them.
	Get(ctx context.Context, userID string) (*models.ConversationState, bool, error)
	// Update runs fn on the user's state under that user's lock and persists
	// the result. The state is created first if missing. If fn returns an
	// error nothing is persisted.
	Update(ctx context.Context, userID string, fn func(*models.ConversationState) error) (*models.ConversationState, error)
	AppendTurn(ctx context.Context, userID string, turn models.Turn) error
	UpdateProfile(ctx context.Context, userID string, entities models.Entities) error
	Clear(ctx context.Context, userID string) error
	// Export returns the snapshot of an unknown user's empty state without
	// creating it.
	Export(ctx context.Context, userID string) ([]byte, error)
	// Import replaces the user's state. Invalid snapshots return
	// ErrSnapshotInvalid and leave the current state untouched.
	Import(ctx context.Context, userID string, snapshot []byte) error
	Users(ctx context.Context) ([]string, error)
}

// Scan visits every stored conversation. Used for statistics.
func Scan(ctx context.Context, s Store, fn func(userID string, state *models.ConversationState)) error {
	users, err := s.Users(ctx)
	if err != nil {
		return err
	}
	for _, id := range users {
		state, ok, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		if ok {
			fn(id, state)
		}
	}
	return nil
}

func appendTurn(turn models.Turn) func(*models.ConversationState) error {
	return func(s *models.ConversationState) error {
		s.AppendTurn(turn)
		return nil
	}
}

func applyEntities(e models.Entities) func(*models.ConversationState) error {
	return func(s *models.ConversationState) error {
		s.ApplyEntities(e)
		return nil
	}
}
