package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"kisan-advisory/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "chatbot:conversation:"
	usersKey      = "chatbot:conversations"
	maxTxAttempts = 5
)

// RedisStore keeps one snapshot per user. Updates use optimistic
// WATCH/MULTI transactions so turns from several API replicas for the same
// user are applied one after another.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger Logger
}

// NewRedisStore stores snapshots with ttl; 0 keeps them forever.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration, log Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: log.With(map[string]interface{}{"component": "memory-store", "backend": "redis"}),
	}
}

func conversationKey(userID string) string {
	return keyPrefix + userID
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisStore) load(ctx context.Context, getter stringGetter, userID string) (*models.ConversationState, bool, error) {
	data, err := getter.Get(ctx, conversationKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get: %v", ErrBackendFailed, err)
	}
	state, err := DecodeSnapshot(data)
	if err != nil {
		// a corrupt record is reported rather than silently replaced
		return nil, false, fmt.Errorf("%w: stored snapshot for %s: %v", ErrBackendFailed, userID, err)
	}
	return state, true, nil
}

func (s *RedisStore) GetOrCreate(ctx context.Context, userID string) (*models.ConversationState, error) {
	return s.Update(ctx, userID, func(*models.ConversationState) error { return nil })
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*models.ConversationState, bool, error) {
	return s.load(ctx, s.client, userID)
}

func (s *RedisStore) Update(ctx context.Context, userID string, fn func(*models.ConversationState) error) (*models.ConversationState, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	key := conversationKey(userID)

	var (
		result *models.ConversationState
		fnErr  error
	)
	txf := func(tx *redis.Tx) error {
		state, ok, err := s.load(ctx, tx, userID)
		if err != nil {
			return err
		}
		if !ok {
			state = models.NewConversationState()
		}
		if fnErr = fn(state); fnErr != nil {
			return fnErr
		}
		data, err := EncodeSnapshot(state)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			pipe.SAdd(ctx, usersKey, userID)
			return nil
		})
		if err != nil {
			return err
		}
		result = state
		return nil
	}

	err := s.watch(ctx, userID, txf)
	if err == nil {
		return result.Clone(), nil
	}
	if fnErr != nil || errors.Is(err, ErrBackendFailed) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: update: %v", ErrBackendFailed, err)
}

// watch runs txf under WATCH on the user's key, retrying while another
// client changes the key between WATCH and EXEC.
func (s *RedisStore) watch(ctx context.Context, userID string, txf func(*redis.Tx) error) error {
	key := conversationKey(userID)
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}

	s.logger.Warn("conversation update kept conflicting", map[string]interface{}{
		"userId":   userID,
		"attempts": maxTxAttempts,
	})
	return fmt.Errorf("%w: update of %s conflicted %d times", ErrBackendFailed, userID, maxTxAttempts)
}

func (s *RedisStore) AppendTurn(ctx context.Context, userID string, turn models.Turn) error {
	_, err := s.Update(ctx, userID, appendTurn(turn))
	return err
}

func (s *RedisStore) UpdateProfile(ctx context.Context, userID string, entities models.Entities) error {
	_, err := s.Update(ctx, userID, applyEntities(entities))
	return err
}

// Clear resets an existing conversation to empty. Unknown users stay
// unknown.
func (s *RedisStore) Clear(ctx context.Context, userID string) error {
	key := conversationKey(userID)
	data, err := EncodeSnapshot(models.NewConversationState())
	if err != nil {
		return err
	}

	txf := func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("%w: exists: %v", ErrBackendFailed, err)
		}
		if exists == 0 {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}

	err = s.watch(ctx, userID, txf)
	if err == nil || errors.Is(err, ErrBackendFailed) {
		return err
	}
	return fmt.Errorf("%w: clear: %v", ErrBackendFailed, err)
}

func (s *RedisStore) Export(ctx context.Context, userID string) ([]byte, error) {
	data, err := s.client.Get(ctx, conversationKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return EncodeSnapshot(models.NewConversationState())
	}
	if err != nil {
		return nil, fmt.Errorf("%w: export: %v", ErrBackendFailed, err)
	}
	return data, nil
}

func (s *RedisStore) Import(ctx context.Context, userID string, data []byte) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	if _, err := DecodeSnapshot(data); err != nil {
		s.logger.Warn("rejected conversation snapshot", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		return err
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, conversationKey(userID), data, s.ttl)
		pipe.SAdd(ctx, usersKey, userID)
		return nil
	})
	if err != nil {
		s.logger.Error("failed to import conversation snapshot", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		return fmt.Errorf("%w: import: %v", ErrBackendFailed, err)
	}
	return nil
}

func (s *RedisStore) Users(ctx context.Context) ([]string, error) {
	users, err := s.client.SMembers(ctx, usersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: members: %v", ErrBackendFailed, err)
	}
	sort.Strings(users)
	return users, nil
}
