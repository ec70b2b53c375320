package memory

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"

	"kisan-advisory/internal/common/metrics"
	"kisan-advisory/internal/models"
)

// InMemoryStore partitions users over shards. A shard lock is held only to
// find or create a user's entry; the entry has its own lock for the state.
type InMemoryStore struct {
	shards []*shard
	logger Logger
}

type shard struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu    sync.Mutex
	state *models.ConversationState
}

func NewInMemoryStore(shards int, log Logger) *InMemoryStore {
	if shards < 1 {
		shards = 1
	}
	s := &InMemoryStore{
		shards: make([]*shard, shards),
		logger: log.With(map[string]interface{}{"component": "memory-store", "backend": "memory"}),
	}
	for i := range s.shards {
		s.shards[i] = &shard{entries: make(map[string]*entry)}
	}
	return s
}

func (s *InMemoryStore) shardFor(userID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return s.shards[h.Sum32()%uint32(len(s.shards))]
}

func (s *InMemoryStore) lookup(userID string, create bool) *entry {
	sh := s.shardFor(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.entries[userID]
	if !ok && create {
		e = &entry{state: models.NewConversationState()}
		sh.entries[userID] = e
		metrics.ActiveConversations.Inc()
	}
	return e
}

func (s *InMemoryStore) GetOrCreate(_ context.Context, userID string) (*models.ConversationState, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	e := s.lookup(userID, true)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone(), nil
}

func (s *InMemoryStore) Get(_ context.Context, userID string) (*models.ConversationState, bool, error) {
	e := s.lookup(userID, false)
	if e == nil {
		return nil, false, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone(), true, nil
}

func (s *InMemoryStore) Update(_ context.Context, userID string, fn func(*models.ConversationState) error) (*models.ConversationState, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	e := s.lookup(userID, true)
	e.mu.Lock()
	defer e.mu.Unlock()

	// fn works on a copy so a failed update leaves the state as it was
	working := e.state.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	e.state = working
	return working.Clone(), nil
}

func (s *InMemoryStore) AppendTurn(ctx context.Context, userID string, turn models.Turn) error {
	_, err := s.Update(ctx, userID, appendTurn(turn))
	return err
}

func (s *InMemoryStore) UpdateProfile(ctx context.Context, userID string, entities models.Entities) error {
	_, err := s.Update(ctx, userID, applyEntities(entities))
	return err
}

func (s *InMemoryStore) Clear(_ context.Context, userID string) error {
	e := s.lookup(userID, false)
	if e == nil {
		return nil
	}
	e.mu.Lock()
	e.state = models.NewConversationState()
	e.mu.Unlock()
	return nil
}

func (s *InMemoryStore) Export(ctx context.Context, userID string) ([]byte, error) {
	state, ok, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		state = models.NewConversationState()
	}
	return EncodeSnapshot(state)
}

func (s *InMemoryStore) Import(_ context.Context, userID string, data []byte) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	state, err := DecodeSnapshot(data)
	if err != nil {
		s.logger.Warn("rejected conversation snapshot", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		return err
	}

	e := s.lookup(userID, true)
	e.mu.Lock()
	e.state = state
	e.mu.Unlock()

	s.logger.Info("imported conversation snapshot", map[string]interface{}{
		"userId":  userID,
		"history": len(state.History),
	})
	return nil
}

func (s *InMemoryStore) Users(_ context.Context) ([]string, error) {
	var users []string
	for _, sh := range s.shards {
		sh.mu.Lock()
		for id := range sh.entries {
			users = append(users, id)
		}
		sh.mu.Unlock()
	}
	sort.Strings(users)
	return users, nil
}
