package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/port"
)

// MemoryStore is an in-process conversation store with idle expiry. Each
// access refreshes the TTL; the janitor evicts idle conversations. Appends to
// a single conversation serialize on one mutex, which gives the per-
// conversation ordering guarantee without a global lock.
type MemoryStore struct {
	cache *gocache.Cache
	ttl   time.Duration
	mu    sync.Mutex
}

var _ port.ConversationStore = (*MemoryStore)(nil)

// NewMemoryStore builds a store whose conversations expire after idleTTL
// without activity.
func NewMemoryStore(idleTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(idleTTL, idleTTL/2),
		ttl:   idleTTL,
	}
}

func (s *MemoryStore) Create(ctx context.Context, companyID uuid.UUID) (*domain.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := &domain.Conversation{
		ID:           uuid.NewString(),
		CompanyID:    companyID,
		Status:       domain.ConversationActive,
		LastActivity: time.Now(),
	}
	s.cache.Set(conv.ID, conv, s.ttl)
	return s.snapshot(conv), nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return s.snapshot(conv), nil
}

func (s *MemoryStore) Append(ctx context.Context, id string, msg domain.ConversationMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.get(id)
	if err != nil {
		return err
	}
	if conv.Status != domain.ConversationActive {
		return domain.ErrConversationClosed
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	conv.Messages = append(conv.Messages, msg)
	conv.LastActivity = time.Now()
	s.cache.Set(id, conv, s.ttl)
	return nil
}

func (s *MemoryStore) SetStatus(ctx context.Context, id string, status domain.ConversationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.get(id)
	if err != nil {
		return err
	}
	conv.Status = status
	conv.LastActivity = time.Now()
	s.cache.Set(id, conv, s.ttl)
	return nil
}

// get must be called with the lock held.
func (s *MemoryStore) get(id string) (*domain.Conversation, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v.(*domain.Conversation), nil
}

// snapshot returns a copy so callers cannot mutate store state.
func (s *MemoryStore) snapshot(conv *domain.Conversation) *domain.Conversation {
	out := *conv
	out.Messages = make([]domain.ConversationMessage, len(conv.Messages))
	copy(out.Messages, conv.Messages)
	return &out
}
