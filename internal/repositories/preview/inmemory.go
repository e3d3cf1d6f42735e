package preview

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/clock"
)

type memoryKey struct {
	playerID int64
	class    string
}

// InMemoryRepository implements Repository for runs without Redis
type InMemoryRepository struct {
	mu    sync.Mutex
	clock clock.Clock
	store map[memoryKey]Preview
}

// NewInMemory creates a new in-memory repository. A nil clock uses real time.
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[memoryKey]Preview),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Save stores a preview
func (r *InMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateKey(input.PlayerID, input.Class); err != nil {
		return nil, err
	}

	p := newPreview(input, r.clock.Now())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[memoryKey{input.PlayerID, string(input.Class)}] = *p

	cp := *p
	return &SaveOutput{Preview: &cp}, nil
}

// Get retrieves a live preview
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKey(input.PlayerID, input.Class); err != nil {
		return nil, err
	}

	key := memoryKey{input.PlayerID, string(input.Class)}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.store[key]
	if !ok {
		return nil, errors.NotFound("preview not found")
	}
	if r.clock.Now().After(p.ExpiresAt) {
		delete(r.store, key)
		return nil, errors.NotFound("preview has expired")
	}

	return &GetOutput{Preview: &p}, nil
}

// Delete removes a preview
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateKey(input.PlayerID, input.Class); err != nil {
		return nil, err
	}

	key := memoryKey{input.PlayerID, string(input.Class)}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.store[key]
	delete(r.store, key)
	return &DeleteOutput{Deleted: ok}, nil
}
