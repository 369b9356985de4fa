package message

import (
	"context"
	"sync"
)

// MemoryStore keeps messages in process memory. It is the default store
// and is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	msgs   []Message
	nextID int
}

// NewMemoryStore returns a store holding a copy of msgs.
func NewMemoryStore(msgs []Message) *MemoryStore {
	s := &MemoryStore{msgs: append([]Message(nil), msgs...), nextID: 1}
	for _, m := range msgs {
		s.nextID = max(s.nextID, m.ID+1)
	}
	return s
}

// NewSeededMemoryStore returns a store holding the seed set lang.
func NewSeededMemoryStore(lang string) (*MemoryStore, error) {
	msgs, err := Seed(lang)
	if err != nil {
		return nil, err
	}
	return NewMemoryStore(msgs), nil
}

// List returns a copy of the stored messages in insertion order.
func (s *MemoryStore) List(ctx context.Context) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Message{}, s.msgs...), nil
}

// Get returns the message with the given id.
func (s *MemoryStore) Get(_ context.Context, id int) (Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.msgs {
		if m.ID == id {
			return m, nil
		}
	}
	return Message{}, ErrNotFound
}

func (s *MemoryStore) Create(ctx context.Context, text string) (Message, error) {
	text, err := Validate(text)
	if err != nil {
		return Message{}, err
	}
	if err := ctx.Err(); err != nil {
		return Message{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m := Message{ID: s.nextID, Text: text}
	s.nextID++
	s.msgs = append(s.msgs, m)
	return m, nil
}

func (s *MemoryStore) Close() error { return nil }
