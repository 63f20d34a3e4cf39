package store

import (
	"sync"

	"github.com/nubank/unibot/internal"
)

// MemoryStore is the conversation log of one session. Turns are only ever
// appended; Reset starts a new conversation.
type MemoryStore struct {
	mu       sync.Mutex
	messages []internal.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{messages: make([]internal.Message, 0, 64)}
}

func (s *MemoryStore) All() []internal.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]internal.Message, len(s.messages))
	copy(cp, s.messages)
	return cp
}

func (s *MemoryStore) Append(msg internal.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = s.messages[:0]
}
