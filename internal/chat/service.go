// Package chat runs one question/answer exchange against a session's log.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nubank/unibot/internal"
	"github.com/nubank/unibot/internal/provider"
	"github.com/nubank/unibot/internal/store"
)

var ErrEmptyInput = errors.New("content is required")

type Service struct {
	provider provider.ChatProvider
	delay    time.Duration
}

// NewService returns a Service that waits delay before each reply; zero
// disables the wait.
func NewService(p provider.ChatProvider, delay time.Duration) *Service {
	return &Service{provider: p, delay: delay}
}

func (s *Service) Model() string { return s.provider.Model() }

// Exchange appends the user turn, asks the provider and appends its reply.
// The log grows by exactly two turns on success. If the provider fails or ctx
// is cancelled during the delay, the user turn stays and no reply is added.
func (s *Service) Exchange(ctx context.Context, mem *store.MemoryStore, text string) (internal.Message, string, error) {
	if strings.TrimSpace(text) == "" {
		return internal.Message{}, "", ErrEmptyInput
	}

	mem.Append(internal.NewMessage(internal.RoleUser, text))

	if err := s.think(ctx); err != nil {
		return internal.Message{}, "", err
	}

	reply, err := s.provider.Reply(mem.All(), text)
	if err != nil {
		return internal.Message{}, "", fmt.Errorf("provider %s: %w", s.provider.Model(), err)
	}

	assistantMsg := internal.NewMessage(internal.RoleAssistant, reply.Text)
	mem.Append(assistantMsg)
	return assistantMsg, reply.Topic, nil
}

func (s *Service) think(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
