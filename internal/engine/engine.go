// Package engine turns a question into a canned answer by scanning an ordered
// keyword rule table, falling back to a random generic reply.
package engine

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

// FallbackTopic is reported by Topic when no rule matched.
const FallbackTopic = "fallback"

type Engine struct {
	rules    []Rule
	fallback []string

	mu  sync.Mutex
	rnd *rand.Rand
}

type Option func(*Engine)

// WithRand replaces the random source used to pick fallback replies.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rnd = r }
}

// WithSeed makes fallback selection reproducible.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// New validates the table up front so Respond never has to fail.
func New(rules []Rule, fallback []string, opts ...Option) (*Engine, error) {
	if len(fallback) == 0 {
		return nil, ErrEmptyFallback
	}
	for i, f := range fallback {
		if strings.TrimSpace(f) == "" {
			return nil, fmt.Errorf("%w: entry %d is blank", ErrEmptyFallback, i)
		}
	}

	normalized := make([]Rule, 0, len(rules))
	for _, r := range rules {
		nr, err := r.normalize()
		if err != nil {
			return nil, err
		}
		normalized = append(normalized, nr)
	}

	e := &Engine{
		rules:    normalized,
		fallback: append([]string(nil), fallback...),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		seed := uint64(time.Now().UnixNano())
		e.rnd = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return e, nil
}

// NewFromTable builds an engine from a loaded table.
func NewFromTable(t Table, opts ...Option) (*Engine, error) {
	return New(t.Rules, t.Fallback, opts...)
}

// Match returns the first rule whose keywords occur in input.
func (e *Engine) Match(input string) (Rule, bool) {
	normalized := strings.ToLower(input)
	for _, r := range e.rules {
		if r.Matches(normalized) {
			return r, true
		}
	}
	return Rule{}, false
}

// Respond always returns a non-empty reply.
func (e *Engine) Respond(input string) string {
	reply, _ := e.RespondTopic(input)
	return reply
}

// RespondTopic is Respond plus the topic of the rule that fired, or
// FallbackTopic.
func (e *Engine) RespondTopic(input string) (string, string) {
	if r, ok := e.Match(input); ok {
		return r.Response, r.Topic
	}
	return e.pickFallback(), FallbackTopic
}

func (e *Engine) pickFallback() string {
	e.mu.Lock()
	i := e.rnd.IntN(len(e.fallback))
	e.mu.Unlock()
	return e.fallback[i]
}

// Fallback returns a copy of the fallback pool.
func (e *Engine) Fallback() []string {
	return append([]string(nil), e.fallback...)
}

// Rules returns a copy of the rule table in evaluation order.
func (e *Engine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}
