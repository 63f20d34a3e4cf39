package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyFallback = errors.New("fallback pool is empty")
	ErrInvalidRule   = errors.New("invalid rule")
)

// Rule answers with Response when every keyword group matches the input.
// A group matches when the input contains at least one of its keywords, so
// [[register] [exam]] needs both words while [[dining food canteen]] needs any.
type Rule struct {
	Topic    string     `yaml:"topic"`
	Match    [][]string `yaml:"match"`
	Response string     `yaml:"response"`
}

// Matches reports whether normalized (already lower-cased) input satisfies the rule.
func (r Rule) Matches(normalized string) bool {
	if len(r.Match) == 0 {
		return false
	}
	for _, group := range r.Match {
		if !containsAny(normalized, group) {
			return false
		}
	}
	return true
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// normalize lower-cases keywords and rejects rules that could never fire or
// would fire on everything.
func (r Rule) normalize() (Rule, error) {
	if strings.TrimSpace(r.Topic) == "" {
		return Rule{}, fmt.Errorf("%w: rule has no topic", ErrInvalidRule)
	}
	if r.Topic == FallbackTopic {
		return Rule{}, fmt.Errorf("%w: topic %q is reserved", ErrInvalidRule, FallbackTopic)
	}
	if strings.TrimSpace(r.Response) == "" {
		return Rule{}, fmt.Errorf("%w: %q has no response", ErrInvalidRule, r.Topic)
	}
	if len(r.Match) == 0 {
		return Rule{}, fmt.Errorf("%w: %q has no keywords", ErrInvalidRule, r.Topic)
	}
	groups := make([][]string, 0, len(r.Match))
	for _, group := range r.Match {
		if len(group) == 0 {
			return Rule{}, fmt.Errorf("%w: %q has an empty keyword group", ErrInvalidRule, r.Topic)
		}
		kws := make([]string, 0, len(group))
		for _, kw := range group {
			if kw == "" {
				return Rule{}, fmt.Errorf("%w: %q has an empty keyword", ErrInvalidRule, r.Topic)
			}
			kws = append(kws, strings.ToLower(kw))
		}
		groups = append(groups, kws)
	}
	r.Match = groups
	return r, nil
}
