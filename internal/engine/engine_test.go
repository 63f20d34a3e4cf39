package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefault(t *testing.T) *Engine {
	t.Helper()
	e, err := NewFromTable(DefaultTable(), WithSeed(42))
	require.NoError(t, err)
	return e
}

func responseFor(t *testing.T, topic string) string {
	t.Helper()
	for _, r := range DefaultTable().Rules {
		if r.Topic == topic {
			return r.Response
		}
	}
	t.Fatalf("no rule for topic %q", topic)
	return ""
}

func TestRespond_Topics(t *testing.T) {
	e := newDefault(t)

	tests := []struct {
		name  string
		input string
		topic string
	}{
		{name: "library", input: "Where is the library?", topic: "library"},
		{name: "library upper case", input: "LIBRARY HOURS", topic: "library"},
		{name: "register then exam", input: "How do I register for exams?", topic: "exam_registration"},
		{name: "exam then register", input: "exam: where to register", topic: "exam_registration"},
		{name: "dining", input: "What dining options are available?", topic: "dining"},
		{name: "food", input: "any food nearby", topic: "dining"},
		{name: "canteen", input: "Canteen opening time", topic: "dining"},
		{name: "student club", input: "How can I join a student club?", topic: "clubs"},
		{name: "join club", input: "I want to join club activities", topic: "clubs"},
		{name: "housing", input: "What are the housing options?", topic: "housing"},
		{name: "dorm", input: "dorm rooms", topic: "housing"},
		{name: "parking", input: "How do I get a parking permit?", topic: "parking"},
		{name: "wifi", input: "How to connect to campus WiFi?", topic: "wifi"},
		{name: "career", input: "Where is career services located?", topic: "career"},
		{name: "transcript", input: "I need my transcript", topic: "transcript"},
		{name: "tuition", input: "Tuition deadline?", topic: "tuition"},
		{name: "payment", input: "payment plans", topic: "tuition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, topic := e.RespondTopic(tt.input)
			assert.Equal(t, tt.topic, topic)
			assert.Equal(t, responseFor(t, tt.topic), reply)
			assert.Equal(t, reply, e.Respond(tt.input))
		})
	}
}

func TestRespond_FirstRuleWins(t *testing.T) {
	e := newDefault(t)

	assert.Equal(t, responseFor(t, "library"), e.Respond("Is there parking near the library?"))
	assert.Equal(t, responseFor(t, "library"), e.Respond("food in the library"))
	assert.Equal(t, responseFor(t, "exam_registration"), e.Respond("register for the exam, then pay tuition"))
}

func TestRespond_ExamWithoutRegisterFallsThrough(t *testing.T) {
	e := newDefault(t)

	_, topic := e.RespondTopic("When is my exam?")
	assert.Equal(t, FallbackTopic, topic)

	// "exam" alone must not block later rules.
	_, topic = e.RespondTopic("exam week parking")
	assert.Equal(t, "parking", topic)
}

func TestRespond_FallbackMembership(t *testing.T) {
	e := newDefault(t)
	pool := DefaultTable().Fallback

	for _, input := range []string{"", "what is the meaning of life", "   ", "¿dónde está la biblioteca?", "libary"} {
		reply, topic := e.RespondTopic(input)
		assert.Equal(t, FallbackTopic, topic, "input %q", input)
		assert.Contains(t, pool, reply, "input %q", input)
	}
}

func TestRespond_FallbackIsNotDegenerate(t *testing.T) {
	e := newDefault(t)
	pool := DefaultTable().Fallback

	seen := make(map[string]int)
	for i := 0; i < 300; i++ {
		seen[e.Respond("what is the meaning of life")]++
	}
	assert.Len(t, seen, len(pool))
	for _, f := range pool {
		assert.Positive(t, seen[f], "fallback %q never picked", f)
	}
}

func TestRespond_SeedIsReproducible(t *testing.T) {
	a, err := New(DefaultTable().Rules, DefaultTable().Fallback, WithSeed(7))
	require.NoError(t, err)
	b, err := New(DefaultTable().Rules, DefaultTable().Fallback, WithSeed(7))
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Respond("hello"), b.Respond("hello"))
	}
}

func TestRespond_NeverEmpty(t *testing.T) {
	e := newDefault(t)
	for _, input := range []string{"", "x", "library", strings.Repeat("?", 1000)} {
		assert.NotEmpty(t, e.Respond(input))
	}
}

func TestNew_Validation(t *testing.T) {
	ok := Rule{Topic: "ok", Match: [][]string{{"ok"}}, Response: "fine"}

	tests := []struct {
		name     string
		rules    []Rule
		fallback []string
		wantErr  error
	}{
		{name: "nil fallback", rules: []Rule{ok}, fallback: nil, wantErr: ErrEmptyFallback},
		{name: "blank fallback entry", rules: []Rule{ok}, fallback: []string{"hi", " "}, wantErr: ErrEmptyFallback},
		{name: "no response", rules: []Rule{{Topic: "x", Match: [][]string{{"x"}}}}, fallback: []string{"hi"}, wantErr: ErrInvalidRule},
		{name: "no keywords", rules: []Rule{{Topic: "x", Response: "y"}}, fallback: []string{"hi"}, wantErr: ErrInvalidRule},
		{name: "empty group", rules: []Rule{{Topic: "x", Match: [][]string{{}}, Response: "y"}}, fallback: []string{"hi"}, wantErr: ErrInvalidRule},
		{name: "empty keyword", rules: []Rule{{Topic: "x", Match: [][]string{{""}}, Response: "y"}}, fallback: []string{"hi"}, wantErr: ErrInvalidRule},
		{name: "no topic", rules: []Rule{{Match: [][]string{{"x"}}, Response: "y"}}, fallback: []string{"hi"}, wantErr: ErrInvalidRule},
		{name: "blank topic", rules: []Rule{{Topic: "  ", Match: [][]string{{"x"}}, Response: "y"}}, fallback: []string{"hi"}, wantErr: ErrInvalidRule},
		{name: "reserved topic", rules: []Rule{{Topic: FallbackTopic, Match: [][]string{{"x"}}, Response: "y"}}, fallback: []string{"hi"}, wantErr: ErrInvalidRule},
		{name: "no rules is fine", rules: nil, fallback: []string{"hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rules, tt.fallback)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNew_LowercasesKeywords(t *testing.T) {
	e, err := New([]Rule{{Topic: "wifi", Match: [][]string{{"WiFi"}}, Response: "net"}}, []string{"?"})
	require.NoError(t, err)

	assert.Equal(t, "net", e.Respond("campus wifi"))
	assert.Equal(t, "net", e.Respond("CAMPUS WIFI"))
}

func TestEngine_CopiesAreIndependent(t *testing.T) {
	e := newDefault(t)

	fb := e.Fallback()
	fb[0] = "mutated"
	assert.NotEqual(t, "mutated", e.Fallback()[0])

	rules := e.Rules()
	rules[0] = Rule{}
	assert.Equal(t, "library", e.Rules()[0].Topic)
}
