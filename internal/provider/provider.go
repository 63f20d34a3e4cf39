package provider

import (
	"github.com/nubank/unibot/internal"
	"github.com/nubank/unibot/internal/engine"
)

type ChatProvider interface {
	Model() string
	Reply(history []internal.Message, userInput string) (Reply, error)
}

// Reply is the provider's answer and the topic it was drawn from.
type Reply struct {
	Text  string
	Topic string
}

// RulesProvider answers from the keyword rule table. History is ignored:
// every question is matched on its own.
type RulesProvider struct {
	engine *engine.Engine
}

func NewRulesProvider(e *engine.Engine) RulesProvider {
	return RulesProvider{engine: e}
}

func (p RulesProvider) Model() string { return "unibot-rules" }

func (p RulesProvider) Reply(_ []internal.Message, userInput string) (Reply, error) {
	text, topic := p.engine.RespondTopic(userInput)
	return Reply{Text: text, Topic: topic}, nil
}
