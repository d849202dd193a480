package memory

import (
	"sync"

	interfaces "github.com/openfund/crowdsale-ledger-system/internal/interfaces"
)

// Published is one event captured by the in-memory publisher.
type Published struct {
	Topic string
	Event any
}

// Publisher is an in-memory EventPublisher. It is the fallback when no
// Kafka brokers are configured and doubles as a capture sink in tests.
type Publisher struct {
	mu     sync.Mutex
	events []Published
}

func NewPublisher() *Publisher {
	return &Publisher{
		events: make([]Published, 0),
	}
}

func (p *Publisher) Publish(topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, Published{Topic: topic, Event: event})
	return nil
}

// Events returns a copy of everything published so far.
func (p *Publisher) Events() []Published {
	p.mu.Lock()
	defer p.mu.Unlock()

	copied := make([]Published, len(p.events))
	copy(copied, p.events)
	return copied
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
