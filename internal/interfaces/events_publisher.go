package interfaces

// EventPublisher fans ledger events out to the message bus.
type EventPublisher interface {
	Publish(topic string, event any) error
}
