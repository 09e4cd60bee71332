package events

// EventPublisher accepts change notifications from the services.
// Implementations must not block the caller for long; services publish
// after every mutation.
type EventPublisher interface {
	SendEvent(event Event) error
}

// Subscriber hands out change notification channels.
type Subscriber interface {
	// Subscribe returns a channel of events for boardID ("" = all boards)
	// and a cancel func that closes the channel.
	Subscribe(boardID string) (<-chan Event, func())
}

// Compile-time verification that *Bus implements both sides
var (
	_ EventPublisher = (*Bus)(nil)
	_ Subscriber     = (*Bus)(nil)
)
