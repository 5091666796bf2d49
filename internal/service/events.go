package service

import "go-order-desk/internal/ws"

// EventPublisher pushes change notifications to connected clients.
// *ws.Hub satisfies it.
type EventPublisher interface {
	Publish(event ws.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(ws.Event) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
