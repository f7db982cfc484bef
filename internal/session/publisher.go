package session

import "github.com/osse101/WhackALawyer_Go/internal/domain"

// Publisher receives session events. Implementations must not block: they
// are called from the session goroutine.
type Publisher interface {
	Publish(evt domain.Event)
}

// PublisherFunc adapts a function to Publisher
type PublisherFunc func(evt domain.Event)

// Publish calls f(evt)
func (f PublisherFunc) Publish(evt domain.Event) {
	f(evt)
}

// Fanout publishes every event to each of its publishers in order
type Fanout []Publisher

// Publish forwards evt to every publisher
func (f Fanout) Publish(evt domain.Event) {
	for _, p := range f {
		if p != nil {
			p.Publish(evt)
		}
	}
}
