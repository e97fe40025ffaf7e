package gamestate

import (
	"fmt"

	"github.com/golang/glog"
)

// Bus dispatches Events synchronously to the handlers subscribed
// to each EventType. Handlers run in the order they were subscribed,
// and Emit returns only after all of them have returned.
type Bus struct {
	handlers [numEventTypes][]func(Event)
}

// Subscribe registers handler to be called with every Event of type t.
func (b *Bus) Subscribe(t EventType, handler func(Event)) {
	if t == 0 || int(t) >= numEventTypes {
		panic(fmt.Errorf("cannot subscribe to invalid event type %d", t))
	}

	b.handlers[t] = append(b.handlers[t], handler)
}

// Emit delivers e to all handlers subscribed to its type.
func (b *Bus) Emit(e Event) {
	glog.V(3).Infof("Emitting %v event: %+v", e.Type(), e)
	for _, handler := range b.handlers[e.Type()] {
		handler(e)
	}
}
