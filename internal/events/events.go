// Package events publishes domain events after successful mutations.
package events

import (
	"context"
	"time"
)

const (
	TopicUsers    = "user_events"
	TopicMenu     = "menu_events"
	TopicCarts    = "cart_events"
	TopicPayments = "payment_events"
)

type Publisher interface {
	Publish(ctx context.Context, topic, key string, event Event) error
	Close() error
}

// Event is a flat JSON object; Type names what happened.
type Event map[string]any

func New(typ string, fields map[string]any) Event {
	ev := Event{"type": typ, "at": time.Now().UTC()}
	for k, v := range fields {
		ev[k] = v
	}
	return ev
}

func (e Event) Type() string {
	t, _ := e["type"].(string)
	return t
}

// Nop drops every event. It is used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, string, Event) error { return nil }
func (Nop) Close() error                                         { return nil }
