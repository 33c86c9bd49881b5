// Package service holds the business rules between the HTTP handlers and the store.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/bistro/internal/events"
	"github.com/Skotchmaster/bistro/internal/logging"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrUnavailable = errors.New("feature not configured")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// publish is best effort: a broker outage must not fail a committed write.
func publish(ctx context.Context, p events.Publisher, topic, key string, ev events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, topic, key, ev); err != nil {
		logging.FromContext(ctx).Warn("publish_event_failed", "topic", topic, "type", ev.Type(), "error", err)
	}
}
