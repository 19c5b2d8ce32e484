package events

import (
	"context"
	"io"

	"github.com/nikolayk812/cartcore/internal/port"
)

// Publisher is an event publisher owning a connection that must be closed.
type Publisher interface {
	port.EventPublisher
	io.Closer
}

// Noop drops events; used when no brokers are configured.
type Noop struct{}

var _ Publisher = Noop{}

func (Noop) Publish(context.Context, string, any) error { return nil }

func (Noop) Close() error { return nil }
