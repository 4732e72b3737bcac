package events

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// conn is the subset of *nats.Conn the publisher uses.
type conn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Drain() error
}

// NATSPublisher publishes events as JSON envelopes on core NATS subjects.
type NATSPublisher struct {
	nc  conn
	now func() time.Time
}

// Connect dials the broker at url. The client name shows up in server
// monitoring.
func Connect(url string, name string) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name(name),
		nats.Timeout(10 * time.Second),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(5),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	return newNATSPublisher(nc), nil
}

func newNATSPublisher(nc conn) *NATSPublisher {
	return &NATSPublisher{nc: nc, now: time.Now}
}

// Publish implements Publisher. It flushes so the caller learns about a dead
// connection before the context expires.
func (p *NATSPublisher) Publish(ctx context.Context, event Event) error {
	data, err := Encode(event, p.now())
	if err != nil {
		return err
	}
	if err := p.nc.Publish(Subject(event.Type), data); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
	}
	if err := p.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush %s: %w", event.Type, err)
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	return p.nc.Drain()
}
