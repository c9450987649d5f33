// Package nats publishes sync messages over NATS.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"weighttracker/internal/domain"
)

// conn is the subset of *nats.Conn the publisher uses.
type conn interface {
	Publish(subj string, data []byte) error
	FlushWithContext(ctx context.Context) error
	IsConnected() bool
	Drain() error
}

// Publisher implements domain.SyncPublisher on a NATS subject.
type Publisher struct {
	nc      conn
	subject string
}

var _ domain.SyncPublisher = (*Publisher)(nil)

// Connect dials url and returns a publisher for subject.
func Connect(url, subject string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("weighttracker"),
		nats.Timeout(5*time.Second),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(10),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Printf("nats disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("nats reconnected to %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return newPublisher(nc, subject), nil
}

func newPublisher(nc conn, subject string) *Publisher {
	return &Publisher{nc: nc, subject: subject}
}

// PublishSync sends m as JSON and waits for the server to acknowledge the
// flush, bounded by ctx.
func (p *Publisher) PublishSync(ctx context.Context, m domain.SyncMessage) error {
	if !p.nc.IsConnected() {
		return nats.ErrConnectionClosed
	}
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode sync message: %w", err)
	}
	if err := p.nc.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := p.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush %s: %w", p.subject, err)
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (p *Publisher) Close() error {
	return p.nc.Drain()
}
