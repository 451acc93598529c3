package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/srirupaul05/foodbridge/internal/platform/logger"
)

// Publisher pushes domain events onto NATS subjects. Subscribers (web
// frontends via a push bridge, notification workers) get near-real-time
// change notifications without polling.
type Publisher struct {
	conn   *nats.Conn
	logger logger.Logger
}

func NewPublisher(url string, log logger.Logger) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: conn, logger: log}, nil
}

func (p *Publisher) Publish(_ context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	p.logger.Debugf("published event on %s (%d bytes)", subject, len(payload))
	return nil
}

func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Drain()
	}
}
