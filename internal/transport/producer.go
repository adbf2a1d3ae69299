package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/cwru-rcci/metarootbus/internal/codec"
	"github.com/cwru-rcci/metarootbus/internal/result"
)

// Producer is the fire-and-forget durable publisher from §4.3. The queue
// is server-declared; the Producer never declares it itself.
type Producer struct {
	conn *connection
}

// NewProducer connects to endpoint without declaring the queue.
func NewProducer(ep Endpoint) (*Producer, error) {
	c := newConnection(ep, false)
	if err := c.dial(); err != nil {
		return nil, err
	}
	return &Producer{conn: c}, nil
}

// Close idempotently tears down the connection.
func (p *Producer) Close() {
	p.conn.close()
}

// Send serializes value, publishes it persistent+mandatory, and relies on
// publisher confirms. On failure it sleeps (attempt-1)*5s, reconnects if
// the connection is closed, and retries up to 10 times. Final failure
// returns status 470; encode failure returns 453 without publishing.
func (p *Producer) Send(ctx context.Context, value any) result.Result {
	body, err := codec.EncodeRequest(value)
	if err != nil {
		return result.Err(453, err.Error())
	}

	var lastErr error
	for attempt := 1; attempt <= maxSendAttempts; attempt++ {
		if attempt > 1 {
			backoff := time.Duration(attempt-1) * sendBackoffUnit
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return result.Err(470, ctx.Err().Error())
			}
		}

		if p.conn.isClosed() {
			if err := p.conn.reconnect(); err != nil {
				lastErr = err
				continue
			}
		}

		if err := p.conn.publish(ctx, body, "", ""); err != nil {
			lastErr = err
			continue
		}

		if err := p.conn.waitForConfirm(ctx); err != nil {
			lastErr = err
			continue
		}

		return result.OK(nil)
	}

	return result.Err(470, fmt.Sprintf("send failed after %d attempts: %v", maxSendAttempts, lastErr))
}
