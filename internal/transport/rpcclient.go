package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/google/uuid"

	"github.com/cwru-rcci/metarootbus/internal/codec"
	"github.com/cwru-rcci/metarootbus/internal/result"
)

// RPCClient maintains one private, exclusive, auto-delete reply queue per
// instance and implements the correlated request/reply protocol from
// §4.5.
type RPCClient struct {
	conn      *connection
	replyName string

	mu      sync.Mutex
	pending map[string]chan result.Result
}

// NewRPCClient connects to endpoint (without declaring the request
// queue — servers declare it) and opens a private reply queue.
func NewRPCClient(ep Endpoint) (*RPCClient, error) {
	c := newConnection(ep, false)
	if err := c.dial(); err != nil {
		return nil, err
	}

	q, err := c.ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		c.close()
		return nil, fmt.Errorf("transport: declare reply queue: %w", err)
	}

	client := &RPCClient{
		conn:      c,
		replyName: q.Name,
		pending:   make(map[string]chan result.Result),
	}

	deliveries, err := c.ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		c.close()
		return nil, fmt.Errorf("transport: consume reply queue: %w", err)
	}
	go client.readReplies(deliveries)

	return client, nil
}

// Close idempotently tears down the connection.
func (r *RPCClient) Close() {
	r.conn.close()
}

func (r *RPCClient) readReplies(deliveries <-chan amqp.Delivery) {
	for d := range deliveries {
		reply, err := codec.DecodeResult(d.Body)
		if err != nil {
			reply = result.Err(454, err.Error())
		}

		r.mu.Lock()
		ch, ok := r.pending[d.CorrelationId]
		if ok {
			delete(r.pending, d.CorrelationId)
		}
		r.mu.Unlock()

		if !ok {
			// Stale reply for an id we've already timed out on; ignored.
			continue
		}
		ch <- reply
	}
}

// Send generates a correlation id, publishes value with reply_to set to
// the private queue, and blocks for a reply until a single deadline of
// rpcPollSlices*rpcPollSlice (180s) passes or ctx is done. A mismatched
// correlation id is impossible by construction (readReplies routes by id);
// a reply that never arrives times out at 471.
func (r *RPCClient) Send(ctx context.Context, value any) result.Result {
	body, err := codec.EncodeRequest(value)
	if err != nil {
		return result.Err(453, err.Error())
	}

	correlationID := uuid.NewString()
	replyCh := make(chan result.Result, 1)

	r.mu.Lock()
	r.pending[correlationID] = replyCh
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.pending, correlationID)
		r.mu.Unlock()
	}()

	if err := r.publishWithRetry(ctx, body, correlationID); err != nil {
		return result.Err(470, err.Error())
	}

	deadline := time.NewTimer(rpcPollSlice * rpcPollSlices)
	defer deadline.Stop()

	select {
	case reply := <-replyCh:
		return reply
	case <-deadline.C:
		return result.Err(471, "RPC timed out waiting for reply")
	case <-ctx.Done():
		return result.Err(471, ctx.Err().Error())
	}
}

// publishWithRetry mirrors the Producer retry/backoff/reconnect policy,
// but without publisher confirms — the reply itself is the confirmation.
func (r *RPCClient) publishWithRetry(ctx context.Context, body []byte, correlationID string) error {
	var lastErr error
	for attempt := 1; attempt <= maxSendAttempts; attempt++ {
		if attempt > 1 {
			backoff := time.Duration(attempt-1) * sendBackoffUnit
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if r.conn.isClosed() {
			if err := r.conn.reconnect(); err != nil {
				lastErr = err
				continue
			}
		}

		if err := r.conn.publish(ctx, body, r.replyName, correlationID); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("publish failed after %d attempts: %w", maxSendAttempts, lastErr)
}
