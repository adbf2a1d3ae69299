package transport

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/coreos/go-systemd/v22/daemon"

	"github.com/cwru-rcci/metarootbus/internal/codec"
	"github.com/cwru-rcci/metarootbus/internal/result"
	"github.com/cwru-rcci/metarootbus/pkg/logging"
)

// Handler dispatches a decoded request envelope to whatever handles
// actions for this process (normally internal/dispatch.Dispatch bound to
// a router.Router). A panicking Handler is recovered into status 455 as a
// defensive backstop; handlers are expected to trap their own errors per
// §4.7, but the Consumer must still ack the message either way.
type Handler func(request map[string]any) result.Result

// Consumer binds the configured durable queue and dispatches one message
// at a time (prefetch=1), acknowledging after dispatch regardless of
// outcome, per §4.4.
type Consumer struct {
	conn    *connection
	handler Handler
}

// NewConsumer connects to endpoint, declaring the durable queue.
func NewConsumer(ep Endpoint, handler Handler) (*Consumer, error) {
	c := newConnection(ep, true)
	if err := c.dial(); err != nil {
		return nil, err
	}
	return &Consumer{conn: c, handler: handler}, nil
}

// Close idempotently tears down the connection.
func (c *Consumer) Close() {
	c.conn.close()
}

// Run consumes until ctx is cancelled or a CLOSE_IMMEDIATELY control
// message is received. It reconnects on transport failure per the shared
// policy and notifies systemd readiness/stopping if run under it.
func (c *Consumer) Run(ctx context.Context) error {
	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)
	defer func() { _, _ = daemon.SdNotify(false, daemon.SdNotifyStopping) }()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if c.conn.isClosed() {
			if err := c.conn.reconnect(); err != nil {
				return err
			}
		}

		deliveries, err := c.conn.ch.Consume(c.conn.endpoint.Queue, "", false, false, false, false, nil)
		if err != nil {
			c.conn.close()
			continue
		}

		if done := c.drain(ctx, deliveries); done {
			return nil
		}
	}
}

// drain processes deliveries until the channel closes (connection lost,
// caller reconnects) or a CLOSE_IMMEDIATELY message stops consumption for
// good (returns true).
func (c *Consumer) drain(ctx context.Context, deliveries <-chan amqp.Delivery) bool {
	for {
		select {
		case <-ctx.Done():
			return true
		case d, ok := <-deliveries:
			if !ok {
				return false
			}
			stop := c.handleOne(d.Body)
			_ = d.Ack(false)
			if stop {
				return true
			}
		}
	}
}

// handleOne decodes and dispatches a single message body, returning true
// if it was a CLOSE_IMMEDIATELY control message.
func (c *Consumer) handleOne(body []byte) (shutdown bool) {
	decoded, err := codec.DecodeRequest(body)
	if err != nil {
		logging.Warn(logSubsystem, "dropping malformed message: %v", err)
		return false
	}

	if _, ok := decoded.(codec.CloseImmediately); ok {
		logging.Info(logSubsystem, "received CLOSE_IMMEDIATELY, stopping consumer")
		return true
	}

	request, ok := decoded.(map[string]any)
	if !ok {
		logging.Warn(logSubsystem, "dropping message decoded to unexpected type %T", decoded)
		return false
	}

	c.dispatchSafely(request)
	return false
}

// dispatchSafely invokes the Handler, recovering any panic into a logged
// internal error (status 455 territory) instead of crashing the consumer
// loop.
func (c *Consumer) dispatchSafely(request map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error(logSubsystem, nil, "handler panicked: %v", r)
		}
	}()
	c.handler(request)
}
