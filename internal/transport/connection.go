// Package transport implements the four AMQP 0-9-1 transport roles
// shared by every metarootbus process: fire-and-forget Producer, durable
// Consumer, request/reply RPCClient, and RPCServer. All four share a
// reconnect policy, publisher confirms, and prefetch=1.
package transport

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/singleflight"

	"github.com/cwru-rcci/metarootbus/pkg/logging"
)

const (
	maxReconnectAttempts = 30
	reconnectBackoffUnit = 5 * time.Second

	maxSendAttempts = 10
	sendBackoffUnit = 5 * time.Second

	rpcPollSlice  = 5 * time.Second
	rpcPollSlices = 36 // 36 * 5s = 180s end-to-end RPC timeout

	logSubsystem = "transport"
)

// Endpoint describes how to reach the broker.
type Endpoint struct {
	URL   string // amqp[s]://user:pass@host:port/vhost
	Queue string // durable queue name for this role
}

// connection wraps the amqp.Connection/Channel pair shared by every
// transport role, plus the reconnect policy from §4.2.
type connection struct {
	endpoint  Endpoint
	declareQ  bool // only server roles (Consumer/RPCServer) declare the queue
	conn      *amqp.Connection
	ch        *amqp.Channel
	confirms  chan amqp.Confirmation
	closedCh  chan *amqp.Error
	blockedCh chan amqp.Blocking
	shutdown  chan struct{}

	// reconnectGroup deduplicates concurrent reconnect attempts: several
	// concurrent Send calls on one Producer or RPCClient can observe
	// isClosed() at once, and without this they'd race to dial two
	// separate connections instead of sharing one redial.
	reconnectGroup singleflight.Group
}

func newConnection(ep Endpoint, declareQueue bool) *connection {
	return &connection{
		endpoint: ep,
		declareQ: declareQueue,
		shutdown: make(chan struct{}),
	}
}

// dial connects once, with no retry; callers drive retry via reconnect.
func (c *connection) dial() error {
	conn, err := amqp.Dial(c.endpoint.URL)
	if err != nil {
		return fmt.Errorf("transport: dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("transport: open channel: %w", err)
	}

	if err := ch.Qos(1, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("transport: set qos: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("transport: enable confirms: %w", err)
	}

	if c.declareQ && c.endpoint.Queue != "" {
		if _, err := ch.QueueDeclare(c.endpoint.Queue, true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return fmt.Errorf("transport: declare queue %s: %w", c.endpoint.Queue, err)
		}
	}

	c.conn = conn
	c.ch = ch
	c.confirms = ch.NotifyPublish(make(chan amqp.Confirmation, 1))
	c.closedCh = conn.NotifyClose(make(chan *amqp.Error, 1))
	c.blockedCh = conn.NotifyBlocked(make(chan amqp.Blocking, 1))

	go c.watchBlocked()

	return nil
}

func (c *connection) watchBlocked() {
	for b := range c.blockedCh {
		if b.Active {
			logging.Warn(logSubsystem, "connection blocked by broker: %s", b.Reason)
		} else {
			logging.Warn(logSubsystem, "connection unblocked by broker")
		}
	}
}

// reconnect retries dial up to maxReconnectAttempts times with backoff
// proportional to the attempt number, resetting on success. A close of
// c.shutdown short-circuits the loop. Concurrent callers collapse onto a
// single in-flight attempt via reconnectGroup.
func (c *connection) reconnect() error {
	_, err, _ := c.reconnectGroup.Do("reconnect", func() (any, error) {
		return nil, c.doReconnect()
	})
	return err
}

func (c *connection) doReconnect() error {
	var lastErr error
	for attempt := 1; attempt <= maxReconnectAttempts; attempt++ {
		select {
		case <-c.shutdown:
			return fmt.Errorf("transport: reconnect aborted by shutdown request")
		default:
		}

		if err := c.dial(); err == nil {
			return nil
		} else {
			lastErr = err
			logging.Warn(logSubsystem, "reconnect attempt %d/%d failed: %v", attempt, maxReconnectAttempts, err)
		}

		backoff := time.Duration(attempt) * reconnectBackoffUnit
		select {
		case <-time.After(backoff):
		case <-c.shutdown:
			return fmt.Errorf("transport: reconnect aborted by shutdown request")
		}
	}
	return fmt.Errorf("transport: exceeded %d reconnect attempts: %w", maxReconnectAttempts, lastErr)
}

// isClosed reports whether the underlying connection/channel is unusable.
func (c *connection) isClosed() bool {
	return c.conn == nil || c.conn.IsClosed() || c.ch == nil || c.ch.IsClosed()
}

// close idempotently tears down the channel and connection.
func (c *connection) close() {
	select {
	case <-c.shutdown:
	default:
		close(c.shutdown)
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// publish publishes body as a persistent, mandatory message, optionally
// with reply_to/correlation_id for RPC. It does not wait for confirms;
// callers that need confirms call waitForConfirm afterward.
func (c *connection) publish(ctx context.Context, body []byte, replyTo, correlationID string) error {
	msg := amqp.Publishing{
		ContentType:  "application/yaml",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	}
	if replyTo != "" {
		msg.ReplyTo = replyTo
	}
	if correlationID != "" {
		msg.CorrelationId = correlationID
	}

	return c.ch.PublishWithContext(ctx, "", c.endpoint.Queue, true, false, msg)
}

// waitForConfirm blocks for the publisher confirm corresponding to the
// most recent publish on this channel.
func (c *connection) waitForConfirm(ctx context.Context) error {
	select {
	case confirm, ok := <-c.confirms:
		if !ok {
			return fmt.Errorf("transport: confirm channel closed")
		}
		if !confirm.Ack {
			return fmt.Errorf("transport: broker nacked publish")
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
