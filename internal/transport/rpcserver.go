package transport

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/coreos/go-systemd/v22/daemon"

	"github.com/cwru-rcci/metarootbus/internal/codec"
	"github.com/cwru-rcci/metarootbus/internal/result"
	"github.com/cwru-rcci/metarootbus/pkg/logging"
)

// RPCServer behaves as Consumer, additionally publishing exactly one
// reply per request — including decode failures and CLOSE_IMMEDIATELY —
// to reply_to/correlation_id, before acknowledging the originating
// message, per §4.6.
type RPCServer struct {
	conn    *connection
	handler Handler
}

// NewRPCServer connects to endpoint, declaring the durable request queue.
func NewRPCServer(ep Endpoint, handler Handler) (*RPCServer, error) {
	c := newConnection(ep, true)
	if err := c.dial(); err != nil {
		return nil, err
	}
	return &RPCServer{conn: c, handler: handler}, nil
}

// Close idempotently tears down the connection.
func (s *RPCServer) Close() {
	s.conn.close()
}

// Run consumes until ctx is cancelled or a CLOSE_IMMEDIATELY control
// message is received (answered with {0, "SHUTDOWN_INIT"} before the
// server stops consuming).
func (s *RPCServer) Run(ctx context.Context) error {
	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)
	defer func() { _, _ = daemon.SdNotify(false, daemon.SdNotifyStopping) }()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if s.conn.isClosed() {
			if err := s.conn.reconnect(); err != nil {
				return err
			}
		}

		deliveries, err := s.conn.ch.Consume(s.conn.endpoint.Queue, "", false, false, false, false, nil)
		if err != nil {
			s.conn.close()
			continue
		}

		if done := s.drain(ctx, deliveries); done {
			return nil
		}
	}
}

func (s *RPCServer) drain(ctx context.Context, deliveries <-chan amqp.Delivery) bool {
	for {
		select {
		case <-ctx.Done():
			return true
		case d, ok := <-deliveries:
			if !ok {
				return false
			}
			stop := s.handleOne(ctx, d)
			_ = d.Ack(false)
			if stop {
				return true
			}
		}
	}
}

// handleOne decodes, dispatches, and replies to a single request,
// returning true if the request was CLOSE_IMMEDIATELY.
func (s *RPCServer) handleOne(ctx context.Context, d amqp.Delivery) (shutdown bool) {
	reply, shutdown := s.buildReply(d)
	s.reply(ctx, d, reply)
	return shutdown
}

// buildReply decodes and dispatches a single request body, without
// publishing anything. A malformed request (one the server cannot even
// parse) replies with 450, matching the original's YAML-parse-failure
// status — 454 is reserved for the RPC *client*'s failure to decode a
// reply, a distinct failure mode on the other side of the call.
func (s *RPCServer) buildReply(d amqp.Delivery) (reply result.Result, shutdown bool) {
	decoded, err := codec.DecodeRequest(d.Body)
	switch {
	case err != nil:
		logging.Warn(logSubsystem, "malformed RPC request: %v", err)
		reply = result.Err(450, err.Error())
	default:
		if _, ok := decoded.(codec.CloseImmediately); ok {
			reply = result.OK("SHUTDOWN_INIT")
			shutdown = true
		} else if request, ok := decoded.(map[string]any); ok {
			reply = s.dispatchSafely(request)
		} else {
			reply = result.Err(450, "decoded request was neither a mapping nor CLOSE_IMMEDIATELY")
		}
	}
	return reply, shutdown
}

func (s *RPCServer) dispatchSafely(request map[string]any) (reply result.Result) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error(logSubsystem, nil, "handler panicked: %v", r)
			reply = result.Err(455, "handler panicked")
		}
	}()
	return s.handler(request)
}

func (s *RPCServer) reply(ctx context.Context, d amqp.Delivery, reply result.Result) {
	if d.ReplyTo == "" {
		return
	}

	body, err := codec.EncodeResult(reply)
	if err != nil {
		logging.Error(logSubsystem, err, "failed to encode RPC reply")
		return
	}

	if err := s.conn.ch.PublishWithContext(ctx, "", d.ReplyTo, false, false, amqp.Publishing{
		ContentType:   "application/yaml",
		CorrelationId: d.CorrelationId,
		Body:          body,
	}); err != nil {
		logging.Error(logSubsystem, err, "failed to publish RPC reply")
	}
}
