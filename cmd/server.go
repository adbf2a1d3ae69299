package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cwru-rcci/metarootbus/internal/dispatch"
	"github.com/cwru-rcci/metarootbus/internal/result"
	"github.com/cwru-rcci/metarootbus/internal/transport"
)

// newServerCmd creates the Cobra command that runs metarootbus as a
// long-lived, request/reply RPC server.
func newServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server [role-key]",
		Short: "Run as an AMQP RPC server, replying to each dispatched request",
		Long: `Server runs metarootbus as a long-lived process that drains a durable
queue, dispatches each decoded request to the configured router, and
publishes the Result back to the caller's reply queue before acknowledging
the delivery. role-key overrides the --role flag.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runServer,
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	role := roleKey
	if len(args) == 1 {
		role = args[0]
	}

	cfg, err := loadConfig(role)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := configureLogging(cfg); err != nil {
		return err
	}

	r, err := buildRouter(cfg)
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}
	defer r.Finalize()

	ep, err := buildEndpoint(cfg)
	if err != nil {
		return fmt.Errorf("build endpoint: %w", err)
	}

	registry := r.Registry()
	server, err := transport.NewRPCServer(ep, func(request map[string]any) result.Result {
		return dispatch.Dispatch(registry, request)
	})
	if err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	defer server.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return server.Run(ctx)
}
