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

// newConsumerCmd creates the Cobra command that runs metarootbus as a
// long-lived, fire-and-forget AMQP consumer.
func newConsumerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consumer [role-key]",
		Short: "Run as a durable AMQP consumer, fanning actions out to backend managers",
		Long: `Consumer runs metarootbus as a long-lived process that drains a durable
queue and dispatches each decoded request to the configured router, with no
reply sent back to the sender. role-key overrides the --role flag.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runConsumer,
	}
}

func runConsumer(cmd *cobra.Command, args []string) error {
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
	consumer, err := transport.NewConsumer(ep, func(request map[string]any) result.Result {
		return dispatch.Dispatch(registry, request)
	})
	if err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}
	defer consumer.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return consumer.Run(ctx)
}
