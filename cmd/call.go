package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cwru-rcci/metarootbus/internal/transport"
)

var callManagers string

// newCallCmd creates the Cobra command that issues one ad hoc RPC call
// and prints the resulting Result.
func newCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <action> [key=value ...]",
		Short: "Issue a single RPC call and print the result",
		Long: `Call sends one request/reply action to the configured broker and prints
the Result it receives back. Extra positional arguments are key=value pairs;
values are parsed as YAML scalars, so "42" becomes an int and "true" a bool.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCall,
	}
	cmd.Flags().StringVar(&callManagers, "managers", "any", "comma-separated manager class names, or \"any\"")
	return cmd
}

func runCall(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(roleKey)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := configureLogging(cfg); err != nil {
		return err
	}

	ep, err := buildEndpoint(cfg)
	if err != nil {
		return fmt.Errorf("build endpoint: %w", err)
	}

	rpc, err := transport.NewRPCClient(ep)
	if err != nil {
		return fmt.Errorf("connect rpc client: %w", err)
	}
	defer rpc.Close()

	action := args[0]
	fields, err := parseCallArgs(args[1:])
	if err != nil {
		return err
	}

	request := map[string]any{"action": action, "managers": managersArg()}
	for k, v := range fields {
		request[k] = v
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = fmt.Sprintf(" calling %s...", action)
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	res := rpc.Send(ctx, request)
	s.Stop()

	if res.IsError() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s status=%d %v\n", text.FgRed.Sprint("ERROR"), res.Status, res.Response)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %v\n", text.FgGreen.Sprint("OK"), res.Response)
	return nil
}

func managersArg() any {
	if callManagers == "" || callManagers == "any" {
		return "any"
	}
	parts := strings.Split(callManagers, ",")
	out := make([]any, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// parseCallArgs turns ["name=g", "gid=100"] into {"name":"g","gid":100},
// decoding each value as a YAML scalar so numeric/boolean literals come
// through as their native types rather than strings.
func parseCallArgs(pairs []string) (map[string]any, error) {
	out := map[string]any{}
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid argument %q, expected key=value", pair)
		}
		var decoded any
		if err := yaml.Unmarshal([]byte(v), &decoded); err != nil {
			return nil, fmt.Errorf("argument %q: %w", pair, err)
		}
		out[k] = decoded
	}
	return out, nil
}
