package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/cwru-rcci/metarootbus/internal/router"
	"github.com/cwru-rcci/metarootbus/internal/transport"
)

const replTimeout = 3 * time.Minute

// newReplCmd creates the Cobra command that opens an interactive session
// for issuing ad hoc RPC calls against the configured broker.
func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Open an interactive session for issuing RPC calls",
		Long: `REPL opens a readline-backed interactive session. Each line is
"<action> [key=value ...]", the same grammar as "metarootbus call". Type
"help" for the built-in commands or "exit" to quit.`,
		RunE: runRepl,
	}
}

func runRepl(cmd *cobra.Command, args []string) error {
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

	completer := replCompleter()
	historyFile := filepath.Join(os.TempDir(), ".metarootbus_repl_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "metarootbus> ",
		HistoryFile:     historyFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("create readline instance: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(cmd.OutOrStdout(), "metarootbus REPL. Type 'help' for commands, 'exit' to quit.")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			fmt.Fprintln(cmd.OutOrStdout(), "goodbye")
			return nil
		} else if err != nil {
			return fmt.Errorf("readline: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		switch input {
		case "exit", "quit":
			return nil
		case "help":
			printReplHelp(cmd.OutOrStdout())
			continue
		case "managers":
			names := router.RegisteredManagers()
			sort.Strings(names)
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, ", "))
			continue
		}

		fields := strings.Fields(input)
		action := fields[0]
		args, err := parseCallArgs(fields[1:])
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "error: %v\n", err)
			continue
		}

		request := map[string]any{"action": action, "managers": "any"}
		for k, v := range args {
			request[k] = v
		}

		ctx, cancel := context.WithTimeout(context.Background(), replTimeout)
		res := rpc.Send(ctx, request)
		cancel()

		if res.IsError() {
			fmt.Fprintf(cmd.OutOrStdout(), "error status=%d %v\n", res.Status, res.Response)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok %v\n", res.Response)
	}
}

func printReplHelp(w io.Writer) {
	fmt.Fprintln(w, "<action> [key=value ...]   issue an RPC call")
	fmt.Fprintln(w, "managers                   list registered backend managers")
	fmt.Fprintln(w, "help                       show this message")
	fmt.Fprintln(w, "exit | quit                leave the REPL")
}

func replCompleter() *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("help"),
		readline.PcItem("managers"),
		readline.PcItem("exit"),
		readline.PcItem("quit"),
	}
	for _, action := range replActions {
		items = append(items, readline.PcItem(action))
	}
	return readline.NewPrefixCompleter(items...)
}

// replActions lists the nineteen dispatchable action names for tab
// completion, matching the keys built by router.Registry.
var replActions = []string{
	"addGroup", "getGroup", "listGroups", "getMembers", "updateGroup",
	"deleteGroup", "existsGroup", "addUser", "updateUser", "getUser",
	"listUsers", "validateUsers", "rolesUser", "deleteUser", "existsUser",
	"setUserDefaultGroup", "associateUserToGroup", "disassociateUserFromGroup",
	"disassociateUsersFromGroup",
}
