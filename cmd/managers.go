package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/cwru-rcci/metarootbus/internal/router"
)

// newManagersCmd creates the Cobra command that lists the backend
// Manager plug-ins compiled into this binary and, when a config is
// available, which of them are active for the given role.
func newManagersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "managers",
		Short: "List the backend manager plug-ins compiled into this binary",
		RunE:  runManagers,
	}
}

func runManagers(cmd *cobra.Command, args []string) error {
	registered := router.RegisteredManagers()
	sort.Strings(registered)

	active := map[string]bool{}
	if cfg, err := loadConfig(roleKey); err == nil {
		for _, h := range cfg.Hooks() {
			active[h] = true
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.Colors{text.FgHiBlue, text.Bold}.Sprint("MANAGER"),
		text.Colors{text.FgHiBlue, text.Bold}.Sprint("ACTIVE"),
	})

	for _, name := range registered {
		status := "-"
		if active[name] {
			status = text.Colors{text.FgHiGreen, text.Bold}.Sprint("yes")
		}
		t.AppendRow(table.Row{name, status})
	}

	t.Render()
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d manager(s) registered\n", len(registered))
	return nil
}
