package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/cwru-rcci/metarootbus/internal/activity"
	"github.com/cwru-rcci/metarootbus/internal/config"
	mrstrings "github.com/cwru-rcci/metarootbus/pkg/strings"
)

// messageColumnMaxLen bounds the MESSAGE column so a long error payload or
// echoed argument list doesn't blow out the table width.
const messageColumnMaxLen = 80

var activityTailCount int

// newActivityCmd creates the Cobra command that tails the activity
// journal configured for a role.
func newActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Tail the activity journal",
		RunE:  runActivity,
	}
	cmd.Flags().IntVar(&activityTailCount, "count", 20, "number of most recent rows to show")
	return cmd
}

func runActivity(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(roleKey)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.ActivityStreamDisabled() {
		fmt.Fprintln(cmd.OutOrStdout(), "activity journal is disabled for this role")
		return nil
	}

	path := cfg.GetDefault(config.KeyActivityStreamDB, "metarootbus-activity.db")
	j, err := activity.NewSQLiteJournal(path)
	if err != nil {
		return fmt.Errorf("open activity journal: %w", err)
	}
	defer j.Close()

	rows, err := j.Tail(activityTailCount)
	if err != nil {
		return fmt.Errorf("tail activity journal: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.Colors{text.FgHiBlue, text.Bold}.Sprint("TIME"),
		text.Colors{text.FgHiBlue, text.Bold}.Sprint("TYPE"),
		text.Colors{text.FgHiBlue, text.Bold}.Sprint("ACTION"),
		text.Colors{text.FgHiBlue, text.Bold}.Sprint("STATUS"),
		text.Colors{text.FgHiBlue, text.Bold}.Sprint("MESSAGE"),
	})

	for _, r := range rows {
		message := mrstrings.TruncateDescription(r.Message, messageColumnMaxLen)
		t.AppendRow(table.Row{r.EventTime, r.Type, r.Action, r.Status, message})
	}

	t.Render()
	return nil
}
