package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments, dispatch failure).
	ExitCodeError = 1
)

// rootCmd represents the base command for the metarootbus application.
var rootCmd = &cobra.Command{
	Use:   "metarootbus",
	Short: "Run and drive the metaroot administration bus",
	Long: `metarootbus fans out user and group administration actions to a set of
backend managers over an AMQP broker. It can run as a long-lived consumer or
RPC server process, or act as a client issuing individual calls.`,
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "metarootbus version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(ExitCodeError)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(newConsumerCmd())
	rootCmd.AddCommand(newServerCmd())
	rootCmd.AddCommand(newGenWrapperCmd())
	rootCmd.AddCommand(newManagersCmd())
	rootCmd.AddCommand(newActivityCmd())
	rootCmd.AddCommand(newCallCmd())
	rootCmd.AddCommand(newReplCmd())

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to metaroot config file (default: search cwd and parents)")
	rootCmd.PersistentFlags().StringVar(&roleKey, "role", "", "config section to overlay on GLOBAL")
}

var (
	cfgFile string
	roleKey string
)
