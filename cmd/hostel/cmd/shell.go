package cmd

import (
	"github.com/spf13/cobra"

	"hostel-registry/internal/shell"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Manage rooms and the waiting list interactively",
	Long: `Starts a line-oriented console. Type "help" for the list of commands.

State is kept for the lifetime of the session only.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	reg, cleanup, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return shell.New(reg, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
}
