package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "unknown"
)

// JSONOutput is the global --json flag for machine-readable output
var JSONOutput bool

var rootCmd = &cobra.Command{
	Use:   "mcpoctl",
	Short: "Configuration manager for the mcpo gateway",
	Long: `mcpoctl edits the MCP server list of a running mcpo gateway without
hand-editing JSON, and safely propagates changes to the live config.

Edits are staged in a draft outside the watched config directory, so
nothing restarts until you deploy. Deploying promotes the draft to the
canonical config file; the watcher that supervises mcpo picks up the
change and restarts it.

Examples:
  mcpoctl add memory --command npx --args "-y,@modelcontextprotocol/server-memory"
  mcpoctl add --preset time             # Stage a quick-start server
  mcpoctl diff                          # Compare draft against live config
  mcpoctl deploy                        # Promote the draft (restarts mcpo)
  mcpoctl status --watch                # Follow the restart until online`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&JSONOutput, "json", false, "Output machine-readable JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(discardCmd)
	rootCmd.AddCommand(restartCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(backupsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mcpoctl version %s (%s)\n", Version, Commit)
	},
}
