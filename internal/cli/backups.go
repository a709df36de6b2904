package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcpotools/mcpoctl/pkg/output"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List retained backups of the live configuration",
	Long: `Every deploy backs up the previous live config before overwriting it.
This lists the retained backups, oldest first. To roll back, deploy a
backup with 'mcpoctl edit --file <backup>' followed by 'mcpoctl deploy'.`,
	RunE: runBackups,
}

func runBackups(cmd *cobra.Command, args []string) error {
	ctrl, _ := newController()
	out := output.DefaultWriter()

	backups, err := ctrl.Canonical().Backups()
	if err != nil {
		if JSONOutput {
			return output.NewJSONWriter().WriteError(err)
		}
		return err
	}

	if JSONOutput {
		if backups == nil {
			backups = []string{}
		}
		return output.NewJSONWriter().WriteSuccess(map[string]any{"backups": backups})
	}

	if len(backups) == 0 {
		out.Info("No backups of %s yet", ctrl.Canonical().Path())
		return nil
	}

	table := output.NewTable("backup", "size")
	for _, path := range backups {
		size := "?"
		if info, err := os.Stat(path); err == nil {
			size = formatSize(info.Size())
		}
		table.AddRow(path, size)
	}
	table.Render()
	return nil
}

func formatSize(n int64) string {
	const kb = 1024
	if n < kb {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%d KB", n/kb)
}
