package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcpotools/mcpoctl/pkg/diff"
	"github.com/mcpotools/mcpoctl/pkg/gateway"
	"github.com/mcpotools/mcpoctl/pkg/output"
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare the staged draft against the live configuration",
	Long: `Show whether the draft diverges from the canonical config and which
servers were added, removed, or changed. A draft that is content-
identical to the live config (even with servers in a different order)
counts as no changes.

Examples:
  mcpoctl diff
  mcpoctl diff --json`,
	RunE: runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctrl, _ := newController()
	out := output.DefaultWriter()

	canonical, err := ctrl.Canonical().Load()
	if err != nil {
		if JSONOutput {
			return output.NewJSONWriter().WriteError(err)
		}
		return err
	}

	canonicalFP, err := diff.Fingerprint(canonical)
	if err != nil {
		return err
	}

	result := output.DiffOutput{CanonicalFingerprint: canonicalFP}

	draft := ctrl.Draft().Load()
	if draft != nil {
		result.HasDraft = true
		result.DraftFingerprint, err = diff.Fingerprint(draft)
		if err != nil {
			return err
		}
		result.HasDivergence = diff.HasDivergence(draft, canonical)
		result.Added, result.Removed, result.Changed = compareServers(canonical, draft)
	}

	if JSONOutput {
		return output.NewJSONWriter().WriteSuccess(result)
	}

	if !result.HasDraft {
		out.Info("No draft staged; the working configuration is the live config")
		return nil
	}

	if !result.HasDivergence {
		out.Info("Draft is identical to the live config (no changes to deploy)")
		return nil
	}

	out.Warning("Draft diverges from the live config:")
	for _, name := range result.Added {
		out.Println("  + %s", name)
	}
	for _, name := range result.Removed {
		out.Println("  - %s", name)
	}
	for _, name := range result.Changed {
		out.Println("  ~ %s", name)
	}

	fmt.Println()
	out.Println("  live:  %s", result.CanonicalFingerprint)
	out.Println("  draft: %s", result.DraftFingerprint)
	out.Info("Run 'mcpoctl deploy' to promote the draft, 'mcpoctl discard' to drop it")
	return nil
}

// compareServers reports per-server differences between the live config
// and the draft.
func compareServers(canonical, draft *gateway.Config) (added, removed, changed []string) {
	for _, name := range gateway.SortedNames(draft.MCPServers) {
		prev, ok := canonical.MCPServers[name]
		if !ok {
			added = append(added, name)
			continue
		}
		if !sameSpec(prev, draft.MCPServers[name]) {
			changed = append(changed, name)
		}
	}
	for _, name := range gateway.SortedNames(canonical.MCPServers) {
		if _, ok := draft.MCPServers[name]; !ok {
			removed = append(removed, name)
		}
	}
	return added, removed, changed
}

func sameSpec(a, b *gateway.ServerSpec) bool {
	da, err := json.Marshal(a)
	if err != nil {
		return false
	}
	db, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(da, db)
}
