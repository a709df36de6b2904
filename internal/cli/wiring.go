package cli

import (
	"github.com/mcpotools/mcpoctl/pkg/settings"
	"github.com/mcpotools/mcpoctl/pkg/store"
	"github.com/mcpotools/mcpoctl/pkg/workflow"
)

// newController wires the stores from the environment-derived paths.
// Every command builds its own controller; nothing is process-global
// except the paths themselves.
func newController() (*workflow.Controller, settings.Settings) {
	s := settings.Load()
	canonical := store.NewConfigStore(settings.ConfigFile(), s.KeepBackups)
	draft := store.NewDraftStore(settings.DraftPath())
	return workflow.New(canonical, draft), s
}
