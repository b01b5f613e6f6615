package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/wonderland/internal/clipboard"
	"github.com/dshills/wonderland/internal/input"
	"github.com/dshills/wonderland/internal/log"
	"github.com/dshills/wonderland/internal/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		watch           bool
		memoryClipboard bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer JSON-lines requests on stdin",
		Long: `Serve reads one JSON request per line from stdin and writes one JSON
response per line to stdout. Responses carry the edits to apply to the
request text; the server keeps no document state.

Example request:
  {"id":"1","command":"comment.toggle","language":"go","text":"x := 1\n"}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cb clipboard.Clipboard
			if memoryClipboard {
				cb = clipboard.NewMemory("")
			}
			a, err := root.newApp(cmd.Context(), cb, input.SourceServer)
			if err != nil {
				return err
			}
			defer a.Close()

			if watch {
				if err := a.Watch(); err != nil {
					log.Warn(log.CatCLI, "settings will not reload", "error", err)
				}
			}

			srv := server.New(a, server.NewLineTransport(cmd.InOrStdin(), cmd.OutOrStdout()))
			err = srv.Serve(cmd.Context())
			if m := a.System().Metrics(); m != nil {
				st := m.Snapshot()
				log.Info(log.CatServer, "session finished",
					"requests", st.TotalDispatches,
					"errors", st.TotalErrors,
					"noops", st.TotalNoOps,
					"edits", st.TotalEdits,
					"avg", st.AverageDuration,
				)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", true, "reload settings when the settings file changes")
	cmd.Flags().BoolVar(&memoryClipboard, "memory-clipboard", false,
		"keep clipboard writes in memory instead of the system clipboard")
	return cmd
}
