package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nerrad567/woods-config/internal/history"
	"github.com/nerrad567/woods-config/internal/infrastructure/database"
	"github.com/nerrad567/woods-config/migrations"
)

func newHistoryCmd(opts *options) *cobra.Command {
	var filter history.Filter
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded load passes",
		Long: `history lists the load passes recorded by the daemon, newest first.
With --run the outcomes of a single pass are shown instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer db.Close() //nolint:errcheck // read-only use

			if _, err := db.Migrate(cmd.Context(), migrations.FS); err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}
			repo := history.NewSQLiteRepository(db.DB)

			if runID != "" {
				run, err := repo.Get(cmd.Context(), runID)
				if err != nil {
					return err
				}
				renderRun(cmd.OutOrStdout(), run)
				return nil
			}

			res, err := repo.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			renderRuns(cmd.OutOrStdout(), res)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&filter.Limit, "limit", "n", 20, "maximum runs to show")
	f.IntVar(&filter.Offset, "offset", 0, "runs to skip")
	f.StringVar(&filter.Status, "status", "", "only runs with this status (ok, partial, failed, empty)")
	f.StringVar(&filter.Component, "component", "", "only runs that saw this component")
	f.StringVar(&runID, "run", "", "show the outcomes of one run")
	return cmd
}

func renderRuns(w io.Writer, res *history.ListResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Run", "Started", "Status", "Loaded", "Failed", "Duration"})
	for _, r := range res.Runs {
		t.AppendRow(table.Row{
			r.ID,
			r.StartedAt.Local().Format(time.DateTime),
			r.Status,
			r.Loaded,
			r.Failed,
			r.Duration.String(),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "total", res.Total})
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()
}

func renderRun(w io.Writer, run *history.Run) {
	fmt.Fprintf(w, "run %s at %s: %s\n\n", run.ID, run.StartedAt.Local().Format(time.DateTime), run.Status)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Component", "Outcome", "Module", "Type", "Detail"})
	for _, o := range run.Outcomes {
		detail := o.Error
		if len(o.Fields) > 0 {
			detail = "invalid: " + strings.Join(o.Fields, ", ")
		}
		t.AppendRow(table.Row{o.Component, o.Kind, o.Module, o.Type, detail})
	}
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()
}
