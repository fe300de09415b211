package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nerrad567/woods-config/internal/loader"
)

func newCheckCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run one load pass and print the outcome of every component",
		Long: `check runs a single discovery and validation pass. It exits non-zero
when no component configuration is valid.

With --output json the validated aggregate is printed instead of the
outcome table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			log := newLogger(cfg, cmd.ErrOrStderr())

			p, err := newPipeline(cfg, log)
			if err != nil {
				return err
			}

			agg, report := p.Load(cmd.Context())

			switch output {
			case "json":
				b, err := json.MarshalIndent(agg, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding aggregate: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
			case "table":
				renderReport(cmd.OutOrStdout(), report)
			default:
				return fmt.Errorf("unknown output format: %q", output)
			}

			if agg == nil {
				return errNoConfigs
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or json")
	return cmd
}

// renderReport prints one row per component and a status line.
func renderReport(w io.Writer, r *loader.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Component", "Outcome", "Module", "Type", "Detail"})
	for _, o := range r.Outcomes {
		t.AppendRow(table.Row{o.Component, string(o.Kind), o.Module, o.Type, outcomeDetail(o)})
	}
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()

	loaded := len(r.Loaded())
	fmt.Fprintf(w, "\nstatus: %s (%d loaded, %d failed)\n", r.Status(), loaded, len(r.Outcomes)-loaded)
}

// outcomeDetail names the offending fields of a validation failure, or
// the error of any other failure.
func outcomeDetail(o loader.Outcome) string {
	switch {
	case o.OK():
		return o.DataFile
	case len(o.Fields) > 0:
		return "invalid: " + strings.Join(o.Fields, ", ")
	default:
		return o.Error()
	}
}
