package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nerrad567/woods-config/internal/fsutil"
	"github.com/nerrad567/woods-config/internal/models"
)

// schemaSuffix ends every file written by the schemas command.
const schemaSuffix = ".schema.json"

// documented is implemented by schema types that expose their JSON Schema.
type documented interface {
	JSONSchema() []byte
}

func newSchemasCmd(_ *options) *cobra.Command {
	var out string
	var prune bool

	cmd := &cobra.Command{
		Use:   "schemas",
		Short: "Write the JSON Schema of every component type",
		Long: `schemas writes {out}/{module}/{Type}.schema.json for every registered
component type, so data files can be checked by editors and other tools.

With --prune, schema files below the output directory that no registered
type produced are removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := fsutil.NormalizePath(out)
			if err != nil {
				return err
			}
			written, err := writeSchemas(dir)
			if err != nil {
				return err
			}

			var removed []string
			if prune {
				if removed, err = pruneSchemas(dir, written); err != nil {
					return err
				}
			}
			return listSchemas(cmd.OutOrStdout(), written, removed)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "schemas", "output directory")
	cmd.Flags().BoolVar(&prune, "prune", false, "remove stale schema files")
	return cmd
}

// writeSchemas writes every schema document below dir and returns the
// written paths in registry order.
func writeSchemas(dir string) ([]string, error) {
	reg, err := models.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("building schema registry: %w", err)
	}

	var written []string
	for _, name := range reg.Modules() {
		mod, _ := reg.Module(name)
		for _, typ := range mod.Types {
			doc, ok := typ.(documented)
			if !ok {
				continue
			}
			p := filepath.Join(dir, mod.Name, typ.Name()+schemaSuffix)
			if err := fsutil.CreateFile(p); err != nil {
				return nil, err
			}
			if err := os.WriteFile(p, doc.JSONSchema(), fsutil.FilePerm); err != nil {
				return nil, fmt.Errorf("writing %s: %w", p, err)
			}
			written = append(written, p)
		}
	}

	if _, err := fsutil.FixPermissions(dir, fsutil.DirPerm, fsutil.FilePerm); err != nil {
		return nil, err
	}
	return written, nil
}

// pruneSchemas removes schema files under dir that are not in keep.
// Other files are left alone.
func pruneSchemas(dir string, keep []string) ([]string, error) {
	found, err := fsutil.FindFilesByExtension(dir, filepath.Ext(schemaSuffix))
	if err != nil {
		return nil, err
	}

	kept := make(map[string]bool, len(keep))
	for _, p := range keep {
		kept[p] = true
	}

	var removed []string
	for _, p := range found {
		if kept[p] || !strings.HasSuffix(p, schemaSuffix) {
			continue
		}
		if err := os.Remove(p); err != nil {
			return removed, fmt.Errorf("removing %s: %w", p, err)
		}
		removed = append(removed, p)
	}
	return removed, nil
}

// listSchemas prints one "mode path" line per written file, ls style,
// followed by one line per removed file.
func listSchemas(w io.Writer, written, removed []string) error {
	for _, p := range written {
		info, err := os.Stat(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s  %s\n", fsutil.PermissionString(info.Mode()), p)
	}
	for _, p := range removed {
		fmt.Fprintf(w, "removed    %s\n", p)
	}
	return nil
}
