package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/nerrad567/woods-config/internal/fsutil"
)

// Defaults used when Options leaves a field empty.
const (
	DefaultExtension = ".go"
	DefaultSeparator = "_"
	DataExtension    = ".json"
)

// DefaultExclude lists the module-directory files that are never components.
var DefaultExclude = []string{"doc.go", "base_config.go"}

// Logger defines the logging interface used by discovery.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Options tunes discovery. The zero value uses the defaults above.
type Options struct {
	Extension string
	Exclude   []string
	Logger    Logger
}

func (o Options) withDefaults() Options {
	if o.Extension == "" {
		o.Extension = DefaultExtension
	}
	if o.Exclude == nil {
		o.Exclude = DefaultExclude
	}
	if o.Logger == nil {
		o.Logger = noopLogger{}
	}
	return o
}

// Entry is a discovered component.
type Entry struct {
	Component  string
	ModuleFile string
	DataFile   string
}

// Problem is a component that discovery had to omit.
type Problem struct {
	Component   string
	ModuleFiles []string
	DataFile    string
	Err         error
}

// Result is the outcome of one discovery pass. Every slice is sorted by
// component name.
type Result struct {
	Entries  []Entry
	Problems []Problem
}

// Paths returns the component → data file mapping.
func (r Result) Paths() map[string]string {
	paths := make(map[string]string, len(r.Entries))
	for _, e := range r.Entries {
		paths[e.Component] = e.DataFile
	}
	return paths
}

// Names returns the discovered component names in order.
func (r Result) Names() []string {
	names := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		names[i] = e.Component
	}
	return names
}

// ComponentName derives a component name from a module file name:
// the base name without extension, cut at the first separator.
func ComponentName(file string) string {
	base := strings.TrimSuffix(path.Base(file), path.Ext(file))
	name, _, _ := strings.Cut(base, DefaultSeparator)
	return name
}

// Discover scans the root of models for schema modules and maps each
// derived component to its data file inside dataDir.
//
// Parameters:
//   - models: The schema-module directory
//   - dataDir: Directory holding {component}.json files
//   - opts: Extension, exclusions, and logger
//
// Returns:
//   - Result: Discovered entries and omitted components
//   - error: Only if the schema-module directory cannot be listed
func Discover(models fs.FS, dataDir string, opts Options) (Result, error) {
	opts = opts.withDefaults()

	files, err := fsutil.ListFiles(models, ".", opts.Extension)
	if err != nil {
		return Result{}, fmt.Errorf("scanning schema modules: %w", err)
	}

	byName := make(map[string][]string)
	for _, file := range files {
		if !eligible(file, opts.Exclude) {
			continue
		}
		name := ComponentName(file)
		if name == "" {
			opts.Logger.Warn("skipping module file with empty component name", "file", file)
			continue
		}
		byName[name] = append(byName[name], file)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	var res Result
	for _, name := range names {
		moduleFiles := byName[name]

		dataFile, err := securejoin.SecureJoin(dataDir, name+DataExtension)
		if err != nil {
			res.Problems = append(res.Problems, Problem{
				Component:   name,
				ModuleFiles: moduleFiles,
				Err:         fmt.Errorf("resolving data file: %w", err),
			})
			opts.Logger.Error("cannot resolve data file", "component", name, "error", err)
			continue
		}

		if len(moduleFiles) > 1 {
			res.Problems = append(res.Problems, Problem{
				Component:   name,
				ModuleFiles: moduleFiles,
				DataFile:    dataFile,
				Err:         ErrNameCollision,
			})
			opts.Logger.Error("component name derived by several module files",
				"component", name, "files", strings.Join(moduleFiles, ","))
			continue
		}

		if _, err := os.Stat(dataFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				err = fmt.Errorf("%w: %w", ErrMissingDataFile, err)
			} else {
				err = ErrMissingDataFile
			}
			res.Problems = append(res.Problems, Problem{
				Component:   name,
				ModuleFiles: moduleFiles,
				DataFile:    dataFile,
				Err:         err,
			})
			opts.Logger.Warn("data file not found", "component", name, "path", dataFile)
			continue
		}

		res.Entries = append(res.Entries, Entry{
			Component:  name,
			ModuleFile: moduleFiles[0],
			DataFile:   dataFile,
		})
	}

	opts.Logger.Debug("discovery complete", "components", len(res.Entries), "omitted", len(res.Problems))
	return res, nil
}

func eligible(file string, exclude []string) bool {
	if strings.HasSuffix(file, "_test.go") {
		return false
	}
	for _, ex := range exclude {
		if file == ex {
			return false
		}
	}
	return true
}
