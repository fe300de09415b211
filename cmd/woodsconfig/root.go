package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/nerrad567/woods-config/internal/fsutil"
	"github.com/nerrad567/woods-config/internal/infrastructure/config"
	"github.com/nerrad567/woods-config/internal/infrastructure/logging"
	"github.com/nerrad567/woods-config/internal/loader"
	"github.com/nerrad567/woods-config/internal/models"
)

// configEnvVar names the configuration file when --config is not given.
const configEnvVar = "WOODS_CONFIG"

// errNoConfigs is returned by check when no component validated.
var errNoConfigs = errors.New("no valid component configurations found")

// options are the persistent flags shared by every subcommand.
type options struct {
	configPath string
	dataDir    string
	modelsDir  string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "woodsconfig",
		Short: "Discover and validate Woods component configuration",
		Long: `woodsconfig pairs each component schema module with its JSON data
file, validates the data against the component schema, and reports the
components whose configuration is usable.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "configuration file (YAML or TOML); defaults to $"+configEnvVar)
	flags.StringVar(&opts.dataDir, "data-dir", "", "directory of {component}.json files (overrides paths.data_dir)")
	flags.StringVar(&opts.modelsDir, "models-dir", "", "directory of schema-module files (overrides paths.models_dir)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newCheckCmd(opts),
		newRunCmd(opts),
		newSchemasCmd(opts),
		newHistoryCmd(opts),
	)
	return cmd
}

// loadConfig resolves the configuration: --config, then $WOODS_CONFIG,
// then defaults with environment overrides. Flags win over the file.
func (o *options) loadConfig() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = os.Getenv(configEnvVar)
	}

	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return nil, err
	}

	if o.dataDir != "" {
		cfg.Paths.DataDir = o.dataDir
	}
	if o.modelsDir != "" {
		cfg.Paths.ModelsDir = o.modelsDir
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	return cfg, nil
}

// newLogger writes to w so that stdout stays free for command output.
func newLogger(cfg *config.Config, w io.Writer) *logging.Logger {
	return logging.NewWithWriter(cfg.Logging, version, w)
}

// newPipeline wires the loader from cfg. The schema registry always holds
// the compiled-in modules; ModelsDir only changes which modules are
// discovered.
func newPipeline(cfg *config.Config, log *logging.Logger) (*loader.Pipeline, error) {
	dataDir, err := fsutil.NormalizePath(cfg.Paths.DataDir)
	if err != nil {
		return nil, fmt.Errorf("resolving data directory: %w", err)
	}

	var modelsFS fs.FS = models.Sources
	if cfg.Paths.ModelsDir != "" {
		dir, err := fsutil.NormalizePath(cfg.Paths.ModelsDir)
		if err != nil {
			return nil, fmt.Errorf("resolving models directory: %w", err)
		}
		modelsFS = os.DirFS(dir)
	}

	reg, err := models.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("building schema registry: %w", err)
	}

	p, err := loader.New(loader.Config{
		Models:   modelsFS,
		DataDir:  dataDir,
		Registry: reg,
		Workers:  cfg.Loader.Workers,
	})
	if err != nil {
		return nil, err
	}
	p.SetLogger(log.Subsystem("loader"))
	p.Cache().SetLogger(log.Subsystem("cache"))
	return p, nil
}
