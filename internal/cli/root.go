package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/worldgraph/config"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the worldgraph CLI with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stderr).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Logs go to logOut; command output
// goes to the command's OutOrStdout.
//
// Logging:
//   - Default: the config file's log_level (info without a file)
//   - With --verbose (-v): debug level
func NewRootCommand(logOut io.Writer) *cobra.Command {
	var (
		verbose    bool
		configPath string
	)
	a := &app{}

	root := &cobra.Command{
		Use:          "worldgraph",
		Short:        "worldgraph answers routing questions about spatial road and river networks",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}
			level := cfg.Level()
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(logOut, level)
			cmd.SetContext(withLogger(cmd.Context(), logger))

			built, err := newApp(cfg, logger)
			if err != nil {
				return err
			}
			*a = *built
			logger.Debug("config", "path", configPath, "cell", cfg.CellSize, "tile", cfg.TileSize, "workers", cfg.Workers)

			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("worldgraph %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML settings file")

	root.AddCommand(
		newPathCmd(a),
		newHopsCmd(a),
		newReachCmd(a),
		newQueryCmd(a),
		newConnectedCmd(a),
		newClustersCmd(a),
		newStatsCmd(a),
		newExportCmd(a),
	)

	return root
}
