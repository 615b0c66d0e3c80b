// cmd/volley/root.go
package main

import (
	"github.com/spf13/cobra"

	"github.com/opd-ai/go-volley/pkg/config"
	"github.com/opd-ai/go-volley/pkg/logging"
)

// app is the state shared by every subcommand once the root has loaded
// configuration.
type app struct {
	configPath string
	config     *config.GameConfig
	logger     *logging.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "volley",
		Short:         "Two-player arcade volleyball",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (JSON, YAML or TOML)")
	flags.String("log-level", "", "log level: DEBUG, INFO, WARN or ERROR")
	flags.String("log-file", "", "write logs to a rotating file instead of stdout")

	root.AddCommand(
		newPlayCommand(a),
		newSimulateCommand(a),
		newConfigCommand(a),
	)
	return root
}

// load reads the config file, environment and flags, then builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	v, err := config.NewViper(a.configPath)
	if err != nil {
		return err
	}
	if err := v.BindPFlag("logging.level", cmd.Flags().Lookup("log-level")); err != nil {
		return err
	}
	if err := v.BindPFlag("logging.file", cmd.Flags().Lookup("log-file")); err != nil {
		return err
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}
	a.config = cfg
	a.logger = logging.New(cfg.LoggerOptions())
	return nil
}
