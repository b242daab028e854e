package main

import (
	"context"

	"github.com/petricontrols/bootstrap/application/config"
	"github.com/petricontrols/bootstrap/domain/entities"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:          "petri-bootstrap",
		Short:        "Mount petri controls instances found in an HTML page",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file path (optional).")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Logging level: debug|info|warn|error.")
	cmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "Logging format: text|json.")

	cmd.AddCommand(newRunCmd(g))
	cmd.AddCommand(newScanCmd(g))
	cmd.AddCommand(newSchemaCmd())
	return cmd
}

// load merges the config file, PETRI_* variables and flags. Flags win.
func (g *globalFlags) load(overrides []entities.ConfigOption, opts ...config.Option) (*entities.Config, error) {
	overrides = append(overrides,
		entities.WithLogLevel(g.logLevel),
		func(c *entities.Config) {
			if g.logFormat != "" {
				c.Log.Format = g.logFormat
			}
		},
	)
	return config.Load(g.configPath, append(opts, config.WithOverrides(overrides...))...)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
