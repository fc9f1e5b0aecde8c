// Package commands implements the examples command line.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/thesyncim/uicontracts/internal/config"
	"github.com/thesyncim/uicontracts/internal/logging"
)

var (
	configFile string
	v          *viper.Viper
	cfg        *config.Config
)

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	v = config.New()
	configFile = ""
	cfg = nil

	root := &cobra.Command{
		Use:           "examples",
		Short:         "Tutorial GUI examples driven by Go view-models",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			logger, err := logging.New(os.Stderr, loaded.Log.Level, loaded.Log.Color)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			cfg = loaded
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default ./uicontracts.yaml if present)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("log-color", true, "colored log output")
	bindFlag(v, "log.level", flags.Lookup("log-level"))
	bindFlag(v, "log.color", flags.Lookup("log-color"))

	root.AddCommand(serveCmd(), soakCmd(), todoCmd(), versionCmd())
	return root
}

func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
