package cli

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fsglob-project/fsglob/cmd/cli/resolve"
	"github.com/fsglob-project/fsglob/cmd/cli/version"
	"github.com/fsglob-project/fsglob/cmd/util"
)

var logLevel string

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fsglob",
		Short: "Resolve glob patterns against directory trees",
		Long:  `Resolve glob patterns against directory trees`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if logLevel == "" {
				return
			}
			level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
			if err != nil {
				log.Warn().Msgf("unknown log level %q, keeping the current level", logLevel)
				return
			}
			zerolog.SetGlobalLevel(level)
		},
	}

	rootCmd.AddCommand(resolve.NewCmd())
	rootCmd.AddCommand(version.NewCmd())

	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", logLevel,
		`Log level: 'trace', 'debug', 'info', 'warn', 'error'.
Ignored if FSGLOB_LOG_LEVEL environment variable is set.`,
	)
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	return rootCmd
}

func Execute() {
	rootCmd := NewRootCmd()

	// Ensure commands are able to stop cleanly if someone presses ctrl+c
	ctx, cancel := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer cancel()
	rootCmd.SetContext(ctx)

	viper.SetEnvPrefix("FSGLOB")

	if err := viper.BindEnv("LOG_LEVEL"); err != nil {
		log.Ctx(ctx).Fatal().Msgf("LOG_LEVEL was set, but could not bind.")
	}

	viper.AutomaticEnv()

	if envLogLevel := viper.GetString("LOG_LEVEL"); envLogLevel != "" {
		logLevel = envLogLevel
	}

	// Use stdout, not stderr for cmd.Print output, so that
	// e.g. MATCHES=$(fsglob resolve '*') works
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	if err := rootCmd.Execute(); err != nil {
		util.Fatal(rootCmd, err, 1)
	}
}
