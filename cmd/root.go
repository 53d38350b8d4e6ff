package cmd

import (
	"io"
	"os"
	"time"

	"github.com/izouxv/goShareVote/internal/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X ...cmd.Version=...".
var Version = "dev"

// New creates the sharevote root command.
func New() *cobra.Command {
	var (
		cfgFile string
		cfg     config.Config
	)

	root := &cobra.Command{
		Use:           "sharevote",
		Short:         "Recover a threshold-shared secret by majority vote over every k-subset",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(cfgFile, cmd.Flags()); err != nil {
				return err
			}
			return setupLogger(cfg, cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (yaml, json or toml)")
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newSolveCmd(func() config.Config { return cfg }),
		newPackCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := New().Execute(); err != nil {
		log.Error().Err(err).Msg("sharevote failed")
		return 1
	}
	return 0
}

func setupLogger(cfg config.Config, w io.Writer) error {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "parse log level")
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFormat == config.LogFormatJSON {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
		return nil
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), Version+"\n")
			return err
		},
	}
}

func init() {
	// stderr until the config is loaded
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
