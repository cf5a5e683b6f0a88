package main

import (
	"io"
	"time"

	"github.com/robotomize/pbrates/internal/logging"
	"github.com/robotomize/pbrates/provider/privatbank"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const version = "v0.1.0"

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	var configFile string
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           "pbrates",
		Short:         "USD and EUR rates from the PrivatBank archive for the past days",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, configFile)
			if err != nil {
				return err
			}

			logger := logging.NewLogger(cmd.ErrOrStderr(), cfg.Level())
			ctx := logging.WithLogger(cmd.Context(), logger)

			a := app{
				in:  cmd.InOrStdin(),
				out: cmd.OutOrStdout(),
				now: time.Now,
			}

			return a.run(ctx, cfg)
		},
	}

	rootCmd.Flags().StringVar(&configFile, "config", "", "Path to an optional YAML config file")
	bindFlags(rootCmd.Flags(), v)

	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	return rootCmd
}

// bindFlags registers the flags that mirror config keys and binds them to v
func bindFlags(flags *pflag.FlagSet, v *viper.Viper) {
	defaultURL := privatbank.DefaultArchiveURL

	flags.IntP("days", "d", 0, "Number of past days to fetch, 1-10 (prompted when 0)")
	flags.String("url", defaultURL.String(), "Exchange rates archive endpoint")
	flags.Duration("timeout", 0, "Overall HTTP request timeout (0 keeps the client default)")
	flags.Bool("debug", false, "Debug logging to stderr")

	for _, name := range []string{"days", "url", "timeout", "debug"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
}
