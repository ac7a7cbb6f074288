package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"azlegapi/lib/platforms/azleg"
	"azlegapi/lib/telemetry"
	"azlegapi/lib/wsdlcache"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	jsonOutput bool
)

var (
	tel    telemetry.Telemetry
	cache  *wsdlcache.Cache
	client *azleg.Client
)

var rootCmd = &cobra.Command{
	Use:   "azleg",
	Short: "azleg is a CLI for the Arizona Legislature legislative information service.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)
		var err error
		tel, err = telemetry.SetupFromEnv(cmd.Context(), "azleg")
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cache != nil {
			err := cache.Close()
			if err != nil {
				slog.Warn("failed to close wsdl cache", "err", err)
			}
		}
		err := tel.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to shutdown telemetry", "err", err)
		}
	},
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "config.json5", "The config file to read credentials and options from.")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug output.")
	flags.BoolVar(&jsonOutput, "json", false, "Print results as JSON instead of tables.")
}

// getClient lazily builds the client from the config so commands like --help
// work without credentials.
func getClient(ctx context.Context) (*azleg.Client, error) {
	if client != nil {
		return client, nil
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Cache.Enabled() {
		cache, err = wsdlcache.Open(ctx, cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("open wsdl cache: %w", err)
		}
	}
	opts, err := cfg.options()
	if err != nil {
		return nil, err
	}
	if cache != nil {
		opts.Cache = cache
	}

	client, err = azleg.NewClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
