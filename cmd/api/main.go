package main

import (
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/health-portal/internal/config"
	dbpkg "github.com/BruksfildServices01/health-portal/internal/db"
	"github.com/BruksfildServices01/health-portal/internal/logging"
	"github.com/BruksfildServices01/health-portal/internal/timezone"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "health-portal",
		Short:        "Health portal API server",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	// bare invocation serves
	rootCmd.RunE = serveCmd().RunE

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer sentry.Flush(2 * time.Second)
			return runServer(cmd.Context(), cfg, logger)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(db); err != nil {
				return err
			}
			logger.Info().Msg("migrations applied")
			return nil
		},
	}
}

// bootstrap loads .env and config, then sets up logging, timezone and Sentry.
func bootstrap() (*config.Config, zerolog.Logger, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(cfg.Env)
	zerolog.DefaultContextLogger = &logger

	timezone.Configure(cfg.Timezone)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Env,
			AttachStacktrace: true,
		}); err != nil {
			logger.Warn().Err(err).Msg("sentry disabled")
		}
	}

	return cfg, logger, nil
}
