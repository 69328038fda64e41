package seed

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vantage/internal/infrastructure/config"
	"vantage/internal/infrastructure/database"
	"vantage/internal/infrastructure/persistence/seeds"
	"vantage/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed default permissions and roles",
		Long: `Insert the default permission catalog and the built-in roles.
Seeding is idempotent: existing rows are matched by name and left untouched,
so local modifications survive re-runs.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, false); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	logger.Info("seeding default permissions and roles")

	if err := seeds.Run(database.Get()); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	logger.Info("seeding completed")
	return nil
}
