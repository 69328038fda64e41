package main

import (
	"os"

	"github.com/spf13/cobra"

	"vantage/internal/interfaces/cli/migrate"
	"vantage/internal/interfaces/cli/seed"
	"vantage/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vantage",
		Short: "Vantage - admin backend with role-based access control",
		Long:  `Vantage is an admin backend providing user management, role-based authorization and token-based authentication.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
