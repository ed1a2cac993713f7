package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/konqer/konqer-api/internal/interfaces/cli/migrate"
	"github.com/konqer/konqer-api/internal/interfaces/cli/server"
	"github.com/konqer/konqer-api/internal/shared/version"
)

// @title Konqer API
// @version 1.0
// @description Sales content generation services behind entitlements and subscriptions.
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:     "konqer",
		Short:   "Konqer - sales content generation API",
		Long:    `Konqer serves the generation services, the billing webhook and the admin API, and manages its database schema.`,
		Version: version.String(),
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
