package migrate

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	adminUsecases "github.com/konqer/konqer-api/internal/application/admin/usecases"
	"github.com/konqer/konqer-api/internal/infrastructure/config"
	"github.com/konqer/konqer-api/internal/infrastructure/database"
	"github.com/konqer/konqer-api/internal/infrastructure/migration"
	"github.com/konqer/konqer-api/internal/infrastructure/repository"
	"github.com/konqer/konqer-api/internal/infrastructure/seed"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

const scriptsDir = "./internal/infrastructure/migration/scripts"

var (
	env   string
	name  string
	steps int

	adminSubject string
	adminEmail   string
	adminRole    string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, creating new migration files and seeding the service catalog.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
		newSeedCommand(),
		newAdminCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a new SQL migration file with the specified name.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the service catalog",
		Long:  `Insert missing service configurations from the embedded catalog. Existing rows are not modified.`,
		RunE:  runSeed,
	}
}

func newAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin users",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Grant an identity subject an admin role",
		Long:  `Register an identity-provider subject as an admin. Roles: superadmin, support, finance, developer.`,
		RunE:  runAdminAdd,
	}
	add.Flags().StringVar(&adminSubject, "subject", "", "Identity provider subject (required)")
	add.Flags().StringVar(&adminEmail, "email", "", "Admin email")
	add.Flags().StringVar(&adminRole, "role", "superadmin", "Admin role")
	_ = add.MarkFlagRequired("subject")

	cmd.AddCommand(add)
	return cmd
}

func initEnv() (*config.Config, *gorm.DB, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	db, err := database.Open(&cfg.Database, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, db, log, nil
}

func closeDB(db *gorm.DB, log logger.Interface) {
	if err := database.Close(db); err != nil {
		log.Errorw("failed to close database", "error", err)
	}
}

// gooseStrategy refuses drivers the SQL scripts were not written for.
func gooseStrategy(cfg *config.Config, log logger.Interface) (*migration.GooseStrategy, error) {
	if cfg.Database.Driver != "postgres" {
		return nil, fmt.Errorf("versioned migrations require postgres, got %q", cfg.Database.Driver)
	}
	return migration.NewGooseStrategy("postgres", log), nil
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, db, log, err := initEnv()
	if err != nil {
		return err
	}
	defer closeDB(db, log)

	log.Infow("running up migrations", "environment", env, "driver", cfg.Database.Driver)

	if err := migration.NewManager(env, cfg.Database.Driver, log).Migrate(db); err != nil {
		return err
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	cfg, db, log, err := initEnv()
	if err != nil {
		return err
	}
	defer closeDB(db, log)

	strategy, err := gooseStrategy(cfg, log)
	if err != nil {
		return err
	}

	log.Infow("running down migrations", "environment", env, "steps", steps)
	if err := strategy.MigrateDown(db, steps); err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, db, log, err := initEnv()
	if err != nil {
		return err
	}
	defer closeDB(db, log)

	strategy, err := gooseStrategy(cfg, log)
	if err != nil {
		return err
	}

	version, err := strategy.GetVersion(db)
	if err != nil {
		log.Errorw("failed to get migration version", "error", err)
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	fmt.Printf("\nMigration Status:\n")
	fmt.Printf("  Environment:     %s\n", env)
	fmt.Printf("  Current Version: %d\n", version)

	if err := strategy.Status(db); err != nil {
		log.Errorw("failed to get detailed status", "error", err)
		return fmt.Errorf("failed to get detailed status: %w", err)
	}

	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	if err := migration.CreateScript(scriptsDir, name); err != nil {
		return err
	}
	fmt.Printf("Migration '%s' created in %s\n", name, scriptsDir)
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	_, db, log, err := initEnv()
	if err != nil {
		return err
	}
	defer closeDB(db, log)

	inserted, err := seed.NewSeeder(repository.NewServiceConfigRepository(db), log).Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d service configurations\n", inserted)
	return nil
}

func runAdminAdd(cmd *cobra.Command, args []string) error {
	_, db, log, err := initEnv()
	if err != nil {
		return err
	}
	defer closeDB(db, log)

	uc := adminUsecases.NewAddAdminUseCase(repository.NewAdminUserRepository(db), log)
	u, err := uc.Execute(cmd.Context(), adminUsecases.AddAdminCommand{
		Subject: adminSubject,
		Email:   adminEmail,
		Role:    adminRole,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Admin %s added with role %s\n", u.Subject(), u.Role())
	return nil
}
