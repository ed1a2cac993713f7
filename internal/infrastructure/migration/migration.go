package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/konqer/konqer-api/internal/infrastructure/persistence/models"
	"github.com/konqer/konqer-api/internal/shared/constants"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

// Manager picks a migration strategy for the environment and driver.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager uses goose for PostgreSQL outside development and gorm
// AutoMigrate otherwise. The SQL scripts are written for PostgreSQL.
func NewManager(environment, driver string, log logger.Interface) *Manager {
	var strategy Strategy
	if strings.EqualFold(driver, "postgres") && !strings.EqualFold(environment, constants.EnvDevelopment) {
		strategy = NewGooseStrategy("postgres", log)
	} else {
		strategy = NewAutoMigrateStrategy(log, models.All()...)
	}
	return NewManagerWithStrategy(strategy, log)
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) Strategy() Strategy {
	return m.strategy
}
