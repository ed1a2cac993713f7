// Package seed loads the default service catalog into service_configs.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/serviceconfig"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Defaults catalogEntry   `yaml:"defaults"`
	Services []catalogEntry `yaml:"services"`
}

type catalogEntry struct {
	Service          string         `yaml:"service"`
	Name             string         `yaml:"name"`
	Slug             string         `yaml:"slug"`
	Kind             string         `yaml:"kind"`
	Description      string         `yaml:"description"`
	PricingMonthly   int64          `yaml:"pricing_monthly"`
	PricingAnnual    int64          `yaml:"pricing_annual"`
	RateLimitDaily   int            `yaml:"rate_limit_daily"`
	RateLimitMonthly int            `yaml:"rate_limit_monthly"`
	Disabled         bool           `yaml:"disabled"`
	Config           map[string]any `yaml:"config"`
}

// ParseCatalog decodes a catalog document into validated specs. Entries
// inherit unset prices and limits from the defaults block.
func ParseCatalog(data []byte) ([]serviceconfig.Spec, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse service catalog: %w", err)
	}

	seen := make(map[string]bool, len(file.Services))
	specs := make([]serviceconfig.Spec, 0, len(file.Services))
	for _, e := range file.Services {
		key, err := entitlement.ParseServiceKey(e.Service)
		if err != nil {
			return nil, err
		}
		if seen[e.Service] {
			return nil, fmt.Errorf("duplicate service %q in catalog", e.Service)
		}
		seen[e.Service] = true

		spec := serviceconfig.Spec{
			Service:          key,
			Name:             e.Name,
			Slug:             e.Slug,
			Kind:             e.Kind,
			Description:      e.Description,
			PricingMonthly:   firstNonZero(e.PricingMonthly, file.Defaults.PricingMonthly),
			PricingAnnual:    firstNonZero(e.PricingAnnual, file.Defaults.PricingAnnual),
			RateLimitDaily:   int(firstNonZero(int64(e.RateLimitDaily), int64(file.Defaults.RateLimitDaily))),
			RateLimitMonthly: int(firstNonZero(int64(e.RateLimitMonthly), int64(file.Defaults.RateLimitMonthly))),
			Enabled:          !e.Disabled,
			Settings:         e.Config,
		}
		// validate early so a bad catalog fails before any write
		if _, err := serviceconfig.NewServiceConfig(spec); err != nil {
			return nil, fmt.Errorf("service %q: %w", e.Service, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func firstNonZero(v, fallback int64) int64 {
	if v != 0 {
		return v
	}
	return fallback
}

// Seeder inserts catalog entries that are missing. Existing rows are left
// as they are so admin edits survive reseeding.
type Seeder struct {
	repo    serviceconfig.Repository
	catalog []byte
	logger  logger.Interface
}

func NewSeeder(repo serviceconfig.Repository, logger logger.Interface) *Seeder {
	return &Seeder{repo: repo, catalog: defaultCatalog, logger: logger}
}

// Run returns the number of rows inserted.
func (s *Seeder) Run(ctx context.Context) (int, error) {
	specs, err := ParseCatalog(s.catalog)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, spec := range specs {
		cfg, err := serviceconfig.NewServiceConfig(spec)
		if err != nil {
			return inserted, err
		}
		created, err := s.repo.Upsert(ctx, cfg)
		if err != nil {
			s.logger.Errorw("failed to seed service config", "error", err, "service", spec.Service)
			return inserted, fmt.Errorf("failed to seed service config %s: %w", spec.Service, err)
		}
		if created {
			inserted++
			s.logger.Infow("service config seeded", "service", spec.Service)
		}
	}

	s.logger.Infow("service catalog seeded", "inserted", inserted, "total", len(specs))
	return inserted, nil
}
