package entitlement

import (
	"fmt"
	"regexp"

	"github.com/konqer/konqer-api/internal/domain/subscription"
)

// ServiceKey identifies one generation service. Keys outside the catalog
// are accepted so new services can be configured before code ships.
type ServiceKey string

const (
	ServiceColdDM          ServiceKey = "cold-dm"
	ServiceBattlecards     ServiceKey = "battlecards"
	ServiceObjection       ServiceKey = "objection"
	ServiceCommunityFinder ServiceKey = "community-finder"
	ServiceCarousel        ServiceKey = "carousel"
	ServiceColdEmail       ServiceKey = "cold-email"
	ServicePitchDeck       ServiceKey = "pitch-deck"
	ServiceWhitepaper      ServiceKey = "whitepaper"
	ServiceDeckHeatmap     ServiceKey = "deck-heatmap"
	ServiceWebinar         ServiceKey = "webinar"
	ServiceWarmRanker      ServiceKey = "warmranker"
	ServiceNoShowShield    ServiceKey = "no-show-shield"
)

// Catalog is the full service list, also the bundle unlock set.
var Catalog = []ServiceKey{
	ServiceColdDM,
	ServiceBattlecards,
	ServiceObjection,
	ServiceCommunityFinder,
	ServiceCarousel,
	ServiceColdEmail,
	ServicePitchDeck,
	ServiceWhitepaper,
	ServiceDeckHeatmap,
	ServiceWebinar,
	ServiceWarmRanker,
	ServiceNoShowShield,
}

// FoundingSet is unlocked by the founding plan.
var FoundingSet = []ServiceKey{
	ServiceColdDM,
	ServiceObjection,
	ServiceCarousel,
}

var serviceKeyPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ParseServiceKey validates the key format, not catalog membership.
func ParseServiceKey(s string) (ServiceKey, error) {
	if len(s) == 0 || len(s) > 100 || !serviceKeyPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidServiceKey, s)
	}
	return ServiceKey(s), nil
}

func (k ServiceKey) String() string {
	return string(k)
}

// InCatalog reports whether k is one of the twelve shipped services.
func (k ServiceKey) InCatalog() bool {
	for _, s := range Catalog {
		if s == k {
			return true
		}
	}
	return false
}

// UnlockSet returns the services a plan grants. Single plans grant the
// purchased service named in checkout metadata; an empty or malformed name
// yields an empty set.
func UnlockSet(plan subscription.Plan, purchased string) []ServiceKey {
	switch {
	case plan == subscription.PlanFounding:
		return append([]ServiceKey(nil), FoundingSet...)
	case plan.IsBundle():
		return append([]ServiceKey(nil), Catalog...)
	case plan.IsSingle():
		key, err := ParseServiceKey(purchased)
		if err != nil {
			return nil
		}
		return []ServiceKey{key}
	default:
		return nil
	}
}
