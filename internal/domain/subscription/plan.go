package subscription

import (
	"fmt"
	"strings"
)

// Plan is the closed set of purchasable tiers.
type Plan string

const (
	PlanFounding      Plan = "founding"
	PlanMonthlySingle Plan = "monthly_single"
	PlanMonthlyBundle Plan = "monthly_bundle"
	PlanAnnualSingle  Plan = "annual_single"
	PlanAnnualBundle  Plan = "annual_bundle"
)

// Plans lists every plan in display order.
var Plans = []Plan{
	PlanFounding,
	PlanMonthlySingle,
	PlanMonthlyBundle,
	PlanAnnualSingle,
	PlanAnnualBundle,
}

// annualRecurringCents is the yearly list price of each plan in euro cents.
// Monthly plans are annualised (price * 12).
var annualRecurringCents = map[Plan]int64{
	PlanFounding:      69900,
	PlanMonthlySingle: 9900 * 12,
	PlanMonthlyBundle: 39900 * 12,
	PlanAnnualSingle:  99000,
	PlanAnnualBundle:  399000,
}

// ParsePlan validates a plan string from checkout metadata or a request.
func ParsePlan(s string) (Plan, error) {
	p := Plan(strings.TrimSpace(s))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPlan, s)
	}
	return p, nil
}

func (p Plan) IsValid() bool {
	_, ok := annualRecurringCents[p]
	return ok
}

func (p Plan) String() string {
	return string(p)
}

// IsBundle reports whether the plan unlocks the full catalog.
func (p Plan) IsBundle() bool {
	return strings.Contains(string(p), "bundle")
}

// IsSingle reports whether the plan unlocks exactly one purchased service.
func (p Plan) IsSingle() bool {
	return strings.Contains(string(p), "single")
}

// AnnualRecurringCents returns the annualised revenue of one active
// subscription on this plan.
func (p Plan) AnnualRecurringCents() int64 {
	return annualRecurringCents[p]
}
