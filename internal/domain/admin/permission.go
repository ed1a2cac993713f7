package admin

// Resources guarded by the admin policy.
const (
	ResourceMetrics      = "metrics"
	ResourceAnalytics    = "analytics"
	ResourceUsers        = "users"
	ResourceEntitlements = "entitlements"
	ResourceServices     = "services"
)

const (
	ActionRead  = "read"
	ActionWrite = "write"
)

// Wildcard matches any resource or action in a policy line.
const Wildcard = "*"

// Policy is one (role, resource, action) grant.
type Policy struct {
	Role     Role
	Resource string
	Action   string
}

// DefaultPolicies is seeded into the enforcer on startup.
var DefaultPolicies = []Policy{
	{RoleSuperAdmin, Wildcard, Wildcard},
	{RoleFinance, ResourceMetrics, ActionRead},
	{RoleFinance, ResourceAnalytics, ActionRead},
	{RoleSupport, ResourceUsers, ActionRead},
	{RoleSupport, ResourceEntitlements, ActionWrite},
	{RoleDeveloper, ResourceServices, ActionWrite},
	{RoleDeveloper, ResourceAnalytics, ActionRead},
}

// PermissionEnforcer decides whether a role may perform action on resource.
type PermissionEnforcer interface {
	Enforce(role Role, resource, action string) (bool, error)
}
