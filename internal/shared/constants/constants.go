package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType     = "Content-Type"
	HeaderAuthorization   = "Authorization"
	HeaderXRequestID      = "X-Request-ID"
	HeaderStripeSignature = "Stripe-Signature"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeySubject   = "subject"
	ContextKeyAdminRole = "admin_role"
	ContextKeyAdminID   = "admin_id"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableUsers          = "users"
	TableSubscriptions  = "subscriptions"
	TableServiceAccess  = "service_access"
	TablePayments       = "payments"
	TableGenerations    = "generations"
	TableServiceConfigs = "service_configs"
	TableAuditLogs      = "audit_logs"
	TableAdminUsers     = "admin_users"
	TableBillingEvents  = "billing_events"

	// Default values
	DefaultCurrency = "eur"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
)
