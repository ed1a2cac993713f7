package generation

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/konqer/konqer-api/internal/domain/entitlement"
)

var ErrUserRequired = errors.New("user ID is required")

// Generation records one successful generation. It is both the user's
// history and the substrate the daily quota counts.
type Generation struct {
	id                   string
	userID               string
	service              entitlement.ServiceKey
	prompt               string
	output               string
	tokensUsed           int
	personalizationScore *int
	metadata             map[string]any
	createdAt            time.Time
}

// NewGeneration builds the row persisted at the end of a generation request.
func NewGeneration(userID string, service entitlement.ServiceKey, prompt, output string, tokensUsed int, score *int, metadata map[string]any, now time.Time) (*Generation, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &Generation{
		id:                   uuid.NewString(),
		userID:               userID,
		service:              service,
		prompt:               prompt,
		output:               output,
		tokensUsed:           tokensUsed,
		personalizationScore: score,
		metadata:             metadata,
		createdAt:            now.UTC(),
	}, nil
}

// ReconstructGeneration rebuilds a generation from persistence.
func ReconstructGeneration(id, userID string, service entitlement.ServiceKey, prompt, output string, tokensUsed int, score *int, metadata map[string]any, createdAt time.Time) *Generation {
	return &Generation{
		id:                   id,
		userID:               userID,
		service:              service,
		prompt:               prompt,
		output:               output,
		tokensUsed:           tokensUsed,
		personalizationScore: score,
		metadata:             metadata,
		createdAt:            createdAt,
	}
}

func (g *Generation) ID() string                      { return g.id }
func (g *Generation) UserID() string                  { return g.userID }
func (g *Generation) Service() entitlement.ServiceKey { return g.service }
func (g *Generation) Prompt() string                  { return g.prompt }
func (g *Generation) Output() string                  { return g.output }
func (g *Generation) TokensUsed() int                 { return g.tokensUsed }
func (g *Generation) PersonalizationScore() *int      { return g.personalizationScore }
func (g *Generation) Metadata() map[string]any        { return g.metadata }
func (g *Generation) CreatedAt() time.Time            { return g.createdAt }
