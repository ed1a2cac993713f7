package usecases

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	appgen "github.com/konqer/konqer-api/internal/application/generation"
	"github.com/konqer/konqer-api/internal/application/generation/dto"
	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/generation"
	"github.com/konqer/konqer-api/internal/shared/biztime"
	"github.com/konqer/konqer-api/internal/shared/db"
	"github.com/konqer/konqer-api/internal/shared/errors"
	"github.com/konqer/konqer-api/internal/shared/logger"
	"github.com/konqer/konqer-api/internal/shared/services/markdown"
)

const (
	minPromptLength = 10
	maxPromptLength = 5000
)

type AccessChecker interface {
	HasAccess(ctx context.Context, userID string, service entitlement.ServiceKey) (bool, error)
}

type QuotaChecker interface {
	Check(ctx context.Context, userID string, service entitlement.ServiceKey) (*appgen.QuotaDecision, error)
}

type Router interface {
	Dispatch(ctx context.Context, in appgen.Input) (*appgen.Output, error)
}

// GenerateUseCase runs one generation request: entitlement check, quota
// check, dispatch to the routine, then persistence. Steps run in order and
// nothing is retried.
type GenerateUseCase struct {
	access         AccessChecker
	quota          QuotaChecker
	router         Router
	generationRepo generation.Repository
	txMgr          *db.TransactionManager
	renderer       markdown.Renderer
	clock          biztime.Clock
	logger         logger.Interface
}

func NewGenerateUseCase(
	access AccessChecker,
	quota QuotaChecker,
	router Router,
	generationRepo generation.Repository,
	txMgr *db.TransactionManager,
	renderer markdown.Renderer,
	clock biztime.Clock,
	logger logger.Interface,
) *GenerateUseCase {
	if clock == nil {
		clock = biztime.SystemClock
	}
	return &GenerateUseCase{
		access:         access,
		quota:          quota,
		router:         router,
		generationRepo: generationRepo,
		txMgr:          txMgr,
		renderer:       renderer,
		clock:          clock,
		logger:         logger,
	}
}

func (uc *GenerateUseCase) Execute(ctx context.Context, userID, service string, req dto.GenerateRequest) (*dto.GenerateResponse, error) {
	key, err := entitlement.ParseServiceKey(service)
	if err != nil {
		return nil, errors.NewValidationError("invalid service", err.Error())
	}

	prompt := uc.renderer.StripMarkup(req.Prompt)
	if n := utf8.RuneCountInString(prompt); n < minPromptLength || n > maxPromptLength {
		return nil, errors.NewValidationError(
			fmt.Sprintf("prompt must be between %d and %d characters", minPromptLength, maxPromptLength))
	}

	contact := req.Context
	if contact == nil {
		contact = map[string]any{}
	}

	allowed, err := uc.access.HasAccess(ctx, userID, key)
	if err != nil {
		return nil, err
	}
	if !allowed {
		uc.logger.Infow("generation denied, service locked", "user_id", userID, "service", key)
		return nil, errors.NewForbiddenError(fmt.Sprintf("Access to %s is locked. Upgrade your plan.", key))
	}

	decision, err := uc.quota.Check(ctx, userID, key)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		uc.logger.Infow("generation denied, daily quota exhausted",
			"user_id", userID,
			"service", key,
			"used", decision.Used,
			"limit", decision.Limit,
		)
		return nil, errors.NewTooManyRequestsError("Daily rate limit exceeded",
			"retry after "+decision.ResetAt.Format(time.RFC3339))
	}

	out, err := uc.router.Dispatch(ctx, appgen.Input{Service: key, Prompt: prompt, Context: contact})
	if err != nil {
		uc.logger.Errorw("generation failed", "error", err, "user_id", userID, "service", key)
		return nil, errors.NewGenerationError("Generation failed")
	}

	record, err := generation.NewGeneration(userID, key, prompt, out.Text, out.TokensUsed, out.Score, contact, uc.clock())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.generationRepo.Create(txCtx, record); err != nil {
			uc.logger.Errorw("failed to persist generation", "error", err, "user_id", userID, "service", key)
			return fmt.Errorf("failed to persist generation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	html, err := uc.renderer.ToSafeHTML(record.Output())
	if err != nil {
		uc.logger.Warnw("failed to render generation output", "error", err, "generation_id", record.ID())
	}

	uc.logger.Infow("generation completed",
		"generation_id", record.ID(),
		"user_id", userID,
		"service", key,
		"tokens_used", record.TokensUsed(),
	)

	return &dto.GenerateResponse{
		ID:                   record.ID(),
		Service:              key.String(),
		Output:               record.Output(),
		OutputHTML:           html,
		PersonalizationScore: record.PersonalizationScore(),
		TokensUsed:           record.TokensUsed(),
		CreatedAt:            record.CreatedAt(),
	}, nil
}
