package generation

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/generation"
	"github.com/konqer/konqer-api/internal/domain/serviceconfig"
	"github.com/konqer/konqer-api/internal/infrastructure/template"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

type recordingProvider struct {
	requests []generation.CompletionRequest
	text     string
	err      error
}

func (p *recordingProvider) Complete(_ context.Context, req generation.CompletionRequest) (*generation.Completion, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	return &generation.Completion{Text: p.text, TokensUsed: 42}, nil
}

type mapEnricher struct {
	extra map[string]any
}

func (e mapEnricher) Enrich(_ context.Context, contact map[string]any) map[string]any {
	out := make(map[string]any, len(contact)+len(e.extra))
	for k, v := range contact {
		out[k] = v
	}
	for k, v := range e.extra {
		out[k] = v
	}
	return out
}

func newTestDispatcher(t *testing.T, provider *recordingProvider, enricher generation.Enricher) *Dispatcher {
	t.Helper()
	prompts := template.NewPromptLoader("", logger.NewNopLogger())
	require.NoError(t, prompts.Load())
	return NewDispatcher(provider, enricher, prompts, logger.NewNopLogger())
}

func TestDispatcher_ColdDMScoresEnrichedContext(t *testing.T) {
	provider := &recordingProvider{text: "Hi Ada, saw Acme moved to HubSpot last quarter."}
	d := newTestDispatcher(t, provider, mapEnricher{extra: map[string]any{
		"company":    "Acme",
		"tech_stack": []any{"HubSpot"},
	}})

	in := map[string]any{"name": "Ada Lovelace"}
	out, err := d.Dispatch(context.Background(), Input{Service: entitlement.ServiceColdDM, Prompt: "write a cold dm", Context: in})
	require.NoError(t, err)

	require.Len(t, provider.requests, 1)
	req := provider.requests[0]
	assert.Equal(t, float32(0.7), req.Temperature)
	assert.Equal(t, 300, req.MaxTokens)
	assert.Contains(t, req.SystemPrompt, "B2B sales expert")
	assert.Contains(t, req.UserPrompt, "- Company: Acme")

	require.NotNil(t, out.Score)
	assert.Equal(t, 20+15+20, *out.Score)
	assert.Equal(t, 42, out.TokensUsed)
	_, enrichedInput := in["company"]
	assert.False(t, enrichedInput, "request context is not mutated")
}

func TestDispatcher_Objection(t *testing.T) {
	provider := &recordingProvider{text: "response"}
	d := newTestDispatcher(t, provider, mapEnricher{})

	out, err := d.Dispatch(context.Background(), Input{
		Service: entitlement.ServiceObjection,
		Prompt:  "It's too expensive right now",
		Context: map[string]any{"industry": "SaaS"},
	})
	require.NoError(t, err)
	assert.Nil(t, out.Score)

	req := provider.requests[0]
	assert.Equal(t, float32(0.6), req.Temperature)
	assert.Equal(t, 400, req.MaxTokens)
	assert.Contains(t, req.UserPrompt, "using the Cost vs Value framework")
	assert.Contains(t, req.UserPrompt, `"It's too expensive right now"`)
	assert.Contains(t, req.UserPrompt, "- Industry: SaaS")

	_, err = d.Dispatch(context.Background(), Input{
		Service: entitlement.ServiceObjection,
		Prompt:  "We already use a competitor",
		Context: map[string]any{"framework": "Urgency Creation"},
	})
	require.NoError(t, err)
	assert.Contains(t, provider.requests[1].UserPrompt, "using the Urgency Creation framework")
}

func TestDispatcher_Carousel(t *testing.T) {
	provider := &recordingProvider{text: "[]"}
	d := newTestDispatcher(t, provider, mapEnricher{})

	_, err := d.Dispatch(context.Background(), Input{Service: entitlement.ServiceCarousel, Prompt: "pipeline hygiene"})
	require.NoError(t, err)

	req := provider.requests[0]
	assert.Equal(t, float32(0.8), req.Temperature)
	assert.Equal(t, 1500, req.MaxTokens)
	assert.Contains(t, req.UserPrompt, "Create a 10-slide LinkedIn carousel about: pipeline hygiene")
	assert.Contains(t, req.UserPrompt, "Target Audience: B2B professionals")
}

func TestDispatcher_GenericFallback(t *testing.T) {
	provider := &recordingProvider{text: "battlecard"}
	d := newTestDispatcher(t, provider, mapEnricher{})

	out, err := d.Dispatch(context.Background(), Input{
		Service: entitlement.ServiceBattlecards,
		Prompt:  "compare us with Gong",
		Context: map[string]any{"system_prompt": "You write battlecards."},
	})
	require.NoError(t, err)
	assert.Equal(t, "battlecard", out.Text)

	req := provider.requests[0]
	assert.Equal(t, "You write battlecards.", req.SystemPrompt)
	assert.Equal(t, "compare us with Gong", req.UserPrompt)
	assert.Equal(t, float32(0.7), req.Temperature)
	assert.Equal(t, 1000, req.MaxTokens)

	_, err = d.Dispatch(context.Background(), Input{Service: entitlement.ServiceKey("brand-new"), Prompt: "anything at all"})
	require.NoError(t, err)
	assert.Empty(t, provider.requests[1].SystemPrompt)
}

func TestDispatcher_ProviderError(t *testing.T) {
	provider := &recordingProvider{err: stderrors.New("upstream 429")}
	d := newTestDispatcher(t, provider, mapEnricher{})

	_, err := d.Dispatch(context.Background(), Input{Service: entitlement.ServiceCarousel, Prompt: "topic here"})
	assert.Error(t, err)
}

func TestDispatcher_Validate(t *testing.T) {
	d := newTestDispatcher(t, &recordingProvider{}, mapEnricher{})

	var configs []*serviceconfig.ServiceConfig
	for _, spec := range []serviceconfig.Spec{
		{Service: entitlement.ServiceColdDM, Name: "Cold DM", RateLimitDaily: 10, RateLimitMonthly: 100, Enabled: true},
		{Service: entitlement.ServiceWebinar, Name: "Webinar", RateLimitDaily: 10, RateLimitMonthly: 100, Enabled: true},
		{Service: entitlement.ServiceWhitepaper, Name: "Whitepaper", RateLimitDaily: 10, RateLimitMonthly: 100},
	} {
		c, err := serviceconfig.NewServiceConfig(spec)
		require.NoError(t, err)
		configs = append(configs, c)
	}

	generic, orphaned := d.Validate(configs)
	assert.Equal(t, []entitlement.ServiceKey{entitlement.ServiceWebinar}, generic)
	assert.Equal(t, []entitlement.ServiceKey{entitlement.ServiceCarousel, entitlement.ServiceObjection}, orphaned)
}
