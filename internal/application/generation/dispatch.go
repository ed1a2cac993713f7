package generation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/generation"
	"github.com/konqer/konqer-api/internal/domain/serviceconfig"
	"github.com/konqer/konqer-api/internal/shared/logger"
)

const (
	defaultObjectionFramework = "Cost vs Value"
	defaultCarouselAudience   = "B2B professionals"
	carouselSlides            = 10
)

// PromptRenderer renders a named prompt template.
type PromptRenderer interface {
	Render(name string, data any) (string, error)
}

// Input is what a routine sees of the request. Context is the caller's
// free-form object and is never mutated.
type Input struct {
	Service entitlement.ServiceKey
	Prompt  string
	Context map[string]any
}

// Output is the text a routine produced. Score is set by the cold-dm
// routine only.
type Output struct {
	Text       string
	TokensUsed int
	Score      *int
}

// Routine produces content for one service kind.
type Routine func(ctx context.Context, in Input) (*Output, error)

// Dispatcher maps service keys to routines. Keys without a routine are
// served by the generic routine.
type Dispatcher struct {
	routines map[entitlement.ServiceKey]Routine
	fallback Routine
	provider generation.Provider
	enricher generation.Enricher
	prompts  PromptRenderer
	logger   logger.Interface
}

func NewDispatcher(
	provider generation.Provider,
	enricher generation.Enricher,
	prompts PromptRenderer,
	logger logger.Interface,
) *Dispatcher {
	d := &Dispatcher{
		provider: provider,
		enricher: enricher,
		prompts:  prompts,
		logger:   logger,
	}
	d.routines = map[entitlement.ServiceKey]Routine{
		entitlement.ServiceColdDM:    d.coldDM,
		entitlement.ServiceObjection: d.objection,
		entitlement.ServiceCarousel:  d.carousel,
	}
	d.fallback = d.generic
	return d
}

// Dispatch runs the routine registered for in.Service.
func (d *Dispatcher) Dispatch(ctx context.Context, in Input) (*Output, error) {
	routine, ok := d.routines[in.Service]
	if !ok {
		routine = d.fallback
	}
	return routine(ctx, in)
}

// Routed returns the keys with a dedicated routine, sorted.
func (d *Dispatcher) Routed() []entitlement.ServiceKey {
	keys := make([]entitlement.ServiceKey, 0, len(d.routines))
	for k := range d.routines {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Validate compares the table with the configured services. Enabled
// services without a routine fall back to the generic one; routines
// without configuration are never reachable through a config lookup.
// Both are reported, neither is fatal.
func (d *Dispatcher) Validate(configs []*serviceconfig.ServiceConfig) (generic []entitlement.ServiceKey, orphaned []entitlement.ServiceKey) {
	configured := make(map[entitlement.ServiceKey]bool, len(configs))
	for _, c := range configs {
		configured[c.Service()] = true
		if _, ok := d.routines[c.Service()]; !ok && c.Enabled() {
			generic = append(generic, c.Service())
		}
	}
	for _, key := range d.Routed() {
		if !configured[key] {
			orphaned = append(orphaned, key)
		}
	}

	if len(generic) > 0 {
		d.logger.Infow("services served by the generic routine", "services", generic)
	}
	if len(orphaned) > 0 {
		d.logger.Warnw("routines without service config", "services", orphaned)
	}
	return generic, orphaned
}

func (d *Dispatcher) coldDM(ctx context.Context, in Input) (*Output, error) {
	enriched := d.enricher.Enrich(ctx, in.Context)
	if enriched == nil {
		enriched = map[string]any{}
	}

	out, err := d.complete(ctx, "cold-dm", enriched, 0.7, 300)
	if err != nil {
		return nil, err
	}
	score := generation.PersonalizationScore(out.Text, enriched)
	out.Score = &score
	return out, nil
}

type objectionPrompt struct {
	Objection string
	Framework string
	Context   map[string]any
}

func (d *Dispatcher) objection(ctx context.Context, in Input) (*Output, error) {
	data := objectionPrompt{
		Objection: in.Prompt,
		Framework: contextString(in.Context, "framework", defaultObjectionFramework),
		Context:   in.Context,
	}
	return d.complete(ctx, "objection", data, 0.6, 400)
}

type carouselPrompt struct {
	Topic    string
	Audience string
	Slides   int
}

func (d *Dispatcher) carousel(ctx context.Context, in Input) (*Output, error) {
	data := carouselPrompt{
		Topic:    in.Prompt,
		Audience: contextString(in.Context, "target_audience", defaultCarouselAudience),
		Slides:   carouselSlides,
	}
	return d.complete(ctx, "carousel", data, 0.8, 1500)
}

func (d *Dispatcher) generic(ctx context.Context, in Input) (*Output, error) {
	completion, err := d.provider.Complete(ctx, generation.CompletionRequest{
		SystemPrompt: contextString(in.Context, "system_prompt", ""),
		UserPrompt:   in.Prompt,
		Temperature:  0.7,
		MaxTokens:    1000,
	})
	if err != nil {
		return nil, err
	}
	return &Output{Text: completion.Text, TokensUsed: completion.TokensUsed}, nil
}

// complete renders <name>.system and <name>.user with data and calls the
// provider.
func (d *Dispatcher) complete(ctx context.Context, name string, data any, temperature float32, maxTokens int) (*Output, error) {
	system, err := d.prompts.Render(name+".system", data)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s prompt: %w", name, err)
	}
	user, err := d.prompts.Render(name+".user", data)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s prompt: %w", name, err)
	}

	completion, err := d.provider.Complete(ctx, generation.CompletionRequest{
		SystemPrompt: system,
		UserPrompt:   user,
		Temperature:  temperature,
		MaxTokens:    maxTokens,
	})
	if err != nil {
		return nil, err
	}
	return &Output{Text: completion.Text, TokensUsed: completion.TokensUsed}, nil
}

func contextString(ctx map[string]any, key, fallback string) string {
	if s, ok := ctx[key].(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	return fallback
}
