package generation

import "context"

// CompletionRequest is one chat completion call.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int
}

type Completion struct {
	Text       string
	TokensUsed int
}

// Provider produces text. Implementations bound every call by a timeout
// and report any failure as an error; retries are theirs to make.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}

// Enricher adds contact and company data to a generation context. It never
// fails: on any problem the input is returned unchanged.
type Enricher interface {
	Enrich(ctx context.Context, contact map[string]any) map[string]any
}
