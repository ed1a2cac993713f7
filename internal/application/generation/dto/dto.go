package dto

import "time"

// GenerateRequest is the body of a generation call. Context is forwarded to
// the routine and stored with the generation.
type GenerateRequest struct {
	Prompt  string         `json:"prompt" binding:"required"`
	Context map[string]any `json:"context"`
}

type GenerateResponse struct {
	ID                   string    `json:"id"`
	Service              string    `json:"service"`
	Output               string    `json:"output"`
	OutputHTML           string    `json:"output_html,omitempty"`
	PersonalizationScore *int      `json:"personalization_score"`
	TokensUsed           int       `json:"tokens_used"`
	CreatedAt            time.Time `json:"created_at"`
}
