package mappers

import (
	"github.com/konqer/konqer-api/internal/domain/entitlement"
	"github.com/konqer/konqer-api/internal/domain/generation"
	"github.com/konqer/konqer-api/internal/infrastructure/persistence/models"
)

func GenerationToModel(g *generation.Generation) (*models.GenerationModel, error) {
	metadata, err := toJSON(g.Metadata())
	if err != nil {
		return nil, err
	}
	return &models.GenerationModel{
		ID:                   g.ID(),
		UserID:               g.UserID(),
		Service:              string(g.Service()),
		Prompt:               g.Prompt(),
		Output:               g.Output(),
		TokensUsed:           g.TokensUsed(),
		PersonalizationScore: g.PersonalizationScore(),
		Metadata:             metadata,
		CreatedAt:            g.CreatedAt(),
	}, nil
}

func GenerationToDomain(m *models.GenerationModel) (*generation.Generation, error) {
	metadata, err := fromJSON(m.Metadata)
	if err != nil {
		return nil, err
	}
	return generation.ReconstructGeneration(m.ID, m.UserID, entitlement.ServiceKey(m.Service),
		m.Prompt, m.Output, m.TokensUsed, m.PersonalizationScore, metadata, m.CreatedAt), nil
}
