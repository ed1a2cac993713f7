package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/konqer/konqer-api/internal/shared/constants"
)

type GenerationModel struct {
	ID                   string         `gorm:"primaryKey;size:36"`
	UserID               string         `gorm:"not null;size:36;index:idx_generation_quota,priority:1"`
	Service              string         `gorm:"not null;size:100;index:idx_generation_quota,priority:2"`
	Prompt               string         `gorm:"type:text;not null"`
	Output               string         `gorm:"type:text;not null"`
	TokensUsed           int            `gorm:"not null;default:0"`
	PersonalizationScore *int
	Metadata             datatypes.JSON
	CreatedAt            time.Time `gorm:"index:idx_generation_quota,priority:3"`
}

func (GenerationModel) TableName() string {
	return constants.TableGenerations
}
