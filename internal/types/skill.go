package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Skill struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AthleteID uuid.UUID `gorm:"type:uuid;not null;index:idx_athlete_skill,unique,priority:1" json:"athlete_id"`
	Athlete   *Athlete  `gorm:"constraint:OnDelete:CASCADE;foreignKey:AthleteID;references:ID" json:"athlete,omitempty"`
	// Canonical slug, unique per athlete.
	SkillID        string         `gorm:"column:skill_id;not null;index:idx_athlete_skill,unique,priority:2" json:"skill_id"`
	Name           string         `gorm:"column:name;not null" json:"name"`
	Category       string         `gorm:"column:category;not null" json:"category"`
	StageID        string         `gorm:"column:stage_id" json:"stage_id"`
	Prerequisites  datatypes.JSON `gorm:"type:jsonb;column:prerequisites" json:"prerequisites"`
	KeyConcepts    datatypes.JSON `gorm:"type:jsonb;column:key_concepts" json:"key_concepts"`
	CommonFailures datatypes.JSON `gorm:"type:jsonb;column:common_failures" json:"common_failures"`
	Drills         datatypes.JSON `gorm:"type:jsonb;column:drills" json:"drills"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Skill) TableName() string { return "skills" }
