package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SkillStage struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AthleteID uuid.UUID      `gorm:"type:uuid;not null;index:idx_athlete_stage,unique,priority:1" json:"athlete_id"`
	Athlete   *Athlete       `gorm:"constraint:OnDelete:CASCADE;foreignKey:AthleteID;references:ID" json:"athlete,omitempty"`
	StageID   string         `gorm:"column:stage_id;not null;index:idx_athlete_stage,unique,priority:2" json:"stage_id"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	Ordering  int            `gorm:"column:ordering;not null" json:"ordering"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SkillStage) TableName() string { return "skill_stages" }
