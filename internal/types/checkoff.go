package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Checkoff struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AthleteID uuid.UUID `gorm:"type:uuid;not null;index:idx_athlete_checkoff,priority:1" json:"athlete_id"`
	Athlete   *Athlete  `gorm:"constraint:OnDelete:CASCADE;foreignKey:AthleteID;references:ID" json:"athlete,omitempty"`
	SkillID   string    `gorm:"column:skill_id;not null;index:idx_athlete_checkoff,priority:2" json:"skill_id"`
	// pending | earned | revalidated
	Status      string         `gorm:"column:status;not null;default:'pending'" json:"status"`
	MinEvidence int            `gorm:"column:min_evidence;not null;default:3" json:"min_evidence"`
	AwardedAt   *time.Time     `gorm:"column:awarded_at" json:"awarded_at,omitempty"`
	AwardedBy   *uuid.UUID     `gorm:"type:uuid;column:awarded_by" json:"awarded_by,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Checkoff) TableName() string { return "checkoffs" }
