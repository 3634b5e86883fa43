package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckoffEvidence struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AthleteID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_athlete_evidence,priority:1" json:"athlete_id"`
	Athlete    *Athlete   `gorm:"constraint:OnDelete:CASCADE;foreignKey:AthleteID;references:ID" json:"athlete,omitempty"`
	CheckoffID *uuid.UUID `gorm:"type:uuid;column:checkoff_id;index" json:"checkoff_id,omitempty"`
	SkillID    string     `gorm:"column:skill_id;not null;index:idx_athlete_evidence,priority:2" json:"skill_id"`
	// pending | confirmed | rejected
	Status        string         `gorm:"column:status;not null;default:'pending'" json:"status"`
	Statement     string         `gorm:"column:statement;not null" json:"statement"`
	SourceEntryID *uuid.UUID     `gorm:"type:uuid;column:source_entry_id" json:"source_entry_id,omitempty"`
	ObservedAt    time.Time      `gorm:"column:observed_at;not null;index" json:"observed_at"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CheckoffEvidence) TableName() string { return "checkoff_evidence" }
