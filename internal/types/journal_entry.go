package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JournalEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AthleteID uuid.UUID `gorm:"type:uuid;not null;index" json:"athlete_id"`
	Athlete   *Athlete  `gorm:"constraint:OnDelete:CASCADE;foreignKey:AthleteID;references:ID" json:"athlete,omitempty"`
	// {"status":"draft|final","leaks":["..."],"focus":"..."}
	ActionPack datatypes.JSON `gorm:"type:jsonb;column:action_pack" json:"action_pack,omitempty"`
	// {"status":"draft|final","failed_outcomes":["..."]}
	SessionReview datatypes.JSON `gorm:"type:jsonb;column:session_review" json:"session_review,omitempty"`
	Notes         string         `gorm:"column:notes" json:"notes"`
	OccurredAt    time.Time      `gorm:"column:occurred_at;not null;index" json:"occurred_at"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (JournalEntry) TableName() string { return "journal_entries" }
