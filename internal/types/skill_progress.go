package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SkillProgress struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AthleteID uuid.UUID `gorm:"type:uuid;not null;index:idx_athlete_progress,unique,priority:1" json:"athlete_id"`
	Athlete   *Athlete  `gorm:"constraint:OnDelete:CASCADE;foreignKey:AthleteID;references:ID" json:"athlete,omitempty"`
	SkillID   string    `gorm:"column:skill_id;not null;index:idx_athlete_progress,unique,priority:2" json:"skill_id"`
	// not_started | working | evidence_present | ready_for_review | complete | blocked
	State         string `gorm:"column:state;not null;default:'not_started'" json:"state"`
	EvidenceCount int    `gorm:"column:evidence_count;not null;default:0" json:"evidence_count"`
	// low | medium | high
	Confidence            string         `gorm:"column:confidence;not null;default:'low'" json:"confidence"`
	Rationale             datatypes.JSON `gorm:"type:jsonb;column:rationale" json:"rationale"`
	SourceEntryIDs        datatypes.JSON `gorm:"type:jsonb;column:source_entry_ids" json:"source_entry_ids"`
	SourceEvidenceIDs     datatypes.JSON `gorm:"type:jsonb;column:source_evidence_ids" json:"source_evidence_ids"`
	SuggestedNextSkillIDs datatypes.JSON `gorm:"type:jsonb;column:suggested_next_skill_ids" json:"suggested_next_skill_ids"`
	LastEvaluatedAt       time.Time      `gorm:"column:last_evaluated_at;not null" json:"last_evaluated_at"`
	ManualOverrideState   *string        `gorm:"column:manual_override_state" json:"manual_override_state,omitempty"`
	ManualOverrideReason  *string        `gorm:"column:manual_override_reason" json:"manual_override_reason,omitempty"`
	CoachReviewedBy       *uuid.UUID     `gorm:"type:uuid;column:coach_reviewed_by" json:"coach_reviewed_by,omitempty"`
	CoachReviewedAt       *time.Time     `gorm:"column:coach_reviewed_at" json:"coach_reviewed_at,omitempty"`
	CreatedAt             time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SkillProgress) TableName() string { return "skill_progress" }
