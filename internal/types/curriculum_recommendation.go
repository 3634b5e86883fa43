package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CurriculumRecommendation struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AthleteID uuid.UUID `gorm:"type:uuid;not null;index:idx_athlete_recommendation,unique,priority:1" json:"athlete_id"`
	Athlete   *Athlete  `gorm:"constraint:OnDelete:CASCADE;foreignKey:AthleteID;references:ID" json:"athlete,omitempty"`
	// Deterministic slug of (skill, action type, action title); stable across recomputes.
	RecommendationID string `gorm:"column:recommendation_id;not null;index:idx_athlete_recommendation,unique,priority:2" json:"recommendation_id"`
	SkillID          string `gorm:"column:skill_id;not null;index" json:"skill_id"`
	SourceSkillID    string `gorm:"column:source_skill_id" json:"source_skill_id"`
	// drill | concept | skill
	ActionType   string `gorm:"column:action_type;not null" json:"action_type"`
	ActionTitle  string `gorm:"column:action_title;not null" json:"action_title"`
	ActionDetail string `gorm:"column:action_detail" json:"action_detail"`
	// draft | active | dismissed
	Status                      string         `gorm:"column:status;not null;default:'draft'" json:"status"`
	RelevanceScore              int            `gorm:"column:relevance_score;not null;default:0" json:"relevance_score"`
	ImpactScore                 int            `gorm:"column:impact_score;not null;default:0" json:"impact_score"`
	EffortScore                 int            `gorm:"column:effort_score;not null;default:0" json:"effort_score"`
	Score                       int            `gorm:"column:score;not null;default:0" json:"score"`
	Rationale                   datatypes.JSON `gorm:"type:jsonb;column:rationale" json:"rationale"`
	WhyNow                      string         `gorm:"column:why_now" json:"why_now"`
	ExpectedImpact              string         `gorm:"column:expected_impact" json:"expected_impact"`
	SourceEvidence              datatypes.JSON `gorm:"type:jsonb;column:source_evidence" json:"source_evidence"`
	SupportingNextSkillIDs      datatypes.JSON `gorm:"type:jsonb;column:supporting_next_skill_ids" json:"supporting_next_skill_ids"`
	MissingPrerequisiteSkillIDs datatypes.JSON `gorm:"type:jsonb;column:missing_prerequisite_skill_ids" json:"missing_prerequisite_skill_ids"`
	GeneratedAt                 time.Time      `gorm:"column:generated_at;not null" json:"generated_at"`
	ApprovedBy                  *uuid.UUID     `gorm:"type:uuid;column:approved_by" json:"approved_by,omitempty"`
	ApprovedAt                  *time.Time     `gorm:"column:approved_at" json:"approved_at,omitempty"`
	CoachNote                   *string        `gorm:"column:coach_note" json:"coach_note,omitempty"`
	// system | athlete | coach
	CreatedByRole string         `gorm:"column:created_by_role;not null;default:'system'" json:"created_by_role"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CurriculumRecommendation) TableName() string { return "curriculum_recommendations" }
