package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SkillRelationship struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AthleteID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_athlete_rel,unique,priority:1" json:"athlete_id"`
	Athlete     *Athlete       `gorm:"constraint:OnDelete:CASCADE;foreignKey:AthleteID;references:ID" json:"athlete,omitempty"`
	FromSkillID string         `gorm:"column:from_skill_id;not null;index:idx_athlete_rel,unique,priority:2" json:"from_skill_id"`
	ToSkillID   string         `gorm:"column:to_skill_id;not null;index:idx_athlete_rel,unique,priority:3" json:"to_skill_id"`
	Relation    string         `gorm:"column:relation;not null;index:idx_athlete_rel,unique,priority:4" json:"relation"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SkillRelationship) TableName() string { return "skill_relationships" }
