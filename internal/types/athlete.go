package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Athlete struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	Email     string         `gorm:"column:email;uniqueIndex" json:"email"`
	BeltRank  string         `gorm:"column:belt_rank;not null;default:'white'" json:"belt_rank"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Athlete) TableName() string { return "athletes" }
