package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/yungbote/matpath-backend/internal/logger"
  "github.com/yungbote/matpath-backend/internal/types"
)

type SkillRepo interface {
  GetByAthleteID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID) ([]*types.Skill, error)
  GetByAthleteAndSkillID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID, skillID string) (*types.Skill, error)
  Upsert(ctx context.Context, tx *gorm.DB, row *types.Skill) error
  FullDeleteBySkillIDs(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID, skillIDs []string) error
}

type skillRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSkillRepo(db *gorm.DB, baseLog *logger.Logger) SkillRepo {
  repoLog := baseLog.With("repo", "SkillRepo")
  return &skillRepo{db: db, log: repoLog}
}

func (r *skillRepo) GetByAthleteID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID) ([]*types.Skill, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Skill
  if athleteID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("athlete_id = ?", athleteID).
    Order("skill_id ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *skillRepo) GetByAthleteAndSkillID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID, skillID string) (*types.Skill, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.Skill
  if err := transaction.WithContext(ctx).
    Where("athlete_id = ? AND skill_id = ?", athleteID, skillID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *skillRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.Skill) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }

  // Upsert by unique athlete_id + skill_id
  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns: []clause.Column{{Name: "athlete_id"}, {Name: "skill_id"}},
      DoUpdates: clause.AssignmentColumns([]string{
        "name", "category", "stage_id", "prerequisites", "key_concepts",
        "common_failures", "drills", "updated_at",
      }),
    }).
    Create(row).Error; err != nil {
    return err
  }
  return nil
}

func (r *skillRepo) FullDeleteBySkillIDs(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID, skillIDs []string) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if athleteID == uuid.Nil || len(skillIDs) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("athlete_id = ? AND skill_id IN ?", athleteID, skillIDs).
    Delete(&types.Skill{}).Error; err != nil {
    return err
  }
  return nil
}
