package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/yungbote/matpath-backend/internal/logger"
  "github.com/yungbote/matpath-backend/internal/types"
)

type SkillRelationshipRepo interface {
  GetByAthleteID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID) ([]*types.SkillRelationship, error)
  Upsert(ctx context.Context, tx *gorm.DB, row *types.SkillRelationship) error
  FullDeleteTouchingSkillIDs(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID, skillIDs []string) error
}

type skillRelationshipRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSkillRelationshipRepo(db *gorm.DB, baseLog *logger.Logger) SkillRelationshipRepo {
  repoLog := baseLog.With("repo", "SkillRelationshipRepo")
  return &skillRelationshipRepo{db: db, log: repoLog}
}

func (r *skillRelationshipRepo) GetByAthleteID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID) ([]*types.SkillRelationship, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.SkillRelationship
  if athleteID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("athlete_id = ?", athleteID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *skillRelationshipRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.SkillRelationship) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }

  // Upsert by unique athlete_id + from + to + relation
  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns: []clause.Column{
        {Name: "athlete_id"}, {Name: "from_skill_id"},
        {Name: "to_skill_id"}, {Name: "relation"},
      },
      DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
    }).
    Create(row).Error; err != nil {
    return err
  }
  return nil
}

func (r *skillRelationshipRepo) FullDeleteTouchingSkillIDs(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID, skillIDs []string) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if athleteID == uuid.Nil || len(skillIDs) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("athlete_id = ? AND (from_skill_id IN ? OR to_skill_id IN ?)", athleteID, skillIDs, skillIDs).
    Delete(&types.SkillRelationship{}).Error; err != nil {
    return err
  }
  return nil
}
