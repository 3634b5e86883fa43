package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/yungbote/matpath-backend/internal/logger"
  "github.com/yungbote/matpath-backend/internal/types"
)

type SkillStageRepo interface {
  GetByAthleteID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID) ([]*types.SkillStage, error)
  Upsert(ctx context.Context, tx *gorm.DB, row *types.SkillStage) error
  FullDeleteByStageIDs(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID, stageIDs []string) error
}

type skillStageRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSkillStageRepo(db *gorm.DB, baseLog *logger.Logger) SkillStageRepo {
  repoLog := baseLog.With("repo", "SkillStageRepo")
  return &skillStageRepo{db: db, log: repoLog}
}

func (r *skillStageRepo) GetByAthleteID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID) ([]*types.SkillStage, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.SkillStage
  if athleteID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("athlete_id = ?", athleteID).
    Order("ordering ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *skillStageRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.SkillStage) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }

  // Upsert by unique athlete_id + stage_id
  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "athlete_id"}, {Name: "stage_id"}},
      DoUpdates: clause.AssignmentColumns([]string{"name", "ordering", "updated_at"}),
    }).
    Create(row).Error; err != nil {
    return err
  }
  return nil
}

func (r *skillStageRepo) FullDeleteByStageIDs(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID, stageIDs []string) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if athleteID == uuid.Nil || len(stageIDs) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("athlete_id = ? AND stage_id IN ?", athleteID, stageIDs).
    Delete(&types.SkillStage{}).Error; err != nil {
    return err
  }
  return nil
}
