package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/yungbote/matpath-backend/internal/logger"
  "github.com/yungbote/matpath-backend/internal/types"
)

type SkillProgressRepo interface {
  GetByAthleteID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID) ([]*types.SkillProgress, error)
  GetByAthleteAndSkillID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID, skillID string) (*types.SkillProgress, error)
  Upsert(ctx context.Context, tx *gorm.DB, row *types.SkillProgress) error
  UpsertMany(ctx context.Context, tx *gorm.DB, rows []*types.SkillProgress) error
  FullDeleteBySkillIDs(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID, skillIDs []string) error
}

type skillProgressRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSkillProgressRepo(db *gorm.DB, baseLog *logger.Logger) SkillProgressRepo {
  repoLog := baseLog.With("repo", "SkillProgressRepo")
  return &skillProgressRepo{db: db, log: repoLog}
}

func (r *skillProgressRepo) GetByAthleteID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID) ([]*types.SkillProgress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.SkillProgress
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

func (r *skillProgressRepo) GetByAthleteAndSkillID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID, skillID string) (*types.SkillProgress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.SkillProgress
  if err := transaction.WithContext(ctx).
    Where("athlete_id = ? AND skill_id = ?", athleteID, skillID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *skillProgressRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.SkillProgress) error {
  if row == nil {
    return nil
  }
  return r.UpsertMany(ctx, tx, []*types.SkillProgress{row})
}

func (r *skillProgressRepo) UpsertMany(ctx context.Context, tx *gorm.DB, rows []*types.SkillProgress) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(rows) == 0 {
    return nil
  }

  // Upsert by unique athlete_id + skill_id
  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns: []clause.Column{{Name: "athlete_id"}, {Name: "skill_id"}},
      DoUpdates: clause.AssignmentColumns([]string{
        "state", "evidence_count", "confidence", "rationale",
        "source_entry_ids", "source_evidence_ids", "suggested_next_skill_ids",
        "last_evaluated_at", "updated_at",
      }),
    }).
    Create(&rows).Error; err != nil {
    return err
  }
  return nil
}

func (r *skillProgressRepo) FullDeleteBySkillIDs(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID, skillIDs []string) error {
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
    Delete(&types.SkillProgress{}).Error; err != nil {
    return err
  }
  return nil
}
