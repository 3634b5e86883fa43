package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/matpath-backend/internal/logger"
  "github.com/yungbote/matpath-backend/internal/types"
)

type CheckoffEvidenceRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.CheckoffEvidence) (*types.CheckoffEvidence, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CheckoffEvidence, error)
  GetByAthleteID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID) ([]*types.CheckoffEvidence, error)
  Update(ctx context.Context, tx *gorm.DB, row *types.CheckoffEvidence) error
  FullDeleteBySkillIDs(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID, skillIDs []string) error
}

type checkoffEvidenceRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCheckoffEvidenceRepo(db *gorm.DB, baseLog *logger.Logger) CheckoffEvidenceRepo {
  repoLog := baseLog.With("repo", "CheckoffEvidenceRepo")
  return &checkoffEvidenceRepo{db: db, log: repoLog}
}

func (r *checkoffEvidenceRepo) Create(ctx context.Context, tx *gorm.DB, row *types.CheckoffEvidence) (*types.CheckoffEvidence, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil, nil
  }

  if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
    return nil, err
  }
  return row, nil
}

func (r *checkoffEvidenceRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CheckoffEvidence, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.CheckoffEvidence
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *checkoffEvidenceRepo) GetByAthleteID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID) ([]*types.CheckoffEvidence, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CheckoffEvidence
  if athleteID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("athlete_id = ?", athleteID).
    Order("observed_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *checkoffEvidenceRepo) Update(ctx context.Context, tx *gorm.DB, row *types.CheckoffEvidence) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }

  if err := transaction.WithContext(ctx).Save(row).Error; err != nil {
    return err
  }
  return nil
}

func (r *checkoffEvidenceRepo) FullDeleteBySkillIDs(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID, skillIDs []string) error {
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
    Delete(&types.CheckoffEvidence{}).Error; err != nil {
    return err
  }
  return nil
}
