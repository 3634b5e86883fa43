package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/matpath-backend/internal/logger"
  "github.com/yungbote/matpath-backend/internal/types"
)

type CheckoffRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.Checkoff) (*types.Checkoff, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Checkoff, error)
  GetByAthleteID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID) ([]*types.Checkoff, error)
  Update(ctx context.Context, tx *gorm.DB, row *types.Checkoff) error
  FullDeleteBySkillIDs(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID, skillIDs []string) error
}

type checkoffRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCheckoffRepo(db *gorm.DB, baseLog *logger.Logger) CheckoffRepo {
  repoLog := baseLog.With("repo", "CheckoffRepo")
  return &checkoffRepo{db: db, log: repoLog}
}

func (r *checkoffRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Checkoff) (*types.Checkoff, error) {
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

func (r *checkoffRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Checkoff, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.Checkoff
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *checkoffRepo) GetByAthleteID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID) ([]*types.Checkoff, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Checkoff
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

func (r *checkoffRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Checkoff) error {
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

func (r *checkoffRepo) FullDeleteBySkillIDs(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID, skillIDs []string) error {
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
    Delete(&types.Checkoff{}).Error; err != nil {
    return err
  }
  return nil
}
