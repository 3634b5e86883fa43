package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/matpath-backend/internal/logger"
  "github.com/yungbote/matpath-backend/internal/types"
)

type AthleteRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.Athlete) (*types.Athlete, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Athlete, error)
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Athlete, error)
  Update(ctx context.Context, tx *gorm.DB, row *types.Athlete) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type athleteRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAthleteRepo(db *gorm.DB, baseLog *logger.Logger) AthleteRepo {
  repoLog := baseLog.With("repo", "AthleteRepo")
  return &athleteRepo{db: db, log: repoLog}
}

func (r *athleteRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Athlete) (*types.Athlete, error) {
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

func (r *athleteRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Athlete, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.Athlete
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *athleteRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Athlete, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Athlete
  if err := transaction.WithContext(ctx).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *athleteRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Athlete) error {
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

func (r *athleteRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(ids) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Delete(&types.Athlete{}).Error; err != nil {
    return err
  }
  return nil
}
