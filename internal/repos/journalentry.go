package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/matpath-backend/internal/logger"
  "github.com/yungbote/matpath-backend/internal/types"
)

type JournalEntryRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.JournalEntry) (*types.JournalEntry, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.JournalEntry, error)
  GetByAthleteID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID) ([]*types.JournalEntry, error)
  Update(ctx context.Context, tx *gorm.DB, row *types.JournalEntry) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type journalEntryRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewJournalEntryRepo(db *gorm.DB, baseLog *logger.Logger) JournalEntryRepo {
  repoLog := baseLog.With("repo", "JournalEntryRepo")
  return &journalEntryRepo{db: db, log: repoLog}
}

func (r *journalEntryRepo) Create(ctx context.Context, tx *gorm.DB, row *types.JournalEntry) (*types.JournalEntry, error) {
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

func (r *journalEntryRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.JournalEntry, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.JournalEntry
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *journalEntryRepo) GetByAthleteID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID) ([]*types.JournalEntry, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.JournalEntry
  if athleteID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("athlete_id = ?", athleteID).
    Order("occurred_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *journalEntryRepo) Update(ctx context.Context, tx *gorm.DB, row *types.JournalEntry) error {
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

func (r *journalEntryRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(ids) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Delete(&types.JournalEntry{}).Error; err != nil {
    return err
  }
  return nil
}
