package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/yungbote/matpath-backend/internal/logger"
  "github.com/yungbote/matpath-backend/internal/types"
)

type CurriculumRecommendationRepo interface {
  GetByAthleteID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID) ([]*types.CurriculumRecommendation, error)
  GetByRecommendationID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID, recommendationID string) (*types.CurriculumRecommendation, error)
  Upsert(ctx context.Context, tx *gorm.DB, row *types.CurriculumRecommendation) error
  UpsertMany(ctx context.Context, tx *gorm.DB, rows []*types.CurriculumRecommendation) error
  FullDeleteBySkillIDs(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID, skillIDs []string) error
}

type curriculumRecommendationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCurriculumRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) CurriculumRecommendationRepo {
  repoLog := baseLog.With("repo", "CurriculumRecommendationRepo")
  return &curriculumRecommendationRepo{db: db, log: repoLog}
}

func (r *curriculumRecommendationRepo) GetByAthleteID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID) ([]*types.CurriculumRecommendation, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CurriculumRecommendation
  if athleteID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("athlete_id = ?", athleteID).
    Order("score DESC, recommendation_id ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *curriculumRecommendationRepo) GetByRecommendationID(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID, recommendationID string) (*types.CurriculumRecommendation, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.CurriculumRecommendation
  if err := transaction.WithContext(ctx).
    Where("athlete_id = ? AND recommendation_id = ?", athleteID, recommendationID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *curriculumRecommendationRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.CurriculumRecommendation) error {
  if row == nil {
    return nil
  }
  return r.UpsertMany(ctx, tx, []*types.CurriculumRecommendation{row})
}

func (r *curriculumRecommendationRepo) UpsertMany(ctx context.Context, tx *gorm.DB, rows []*types.CurriculumRecommendation) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(rows) == 0 {
    return nil
  }

  // Upsert by unique athlete_id + recommendation_id
  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns: []clause.Column{{Name: "athlete_id"}, {Name: "recommendation_id"}},
      DoUpdates: clause.AssignmentColumns([]string{
        "skill_id", "source_skill_id", "action_type", "action_title",
        "action_detail", "status", "relevance_score", "impact_score",
        "effort_score", "score", "rationale", "why_now", "expected_impact",
        "source_evidence", "supporting_next_skill_ids",
        "missing_prerequisite_skill_ids", "generated_at", "approved_by",
        "approved_at", "coach_note", "created_by_role", "updated_at",
      }),
    }).
    Create(&rows).Error; err != nil {
    return err
  }
  return nil
}

func (r *curriculumRecommendationRepo) FullDeleteBySkillIDs(ctx context.Context, tx *gorm.DB, athleteID uuid.UUID, skillIDs []string) error {
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
    Delete(&types.CurriculumRecommendation{}).Error; err != nil {
    return err
  }
  return nil
}
