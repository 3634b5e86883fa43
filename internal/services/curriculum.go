package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "net/http"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/yungbote/matpath-backend/internal/curriculum"
  "github.com/yungbote/matpath-backend/internal/logger"
  "github.com/yungbote/matpath-backend/internal/platform/apierr"
  "github.com/yungbote/matpath-backend/internal/repos"
  "github.com/yungbote/matpath-backend/internal/types"
)

type SkillInput struct {
  SkillID        string   `json:"skill_id"`
  Name           string   `json:"name"`
  Category       string   `json:"category"`
  StageID        string   `json:"stage_id"`
  Prerequisites  []string `json:"prerequisites"`
  KeyConcepts    []string `json:"key_concepts"`
  CommonFailures []string `json:"common_failures"`
  Drills         []string `json:"drills"`
}

type StageInput struct {
  StageID  string `json:"stage_id"`
  Name     string `json:"name"`
  Ordering int    `json:"ordering"`
}

type RelationshipInput struct {
  FromSkillID string `json:"from_skill_id"`
  ToSkillID   string `json:"to_skill_id"`
  Relation    string `json:"relation"`
}

type OverrideInput struct {
  State  string `json:"state"`
  Reason string `json:"reason"`
}

type RecommendationStatusInput struct {
  Status       string     `json:"status"`
  ActorRole    string     `json:"actor_role"`
  ActorID      *uuid.UUID `json:"actor_id"`
  ActionTitle  string     `json:"action_title"`
  ActionDetail string     `json:"action_detail"`
  CoachNote    string     `json:"coach_note"`
}

type CurriculumService interface {
  UpsertSkill(ctx context.Context, athleteID uuid.UUID, input SkillInput) (*types.Skill, error)
  UpsertStage(ctx context.Context, athleteID uuid.UUID, input StageInput) (*types.SkillStage, error)
  UpsertRelationship(ctx context.Context, athleteID uuid.UUID, input RelationshipInput) (*types.SkillRelationship, error)
  DeleteSkill(ctx context.Context, athleteID uuid.UUID, skillID string) error
  Recompute(ctx context.Context, athleteID uuid.UUID, trend *curriculum.TrendReport) (curriculum.Output, error)
  GetProgress(ctx context.Context, athleteID uuid.UUID) ([]*types.SkillProgress, error)
  GetRecommendations(ctx context.Context, athleteID uuid.UUID) ([]*types.CurriculumRecommendation, error)
  ApplyManualOverride(ctx context.Context, athleteID uuid.UUID, skillID string, input OverrideInput) (*types.SkillProgress, error)
  ClearManualOverride(ctx context.Context, athleteID uuid.UUID, skillID string) (*types.SkillProgress, error)
  SetRecommendationStatus(ctx context.Context, athleteID uuid.UUID, recommendationID string, input RecommendationStatusInput) (*types.CurriculumRecommendation, error)
}

type curriculumService struct {
  db        *gorm.DB
  log       *logger.Logger
  cfg       curriculum.Config
  skills    repos.SkillRepo
  stages    repos.SkillStageRepo
  rels      repos.SkillRelationshipRepo
  checkoffs repos.CheckoffRepo
  evidence  repos.CheckoffEvidenceRepo
  entries   repos.JournalEntryRepo
  progress  repos.SkillProgressRepo
  recs      repos.CurriculumRecommendationRepo
  mirror    GraphMirrorService
  cache     RecomputeCache
  now       func() time.Time
}

func NewCurriculumService(
  db *gorm.DB,
  log *logger.Logger,
  cfg curriculum.Config,
  skills repos.SkillRepo,
  stages repos.SkillStageRepo,
  rels repos.SkillRelationshipRepo,
  checkoffs repos.CheckoffRepo,
  evidence repos.CheckoffEvidenceRepo,
  entries repos.JournalEntryRepo,
  progress repos.SkillProgressRepo,
  recs repos.CurriculumRecommendationRepo,
  mirror GraphMirrorService,
  cache RecomputeCache,
) CurriculumService {
  return &curriculumService{
    db:        db,
    log:       log.With("service", "CurriculumService"),
    cfg:       cfg,
    skills:    skills,
    stages:    stages,
    rels:      rels,
    checkoffs: checkoffs,
    evidence:  evidence,
    entries:   entries,
    progress:  progress,
    recs:      recs,
    mirror:    mirror,
    cache:     cache,
    now:       func() time.Time { return time.Now().UTC() },
  }
}

func (s *curriculumService) UpsertSkill(ctx context.Context, athleteID uuid.UUID, input SkillInput) (*types.Skill, error) {
  if athleteID == uuid.Nil {
    return nil, apierr.BadRequest("invalid_request", errors.New("athlete id required"))
  }
  skillID, err := curriculum.NormalizeID(input.SkillID)
  if err != nil {
    return nil, err
  }
  if input.Name == "" {
    return nil, apierr.BadRequest("invalid_request", errors.New("skill name required"))
  }
  if !curriculum.ValidCategory(input.Category) {
    return nil, apierr.BadRequest("invalid_request", fmt.Errorf("unknown category %q", input.Category))
  }

  prereqs := curriculum.NormalizeIDList(input.Prerequisites)
  for _, p := range prereqs {
    if p == skillID {
      return nil, apierr.BadRequest("cycle_detected", fmt.Errorf("skill %q cannot require itself", skillID))
    }
  }

  row := &types.Skill{
    AthleteID:      athleteID,
    SkillID:        skillID,
    Name:           input.Name,
    Category:       input.Category,
    StageID:        input.StageID,
    Prerequisites:  encodeList(prereqs),
    KeyConcepts:    encodeList(curriculum.NormalizeList(input.KeyConcepts)),
    CommonFailures: encodeList(curriculum.NormalizeList(input.CommonFailures)),
    Drills:         encodeList(curriculum.NormalizeList(input.Drills)),
  }

  // Validate the candidate mutation against the whole graph before it is
  // allowed to touch the database.
  existing, err := s.skills.GetByAthleteID(ctx, nil, athleteID)
  if err != nil {
    return nil, err
  }
  candidate := make([]*types.Skill, 0, len(existing)+1)
  for _, sk := range existing {
    if sk.SkillID == skillID {
      continue
    }
    candidate = append(candidate, sk)
  }
  candidate = append(candidate, row)
  relRows, err := s.rels.GetByAthleteID(ctx, nil, athleteID)
  if err != nil {
    return nil, err
  }
  if err := curriculum.ValidateGraph(candidate, relRows); err != nil {
    return nil, err
  }

  if err := s.skills.Upsert(ctx, nil, row); err != nil {
    return nil, err
  }
  s.log.Info("skill upserted", "athlete_id", athleteID, "skill_id", skillID)
  return row, nil
}

func (s *curriculumService) UpsertStage(ctx context.Context, athleteID uuid.UUID, input StageInput) (*types.SkillStage, error) {
  if athleteID == uuid.Nil {
    return nil, apierr.BadRequest("invalid_request", errors.New("athlete id required"))
  }
  stageID, err := curriculum.NormalizeID(input.StageID)
  if err != nil {
    return nil, err
  }
  if input.Name == "" {
    return nil, apierr.BadRequest("invalid_request", errors.New("stage name required"))
  }
  if input.Ordering < 0 {
    return nil, apierr.BadRequest("invalid_request", errors.New("stage ordering must be non-negative"))
  }

  existing, err := s.stages.GetByAthleteID(ctx, nil, athleteID)
  if err != nil {
    return nil, err
  }
  for _, st := range existing {
    if st.StageID != stageID && st.Ordering == input.Ordering {
      return nil, apierr.BadRequest("invalid_request",
        fmt.Errorf("ordering %d already used by stage %q", input.Ordering, st.StageID))
    }
  }

  row := &types.SkillStage{
    AthleteID: athleteID,
    StageID:   stageID,
    Name:      input.Name,
    Ordering:  input.Ordering,
  }
  if err := s.stages.Upsert(ctx, nil, row); err != nil {
    return nil, err
  }
  return row, nil
}

func (s *curriculumService) UpsertRelationship(ctx context.Context, athleteID uuid.UUID, input RelationshipInput) (*types.SkillRelationship, error) {
  if athleteID == uuid.Nil {
    return nil, apierr.BadRequest("invalid_request", errors.New("athlete id required"))
  }
  from, err := curriculum.NormalizeID(input.FromSkillID)
  if err != nil {
    return nil, err
  }
  to, err := curriculum.NormalizeID(input.ToSkillID)
  if err != nil {
    return nil, err
  }
  switch input.Relation {
  case curriculum.RelationPrerequisite, curriculum.RelationSupports,
    curriculum.RelationCounter, curriculum.RelationSetsUp, curriculum.RelationVariation:
  default:
    return nil, apierr.BadRequest("invalid_request", fmt.Errorf("unknown relation %q", input.Relation))
  }
  if from == to {
    return nil, apierr.BadRequest("cycle_detected", fmt.Errorf("skill %q cannot relate to itself", from))
  }

  row := &types.SkillRelationship{
    AthleteID:   athleteID,
    FromSkillID: from,
    ToSkillID:   to,
    Relation:    input.Relation,
  }

  skillRows, err := s.skills.GetByAthleteID(ctx, nil, athleteID)
  if err != nil {
    return nil, err
  }
  relRows, err := s.rels.GetByAthleteID(ctx, nil, athleteID)
  if err != nil {
    return nil, err
  }
  if err := curriculum.ValidateGraph(skillRows, append(relRows, row)); err != nil {
    return nil, err
  }

  if err := s.rels.Upsert(ctx, nil, row); err != nil {
    return nil, err
  }
  return row, nil
}

func (s *curriculumService) DeleteSkill(ctx context.Context, athleteID uuid.UUID, skillID string) error {
  if athleteID == uuid.Nil {
    return apierr.BadRequest("invalid_request", errors.New("athlete id required"))
  }
  normalized, err := curriculum.NormalizeID(skillID)
  if err != nil {
    return err
  }

  return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    ids := []string{normalized}
    if err := s.rels.FullDeleteTouchingSkillIDs(ctx, tx, athleteID, ids); err != nil {
      return err
    }
    if err := s.checkoffs.FullDeleteBySkillIDs(ctx, tx, athleteID, ids); err != nil {
      return err
    }
    if err := s.evidence.FullDeleteBySkillIDs(ctx, tx, athleteID, ids); err != nil {
      return err
    }
    if err := s.progress.FullDeleteBySkillIDs(ctx, tx, athleteID, ids); err != nil {
      return err
    }
    if err := s.recs.FullDeleteBySkillIDs(ctx, tx, athleteID, ids); err != nil {
      return err
    }
    return s.skills.FullDeleteBySkillIDs(ctx, tx, athleteID, ids)
  })
}

func (s *curriculumService) Recompute(ctx context.Context, athleteID uuid.UUID, trend *curriculum.TrendReport) (curriculum.Output, error) {
  if athleteID == uuid.Nil {
    return curriculum.Output{}, apierr.BadRequest("invalid_request", errors.New("athlete id required"))
  }

  skillRows, err := s.skills.GetByAthleteID(ctx, nil, athleteID)
  if err != nil {
    return curriculum.Output{}, err
  }
  relRows, err := s.rels.GetByAthleteID(ctx, nil, athleteID)
  if err != nil {
    return curriculum.Output{}, err
  }
  checkoffRows, err := s.checkoffs.GetByAthleteID(ctx, nil, athleteID)
  if err != nil {
    return curriculum.Output{}, err
  }
  evidenceRows, err := s.evidence.GetByAthleteID(ctx, nil, athleteID)
  if err != nil {
    return curriculum.Output{}, err
  }
  entryRows, err := s.entries.GetByAthleteID(ctx, nil, athleteID)
  if err != nil {
    return curriculum.Output{}, err
  }
  progressRows, err := s.progress.GetByAthleteID(ctx, nil, athleteID)
  if err != nil {
    return curriculum.Output{}, err
  }
  recRows, err := s.recs.GetByAthleteID(ctx, nil, athleteID)
  if err != nil {
    return curriculum.Output{}, err
  }

  out, err := curriculum.Recompute(s.cfg, curriculum.Input{
    AthleteID:               athleteID,
    Skills:                  skillRows,
    Relationships:           relRows,
    Checkoffs:               checkoffRows,
    Evidence:                evidenceRows,
    Entries:                 entryRows,
    Trend:                   trend,
    ExistingProgress:        progressRows,
    ExistingRecommendations: recRows,
    Now:                     s.now(),
  })
  if err != nil {
    return curriculum.Output{}, err
  }

  if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := s.progress.UpsertMany(ctx, tx, out.Progressions); err != nil {
      return err
    }
    return s.recs.UpsertMany(ctx, tx, out.Recommendations)
  }); err != nil {
    return curriculum.Output{}, err
  }

  if s.mirror != nil {
    if err := s.mirror.MirrorAthleteGraph(ctx, athleteID, skillRows, relRows); err != nil {
      s.log.Warn("graph mirror failed (continuing)", "athlete_id", athleteID, "error", err)
    }
  }
  if s.cache != nil {
    if err := s.cache.StoreLatest(ctx, athleteID, out); err != nil {
      s.log.Warn("recompute cache store failed (continuing)", "athlete_id", athleteID, "error", err)
    }
  }

  s.log.Info("recompute finished",
    "athlete_id", athleteID,
    "skills", len(skillRows),
    "progressions", len(out.Progressions),
    "recommendations", len(out.Recommendations))
  return out, nil
}

func (s *curriculumService) GetProgress(ctx context.Context, athleteID uuid.UUID) ([]*types.SkillProgress, error) {
  return s.progress.GetByAthleteID(ctx, nil, athleteID)
}

func (s *curriculumService) GetRecommendations(ctx context.Context, athleteID uuid.UUID) ([]*types.CurriculumRecommendation, error) {
  return s.recs.GetByAthleteID(ctx, nil, athleteID)
}

func (s *curriculumService) ApplyManualOverride(ctx context.Context, athleteID uuid.UUID, skillID string, input OverrideInput) (*types.SkillProgress, error) {
  normalized, err := curriculum.NormalizeID(skillID)
  if err != nil {
    return nil, err
  }
  if !curriculum.ValidState(input.State) {
    return nil, apierr.BadRequest("invalid_request", fmt.Errorf("unknown progress state %q", input.State))
  }
  if input.Reason == "" {
    return nil, apierr.BadRequest("invalid_request", errors.New("override reason required"))
  }

  row, err := s.progress.GetByAthleteAndSkillID(ctx, nil, athleteID, normalized)
  if err != nil {
    if !errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, err
    }
    // No derived row yet; the override still has to stick.
    row = &types.SkillProgress{
      AthleteID:            athleteID,
      SkillID:              normalized,
      State:                input.State,
      Confidence:           curriculum.ConfidenceLow,
      ManualOverrideState:  &input.State,
      ManualOverrideReason: &input.Reason,
      LastEvaluatedAt:      s.now(),
      UpdatedAt:            s.now(),
    }
    if err := s.progress.Upsert(ctx, nil, row); err != nil {
      return nil, err
    }
    return row, nil
  }

  // The recompute upsert column list excludes the override columns, so they
  // are written here and nowhere else.
  if err := s.db.WithContext(ctx).Model(&types.SkillProgress{}).
    Where("athlete_id = ? AND skill_id = ?", athleteID, normalized).
    Updates(map[string]any{
      "state":                  input.State,
      "manual_override_state":  input.State,
      "manual_override_reason": input.Reason,
      "updated_at":             s.now(),
    }).Error; err != nil {
    return nil, err
  }
  row.State = input.State
  row.ManualOverrideState = &input.State
  row.ManualOverrideReason = &input.Reason
  return row, nil
}

func (s *curriculumService) ClearManualOverride(ctx context.Context, athleteID uuid.UUID, skillID string) (*types.SkillProgress, error) {
  normalized, err := curriculum.NormalizeID(skillID)
  if err != nil {
    return nil, err
  }
  row, err := s.progress.GetByAthleteAndSkillID(ctx, nil, athleteID, normalized)
  if err != nil {
    return nil, err
  }
  if err := s.db.WithContext(ctx).Model(&types.SkillProgress{}).
    Where("athlete_id = ? AND skill_id = ?", athleteID, normalized).
    Updates(map[string]any{
      "manual_override_state":  nil,
      "manual_override_reason": nil,
      "updated_at":             s.now(),
    }).Error; err != nil {
    return nil, err
  }
  row.ManualOverrideState = nil
  row.ManualOverrideReason = nil
  return row, nil
}

func (s *curriculumService) SetRecommendationStatus(ctx context.Context, athleteID uuid.UUID, recommendationID string, input RecommendationStatusInput) (*types.CurriculumRecommendation, error) {
  if !curriculum.ValidRecommendationStatus(input.Status) {
    return nil, apierr.BadRequest("invalid_request", fmt.Errorf("unknown status %q", input.Status))
  }
  row, err := s.recs.GetByRecommendationID(ctx, nil, athleteID, recommendationID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apierr.New(http.StatusNotFound, "not_found", fmt.Errorf("recommendation %q not found", recommendationID))
    }
    return nil, err
  }

  now := s.now()
  row.Status = input.Status
  row.UpdatedAt = now
  if input.ActorRole == curriculum.RoleCoach {
    // A coach touching the recommendation takes ownership of its action
    // fields; the engine preserves them verbatim from here on.
    row.CreatedByRole = curriculum.RoleCoach
    if input.ActionTitle != "" {
      row.ActionTitle = input.ActionTitle
      row.ActionType = nonEmpty(row.ActionType, curriculum.ActionTypeSkill)
    }
    if input.ActionDetail != "" {
      row.ActionDetail = input.ActionDetail
    }
    if input.CoachNote != "" {
      row.CoachNote = &input.CoachNote
    }
    if input.Status == curriculum.StatusActive {
      row.ApprovedBy = input.ActorID
      row.ApprovedAt = &now
    }
  }

  if err := s.recs.Upsert(ctx, nil, row); err != nil {
    return nil, err
  }
  return row, nil
}

func nonEmpty(v, fallback string) string {
  if v != "" {
    return v
  }
  return fallback
}

func encodeList(items []string) datatypes.JSON {
  if items == nil {
    items = []string{}
  }
  raw, err := json.Marshal(items)
  if err != nil {
    return datatypes.JSON("[]")
  }
  return datatypes.JSON(raw)
}
