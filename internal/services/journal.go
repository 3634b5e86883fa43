package services

import (
  "context"
  "errors"
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

type JournalEntryInput struct {
  ActionPack    datatypes.JSON `json:"action_pack"`
  SessionReview datatypes.JSON `json:"session_review"`
  Notes         string         `json:"notes"`
  OccurredAt    time.Time      `json:"occurred_at"`
}

type CheckoffInput struct {
  SkillID     string `json:"skill_id"`
  Status      string `json:"status"`
  MinEvidence int    `json:"min_evidence"`
}

type EvidenceInput struct {
  SkillID       string     `json:"skill_id"`
  CheckoffID    *uuid.UUID `json:"checkoff_id"`
  Statement     string     `json:"statement"`
  Status        string     `json:"status"`
  SourceEntryID *uuid.UUID `json:"source_entry_id"`
  ObservedAt    time.Time  `json:"observed_at"`
}

// JournalService records the raw review-loop inputs: journal entries,
// checkoffs, and evidence statements. It never derives progress; that is the
// recompute path's job.
type JournalService interface {
  CreateEntry(ctx context.Context, athleteID uuid.UUID, input JournalEntryInput) (*types.JournalEntry, error)
  ListEntries(ctx context.Context, athleteID uuid.UUID) ([]*types.JournalEntry, error)
  CreateCheckoff(ctx context.Context, athleteID uuid.UUID, input CheckoffInput) (*types.Checkoff, error)
  SetCheckoffStatus(ctx context.Context, athleteID uuid.UUID, checkoffID uuid.UUID, status string, awardedBy *uuid.UUID) (*types.Checkoff, error)
  CreateEvidence(ctx context.Context, athleteID uuid.UUID, input EvidenceInput) (*types.CheckoffEvidence, error)
  SetEvidenceStatus(ctx context.Context, athleteID uuid.UUID, evidenceID uuid.UUID, status string) (*types.CheckoffEvidence, error)
}

type journalService struct {
  db        *gorm.DB
  log       *logger.Logger
  entries   repos.JournalEntryRepo
  checkoffs repos.CheckoffRepo
  evidence  repos.CheckoffEvidenceRepo
  now       func() time.Time
}

func NewJournalService(
  db *gorm.DB,
  log *logger.Logger,
  entries repos.JournalEntryRepo,
  checkoffs repos.CheckoffRepo,
  evidence repos.CheckoffEvidenceRepo,
) JournalService {
  return &journalService{
    db:        db,
    log:       log.With("service", "JournalService"),
    entries:   entries,
    checkoffs: checkoffs,
    evidence:  evidence,
    now:       func() time.Time { return time.Now().UTC() },
  }
}

func (s *journalService) CreateEntry(ctx context.Context, athleteID uuid.UUID, input JournalEntryInput) (*types.JournalEntry, error) {
  if athleteID == uuid.Nil {
    return nil, apierr.BadRequest("invalid_request", errors.New("athlete id required"))
  }
  if len(input.ActionPack) == 0 && len(input.SessionReview) == 0 && input.Notes == "" {
    return nil, apierr.BadRequest("invalid_request", errors.New("entry must carry an action pack, session review, or notes"))
  }
  occurredAt := input.OccurredAt
  if occurredAt.IsZero() {
    occurredAt = s.now()
  }
  row := &types.JournalEntry{
    AthleteID:     athleteID,
    ActionPack:    input.ActionPack,
    SessionReview: input.SessionReview,
    Notes:         input.Notes,
    OccurredAt:    occurredAt,
  }
  return s.entries.Create(ctx, nil, row)
}

func (s *journalService) ListEntries(ctx context.Context, athleteID uuid.UUID) ([]*types.JournalEntry, error) {
  return s.entries.GetByAthleteID(ctx, nil, athleteID)
}

func (s *journalService) CreateCheckoff(ctx context.Context, athleteID uuid.UUID, input CheckoffInput) (*types.Checkoff, error) {
  skillID, err := curriculum.NormalizeID(input.SkillID)
  if err != nil {
    return nil, err
  }
  status := input.Status
  if status == "" {
    status = curriculum.CheckoffPending
  }
  switch status {
  case curriculum.CheckoffPending, curriculum.CheckoffEarned, curriculum.CheckoffRevalidated:
  default:
    return nil, apierr.BadRequest("invalid_request", errors.New("unknown checkoff status"))
  }
  minEvidence := input.MinEvidence
  if minEvidence <= 0 {
    minEvidence = 3
  }
  row := &types.Checkoff{
    AthleteID:   athleteID,
    SkillID:     skillID,
    Status:      status,
    MinEvidence: minEvidence,
  }
  return s.checkoffs.Create(ctx, nil, row)
}

func (s *journalService) SetCheckoffStatus(ctx context.Context, athleteID uuid.UUID, checkoffID uuid.UUID, status string, awardedBy *uuid.UUID) (*types.Checkoff, error) {
  switch status {
  case curriculum.CheckoffPending, curriculum.CheckoffEarned, curriculum.CheckoffRevalidated:
  default:
    return nil, apierr.BadRequest("invalid_request", errors.New("unknown checkoff status"))
  }
  row, err := s.checkoffs.GetByID(ctx, nil, checkoffID)
  if err != nil {
    return nil, err
  }
  if row.AthleteID != athleteID {
    return nil, apierr.BadRequest("invalid_request", errors.New("checkoff belongs to another athlete"))
  }
  row.Status = status
  if status != curriculum.CheckoffPending {
    now := s.now()
    row.AwardedAt = &now
    row.AwardedBy = awardedBy
  }
  row.UpdatedAt = s.now()
  if err := s.checkoffs.Update(ctx, nil, row); err != nil {
    return nil, err
  }
  return row, nil
}

func (s *journalService) CreateEvidence(ctx context.Context, athleteID uuid.UUID, input EvidenceInput) (*types.CheckoffEvidence, error) {
  skillID, err := curriculum.NormalizeID(input.SkillID)
  if err != nil {
    return nil, err
  }
  if input.Statement == "" {
    return nil, apierr.BadRequest("invalid_request", errors.New("evidence statement required"))
  }
  status := input.Status
  if status == "" {
    status = curriculum.EvidencePending
  }
  switch status {
  case curriculum.EvidencePending, curriculum.EvidenceConfirmed, curriculum.EvidenceRejected:
  default:
    return nil, apierr.BadRequest("invalid_request", errors.New("unknown evidence status"))
  }
  observedAt := input.ObservedAt
  if observedAt.IsZero() {
    observedAt = s.now()
  }
  row := &types.CheckoffEvidence{
    AthleteID:     athleteID,
    CheckoffID:    input.CheckoffID,
    SkillID:       skillID,
    Status:        status,
    Statement:     input.Statement,
    SourceEntryID: input.SourceEntryID,
    ObservedAt:    observedAt,
  }
  return s.evidence.Create(ctx, nil, row)
}

func (s *journalService) SetEvidenceStatus(ctx context.Context, athleteID uuid.UUID, evidenceID uuid.UUID, status string) (*types.CheckoffEvidence, error) {
  switch status {
  case curriculum.EvidencePending, curriculum.EvidenceConfirmed, curriculum.EvidenceRejected:
  default:
    return nil, apierr.BadRequest("invalid_request", errors.New("unknown evidence status"))
  }
  row, err := s.evidence.GetByID(ctx, nil, evidenceID)
  if err != nil {
    return nil, err
  }
  if row.AthleteID != athleteID {
    return nil, apierr.BadRequest("invalid_request", errors.New("evidence belongs to another athlete"))
  }
  row.Status = status
  row.UpdatedAt = s.now()
  if err := s.evidence.Update(ctx, nil, row); err != nil {
    return nil, err
  }
  return row, nil
}
