package services

import (
  "context"
  "errors"
  "net/http"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/matpath-backend/internal/logger"
  "github.com/yungbote/matpath-backend/internal/platform/apierr"
  "github.com/yungbote/matpath-backend/internal/repos"
  "github.com/yungbote/matpath-backend/internal/types"
)

type AthleteInput struct {
  Name     string `json:"name"`
  Email    string `json:"email"`
  BeltRank string `json:"belt_rank"`
}

type AthleteService interface {
  Create(ctx context.Context, input AthleteInput) (*types.Athlete, error)
  GetByID(ctx context.Context, id uuid.UUID) (*types.Athlete, error)
  GetAll(ctx context.Context) ([]*types.Athlete, error)
}

type athleteService struct {
  db       *gorm.DB
  log      *logger.Logger
  athletes repos.AthleteRepo
}

func NewAthleteService(db *gorm.DB, log *logger.Logger, athletes repos.AthleteRepo) AthleteService {
  return &athleteService{
    db:       db,
    log:      log.With("service", "AthleteService"),
    athletes: athletes,
  }
}

func (s *athleteService) Create(ctx context.Context, input AthleteInput) (*types.Athlete, error) {
  if input.Name == "" {
    return nil, apierr.BadRequest("invalid_request", errors.New("athlete name required"))
  }
  beltRank := input.BeltRank
  if beltRank == "" {
    beltRank = "white"
  }
  row := &types.Athlete{
    Name:     input.Name,
    Email:    input.Email,
    BeltRank: beltRank,
  }
  return s.athletes.Create(ctx, nil, row)
}

func (s *athleteService) GetByID(ctx context.Context, id uuid.UUID) (*types.Athlete, error) {
  row, err := s.athletes.GetByID(ctx, nil, id)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apierr.New(http.StatusNotFound, "not_found", errors.New("athlete not found"))
    }
    return nil, err
  }
  return row, nil
}

func (s *athleteService) GetAll(ctx context.Context) ([]*types.Athlete, error) {
  return s.athletes.GetAll(ctx, nil)
}
