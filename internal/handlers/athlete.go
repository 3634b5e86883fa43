package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/matpath-backend/internal/logger"
  "github.com/yungbote/matpath-backend/internal/services"
)

type AthleteHandler struct {
  log        *logger.Logger
  athleteSvc services.AthleteService
}

func NewAthleteHandler(log *logger.Logger, athleteSvc services.AthleteService) *AthleteHandler {
  return &AthleteHandler{
    log:        log.With("handler", "AthleteHandler"),
    athleteSvc: athleteSvc,
  }
}

func athleteIDParam(c *gin.Context) (uuid.UUID, error) {
  id, err := uuid.Parse(c.Param("athleteID"))
  if err != nil {
    return uuid.Nil, errors.New("invalid athlete id")
  }
  return id, nil
}

// POST /api/athletes
func (h *AthleteHandler) Create(c *gin.Context) {
  var input services.AthleteInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  row, err := h.athleteSvc.Create(c.Request.Context(), input)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondCreated(c, row)
}

// GET /api/athletes
func (h *AthleteHandler) List(c *gin.Context) {
  rows, err := h.athleteSvc.GetAll(c.Request.Context())
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, rows)
}

// GET /api/athletes/:athleteID
func (h *AthleteHandler) Get(c *gin.Context) {
  athleteID, err := athleteIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  row, err := h.athleteSvc.GetByID(c.Request.Context(), athleteID)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, row)
}
