package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/matpath-backend/internal/logger"
  "github.com/yungbote/matpath-backend/internal/services"
)

type JournalHandler struct {
  log        *logger.Logger
  journalSvc services.JournalService
}

func NewJournalHandler(log *logger.Logger, journalSvc services.JournalService) *JournalHandler {
  return &JournalHandler{
    log:        log.With("handler", "JournalHandler"),
    journalSvc: journalSvc,
  }
}

// POST /api/athletes/:athleteID/entries
func (h *JournalHandler) CreateEntry(c *gin.Context) {
  athleteID, err := athleteIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  var input services.JournalEntryInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  row, err := h.journalSvc.CreateEntry(c.Request.Context(), athleteID, input)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondCreated(c, row)
}

// GET /api/athletes/:athleteID/entries
func (h *JournalHandler) ListEntries(c *gin.Context) {
  athleteID, err := athleteIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  rows, err := h.journalSvc.ListEntries(c.Request.Context(), athleteID)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, rows)
}

// POST /api/athletes/:athleteID/checkoffs
func (h *JournalHandler) CreateCheckoff(c *gin.Context) {
  athleteID, err := athleteIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  var input services.CheckoffInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  row, err := h.journalSvc.CreateCheckoff(c.Request.Context(), athleteID, input)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondCreated(c, row)
}

// PUT /api/athletes/:athleteID/checkoffs/:checkoffID/status
func (h *JournalHandler) SetCheckoffStatus(c *gin.Context) {
  athleteID, err := athleteIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  checkoffID, err := uuid.Parse(c.Param("checkoffID"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  var input struct {
    Status    string     `json:"status"`
    AwardedBy *uuid.UUID `json:"awarded_by"`
  }
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  row, err := h.journalSvc.SetCheckoffStatus(c.Request.Context(), athleteID, checkoffID, input.Status, input.AwardedBy)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, row)
}

// POST /api/athletes/:athleteID/evidence
func (h *JournalHandler) CreateEvidence(c *gin.Context) {
  athleteID, err := athleteIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  var input services.EvidenceInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  row, err := h.journalSvc.CreateEvidence(c.Request.Context(), athleteID, input)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondCreated(c, row)
}

// PUT /api/athletes/:athleteID/evidence/:evidenceID/status
func (h *JournalHandler) SetEvidenceStatus(c *gin.Context) {
  athleteID, err := athleteIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  evidenceID, err := uuid.Parse(c.Param("evidenceID"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  var input struct {
    Status string `json:"status"`
  }
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  row, err := h.journalSvc.SetEvidenceStatus(c.Request.Context(), athleteID, evidenceID, input.Status)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, row)
}
