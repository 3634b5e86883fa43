package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/matpath-backend/internal/curriculum"
  "github.com/yungbote/matpath-backend/internal/logger"
  "github.com/yungbote/matpath-backend/internal/services"
)

type CurriculumHandler struct {
  log     *logger.Logger
  currSvc services.CurriculumService
}

func NewCurriculumHandler(log *logger.Logger, currSvc services.CurriculumService) *CurriculumHandler {
  return &CurriculumHandler{
    log:     log.With("handler", "CurriculumHandler"),
    currSvc: currSvc,
  }
}

// POST /api/athletes/:athleteID/skills
func (h *CurriculumHandler) UpsertSkill(c *gin.Context) {
  athleteID, err := athleteIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  var input services.SkillInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  row, err := h.currSvc.UpsertSkill(c.Request.Context(), athleteID, input)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, row)
}

// DELETE /api/athletes/:athleteID/skills/:skillID
func (h *CurriculumHandler) DeleteSkill(c *gin.Context) {
  athleteID, err := athleteIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  if err := h.currSvc.DeleteSkill(c.Request.Context(), athleteID, c.Param("skillID")); err != nil {
    RespondAPIError(c, err)
    return
  }
  c.Status(http.StatusNoContent)
}

// POST /api/athletes/:athleteID/stages
func (h *CurriculumHandler) UpsertStage(c *gin.Context) {
  athleteID, err := athleteIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  var input services.StageInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  row, err := h.currSvc.UpsertStage(c.Request.Context(), athleteID, input)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, row)
}

// POST /api/athletes/:athleteID/relationships
func (h *CurriculumHandler) UpsertRelationship(c *gin.Context) {
  athleteID, err := athleteIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  var input services.RelationshipInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  row, err := h.currSvc.UpsertRelationship(c.Request.Context(), athleteID, input)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, row)
}

// POST /api/athletes/:athleteID/recompute
// The body may carry an externally computed trend report; absent is fine.
func (h *CurriculumHandler) Recompute(c *gin.Context) {
  athleteID, err := athleteIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  var body struct {
    Trend *curriculum.TrendReport `json:"trend"`
  }
  if c.Request.ContentLength > 0 {
    if err := c.ShouldBindJSON(&body); err != nil {
      RespondError(c, http.StatusBadRequest, "invalid_request", err)
      return
    }
  }
  out, err := h.currSvc.Recompute(c.Request.Context(), athleteID, body.Trend)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, gin.H{
    "progressions":    out.Progressions,
    "recommendations": out.Recommendations,
  })
}

// GET /api/athletes/:athleteID/progress
func (h *CurriculumHandler) GetProgress(c *gin.Context) {
  athleteID, err := athleteIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  rows, err := h.currSvc.GetProgress(c.Request.Context(), athleteID)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, rows)
}

// GET /api/athletes/:athleteID/recommendations
func (h *CurriculumHandler) GetRecommendations(c *gin.Context) {
  athleteID, err := athleteIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  rows, err := h.currSvc.GetRecommendations(c.Request.Context(), athleteID)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, rows)
}

// PUT /api/athletes/:athleteID/skills/:skillID/override
func (h *CurriculumHandler) ApplyOverride(c *gin.Context) {
  athleteID, err := athleteIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  var input services.OverrideInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  row, err := h.currSvc.ApplyManualOverride(c.Request.Context(), athleteID, c.Param("skillID"), input)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, row)
}

// DELETE /api/athletes/:athleteID/skills/:skillID/override
func (h *CurriculumHandler) ClearOverride(c *gin.Context) {
  athleteID, err := athleteIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  row, err := h.currSvc.ClearManualOverride(c.Request.Context(), athleteID, c.Param("skillID"))
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, row)
}

// PUT /api/athletes/:athleteID/recommendations/:recommendationID/status
func (h *CurriculumHandler) SetRecommendationStatus(c *gin.Context) {
  athleteID, err := athleteIDParam(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  var input services.RecommendationStatusInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }
  row, err := h.currSvc.SetRecommendationStatus(c.Request.Context(), athleteID, c.Param("recommendationID"), input)
  if err != nil {
    RespondAPIError(c, err)
    return
  }
  RespondOK(c, row)
}
