package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
  "github.com/yungbote/matpath-backend/internal/handlers"
  "github.com/yungbote/matpath-backend/internal/middleware"
)

type RouterConfig struct {
  AthleteHandler    *handlers.AthleteHandler
  CurriculumHandler *handlers.CurriculumHandler
  JournalHandler    *handlers.JournalHandler
  RequestLog        *middleware.RequestLogMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  router.Use(otelgin.Middleware("matpath-backend"))
  if cfg.RequestLog != nil {
    router.Use(cfg.RequestLog.Handle())
  }

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  router.GET("/healthcheck", handlers.HealthCheck)

  api := router.Group("/api")
  {
    // Athletes
    api.POST("/athletes", cfg.AthleteHandler.Create)
    api.GET("/athletes", cfg.AthleteHandler.List)
    api.GET("/athletes/:athleteID", cfg.AthleteHandler.Get)

    athlete := api.Group("/athletes/:athleteID")
    // Curriculum graph
    athlete.POST("/skills", cfg.CurriculumHandler.UpsertSkill)
    athlete.DELETE("/skills/:skillID", cfg.CurriculumHandler.DeleteSkill)
    athlete.POST("/stages", cfg.CurriculumHandler.UpsertStage)
    athlete.POST("/relationships", cfg.CurriculumHandler.UpsertRelationship)
    // Progress + recommendations
    athlete.POST("/recompute", cfg.CurriculumHandler.Recompute)
    athlete.GET("/progress", cfg.CurriculumHandler.GetProgress)
    athlete.GET("/recommendations", cfg.CurriculumHandler.GetRecommendations)
    athlete.PUT("/skills/:skillID/override", cfg.CurriculumHandler.ApplyOverride)
    athlete.DELETE("/skills/:skillID/override", cfg.CurriculumHandler.ClearOverride)
    athlete.PUT("/recommendations/:recommendationID/status", cfg.CurriculumHandler.SetRecommendationStatus)
    // Review-loop inputs
    athlete.POST("/entries", cfg.JournalHandler.CreateEntry)
    athlete.GET("/entries", cfg.JournalHandler.ListEntries)
    athlete.POST("/checkoffs", cfg.JournalHandler.CreateCheckoff)
    athlete.PUT("/checkoffs/:checkoffID/status", cfg.JournalHandler.SetCheckoffStatus)
    athlete.POST("/evidence", cfg.JournalHandler.CreateEvidence)
    athlete.PUT("/evidence/:evidenceID/status", cfg.JournalHandler.SetEvidenceStatus)
  }

  return router
}
