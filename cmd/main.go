package main

import (
  "context"
  "fmt"
  "os"
  "time"
  "github.com/yungbote/matpath-backend/internal/curriculum"
  "github.com/yungbote/matpath-backend/internal/db"
  "github.com/yungbote/matpath-backend/internal/handlers"
  "github.com/yungbote/matpath-backend/internal/logger"
  "github.com/yungbote/matpath-backend/internal/middleware"
  "github.com/yungbote/matpath-backend/internal/observability"
  "github.com/yungbote/matpath-backend/internal/platform/neo4jdb"
  "github.com/yungbote/matpath-backend/internal/repos"
  "github.com/yungbote/matpath-backend/internal/server"
  "github.com/yungbote/matpath-backend/internal/services"
  "github.com/yungbote/matpath-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Tracing
  shutdownOtel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: "matpath-backend",
    Environment: os.Getenv("APP_ENV"),
    Version:     os.Getenv("APP_VERSION"),
  })
  if shutdownOtel != nil {
    defer func() {
      ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      _ = shutdownOtel(ctx)
    }()
  }

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  athleteRepo := repos.NewAthleteRepo(thePG, log)
  skillRepo := repos.NewSkillRepo(thePG, log)
  skillStageRepo := repos.NewSkillStageRepo(thePG, log)
  skillRelationshipRepo := repos.NewSkillRelationshipRepo(thePG, log)
  checkoffRepo := repos.NewCheckoffRepo(thePG, log)
  checkoffEvidenceRepo := repos.NewCheckoffEvidenceRepo(thePG, log)
  journalEntryRepo := repos.NewJournalEntryRepo(thePG, log)
  skillProgressRepo := repos.NewSkillProgressRepo(thePG, log)
  recommendationRepo := repos.NewCurriculumRecommendationRepo(thePG, log)

  // Optional collaborators
  neo4jClient, err := neo4jdb.NewFromEnv(log)
  if err != nil {
    log.Warn("Neo4j init failed (mirror disabled)", "error", err)
  }
  graphMirror := services.NewGraphMirrorService(neo4jClient, log)

  recomputeCache, err := services.NewRecomputeCache(log)
  if err != nil {
    log.Warn("Redis init failed (cache disabled)", "error", err)
  }

  // Services
  log.Info("Setting up Services from main...")
  engineCfg := curriculum.LoadConfig(log)
  athleteService := services.NewAthleteService(thePG, log, athleteRepo)
  journalService := services.NewJournalService(thePG, log, journalEntryRepo, checkoffRepo, checkoffEvidenceRepo)
  curriculumService := services.NewCurriculumService(
    thePG,
    log,
    engineCfg,
    skillRepo,
    skillStageRepo,
    skillRelationshipRepo,
    checkoffRepo,
    checkoffEvidenceRepo,
    journalEntryRepo,
    skillProgressRepo,
    recommendationRepo,
    graphMirror,
    recomputeCache,
  )

  // Handlers
  log.Info("Setting up handlers from main...")
  athleteHandler := handlers.NewAthleteHandler(log, athleteService)
  curriculumHandler := handlers.NewCurriculumHandler(log, curriculumService)
  journalHandler := handlers.NewJournalHandler(log, journalService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AthleteHandler:    athleteHandler,
    CurriculumHandler: curriculumHandler,
    JournalHandler:    journalHandler,
    RequestLog:        middleware.NewRequestLogMiddleware(log),
  })

  port := utils.GetEnv("PORT", "8080", log)
  log.Info("Starting server", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server exited", "error", err)
    os.Exit(1)
  }
}
