package main

import (
  "context"
  "fmt"
  "os"
  "golang.org/x/sync/errgroup"
  "github.com/yungbote/matpath-backend/internal/curriculum"
  "github.com/yungbote/matpath-backend/internal/db"
  "github.com/yungbote/matpath-backend/internal/logger"
  "github.com/yungbote/matpath-backend/internal/platform/neo4jdb"
  "github.com/yungbote/matpath-backend/internal/repos"
  "github.com/yungbote/matpath-backend/internal/services"
  "github.com/yungbote/matpath-backend/internal/utils"
)

// Recomputes every athlete's curriculum. Per-athlete runs share nothing, so
// they fan out across a bounded worker group.
func main() {
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

  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()

  athleteRepo := repos.NewAthleteRepo(thePG, log)
  skillRepo := repos.NewSkillRepo(thePG, log)
  skillStageRepo := repos.NewSkillStageRepo(thePG, log)
  skillRelationshipRepo := repos.NewSkillRelationshipRepo(thePG, log)
  checkoffRepo := repos.NewCheckoffRepo(thePG, log)
  checkoffEvidenceRepo := repos.NewCheckoffEvidenceRepo(thePG, log)
  journalEntryRepo := repos.NewJournalEntryRepo(thePG, log)
  skillProgressRepo := repos.NewSkillProgressRepo(thePG, log)
  recommendationRepo := repos.NewCurriculumRecommendationRepo(thePG, log)

  neo4jClient, err := neo4jdb.NewFromEnv(log)
  if err != nil {
    log.Warn("Neo4j init failed (mirror disabled)", "error", err)
  }
  graphMirror := services.NewGraphMirrorService(neo4jClient, log)

  recomputeCache, err := services.NewRecomputeCache(log)
  if err != nil {
    log.Warn("Redis init failed (cache disabled)", "error", err)
  }

  curriculumService := services.NewCurriculumService(
    thePG,
    log,
    curriculum.LoadConfig(log),
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

  ctx := context.Background()
  athletes, err := athleteRepo.GetAll(ctx, nil)
  if err != nil {
    log.Error("Failed to list athletes", "error", err)
    os.Exit(1)
  }
  log.Info("Recomputing curricula", "athletes", len(athletes))

  workers := utils.GetEnvAsInt("RECOMPUTE_WORKERS", 8, log)
  g, gctx := errgroup.WithContext(ctx)
  g.SetLimit(workers)
  for _, athlete := range athletes {
    g.Go(func() error {
      out, err := curriculumService.Recompute(gctx, athlete.ID, nil)
      if err != nil {
        log.Error("Recompute failed", "athlete_id", athlete.ID, "error", err)
        return err
      }
      log.Info("Recompute done",
        "athlete_id", athlete.ID,
        "progressions", len(out.Progressions),
        "recommendations", len(out.Recommendations))
      return nil
    })
  }
  if err := g.Wait(); err != nil {
    os.Exit(1)
  }
}
