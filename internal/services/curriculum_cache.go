package services

import (
  "context"
  "encoding/json"
  "fmt"
  "os"
  "strings"
  "time"

  "github.com/google/uuid"
  goredis "github.com/redis/go-redis/v9"

  "github.com/yungbote/matpath-backend/internal/curriculum"
  "github.com/yungbote/matpath-backend/internal/logger"
  "github.com/yungbote/matpath-backend/internal/utils"
)

// RecomputeCache stores the latest recompute output per athlete so read
// endpoints can serve it without touching Postgres. Optional; a nil cache
// means the feature is off.
type RecomputeCache interface {
  StoreLatest(ctx context.Context, athleteID uuid.UUID, out curriculum.Output) error
  GetLatest(ctx context.Context, athleteID uuid.UUID) (curriculum.Output, bool, error)
  Close() error
}

type recomputeCache struct {
  log *logger.Logger
  rdb *goredis.Client
  ttl time.Duration
}

// NewRecomputeCache connects to REDIS_ADDR. An empty address disables the
// cache and returns nil, nil.
func NewRecomputeCache(log *logger.Logger) (RecomputeCache, error) {
  addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
  if addr == "" {
    return nil, nil
  }

  ttlSeconds := utils.GetEnvAsInt("RECOMPUTE_CACHE_TTL_SECONDS", 900, log)

  rdb := goredis.NewClient(&goredis.Options{
    Addr:        addr,
    DialTimeout: 5 * time.Second,
  })

  ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
  defer cancel()
  if err := rdb.Ping(ctx).Err(); err != nil {
    _ = rdb.Close()
    return nil, fmt.Errorf("redis ping: %w", err)
  }

  return &recomputeCache{
    log: log.With("service", "RecomputeCache"),
    rdb: rdb,
    ttl: time.Duration(ttlSeconds) * time.Second,
  }, nil
}

func cacheKey(athleteID uuid.UUID) string {
  return "matpath:recompute:latest:" + athleteID.String()
}

func (c *recomputeCache) StoreLatest(ctx context.Context, athleteID uuid.UUID, out curriculum.Output) error {
  raw, err := json.Marshal(out)
  if err != nil {
    return fmt.Errorf("marshal recompute output: %w", err)
  }
  return c.rdb.Set(ctx, cacheKey(athleteID), raw, c.ttl).Err()
}

func (c *recomputeCache) GetLatest(ctx context.Context, athleteID uuid.UUID) (curriculum.Output, bool, error) {
  raw, err := c.rdb.Get(ctx, cacheKey(athleteID)).Bytes()
  if err != nil {
    if err == goredis.Nil {
      return curriculum.Output{}, false, nil
    }
    return curriculum.Output{}, false, err
  }
  var out curriculum.Output
  if err := json.Unmarshal(raw, &out); err != nil {
    c.log.Warn("recompute cache entry corrupt, dropping", "athlete_id", athleteID, "error", err)
    _ = c.rdb.Del(ctx, cacheKey(athleteID)).Err()
    return curriculum.Output{}, false, nil
  }
  return out, true, nil
}

func (c *recomputeCache) Close() error {
  return c.rdb.Close()
}
