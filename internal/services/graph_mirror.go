package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "github.com/neo4j/neo4j-go-driver/v5/neo4j"

  "github.com/yungbote/matpath-backend/internal/curriculum"
  "github.com/yungbote/matpath-backend/internal/logger"
  "github.com/yungbote/matpath-backend/internal/platform/neo4jdb"
  "github.com/yungbote/matpath-backend/internal/types"
)

// GraphMirrorService keeps a queryable copy of the prerequisite graph in
// Neo4j. The mirror is advisory; Postgres stays the source of truth and a
// mirror failure never fails the recompute.
type GraphMirrorService interface {
  MirrorAthleteGraph(ctx context.Context, athleteID uuid.UUID, skills []*types.Skill, rels []*types.SkillRelationship) error
}

type graphMirrorService struct {
  client *neo4jdb.Client
  log    *logger.Logger
}

// NewGraphMirrorService returns nil when no client is configured; callers
// treat a nil mirror as disabled.
func NewGraphMirrorService(client *neo4jdb.Client, log *logger.Logger) GraphMirrorService {
  if client == nil {
    return nil
  }
  return &graphMirrorService{
    client: client,
    log:    log.With("service", "GraphMirrorService"),
  }
}

func (s *graphMirrorService) MirrorAthleteGraph(ctx context.Context, athleteID uuid.UUID, skills []*types.Skill, rels []*types.SkillRelationship) error {
  if athleteID == uuid.Nil {
    return fmt.Errorf("graph mirror: athlete id required")
  }

  nodes := make([]map[string]any, 0, len(skills))
  known := map[string]bool{}
  for _, sk := range skills {
    if sk == nil || sk.SkillID == "" {
      continue
    }
    known[sk.SkillID] = true
    nodes = append(nodes, map[string]any{
      "id":         fmt.Sprintf("%s:%s", athleteID, sk.SkillID),
      "athlete_id": athleteID.String(),
      "skill_id":   sk.SkillID,
      "name":       sk.Name,
      "category":   sk.Category,
      "stage_id":   sk.StageID,
    })
  }

  requires := make([]map[string]any, 0, len(rels))
  for _, rel := range rels {
    if rel == nil || rel.Relation != curriculum.RelationPrerequisite {
      continue
    }
    if !known[rel.FromSkillID] || !known[rel.ToSkillID] {
      continue
    }
    // from is the prerequisite, so the edge runs dependent -> prerequisite.
    requires = append(requires, map[string]any{
      "from": fmt.Sprintf("%s:%s", athleteID, rel.ToSkillID),
      "to":   fmt.Sprintf("%s:%s", athleteID, rel.FromSkillID),
    })
  }

  session := s.client.Driver.NewSession(ctx, neo4j.SessionConfig{
    AccessMode:   neo4j.AccessModeWrite,
    DatabaseName: s.client.Database,
  })
  defer session.Close(ctx)

  // Schema helpers are best-effort; restricted users may not have the grant.
  if res, err := session.Run(ctx, `CREATE CONSTRAINT skill_id_unique IF NOT EXISTS FOR (s:Skill) REQUIRE s.id IS UNIQUE`, nil); err != nil {
    s.log.Warn("neo4j schema init failed (continuing)", "error", err)
  } else {
    _, _ = res.Consume(ctx)
  }

  _, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
    res, err := tx.Run(ctx, `
MATCH (s:Skill {athlete_id: $athlete_id})
DETACH DELETE s
`, map[string]any{"athlete_id": athleteID.String()})
    if err != nil {
      return nil, err
    }
    if _, err := res.Consume(ctx); err != nil {
      return nil, err
    }

    if len(nodes) > 0 {
      res, err := tx.Run(ctx, `
UNWIND $nodes AS n
MERGE (s:Skill {id: n.id})
SET s += n
`, map[string]any{"nodes": nodes})
      if err != nil {
        return nil, err
      }
      if _, err := res.Consume(ctx); err != nil {
        return nil, err
      }
    }

    if len(requires) > 0 {
      res, err := tx.Run(ctx, `
UNWIND $rels AS r
MATCH (a:Skill {id: r.from})
MATCH (b:Skill {id: r.to})
MERGE (a)-[e:REQUIRES]->(b)
`, map[string]any{"rels": requires})
      if err != nil {
        return nil, err
      }
      if _, err := res.Consume(ctx); err != nil {
        return nil, err
      }
    }
    return nil, nil
  })
  if err != nil {
    return fmt.Errorf("graph mirror: %w", err)
  }

  s.log.Debug("mirrored prerequisite graph", "athlete_id", athleteID, "nodes", len(nodes), "edges", len(requires))
  return nil
}
