package curriculum

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/matpath-backend/internal/types"
)

// Input is one immutable snapshot of an athlete's curriculum. The caller
// supplies Now so recomputation stays deterministic and testable.
type Input struct {
	AthleteID               uuid.UUID
	Skills                  []*types.Skill
	Relationships           []*types.SkillRelationship
	Checkoffs               []*types.Checkoff
	Evidence                []*types.CheckoffEvidence
	Entries                 []*types.JournalEntry
	Trend                   *TrendReport
	ExistingProgress        []*types.SkillProgress
	ExistingRecommendations []*types.CurriculumRecommendation
	Now                     time.Time
}

type Output struct {
	Progressions    []*types.SkillProgress
	Recommendations []*types.CurriculumRecommendation
}

type snapshot struct {
	athleteID        uuid.UUID
	now              time.Time
	skills           []skillRecord // sorted by skill id
	skillsByID       map[string]skillRecord
	prereqs          map[string][]string
	nextByID         map[string][]string
	checkoffsBySkill map[string][]checkoffRecord
	earnedBySkill    map[string]int
	evidenceBySkill  map[string][]evidenceRecord
	signals          []failureSignal
	trend            *TrendReport
	existingProgress map[string]*types.SkillProgress
	existingRecs     map[string]*types.CurriculumRecommendation
	// Active coach-owned recommendation per skill; its action fields are
	// immutable under recomputation.
	coachActiveBySkill map[string]*types.CurriculumRecommendation
}

// Recompute validates the prerequisite graph, derives per-skill progress,
// and produces merged recommendations. It performs no I/O; running it twice
// over the same logical inputs converges to the same result.
func Recompute(cfg Config, in Input) (Output, error) {
	snap := buildSnapshot(in)
	if err := validateAcyclic(snap.skills, snap.prereqs); err != nil {
		return Output{}, err
	}

	evals := deriveProgress(cfg, snap)

	progressions := make([]*types.SkillProgress, 0, len(snap.skills))
	for _, rec := range snap.skills {
		progressions = append(progressions, progressRow(snap, evals[rec.SkillID], cfg))
	}

	return Output{
		Progressions:    progressions,
		Recommendations: buildRecommendations(cfg, snap, evals),
	}, nil
}

// ValidateGraph checks the prerequisite subgraph of a candidate mutation for
// cycles without running the rest of the pipeline. Mutations that would
// introduce a cycle must be rejected before persistence.
func ValidateGraph(skills []*types.Skill, rels []*types.SkillRelationship) error {
	records := make([]skillRecord, 0, len(skills))
	for _, row := range skills {
		if rec, ok := parseSkillRow(row); ok {
			records = append(records, rec)
		}
	}
	relRecords := make([]relationshipRecord, 0, len(rels))
	for _, row := range rels {
		if rec, ok := parseRelationshipRow(row); ok {
			relRecords = append(relRecords, rec)
		}
	}
	return validateAcyclic(records, buildPrereqIndex(records, relRecords))
}

func buildSnapshot(in Input) *snapshot {
	snap := &snapshot{
		athleteID:          in.AthleteID,
		now:                in.Now.UTC(),
		skillsByID:         map[string]skillRecord{},
		checkoffsBySkill:   map[string][]checkoffRecord{},
		earnedBySkill:      map[string]int{},
		evidenceBySkill:    map[string][]evidenceRecord{},
		trend:              in.Trend,
		existingProgress:   map[string]*types.SkillProgress{},
		existingRecs:       map[string]*types.CurriculumRecommendation{},
		coachActiveBySkill: map[string]*types.CurriculumRecommendation{},
	}
	if snap.now.IsZero() {
		snap.now = time.Now().UTC()
	}

	for _, row := range in.Skills {
		rec, ok := parseSkillRow(row)
		if !ok {
			continue
		}
		if _, dup := snap.skillsByID[rec.SkillID]; dup {
			continue
		}
		snap.skillsByID[rec.SkillID] = rec
		snap.skills = append(snap.skills, rec)
	}
	sort.Slice(snap.skills, func(i, j int) bool { return snap.skills[i].SkillID < snap.skills[j].SkillID })

	rels := make([]relationshipRecord, 0, len(in.Relationships))
	for _, row := range in.Relationships {
		if rec, ok := parseRelationshipRow(row); ok {
			rels = append(rels, rec)
		}
	}
	snap.prereqs = buildPrereqIndex(snap.skills, rels)
	snap.nextByID = buildNextIndex(snap.skillsByID, rels)

	for _, row := range in.Checkoffs {
		rec, ok := parseCheckoffRow(row)
		if !ok {
			continue
		}
		snap.checkoffsBySkill[rec.SkillID] = append(snap.checkoffsBySkill[rec.SkillID], rec)
		if rec.Status != CheckoffPending {
			snap.earnedBySkill[rec.SkillID]++
		}
	}

	for _, row := range in.Evidence {
		rec, ok := parseEvidenceRow(row)
		if !ok || rec.Status == EvidenceRejected {
			continue
		}
		snap.evidenceBySkill[rec.SkillID] = append(snap.evidenceBySkill[rec.SkillID], rec)
	}
	for skillID := range snap.evidenceBySkill {
		list := snap.evidenceBySkill[skillID]
		sort.SliceStable(list, func(i, j int) bool {
			if !list[i].ObservedAt.Equal(list[j].ObservedAt) {
				return list[i].ObservedAt.After(list[j].ObservedAt)
			}
			return list[i].ID.String() < list[j].ID.String()
		})
	}

	entries := make([]entryRecord, 0, len(in.Entries))
	for _, row := range in.Entries {
		if rec, ok := parseEntryRow(row); ok {
			entries = append(entries, rec)
		}
	}
	snap.signals = collectFailureSignals(entries)

	for _, row := range in.ExistingProgress {
		if row == nil || strings.TrimSpace(row.SkillID) == "" {
			continue
		}
		snap.existingProgress[row.SkillID] = row
	}
	for _, row := range in.ExistingRecommendations {
		if row == nil || strings.TrimSpace(row.RecommendationID) == "" {
			continue
		}
		snap.existingRecs[row.RecommendationID] = row
		if row.Status == StatusActive && row.CreatedByRole == RoleCoach {
			if cur := snap.coachActiveBySkill[row.SkillID]; cur == nil || row.RecommendationID < cur.RecommendationID {
				snap.coachActiveBySkill[row.SkillID] = row
			}
		}
	}
	return snap
}

// buildNextIndex lists, for each skill, the known skills it points at via
// any relation type. These surface as suggested next skills.
func buildNextIndex(known map[string]skillRecord, rels []relationshipRecord) map[string][]string {
	sets := map[string]map[string]bool{}
	for _, r := range rels {
		if _, ok := known[r.From]; !ok {
			continue
		}
		if _, ok := known[r.To]; !ok {
			continue
		}
		if r.From == r.To {
			continue
		}
		set := sets[r.From]
		if set == nil {
			set = map[string]bool{}
			sets[r.From] = set
		}
		set[r.To] = true
	}
	out := make(map[string][]string, len(sets))
	for from, set := range sets {
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out[from] = ids
	}
	return out
}
