package curriculum

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/matpath-backend/internal/types"
)

var (
	testAthleteID = uuid.MustParse("6f1d8e4e-9f2a-4c57-9f62-0b1a6a1f2d33")
	testNow       = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
)

func jsonList(items ...string) datatypes.JSON {
	raw, _ := json.Marshal(items)
	return datatypes.JSON(raw)
}

func decodeStrings(t *testing.T, raw datatypes.JSON) []string {
	t.Helper()
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode string list: %v", err)
	}
	return out
}

func testSkill(id, name, category string, prereqs ...string) *types.Skill {
	return &types.Skill{
		AthleteID:     testAthleteID,
		SkillID:       id,
		Name:          name,
		Category:      category,
		Prerequisites: jsonList(prereqs...),
	}
}

func testRelationship(from, to, relation string) *types.SkillRelationship {
	return &types.SkillRelationship{
		AthleteID:   testAthleteID,
		FromSkillID: from,
		ToSkillID:   to,
		Relation:    relation,
	}
}

func testCheckoff(skillID, status string) *types.Checkoff {
	return &types.Checkoff{AthleteID: testAthleteID, SkillID: skillID, Status: status}
}

func testEvidence(skillID, status, statement string, observedAt time.Time) *types.CheckoffEvidence {
	return &types.CheckoffEvidence{
		ID:         uuid.New(),
		AthleteID:  testAthleteID,
		SkillID:    skillID,
		Status:     status,
		Statement:  statement,
		ObservedAt: observedAt,
	}
}

func testEntry(occurredAt time.Time, leaks []string, focus string, failedOutcomes []string) *types.JournalEntry {
	entry := &types.JournalEntry{
		ID:         uuid.New(),
		AthleteID:  testAthleteID,
		OccurredAt: occurredAt,
	}
	if leaks != nil || focus != "" {
		raw, _ := json.Marshal(actionPackDoc{Status: "final", Leaks: leaks, Focus: focus})
		entry.ActionPack = datatypes.JSON(raw)
	}
	if failedOutcomes != nil {
		raw, _ := json.Marshal(sessionReviewDoc{Status: "final", FailedOutcomes: failedOutcomes})
		entry.SessionReview = datatypes.JSON(raw)
	}
	return entry
}

func findProgress(t *testing.T, out Output, skillID string) *types.SkillProgress {
	t.Helper()
	for _, p := range out.Progressions {
		if p.SkillID == skillID {
			return p
		}
	}
	t.Fatalf("no progress row for skill %q", skillID)
	return nil
}

func TestRecompute_TwoSkillPrereqScenario(t *testing.T) {
	in := Input{
		AthleteID: testAthleteID,
		Skills: []*types.Skill{
			testSkill("a", "Guard Recovery", CategoryGuardRetention),
			testSkill("b", "Scissor Sweep", CategorySweep, "a"),
		},
		Relationships: []*types.SkillRelationship{
			testRelationship("a", "b", RelationPrerequisite),
		},
		Now: testNow,
	}

	out, err := Recompute(DefaultConfig(), in)
	if err != nil {
		t.Fatalf("expected validation to pass, got %v", err)
	}
	if got := findProgress(t, out, "a").State; got != StateNotStarted {
		t.Fatalf("expected a=not_started, got %q", got)
	}
	if got := findProgress(t, out, "b").State; got != StateBlocked {
		t.Fatalf("expected b=blocked, got %q", got)
	}
	// b is blocked on a, so at most a minimal unblocking recommendation.
	if len(out.Recommendations) > 1 {
		t.Fatalf("expected zero or one recommendation, got %d", len(out.Recommendations))
	}
}

func TestRecompute_CycleFailsBeforeDerivation(t *testing.T) {
	in := Input{
		AthleteID: testAthleteID,
		Skills: []*types.Skill{
			testSkill("a", "A", CategoryConcept, "b"),
			testSkill("b", "B", CategoryConcept, "a"),
		},
		Now: testNow,
	}
	out, err := Recompute(DefaultConfig(), in)
	if err == nil {
		t.Fatalf("expected cycle-detected error")
	}
	if len(out.Progressions) != 0 || len(out.Recommendations) != 0 {
		t.Fatalf("expected empty output on validation failure")
	}
}

func TestRecompute_Idempotent(t *testing.T) {
	entry := testEntry(testNow.Add(-48*time.Hour), []string{"lost frames in side control"}, "escape the mount", nil)
	in := Input{
		AthleteID: testAthleteID,
		Skills: []*types.Skill{
			func() *types.Skill {
				s := testSkill("mount-escape", "Mount Escape", CategoryEscape)
				s.Drills = jsonList("Bridge and frame drill")
				return s
			}(),
			testSkill("knee-cut", "Knee Cut Pass", CategoryPass),
		},
		Evidence: []*types.CheckoffEvidence{
			testEvidence("mount-escape", EvidenceConfirmed, "hit the frame escape twice in sparring", testNow.Add(-24*time.Hour)),
		},
		Entries: []*types.JournalEntry{entry},
		Now:     testNow,
	}

	first, err := Recompute(DefaultConfig(), in)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	second := in
	second.ExistingProgress = first.Progressions
	second.ExistingRecommendations = first.Recommendations
	out, err := Recompute(DefaultConfig(), second)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if len(out.Progressions) != len(first.Progressions) {
		t.Fatalf("progress count changed: %d vs %d", len(first.Progressions), len(out.Progressions))
	}
	for i := range first.Progressions {
		a, b := first.Progressions[i], out.Progressions[i]
		if a.SkillID != b.SkillID || a.State != b.State || a.Confidence != b.Confidence || a.EvidenceCount != b.EvidenceCount {
			t.Fatalf("progress drifted for %q: %+v vs %+v", a.SkillID, a, b)
		}
	}

	if len(out.Recommendations) != len(first.Recommendations) {
		t.Fatalf("recommendation count changed: %d vs %d", len(first.Recommendations), len(out.Recommendations))
	}
	for i := range first.Recommendations {
		a, b := first.Recommendations[i], out.Recommendations[i]
		if a.RecommendationID != b.RecommendationID {
			t.Fatalf("identity drifted: %q vs %q", a.RecommendationID, b.RecommendationID)
		}
		if a.Score != b.Score || a.RelevanceScore != b.RelevanceScore || a.ImpactScore != b.ImpactScore || a.EffortScore != b.EffortScore {
			t.Fatalf("scores drifted for %q", a.RecommendationID)
		}
		if a.ActionTitle != b.ActionTitle || a.ActionType != b.ActionType {
			t.Fatalf("action drifted for %q", a.RecommendationID)
		}
	}
}

func TestRecompute_SkipsMalformedRows(t *testing.T) {
	in := Input{
		AthleteID: testAthleteID,
		Skills: []*types.Skill{
			testSkill("a", "A", CategoryConcept),
			testSkill("bad", "Bad Category", "cardio"),
			testSkill("", "No ID", CategoryConcept),
		},
		Checkoffs: []*types.Checkoff{
			testCheckoff("a", "unknown-status"),
		},
		Now: testNow,
	}
	out, err := Recompute(DefaultConfig(), in)
	if err != nil {
		t.Fatalf("malformed rows must be skipped, not fail the batch: %v", err)
	}
	if len(out.Progressions) != 1 || out.Progressions[0].SkillID != "a" {
		t.Fatalf("expected only skill a to survive, got %d rows", len(out.Progressions))
	}
	if out.Progressions[0].State != StateNotStarted {
		t.Fatalf("malformed checkoff must not count, got state %q", out.Progressions[0].State)
	}
}

func TestScoreBounds_Randomized(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(42))
	snap := &snapshot{athleteID: testAthleteID, now: testNow}

	for i := 0; i < 1000; i++ {
		failureCount := rng.Intn(60)
		failures := make([]failureSignal, 0, failureCount)
		for f := 0; f < failureCount; f++ {
			failures = append(failures, failureSignal{
				Text:       fmt.Sprintf("failure %d", f),
				EntryID:    uuid.New(),
				ObservedAt: testNow.Add(-time.Duration(rng.Intn(90*24)) * time.Hour),
			})
		}
		evidenceCount := rng.Intn(cfg.MaxEvidencePerRecommendation + 1)
		evidence := make([]evidenceRecord, 0, evidenceCount)
		for e := 0; e < evidenceCount; e++ {
			evidence = append(evidence, evidenceRecord{
				ID:         uuid.New(),
				SkillID:    "s",
				Status:     EvidenceConfirmed,
				Statement:  fmt.Sprintf("evidence %d", e),
				ObservedAt: testNow.Add(-time.Duration(rng.Intn(30*24)) * time.Hour),
			})
		}
		missing := make([]string, rng.Intn(12))
		for m := range missing {
			missing[m] = fmt.Sprintf("prereq-%d", m)
		}
		boost := []int{0, 10, 15, 25, 45}[rng.Intn(5)]

		states := []string{StateNotStarted, StateWorking, StateEvidencePresent, StateReadyForReview, StateBlocked}
		ev := &skillEvaluation{
			rec:   skillRecord{SkillID: "s", Name: "Skill", Category: CategoryEscape, Drills: []string{"some drill"}},
			state: states[rng.Intn(len(states))],
		}
		action := selectAction(ev.rec, failures)

		row := scoreRecommendation(cfg, snap, ev, action, failures, evidence, missing, boost, nil)
		for name, v := range map[string]int{
			"relevance": row.RelevanceScore,
			"impact":    row.ImpactScore,
			"effort":    row.EffortScore,
		} {
			if v < cfg.ComponentScoreMin || v > cfg.ComponentScoreMax {
				t.Fatalf("iteration %d: %s score %d out of [%d,%d]", i, name, v, cfg.ComponentScoreMin, cfg.ComponentScoreMax)
			}
		}
		if row.Score < cfg.TotalScoreMin || row.Score > cfg.TotalScoreMax {
			t.Fatalf("iteration %d: total score %d out of [%d,%d]", i, row.Score, cfg.TotalScoreMin, cfg.TotalScoreMax)
		}
	}
}
