package curriculum

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/matpath-backend/internal/types"
)

func TestSelectAction_PrefersDrillOverlappingFailure(t *testing.T) {
	rec := skillRecord{
		Name:   "Mount Escape",
		Drills: []string{"Shrimp ladder", "Bridge and frame drill"},
	}
	failures := []failureSignal{{Text: "kept forgetting to bridge before framing", ObservedAt: testNow}}
	action := selectAction(rec, failures)
	if action.Type != ActionTypeDrill || action.Title != "Bridge and frame drill" {
		t.Fatalf("expected the overlapping drill, got %+v", action)
	}
}

func TestSelectAction_FallbackChain(t *testing.T) {
	withDrill := skillRecord{Name: "S", Drills: []string{"Shrimp ladder"}, KeyConcepts: []string{"frames"}}
	if a := selectAction(withDrill, nil); a.Type != ActionTypeDrill || a.Title != "Shrimp ladder" {
		t.Fatalf("expected first drill fallback, got %+v", a)
	}

	conceptOnly := skillRecord{Name: "S", KeyConcepts: []string{"inside position"}}
	if a := selectAction(conceptOnly, nil); a.Type != ActionTypeConcept || a.Title != "inside position" {
		t.Fatalf("expected first concept fallback, got %+v", a)
	}

	bare := skillRecord{Name: "Knee Cut Pass"}
	if a := selectAction(bare, nil); a.Type != ActionTypeSkill || a.Title != "Knee Cut Pass" {
		t.Fatalf("expected the skill itself, got %+v", a)
	}
}

func TestRecommendationIdentity_Deterministic(t *testing.T) {
	got := recommendationIdentity("Mount Escape", ActionTypeDrill, "Bridge & Frame!")
	if got != "mount-escape:drill:bridge-frame" {
		t.Fatalf("unexpected identity %q", got)
	}
	if again := recommendationIdentity("Mount Escape", ActionTypeDrill, "Bridge & Frame!"); again != got {
		t.Fatalf("identity must be stable: %q vs %q", got, again)
	}
}

func TestRecommendations_NoSignalsNoRecommendation(t *testing.T) {
	in := Input{
		AthleteID: testAthleteID,
		Skills:    []*types.Skill{testSkill("quiet", "Quiet Skill", CategoryConcept)},
		Now:       testNow,
	}
	out := recomputeOne(t, in)
	if len(out.Recommendations) != 0 {
		t.Fatalf("a skill with no failures, evidence, gaps, or trend must not produce a recommendation, got %d", len(out.Recommendations))
	}
}

func TestRecommendations_CoachEditedActionSurvivesWithFreshScores(t *testing.T) {
	skill := testSkill("mount-escape", "Mount Escape", CategoryEscape)
	skill.Drills = jsonList("Bridge and frame drill")

	approvedBy := uuid.New()
	approvedAt := testNow.Add(-96 * time.Hour)
	coachNote := "keep until the escape rate improves"
	coachRec := &types.CurriculumRecommendation{
		ID:               uuid.New(),
		AthleteID:        testAthleteID,
		RecommendationID: "mount-escape:drill:coach-special-sequence",
		SkillID:          "mount-escape",
		SourceSkillID:    "mount-escape",
		ActionType:       ActionTypeDrill,
		ActionTitle:      "Coach special sequence",
		ActionDetail:     "Three rounds positional, start flattened.",
		Status:           StatusActive,
		Score:            40,
		GeneratedAt:      testNow.Add(-120 * time.Hour),
		CreatedByRole:    RoleCoach,
		ApprovedBy:       &approvedBy,
		ApprovedAt:       &approvedAt,
		CoachNote:        &coachNote,
	}

	in := Input{
		AthleteID: testAthleteID,
		Skills:    []*types.Skill{skill},
		Evidence: []*types.CheckoffEvidence{
			testEvidence("mount-escape", EvidenceConfirmed, "escaped mount twice in rounds", testNow.Add(-12*time.Hour)),
		},
		Entries: []*types.JournalEntry{
			testEntry(testNow.Add(-24*time.Hour), []string{"flattened out under mount escape attempts"}, "", nil),
		},
		ExistingRecommendations: []*types.CurriculumRecommendation{coachRec},
		Now:                     testNow,
	}

	out := recomputeOne(t, in)
	if len(out.Recommendations) != 1 {
		t.Fatalf("expected exactly one recommendation, got %d", len(out.Recommendations))
	}
	got := out.Recommendations[0]
	if got.RecommendationID != coachRec.RecommendationID {
		t.Fatalf("coach identity must survive, got %q", got.RecommendationID)
	}
	if got.ActionTitle != "Coach special sequence" || got.ActionDetail != coachRec.ActionDetail {
		t.Fatalf("coach-edited action fields must not be regenerated, got %+v", got)
	}
	if got.Status != StatusActive {
		t.Fatalf("coach recommendation must stay active, got %q", got.Status)
	}
	if !got.GeneratedAt.Equal(coachRec.GeneratedAt) {
		t.Fatalf("generated_at must carry forward")
	}
	if got.ApprovedBy == nil || *got.ApprovedBy != approvedBy {
		t.Fatalf("approval metadata must carry forward")
	}
	if got.CoachNote == nil || *got.CoachNote != coachNote {
		t.Fatalf("coach note must carry forward")
	}
	if got.Score == coachRec.Score {
		t.Fatalf("scores should refresh from current signals, still %d", got.Score)
	}
	if got.RelevanceScore == 0 || got.ImpactScore == 0 || got.EffortScore == 0 {
		t.Fatalf("component scores must be recomputed, got %+v", got)
	}
}

func TestRecommendations_MergeKeepsStatusAndApprovals(t *testing.T) {
	skill := testSkill("mount-escape", "Mount Escape", CategoryEscape)
	skill.Drills = jsonList("Bridge and frame drill")

	in := Input{
		AthleteID: testAthleteID,
		Skills:    []*types.Skill{skill},
		Entries: []*types.JournalEntry{
			testEntry(testNow.Add(-24*time.Hour), []string{"stuck under mount, no frame before bridge"}, "", nil),
		},
		Now: testNow,
	}
	first := recomputeOne(t, in)
	if len(first.Recommendations) != 1 {
		t.Fatalf("expected one recommendation, got %d", len(first.Recommendations))
	}

	accepted := *first.Recommendations[0]
	accepted.ID = uuid.New()
	accepted.Status = StatusActive
	accepted.CreatedByRole = RoleAthlete

	second := in
	second.ExistingRecommendations = []*types.CurriculumRecommendation{&accepted}
	out := recomputeOne(t, second)
	if len(out.Recommendations) != 1 {
		t.Fatalf("expected one recommendation, got %d", len(out.Recommendations))
	}
	got := out.Recommendations[0]
	if got.RecommendationID != accepted.RecommendationID {
		t.Fatalf("identity must be reproduced, got %q", got.RecommendationID)
	}
	if got.ID != accepted.ID {
		t.Fatalf("database identity must carry forward")
	}
	if got.Status != StatusActive {
		t.Fatalf("athlete-accepted status must survive recompute, got %q", got.Status)
	}
	if got.CreatedByRole != RoleAthlete {
		t.Fatalf("created_by_role must carry forward, got %q", got.CreatedByRole)
	}
}

func TestRecommendations_ActiveCarriedForwardAfterCompletion(t *testing.T) {
	stale := &types.CurriculumRecommendation{
		ID:               uuid.New(),
		AthleteID:        testAthleteID,
		RecommendationID: "done-skill:drill:old-drill",
		SkillID:          "done-skill",
		ActionType:       ActionTypeDrill,
		ActionTitle:      "Old drill",
		Status:           StatusActive,
		Score:            33,
		CreatedByRole:    RoleAthlete,
	}
	in := Input{
		AthleteID: testAthleteID,
		Skills:    []*types.Skill{testSkill("done-skill", "Done Skill", CategoryEscape)},
		Checkoffs: []*types.Checkoff{testCheckoff("done-skill", CheckoffEarned)},
		ExistingRecommendations: []*types.CurriculumRecommendation{
			stale,
			{RecommendationID: "done-skill:drill:dismissed-one", SkillID: "done-skill", Status: StatusDismissed},
		},
		Now: testNow,
	}
	out := recomputeOne(t, in)
	if len(out.Recommendations) != 1 {
		t.Fatalf("only the active recommendation should carry forward, got %d", len(out.Recommendations))
	}
	got := out.Recommendations[0]
	if got.RecommendationID != stale.RecommendationID || got.Status != StatusActive || got.Score != 33 {
		t.Fatalf("carried row must keep its fields, got %+v", got)
	}
	if !got.UpdatedAt.Equal(testNow) {
		t.Fatalf("carried row should only touch updated_at")
	}
}

func TestRecommendations_SortAndTruncate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxRecommendations = 2

	skills := []*types.Skill{
		testSkill("aaa", "Skill AAA", CategoryEscape),
		testSkill("bbb", "Skill BBB", CategoryEscape),
		testSkill("ccc", "Skill CCC", CategoryEscape),
	}
	evidence := []*types.CheckoffEvidence{
		testEvidence("aaa", EvidenceConfirmed, "rep one", testNow.Add(-time.Hour)),
		testEvidence("bbb", EvidenceConfirmed, "rep one", testNow.Add(-time.Hour)),
		testEvidence("ccc", EvidenceConfirmed, "rep one", testNow.Add(-time.Hour)),
	}
	out, err := Recompute(cfg, Input{
		AthleteID: testAthleteID,
		Skills:    skills,
		Evidence:  evidence,
		Now:       testNow,
	})
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if len(out.Recommendations) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(out.Recommendations))
	}
	// Identical scores, so the deterministic identity tiebreak decides.
	if out.Recommendations[0].RecommendationID >= out.Recommendations[1].RecommendationID {
		t.Fatalf("expected identity ascending on score tie: %q vs %q",
			out.Recommendations[0].RecommendationID, out.Recommendations[1].RecommendationID)
	}
	if out.Recommendations[0].SkillID != "aaa" || out.Recommendations[1].SkillID != "bbb" {
		t.Fatalf("unexpected survivors: %q, %q",
			out.Recommendations[0].SkillID, out.Recommendations[1].SkillID)
	}
}

func TestRecommendations_ActiveSortsBeforeHigherScoredDraft(t *testing.T) {
	active := &types.CurriculumRecommendation{
		ID:               uuid.New(),
		AthleteID:        testAthleteID,
		RecommendationID: "zzz:drill:kept-going",
		SkillID:          "zzz",
		Status:           StatusActive,
		Score:            5,
		CreatedByRole:    RoleAthlete,
	}
	skill := testSkill("fresh", "Fresh Skill", CategoryEscape)
	in := Input{
		AthleteID: testAthleteID,
		Skills:    []*types.Skill{skill},
		Evidence: []*types.CheckoffEvidence{
			testEvidence("fresh", EvidenceConfirmed, "good rep", testNow.Add(-time.Hour)),
		},
		ExistingRecommendations: []*types.CurriculumRecommendation{active},
		Now:                     testNow,
	}
	out := recomputeOne(t, in)
	if len(out.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(out.Recommendations))
	}
	if out.Recommendations[0].RecommendationID != active.RecommendationID {
		t.Fatalf("active row must sort first regardless of score")
	}
	if out.Recommendations[1].Status != StatusDraft {
		t.Fatalf("expected the fresh recommendation to stay a draft, got %q", out.Recommendations[1].Status)
	}
}

func TestRecommendations_BlockedSkillTargetsMissingPrereqs(t *testing.T) {
	in := Input{
		AthleteID: testAthleteID,
		Skills: []*types.Skill{
			testSkill("base", "Base", CategoryControl),
			testSkill("gated", "Gated", CategorySweep, "base"),
		},
		Now: testNow,
	}
	out := recomputeOne(t, in)
	if len(out.Recommendations) != 1 {
		t.Fatalf("expected one recommendation for the gated skill, got %d", len(out.Recommendations))
	}
	got := out.Recommendations[0]
	if got.SkillID != "gated" {
		t.Fatalf("expected the gated skill, got %q", got.SkillID)
	}
	missing := decodeStrings(t, got.MissingPrerequisiteSkillIDs)
	if len(missing) != 1 || missing[0] != "base" {
		t.Fatalf("expected missing prerequisite base, got %v", missing)
	}
}
