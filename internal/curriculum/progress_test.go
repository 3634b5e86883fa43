package curriculum

import (
	"strings"
	"testing"
	"time"

	"github.com/yungbote/matpath-backend/internal/types"
)

func recomputeOne(t *testing.T, in Input) Output {
	t.Helper()
	out, err := Recompute(DefaultConfig(), in)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	return out
}

func TestProgress_BlockedBeatsEvidence(t *testing.T) {
	in := Input{
		AthleteID: testAthleteID,
		Skills: []*types.Skill{
			testSkill("base", "Base Position", CategoryControl),
			testSkill("gated", "Gated Skill", CategorySweep, "base"),
		},
		Evidence: []*types.CheckoffEvidence{
			testEvidence("gated", EvidenceConfirmed, "hit it once", testNow.Add(-time.Hour)),
			testEvidence("gated", EvidenceConfirmed, "hit it twice", testNow.Add(-2*time.Hour)),
			testEvidence("gated", EvidenceConfirmed, "hit it three times", testNow.Add(-3*time.Hour)),
		},
		Now: testNow,
	}
	row := findProgress(t, recomputeOne(t, in), "gated")
	if row.State != StateBlocked {
		t.Fatalf("unmet prerequisite must win over evidence volume, got %q", row.State)
	}
	if row.EvidenceCount != 3 {
		t.Fatalf("evidence count must still be recorded, got %d", row.EvidenceCount)
	}
	rationale := decodeStrings(t, row.Rationale)
	if len(rationale) == 0 || !strings.Contains(rationale[0], "base") {
		t.Fatalf("rationale should name the blocking prerequisite, got %v", rationale)
	}
}

func TestProgress_EarnedCheckoffUnblocksAndCompletes(t *testing.T) {
	in := Input{
		AthleteID: testAthleteID,
		Skills: []*types.Skill{
			testSkill("base", "Base Position", CategoryControl),
			testSkill("gated", "Gated Skill", CategorySweep, "base"),
		},
		Checkoffs: []*types.Checkoff{
			testCheckoff("base", CheckoffEarned),
		},
		Now: testNow,
	}
	out := recomputeOne(t, in)
	if got := findProgress(t, out, "base").State; got != StateComplete {
		t.Fatalf("earned checkoff should complete the skill, got %q", got)
	}
	if got := findProgress(t, out, "gated").State; got != StateNotStarted {
		t.Fatalf("gated skill should unblock once the prerequisite is earned, got %q", got)
	}
}

func TestProgress_RevalidatedCountsAsEarned(t *testing.T) {
	in := Input{
		AthleteID: testAthleteID,
		Skills:    []*types.Skill{testSkill("s", "Skill", CategoryEscape)},
		Checkoffs: []*types.Checkoff{testCheckoff("s", CheckoffRevalidated)},
		Now:       testNow,
	}
	if got := findProgress(t, recomputeOne(t, in), "s").State; got != StateComplete {
		t.Fatalf("revalidated checkoff should count as earned, got %q", got)
	}
}

func TestProgress_ReadyForReviewNeedsPendingCheckoff(t *testing.T) {
	evidence := []*types.CheckoffEvidence{
		testEvidence("s", EvidenceConfirmed, "one", testNow.Add(-time.Hour)),
		testEvidence("s", EvidencePending, "two", testNow.Add(-2*time.Hour)),
		testEvidence("s", EvidenceConfirmed, "three", testNow.Add(-3*time.Hour)),
	}

	withPending := Input{
		AthleteID: testAthleteID,
		Skills:    []*types.Skill{testSkill("s", "Skill", CategoryEscape)},
		Checkoffs: []*types.Checkoff{testCheckoff("s", CheckoffPending)},
		Evidence:  evidence,
		Now:       testNow,
	}
	if got := findProgress(t, recomputeOne(t, withPending), "s").State; got != StateReadyForReview {
		t.Fatalf("expected ready_for_review, got %q", got)
	}

	withoutPending := withPending
	withoutPending.Checkoffs = nil
	if got := findProgress(t, recomputeOne(t, withoutPending), "s").State; got != StateEvidencePresent {
		t.Fatalf("expected evidence_present without a pending checkoff, got %q", got)
	}
}

func TestProgress_RejectedEvidenceDoesNotCount(t *testing.T) {
	in := Input{
		AthleteID: testAthleteID,
		Skills:    []*types.Skill{testSkill("s", "Skill", CategoryEscape)},
		Evidence: []*types.CheckoffEvidence{
			testEvidence("s", EvidenceRejected, "coach rejected this", testNow.Add(-time.Hour)),
		},
		Now: testNow,
	}
	row := findProgress(t, recomputeOne(t, in), "s")
	if row.State != StateNotStarted || row.EvidenceCount != 0 {
		t.Fatalf("rejected evidence must be excluded, got state=%q count=%d", row.State, row.EvidenceCount)
	}
}

func TestProgress_WorkingStates(t *testing.T) {
	oneEvidence := Input{
		AthleteID: testAthleteID,
		Skills:    []*types.Skill{testSkill("s", "Skill", CategoryEscape)},
		Evidence: []*types.CheckoffEvidence{
			testEvidence("s", EvidencePending, "first rep", testNow.Add(-time.Hour)),
		},
		Now: testNow,
	}
	if got := findProgress(t, recomputeOne(t, oneEvidence), "s").State; got != StateWorking {
		t.Fatalf("one evidence statement should mean working, got %q", got)
	}

	pendingOnly := Input{
		AthleteID: testAthleteID,
		Skills:    []*types.Skill{testSkill("s", "Skill", CategoryEscape)},
		Checkoffs: []*types.Checkoff{testCheckoff("s", CheckoffPending)},
		Now:       testNow,
	}
	if got := findProgress(t, recomputeOne(t, pendingOnly), "s").State; got != StateWorking {
		t.Fatalf("a pending checkoff alone should mean working, got %q", got)
	}
}

func TestProgress_ManualOverridePersistsAcrossRecompute(t *testing.T) {
	overrideState := StateComplete
	overrideReason := "promoted after seminar assessment"
	in := Input{
		AthleteID: testAthleteID,
		Skills:    []*types.Skill{testSkill("s", "Skill", CategoryEscape)},
		ExistingProgress: []*types.SkillProgress{{
			AthleteID:            testAthleteID,
			SkillID:              "s",
			State:                StateWorking,
			ManualOverrideState:  &overrideState,
			ManualOverrideReason: &overrideReason,
		}},
		Now: testNow,
	}
	row := findProgress(t, recomputeOne(t, in), "s")
	if row.State != StateComplete {
		t.Fatalf("override must replace the derived state, got %q", row.State)
	}
	if row.ManualOverrideState == nil || *row.ManualOverrideState != StateComplete {
		t.Fatalf("override must carry forward on the row")
	}
	rationale := decodeStrings(t, row.Rationale)
	if len(rationale) == 0 || !strings.Contains(rationale[0], "manual override") {
		t.Fatalf("rationale should lead with the override, got %v", rationale)
	}
	if !strings.Contains(rationale[0], StateNotStarted) {
		t.Fatalf("rationale should preserve the derived state, got %q", rationale[0])
	}
}

func TestProgress_InvalidOverrideIgnored(t *testing.T) {
	bogus := "mastered"
	in := Input{
		AthleteID: testAthleteID,
		Skills:    []*types.Skill{testSkill("s", "Skill", CategoryEscape)},
		ExistingProgress: []*types.SkillProgress{{
			AthleteID:           testAthleteID,
			SkillID:             "s",
			ManualOverrideState: &bogus,
		}},
		Now: testNow,
	}
	if got := findProgress(t, recomputeOne(t, in), "s").State; got != StateNotStarted {
		t.Fatalf("unknown override state must be ignored, got %q", got)
	}
}

func TestProgress_ConfidenceThresholds(t *testing.T) {
	cases := []struct {
		count int
		want  string
	}{
		{0, ConfidenceLow},
		{1, ConfidenceLow},
		{2, ConfidenceMedium},
		{3, ConfidenceMedium},
		{4, ConfidenceHigh},
		{7, ConfidenceHigh},
	}
	cfg := DefaultConfig()
	for _, tc := range cases {
		if got := confidenceFor(cfg, tc.count); got != tc.want {
			t.Fatalf("confidence for %d evidence: expected %q, got %q", tc.count, tc.want, got)
		}
	}
}

func TestProgress_RowsSortedBySkillID(t *testing.T) {
	in := Input{
		AthleteID: testAthleteID,
		Skills: []*types.Skill{
			testSkill("zeta", "Zeta", CategoryConcept),
			testSkill("alpha", "Alpha", CategoryConcept),
			testSkill("mid", "Mid", CategoryConcept),
		},
		Now: testNow,
	}
	out := recomputeOne(t, in)
	if len(out.Progressions) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(out.Progressions))
	}
	for i, want := range []string{"alpha", "mid", "zeta"} {
		if out.Progressions[i].SkillID != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, out.Progressions[i].SkillID)
		}
	}
}
