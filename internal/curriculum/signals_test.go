package curriculum

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCollectFailureSignals_GathersAndSorts(t *testing.T) {
	older := entryRecord{
		ID:         uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		OccurredAt: testNow.Add(-72 * time.Hour),
		ActionPack: &actionPackDoc{Status: "final", Leaks: []string{"gave up underhook"}, Focus: "pummel earlier"},
	}
	newer := entryRecord{
		ID:            uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		OccurredAt:    testNow.Add(-24 * time.Hour),
		SessionReview: &sessionReviewDoc{Status: "draft", FailedOutcomes: []string{"swept from half guard"}},
	}

	got := collectFailureSignals([]entryRecord{older, newer})
	if len(got) != 3 {
		t.Fatalf("expected 3 signals, got %d", len(got))
	}
	if got[0].Text != "swept from half guard" {
		t.Fatalf("expected most recent signal first, got %q", got[0].Text)
	}
	if got[0].EntryID != newer.ID || got[1].EntryID != older.ID {
		t.Fatalf("signals not ordered by entry recency")
	}
}

func TestCollectFailureSignals_SkipsUnusableDocs(t *testing.T) {
	e := entryRecord{
		ID:            uuid.New(),
		OccurredAt:    testNow,
		ActionPack:    &actionPackDoc{Status: "void", Leaks: []string{"should not appear"}},
		SessionReview: &sessionReviewDoc{Status: "", FailedOutcomes: []string{"also skipped"}},
	}
	if got := collectFailureSignals([]entryRecord{e}); len(got) != 0 {
		t.Fatalf("expected no signals from unusable docs, got %v", got)
	}
}

func TestCollectFailureSignals_DropsBlankText(t *testing.T) {
	e := entryRecord{
		ID:         uuid.New(),
		OccurredAt: testNow,
		ActionPack: &actionPackDoc{Status: "final", Leaks: []string{"  ", ""}, Focus: "keep elbows tight"},
	}
	got := collectFailureSignals([]entryRecord{e})
	if len(got) != 1 || got[0].Text != "keep elbows tight" {
		t.Fatalf("expected only the focus line, got %v", got)
	}
}

func TestTextMatcher_TokenSubstrings(t *testing.T) {
	m := newTextMatcher("Crossface pressure", "lost inside position")
	if !m.Matches("opponent flattened me with a heavy crossface") {
		t.Fatalf("expected crossface token to match")
	}
	if !m.Matches("kept losing INSIDE space off the entry") {
		t.Fatalf("matching must be case-insensitive")
	}
	if m.Matches("nothing relevant here") {
		t.Fatalf("unexpected match")
	}
}

func TestTextMatcher_IgnoresShortTokens(t *testing.T) {
	m := newTextMatcher("go to it")
	if m.Matches("got to the gym") {
		t.Fatalf("tokens of two characters or fewer must not match")
	}
}

func TestNewSkillMatcher_UsesFailuresAndConcepts(t *testing.T) {
	rec := skillRecord{
		Name:           "Hip Escape",
		CommonFailures: []string{"flat hips"},
		KeyConcepts:    []string{"frame before you move"},
	}
	m := newSkillMatcher(rec)
	if !m.Matches("got stuck with flat hips under mount") {
		t.Fatalf("common failure text should match")
	}
	if !m.Matches("forgot to frame on the way out") {
		t.Fatalf("key concept text should match")
	}
}

func TestNormalizeMatchText(t *testing.T) {
	got := normalizeMatchText("  Knee-Cut!! pass,  v2 ")
	if got != "knee cut pass v2" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}

func TestTrendBoost_CategoryAndNeglect(t *testing.T) {
	cfg := DefaultConfig()
	trend := &TrendReport{
		Latest:             &TrendPoint{EscapeSuccessRate: 0.3, GuardRetentionFailureRate: 0.6},
		NeglectedPositions: []string{"bottom half guard"},
	}

	boost, notes := trendBoost(cfg, skillRecord{Name: "Mount Escape", Category: CategoryEscape}, trend)
	if boost != cfg.EscapeTrendBoost {
		t.Fatalf("expected escape boost %d, got %d", cfg.EscapeTrendBoost, boost)
	}
	if len(notes) != 1 {
		t.Fatalf("expected one note, got %v", notes)
	}

	boost, _ = trendBoost(cfg, skillRecord{Name: "Guard Recovery", Category: CategoryGuardRetention}, trend)
	if boost != cfg.GuardRetentionTrendBoost {
		t.Fatalf("expected guard retention boost %d, got %d", cfg.GuardRetentionTrendBoost, boost)
	}

	boost, _ = trendBoost(cfg, skillRecord{Name: "Half Guard", Category: CategoryControl}, trend)
	if boost != cfg.NeglectedPositionBoost {
		t.Fatalf("expected neglected position boost %d, got %d", cfg.NeglectedPositionBoost, boost)
	}

	if boost, _ := trendBoost(cfg, skillRecord{Name: "Armbar", Category: CategorySubmission}, trend); boost != 0 {
		t.Fatalf("expected no boost for unrelated skill, got %d", boost)
	}

	if boost, notes := trendBoost(cfg, skillRecord{Name: "Armbar", Category: CategoryEscape}, nil); boost != 0 || notes != nil {
		t.Fatalf("nil trend must yield zero boost")
	}
}
