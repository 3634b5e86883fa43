package curriculum

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/matpath-backend/internal/types"
)

// skillEvaluation is the fused view of one skill: its derived state plus
// every intermediate the recommendation pass reuses.
type skillEvaluation struct {
	rec             skillRecord
	derivedState    string
	state           string
	blockedBy       []string
	pendingCount    int
	earnedCount     int
	evidence        []evidenceRecord // usable (not rejected), most recent first
	matchedFailures []failureSignal  // signals matched to this skill, most recent first
	mentions        []failureSignal  // signals containing the skill name verbatim
	nextSkillIDs    []string
	overrideState   string
	overrideReason  string
	rationale       []string
}

func deriveProgress(cfg Config, snap *snapshot) map[string]*skillEvaluation {
	evals := make(map[string]*skillEvaluation, len(snap.skills))
	for _, rec := range snap.skills {
		evals[rec.SkillID] = evaluateSkill(cfg, snap, rec)
	}
	return evals
}

func evaluateSkill(cfg Config, snap *snapshot, rec skillRecord) *skillEvaluation {
	ev := &skillEvaluation{rec: rec}

	for _, c := range snap.checkoffsBySkill[rec.SkillID] {
		if c.Status == CheckoffPending {
			ev.pendingCount++
		} else {
			ev.earnedCount++
		}
	}
	ev.evidence = snap.evidenceBySkill[rec.SkillID]

	// A prerequisite with no earned or revalidated checkoff blocks this
	// skill regardless of its own evidence volume.
	for _, prereq := range snap.prereqs[rec.SkillID] {
		if snap.earnedBySkill[prereq] == 0 {
			ev.blockedBy = append(ev.blockedBy, prereq)
		}
	}

	matcher := newSkillMatcher(rec)
	lowerName := strings.ToLower(rec.Name)
	for _, sig := range snap.signals {
		if matcher.Matches(sig.Text) {
			ev.matchedFailures = append(ev.matchedFailures, sig)
		}
		if strings.Contains(strings.ToLower(sig.Text), lowerName) {
			ev.mentions = append(ev.mentions, sig)
		}
	}
	ev.nextSkillIDs = snap.nextByID[rec.SkillID]

	evidenceCount := len(ev.evidence)
	switch {
	case len(ev.blockedBy) > 0:
		ev.derivedState = StateBlocked
	case ev.earnedCount > 0:
		ev.derivedState = StateComplete
	case evidenceCount >= cfg.ReviewEvidenceThreshold && ev.pendingCount > 0:
		ev.derivedState = StateReadyForReview
	case evidenceCount >= cfg.ReviewEvidenceThreshold:
		ev.derivedState = StateEvidencePresent
	case evidenceCount > 0 || ev.pendingCount > 0:
		ev.derivedState = StateWorking
	default:
		ev.derivedState = StateNotStarted
	}
	ev.state = ev.derivedState

	if prev := snap.existingProgress[rec.SkillID]; prev != nil && prev.ManualOverrideState != nil {
		if state := strings.TrimSpace(*prev.ManualOverrideState); ValidState(state) {
			ev.overrideState = state
			ev.state = state
			if prev.ManualOverrideReason != nil {
				ev.overrideReason = strings.TrimSpace(*prev.ManualOverrideReason)
			}
		}
	}

	ev.rationale = buildRationale(cfg, ev)
	return ev
}

func buildRationale(cfg Config, ev *skillEvaluation) []string {
	reasons := make([]string, 0, 6)
	if len(ev.blockedBy) > 0 {
		reasons = append(reasons, fmt.Sprintf("blocked by prerequisites: %s", strings.Join(ev.blockedBy, ", ")))
	}
	if n := len(ev.evidence); n > 0 {
		reasons = append(reasons, fmt.Sprintf("%d evidence statement(s) on record", n))
		for i, e := range ev.evidence {
			if i >= cfg.MaxRationaleEvidence {
				break
			}
			reasons = append(reasons, fmt.Sprintf("evidence: %q", e.Statement))
		}
	}
	if ev.pendingCount > 0 {
		reasons = append(reasons, fmt.Sprintf("%d checkoff(s) pending review", ev.pendingCount))
	}
	for i, m := range ev.mentions {
		if i >= cfg.MaxRationaleMentions {
			break
		}
		reasons = append(reasons, fmt.Sprintf("journal mention: %q", m.Text))
	}
	if ev.overrideState != "" {
		override := fmt.Sprintf("manual override to %q applied; derived state was %q", ev.overrideState, ev.derivedState)
		if ev.overrideReason != "" {
			override = fmt.Sprintf("%s (%s)", override, ev.overrideReason)
		}
		reasons = append([]string{override}, reasons...)
	}
	return reasons
}

func confidenceFor(cfg Config, evidenceCount int) string {
	switch {
	case evidenceCount >= cfg.HighConfidenceEvidence:
		return ConfidenceHigh
	case evidenceCount >= cfg.MediumConfidenceEvidence:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func progressRow(snap *snapshot, ev *skillEvaluation, cfg Config) *types.SkillProgress {
	entryIDs := make([]string, 0, len(ev.matchedFailures)+len(ev.mentions))
	seenEntry := map[uuid.UUID]bool{}
	for _, sig := range append(append([]failureSignal{}, ev.matchedFailures...), ev.mentions...) {
		if sig.EntryID == uuid.Nil || seenEntry[sig.EntryID] {
			continue
		}
		seenEntry[sig.EntryID] = true
		entryIDs = append(entryIDs, sig.EntryID.String())
	}

	evidenceIDs := make([]string, 0, len(ev.evidence))
	for _, e := range ev.evidence {
		if e.ID != uuid.Nil {
			evidenceIDs = append(evidenceIDs, e.ID.String())
		}
	}

	next := ev.nextSkillIDs
	if next == nil {
		next = []string{}
	}

	row := &types.SkillProgress{
		AthleteID:             snap.athleteID,
		SkillID:               ev.rec.SkillID,
		State:                 ev.state,
		EvidenceCount:         len(ev.evidence),
		Confidence:            confidenceFor(cfg, len(ev.evidence)),
		Rationale:             encodeJSON(ev.rationale),
		SourceEntryIDs:        encodeJSON(entryIDs),
		SourceEvidenceIDs:     encodeJSON(evidenceIDs),
		SuggestedNextSkillIDs: encodeJSON(next),
		LastEvaluatedAt:       snap.now,
		UpdatedAt:             snap.now,
	}
	if prev := snap.existingProgress[ev.rec.SkillID]; prev != nil {
		row.ID = prev.ID
		row.CreatedAt = prev.CreatedAt
		row.ManualOverrideState = prev.ManualOverrideState
		row.ManualOverrideReason = prev.ManualOverrideReason
		row.CoachReviewedBy = prev.CoachReviewedBy
		row.CoachReviewedAt = prev.CoachReviewedAt
	}
	return row
}
