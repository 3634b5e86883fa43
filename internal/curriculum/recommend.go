package curriculum

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/yungbote/matpath-backend/internal/types"
)

type selectedAction struct {
	Type   string
	Title  string
	Detail string
}

// evidenceRef is one tagged entry in a recommendation's source_evidence
// column.
type evidenceRef struct {
	Type       string `json:"type"` // failure | evidence | trend
	ID         string `json:"id,omitempty"`
	Note       string `json:"note"`
	ObservedAt string `json:"observed_at,omitempty"`
}

func buildRecommendations(cfg Config, snap *snapshot, evals map[string]*skillEvaluation) []*types.CurriculumRecommendation {
	produced := make(map[string]bool)
	out := make([]*types.CurriculumRecommendation, 0, len(snap.skills))

	for _, rec := range snap.skills {
		ev := evals[rec.SkillID]
		if ev == nil || ev.state == StateComplete {
			// The review loop ends when evidence completes a skill, not
			// when recommendations stop; blocked skills stay eligible so a
			// recommendation can target clearing the blocker.
			continue
		}

		failures := ev.matchedFailures
		evidence := ev.evidence
		if len(evidence) > cfg.MaxEvidencePerRecommendation {
			evidence = evidence[:cfg.MaxEvidencePerRecommendation]
		}
		missing := ev.blockedBy
		boost, trendNotes := trendBoost(cfg, rec, snap.trend)
		if len(failures) == 0 && len(evidence) == 0 && len(missing) == 0 && boost == 0 {
			continue
		}

		action := selectAction(rec, failures)
		var row *types.CurriculumRecommendation
		if coach := snap.coachActiveBySkill[rec.SkillID]; coach != nil {
			// A coach-edited active recommendation keeps its action exactly
			// as the coach wrote it, even when fresh signals would select a
			// different one; only the derived fields refresh.
			action = selectedAction{Type: coach.ActionType, Title: coach.ActionTitle, Detail: coach.ActionDetail}
			row = scoreRecommendation(cfg, snap, ev, action, failures, evidence, missing, boost, trendNotes)
			row.RecommendationID = coach.RecommendationID
			row.ID = coach.ID
			row.CreatedAt = coach.CreatedAt
			row.GeneratedAt = coach.GeneratedAt
			row.CreatedByRole = coach.CreatedByRole
			row.ApprovedBy = coach.ApprovedBy
			row.ApprovedAt = coach.ApprovedAt
			row.CoachNote = coach.CoachNote
			row.Status = coach.Status
		} else {
			row = scoreRecommendation(cfg, snap, ev, action, failures, evidence, missing, boost, trendNotes)
			mergeExisting(snap, row)
		}
		produced[row.RecommendationID] = true
		out = append(out, row)
	}

	// An active recommendation that no longer recurs (skill completed,
	// eligibility lapsed) is carried forward rather than silently dropped.
	carried := make([]string, 0)
	for id, existing := range snap.existingRecs {
		if produced[id] || existing.Status != StatusActive {
			continue
		}
		carried = append(carried, id)
	}
	sort.Strings(carried)
	for _, id := range carried {
		existing := snap.existingRecs[id]
		copied := *existing
		copied.UpdatedAt = snap.now
		out = append(out, &copied)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := statusRank(out[i].Status), statusRank(out[j].Status)
		if ri != rj {
			return ri < rj
		}
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].RecommendationID < out[j].RecommendationID
	})
	if len(out) > cfg.MaxRecommendations {
		out = out[:cfg.MaxRecommendations]
	}
	return out
}

// selectAction picks the smallest viable intervention: a drill that overlaps
// the matched failure text, else the first drill, else the first key
// concept, else the skill itself.
func selectAction(rec skillRecord, failures []failureSignal) selectedAction {
	for _, drill := range rec.Drills {
		dm := newTextMatcher(drill)
		for _, f := range failures {
			if dm.Matches(f.Text) {
				return selectedAction{
					Type:   ActionTypeDrill,
					Title:  drill,
					Detail: fmt.Sprintf("Run %q against the failure pattern showing up in recent sessions.", drill),
				}
			}
		}
	}
	if len(rec.Drills) > 0 {
		return selectedAction{
			Type:   ActionTypeDrill,
			Title:  rec.Drills[0],
			Detail: fmt.Sprintf("Start with %q under light resistance before adding intensity.", rec.Drills[0]),
		}
	}
	if len(rec.KeyConcepts) > 0 {
		return selectedAction{
			Type:   ActionTypeConcept,
			Title:  rec.KeyConcepts[0],
			Detail: fmt.Sprintf("Review the concept %q before the next live session.", rec.KeyConcepts[0]),
		}
	}
	return selectedAction{
		Type:   ActionTypeSkill,
		Title:  rec.Name,
		Detail: fmt.Sprintf("Dedicate focused mat time to %s.", rec.Name),
	}
}

func scoreRecommendation(cfg Config, snap *snapshot, ev *skillEvaluation, action selectedAction,
	failures []failureSignal, evidence []evidenceRecord, missing []string, boost int, trendNotes []string) *types.CurriculumRecommendation {

	failureCount := len(failures)
	evidenceCount := len(evidence)

	recencyBonus := cfg.RecencyBonusStale
	if failureCount > 0 {
		age := snap.now.Sub(failures[0].ObservedAt)
		switch {
		case age <= time.Duration(cfg.RecencyRecentDays)*24*time.Hour:
			recencyBonus = cfg.RecencyBonusRecent
		case age <= time.Duration(cfg.RecencyMidDays)*24*time.Hour:
			recencyBonus = cfg.RecencyBonusMid
		}
	}

	relevance := clampInt(failureCount*cfg.FailureRelevanceWeight+evidenceCount*cfg.EvidenceRelevanceWeight+recencyBonus+boost,
		cfg.ComponentScoreMin, cfg.ComponentScoreMax)

	stateBonus := cfg.StateBonusDefault
	switch ev.state {
	case StateReadyForReview:
		stateBonus = cfg.StateBonusReadyForReview
	case StateEvidencePresent:
		stateBonus = cfg.StateBonusEvidencePresent
	}
	impact := clampInt(failureCount*cfg.FailureImpactWeight+stateBonus+boost,
		cfg.ComponentScoreMin, cfg.ComponentScoreMax)

	baseEffort := cfg.EffortBaseSkill
	switch action.Type {
	case ActionTypeDrill:
		baseEffort = cfg.EffortBaseDrill
	case ActionTypeConcept:
		baseEffort = cfg.EffortBaseConcept
	}
	effort := clampInt(baseEffort+len(missing)*cfg.MissingPrereqEffortWeight,
		cfg.ComponentScoreMin, cfg.ComponentScoreMax)

	total := clampInt(int(math.Round(float64(relevance)*cfg.RelevanceTotalWeight+
		float64(impact)*cfg.ImpactTotalWeight-
		float64(effort)*cfg.EffortTotalWeight)),
		cfg.TotalScoreMin, cfg.TotalScoreMax)

	refs := make([]evidenceRef, 0, failureCount+evidenceCount+len(trendNotes))
	for i, f := range failures {
		if i >= cfg.MaxEvidencePerRecommendation {
			break
		}
		refs = append(refs, evidenceRef{
			Type:       "failure",
			ID:         f.EntryID.String(),
			Note:       f.Text,
			ObservedAt: f.ObservedAt.UTC().Format(time.RFC3339),
		})
	}
	for _, e := range evidence {
		refs = append(refs, evidenceRef{
			Type:       "evidence",
			ID:         e.ID.String(),
			Note:       e.Statement,
			ObservedAt: e.ObservedAt.UTC().Format(time.RFC3339),
		})
	}
	for _, note := range trendNotes {
		refs = append(refs, evidenceRef{Type: "trend", Note: note})
	}

	rationale := make([]string, 0, 6)
	if failureCount > 0 {
		rationale = append(rationale, fmt.Sprintf("%d failure signal(s) matched from recent journal entries", failureCount))
	}
	for i, e := range evidence {
		if i >= cfg.MaxRationaleEvidence {
			break
		}
		rationale = append(rationale, fmt.Sprintf("evidence: %q", e.Statement))
	}
	if len(missing) > 0 {
		rationale = append(rationale, fmt.Sprintf("prerequisites still unmet: %s", strings.Join(missing, ", ")))
	}
	rationale = append(rationale, trendNotes...)

	next := ev.nextSkillIDs
	if next == nil {
		next = []string{}
	}
	if missing == nil {
		missing = []string{}
	}

	return &types.CurriculumRecommendation{
		AthleteID:                   snap.athleteID,
		RecommendationID:            recommendationIdentity(ev.rec.SkillID, action.Type, action.Title),
		SkillID:                     ev.rec.SkillID,
		SourceSkillID:               ev.rec.SkillID,
		ActionType:                  action.Type,
		ActionTitle:                 action.Title,
		ActionDetail:                action.Detail,
		Status:                      StatusDraft,
		RelevanceScore:              relevance,
		ImpactScore:                 impact,
		EffortScore:                 effort,
		Score:                       total,
		Rationale:                   encodeJSON(rationale),
		WhyNow:                      whyNow(snap, failureCount, failures, missing, trendNotes),
		ExpectedImpact:              expectedImpact(ev, action, missing),
		SourceEvidence:              encodeJSON(refs),
		SupportingNextSkillIDs:      encodeJSON(next),
		MissingPrerequisiteSkillIDs: encodeJSON(missing),
		GeneratedAt:                 snap.now,
		UpdatedAt:                   snap.now,
		CreatedByRole:               RoleSystem,
	}
}

// mergeExisting folds a previously persisted recommendation with the same
// identity into the fresh row: identity-stable metadata (generated_at,
// approvals, role) carries forward and a non-coach-owned row keeps its
// status. Coach-owned active rows never reach here; they are intercepted
// per skill before action selection.
func mergeExisting(snap *snapshot, row *types.CurriculumRecommendation) {
	existing := snap.existingRecs[row.RecommendationID]
	if existing == nil {
		return
	}
	row.ID = existing.ID
	row.CreatedAt = existing.CreatedAt
	row.GeneratedAt = existing.GeneratedAt
	row.CreatedByRole = existing.CreatedByRole
	row.ApprovedBy = existing.ApprovedBy
	row.ApprovedAt = existing.ApprovedAt
	row.CoachNote = existing.CoachNote
	if existing.CreatedByRole != RoleCoach {
		row.Status = existing.Status
	}
}

// recommendationIdentity is the deterministic slug naming a (skill, action)
// pair; recomputing with an unchanged selection always reproduces it.
func recommendationIdentity(skillID, actionType, actionTitle string) string {
	skillSlug, err := NormalizeID(skillID)
	if err != nil {
		skillSlug = "skill"
	}
	titleSlug, err := NormalizeID(actionTitle)
	if err != nil {
		titleSlug = "action"
	}
	return skillSlug + ":" + actionType + ":" + titleSlug
}

func whyNow(snap *snapshot, failureCount int, failures []failureSignal, missing []string, trendNotes []string) string {
	switch {
	case failureCount > 0:
		days := int(snap.now.Sub(failures[0].ObservedAt).Hours() / 24)
		if days <= 0 {
			return fmt.Sprintf("%d failure signal(s) in the journal, the latest from today", failureCount)
		}
		return fmt.Sprintf("%d failure signal(s) in the journal, the latest %d day(s) ago", failureCount, days)
	case len(trendNotes) > 0:
		return trendNotes[0]
	case len(missing) > 0:
		return fmt.Sprintf("progress is gated on %s", strings.Join(missing, ", "))
	default:
		return "evidence is accumulating; keep the rep count up"
	}
}

func expectedImpact(ev *skillEvaluation, action selectedAction, missing []string) string {
	base := ""
	switch action.Type {
	case ActionTypeDrill:
		base = fmt.Sprintf("Tightens %s where sessions break down most often.", ev.rec.Name)
	case ActionTypeConcept:
		base = fmt.Sprintf("Clarifies the concept gating progress on %s.", ev.rec.Name)
	default:
		base = fmt.Sprintf("Moves %s toward its next checkoff.", ev.rec.Name)
	}
	if len(missing) > 0 {
		return base + fmt.Sprintf(" Clearing %s unblocks it.", strings.Join(missing, ", "))
	}
	return base
}

func statusRank(status string) int {
	if status == StatusActive {
		return 0
	}
	return 1
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
