package curriculum

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// failureSignal is a verbatim piece of failure/decision text mined from a
// journal entry, kept with its source entry and timestamp.
type failureSignal struct {
	Text       string
	EntryID    uuid.UUID
	ObservedAt time.Time
}

// collectFailureSignals gathers candidate text from each entry: the action
// pack's leak list and focus line, and the session review's failed
// outcomes. Draft and finalized documents both contribute. Result is sorted
// most recent first with a stable tie-break.
func collectFailureSignals(entries []entryRecord) []failureSignal {
	out := make([]failureSignal, 0, len(entries))
	appendSignal := func(e entryRecord, text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		out = append(out, failureSignal{Text: text, EntryID: e.ID, ObservedAt: e.OccurredAt})
	}

	for _, e := range entries {
		if ap := e.ActionPack; ap != nil && docUsable(ap.Status) {
			for _, leak := range ap.Leaks {
				appendSignal(e, leak)
			}
			appendSignal(e, ap.Focus)
		}
		if sr := e.SessionReview; sr != nil && docUsable(sr.Status) {
			for _, outcome := range sr.FailedOutcomes {
				appendSignal(e, outcome)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ObservedAt.Equal(out[j].ObservedAt) {
			return out[i].ObservedAt.After(out[j].ObservedAt)
		}
		if out[i].EntryID != out[j].EntryID {
			return out[i].EntryID.String() < out[j].EntryID.String()
		}
		return out[i].Text < out[j].Text
	})
	return out
}

func docUsable(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "draft", "final", "finalized":
		return true
	default:
		return false
	}
}

// textMatcher matches candidate text against a token set. Tokens come from
// normalizing the source phrases (lowercase, non-alphanumerics stripped,
// whitespace collapsed); a candidate matches when any token longer than two
// characters appears as a substring of the normalized candidate text.
// Substring matching is deliberately permissive: weak signals should surface
// a coach-reviewable recommendation, not be dropped silently.
type textMatcher struct {
	tokens []string
}

func newTextMatcher(phrases ...string) textMatcher {
	seen := map[string]bool{}
	tokens := make([]string, 0, len(phrases))
	for _, phrase := range phrases {
		for _, tok := range strings.Fields(normalizeMatchText(phrase)) {
			if len(tok) <= 2 || seen[tok] {
				continue
			}
			seen[tok] = true
			tokens = append(tokens, tok)
		}
	}
	sort.Strings(tokens)
	return textMatcher{tokens: tokens}
}

func newSkillMatcher(rec skillRecord) textMatcher {
	phrases := make([]string, 0, 1+len(rec.CommonFailures)+len(rec.KeyConcepts))
	phrases = append(phrases, rec.Name)
	phrases = append(phrases, rec.CommonFailures...)
	phrases = append(phrases, rec.KeyConcepts...)
	return newTextMatcher(phrases...)
}

func (m textMatcher) Matches(candidate string) bool {
	text := normalizeMatchText(candidate)
	if text == "" {
		return false
	}
	for _, tok := range m.tokens {
		if strings.Contains(text, tok) {
			return true
		}
	}
	return false
}

func normalizeMatchText(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
