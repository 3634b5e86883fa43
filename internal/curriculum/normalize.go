package curriculum

import (
	"fmt"
	"strings"

	"github.com/yungbote/matpath-backend/internal/platform/apierr"
)

// NormalizeID canonicalizes a raw identifier into a slug: trimmed,
// lower-cased, runs of non-alphanumerics collapsed to a single hyphen,
// leading/trailing hyphens stripped. An identifier that normalizes to the
// empty string is a validation failure.
func NormalizeID(raw string) (string, error) {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	out := b.String()
	if out == "" {
		return "", apierr.BadRequest("invalid_request", fmt.Errorf("identifier %q normalizes to empty", raw))
	}
	return out, nil
}

// NormalizeList trims entries and drops case-insensitive duplicates while
// preserving first-occurrence order.
func NormalizeList(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

// NormalizeIDList applies NormalizeID to every entry, dropping entries that
// normalize to empty, then dedupes while preserving order.
func NormalizeIDList(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		id, err := NormalizeID(item)
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
