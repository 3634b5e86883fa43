package curriculum

import (
	"fmt"
	"strings"
)

// TrendReport is the externally computed aggregate the gap-insights engine
// produces: the most recent point of the outcome-trend series plus the
// positions the athlete has been neglecting. The engine only reads it.
type TrendReport struct {
	Latest             *TrendPoint `json:"latest"`
	NeglectedPositions []string    `json:"neglected_positions"`
}

type TrendPoint struct {
	Date                      string  `json:"date"`
	EscapeSuccessRate         float64 `json:"escape_success_rate"`
	GuardRetentionFailureRate float64 `json:"guard_retention_failure_rate"`
}

// trendBoost returns the additive relevance/impact adjustment for one skill
// plus human-readable notes for the rationale. Contributions are additive
// and unbounded here; the scoring pipeline clamps downstream.
func trendBoost(cfg Config, rec skillRecord, trend *TrendReport) (int, []string) {
	if trend == nil {
		return 0, nil
	}
	boost := 0
	var notes []string

	if p := trend.Latest; p != nil {
		if rec.Category == CategoryEscape && p.EscapeSuccessRate < cfg.EscapeSuccessRateFloor {
			boost += cfg.EscapeTrendBoost
			notes = append(notes, fmt.Sprintf("escape success rate trending low (%.0f%%)", p.EscapeSuccessRate*100))
		}
		if rec.Category == CategoryGuardRetention && p.GuardRetentionFailureRate > cfg.GuardRetentionFailureRateCeil {
			boost += cfg.GuardRetentionTrendBoost
			notes = append(notes, fmt.Sprintf("guard retention failure rate trending high (%.0f%%)", p.GuardRetentionFailureRate*100))
		}
	}

	name := strings.ToLower(rec.Name)
	for _, position := range trend.NeglectedPositions {
		if name != "" && strings.Contains(strings.ToLower(position), name) {
			boost += cfg.NeglectedPositionBoost
			notes = append(notes, fmt.Sprintf("position %q has been neglected recently", position))
			break
		}
	}
	return boost, notes
}
