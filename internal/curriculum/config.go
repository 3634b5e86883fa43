package curriculum

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/matpath-backend/internal/logger"
)

// Config holds every scoring weight, threshold, and bound used by the
// engine. Defaults match the documented scoring model; a YAML file named by
// CURRICULUM_WEIGHTS_FILE can override individual values so boundary
// behavior stays probeable in tests and tunable in deployments.
type Config struct {
	FailureRelevanceWeight  int `yaml:"failure_relevance_weight"`
	EvidenceRelevanceWeight int `yaml:"evidence_relevance_weight"`
	FailureImpactWeight     int `yaml:"failure_impact_weight"`

	RecencyBonusRecent int `yaml:"recency_bonus_recent"`
	RecencyBonusMid    int `yaml:"recency_bonus_mid"`
	RecencyBonusStale  int `yaml:"recency_bonus_stale"`
	RecencyRecentDays  int `yaml:"recency_recent_days"`
	RecencyMidDays     int `yaml:"recency_mid_days"`

	StateBonusReadyForReview  int `yaml:"state_bonus_ready_for_review"`
	StateBonusEvidencePresent int `yaml:"state_bonus_evidence_present"`
	StateBonusDefault         int `yaml:"state_bonus_default"`

	EffortBaseDrill           int `yaml:"effort_base_drill"`
	EffortBaseConcept         int `yaml:"effort_base_concept"`
	EffortBaseSkill           int `yaml:"effort_base_skill"`
	MissingPrereqEffortWeight int `yaml:"missing_prereq_effort_weight"`

	ComponentScoreMin int `yaml:"component_score_min"`
	ComponentScoreMax int `yaml:"component_score_max"`
	TotalScoreMin     int `yaml:"total_score_min"`
	TotalScoreMax     int `yaml:"total_score_max"`

	RelevanceTotalWeight float64 `yaml:"relevance_total_weight"`
	ImpactTotalWeight    float64 `yaml:"impact_total_weight"`
	EffortTotalWeight    float64 `yaml:"effort_total_weight"`

	ReviewEvidenceThreshold  int `yaml:"review_evidence_threshold"`
	HighConfidenceEvidence   int `yaml:"high_confidence_evidence"`
	MediumConfidenceEvidence int `yaml:"medium_confidence_evidence"`

	MaxRecommendations           int `yaml:"max_recommendations"`
	MaxEvidencePerRecommendation int `yaml:"max_evidence_per_recommendation"`
	MaxRationaleEvidence         int `yaml:"max_rationale_evidence"`
	MaxRationaleMentions         int `yaml:"max_rationale_mentions"`

	EscapeTrendBoost              int     `yaml:"escape_trend_boost"`
	EscapeSuccessRateFloor        float64 `yaml:"escape_success_rate_floor"`
	GuardRetentionTrendBoost      int     `yaml:"guard_retention_trend_boost"`
	GuardRetentionFailureRateCeil float64 `yaml:"guard_retention_failure_rate_ceil"`
	NeglectedPositionBoost        int     `yaml:"neglected_position_boost"`
}

func DefaultConfig() Config {
	return Config{
		FailureRelevanceWeight:  14,
		EvidenceRelevanceWeight: 8,
		FailureImpactWeight:     16,

		RecencyBonusRecent: 12,
		RecencyBonusMid:    7,
		RecencyBonusStale:  3,
		RecencyRecentDays:  7,
		RecencyMidDays:     21,

		StateBonusReadyForReview:  18,
		StateBonusEvidencePresent: 12,
		StateBonusDefault:         7,

		EffortBaseDrill:           18,
		EffortBaseConcept:         32,
		EffortBaseSkill:           48,
		MissingPrereqEffortWeight: 12,

		ComponentScoreMin: 5,
		ComponentScoreMax: 100,
		TotalScoreMin:     1,
		TotalScoreMax:     100,

		RelevanceTotalWeight: 0.5,
		ImpactTotalWeight:    0.45,
		EffortTotalWeight:    0.2,

		ReviewEvidenceThreshold:  3,
		HighConfidenceEvidence:   4,
		MediumConfidenceEvidence: 2,

		MaxRecommendations:           12,
		MaxEvidencePerRecommendation: 3,
		MaxRationaleEvidence:         2,
		MaxRationaleMentions:         2,

		EscapeTrendBoost:              15,
		EscapeSuccessRateFloor:        0.5,
		GuardRetentionTrendBoost:      20,
		GuardRetentionFailureRateCeil: 0.4,
		NeglectedPositionBoost:        10,
	}
}

// LoadConfig returns the defaults, overlaid with the YAML file named by
// CURRICULUM_WEIGHTS_FILE when one is configured and readable.
func LoadConfig(log *logger.Logger) Config {
	cfg := DefaultConfig()
	path := strings.TrimSpace(os.Getenv("CURRICULUM_WEIGHTS_FILE"))
	if path == "" {
		return cfg
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if log != nil {
			log.Warn("curriculum weights file unreadable, using defaults", "path", path, "error", err)
		}
		return cfg
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		if log != nil {
			log.Warn("curriculum weights file invalid, using defaults", "path", path, "error", err)
		}
		return DefaultConfig()
	}
	return cfg
}
