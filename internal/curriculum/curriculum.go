// Package curriculum derives per-skill training progress and prioritized
// remediation recommendations from a single in-memory snapshot of an
// athlete's skill graph, checkoffs, evidence, and journal entries. Every
// computation here is a pure function over its inputs; persistence and
// request handling live in the service and handler layers.
package curriculum

// Progress states, in derivation precedence order (first match wins).
const (
	StateBlocked         = "blocked"
	StateComplete        = "complete"
	StateReadyForReview  = "ready_for_review"
	StateEvidencePresent = "evidence_present"
	StateWorking         = "working"
	StateNotStarted      = "not_started"
)

const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

const (
	RelationPrerequisite = "prerequisite"
	RelationSupports     = "supports"
	RelationCounter      = "counter"
	RelationSetsUp       = "sets-up"
	RelationVariation    = "variation"
)

const (
	ActionTypeDrill   = "drill"
	ActionTypeConcept = "concept"
	ActionTypeSkill   = "skill"
)

const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusDismissed = "dismissed"
)

const (
	RoleSystem  = "system"
	RoleAthlete = "athlete"
	RoleCoach   = "coach"
)

const (
	CheckoffPending     = "pending"
	CheckoffEarned      = "earned"
	CheckoffRevalidated = "revalidated"
)

const (
	EvidencePending   = "pending"
	EvidenceConfirmed = "confirmed"
	EvidenceRejected  = "rejected"
)

const (
	CategoryEscape         = "escape"
	CategoryPass           = "pass"
	CategoryGuardRetention = "guard-retention"
	CategorySweep          = "sweep"
	CategorySubmission     = "submission"
	CategoryTakedown       = "takedown"
	CategoryControl        = "control"
	CategoryTransition     = "transition"
	CategoryConcept        = "concept"
	CategoryOther          = "other"
)

var skillCategories = map[string]bool{
	CategoryEscape:         true,
	CategoryPass:           true,
	CategoryGuardRetention: true,
	CategorySweep:          true,
	CategorySubmission:     true,
	CategoryTakedown:       true,
	CategoryControl:        true,
	CategoryTransition:     true,
	CategoryConcept:        true,
	CategoryOther:          true,
}

var progressStates = map[string]bool{
	StateBlocked:         true,
	StateComplete:        true,
	StateReadyForReview:  true,
	StateEvidencePresent: true,
	StateWorking:         true,
	StateNotStarted:      true,
}

func ValidCategory(category string) bool { return skillCategories[category] }

func ValidState(state string) bool { return progressStates[state] }

func ValidRecommendationStatus(status string) bool {
	return status == StatusDraft || status == StatusActive || status == StatusDismissed
}
