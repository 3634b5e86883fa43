package curriculum

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/matpath-backend/internal/types"
)

// Persisted rows are narrowed into explicit records before the engine
// touches them. Each parser reports ok=false for a malformed row; malformed
// rows are skipped so a single corrupt record never fails the whole batch.

type skillRecord struct {
	SkillID        string
	Name           string
	Category       string
	StageID        string
	Prerequisites  []string
	KeyConcepts    []string
	CommonFailures []string
	Drills         []string
}

type relationshipRecord struct {
	From     string
	To       string
	Relation string
}

type checkoffRecord struct {
	SkillID string
	Status  string
}

type evidenceRecord struct {
	ID            uuid.UUID
	SkillID       string
	Status        string
	Statement     string
	SourceEntryID *uuid.UUID
	ObservedAt    time.Time
}

type actionPackDoc struct {
	Status string   `json:"status"`
	Leaks  []string `json:"leaks"`
	Focus  string   `json:"focus"`
}

type sessionReviewDoc struct {
	Status         string   `json:"status"`
	FailedOutcomes []string `json:"failed_outcomes"`
}

type entryRecord struct {
	ID            uuid.UUID
	OccurredAt    time.Time
	ActionPack    *actionPackDoc
	SessionReview *sessionReviewDoc
}

func parseSkillRow(row *types.Skill) (skillRecord, bool) {
	if row == nil {
		return skillRecord{}, false
	}
	id := strings.TrimSpace(row.SkillID)
	name := strings.TrimSpace(row.Name)
	if id == "" || name == "" || !ValidCategory(row.Category) {
		return skillRecord{}, false
	}
	return skillRecord{
		SkillID:        id,
		Name:           name,
		Category:       row.Category,
		StageID:        strings.TrimSpace(row.StageID),
		Prerequisites:  decodeStringList(row.Prerequisites),
		KeyConcepts:    decodeStringList(row.KeyConcepts),
		CommonFailures: decodeStringList(row.CommonFailures),
		Drills:         decodeStringList(row.Drills),
	}, true
}

func parseRelationshipRow(row *types.SkillRelationship) (relationshipRecord, bool) {
	if row == nil {
		return relationshipRecord{}, false
	}
	from := strings.TrimSpace(row.FromSkillID)
	to := strings.TrimSpace(row.ToSkillID)
	relation := strings.TrimSpace(row.Relation)
	if from == "" || to == "" || relation == "" {
		return relationshipRecord{}, false
	}
	return relationshipRecord{From: from, To: to, Relation: relation}, true
}

func parseCheckoffRow(row *types.Checkoff) (checkoffRecord, bool) {
	if row == nil {
		return checkoffRecord{}, false
	}
	skillID := strings.TrimSpace(row.SkillID)
	switch row.Status {
	case CheckoffPending, CheckoffEarned, CheckoffRevalidated:
	default:
		return checkoffRecord{}, false
	}
	if skillID == "" {
		return checkoffRecord{}, false
	}
	return checkoffRecord{SkillID: skillID, Status: row.Status}, true
}

func parseEvidenceRow(row *types.CheckoffEvidence) (evidenceRecord, bool) {
	if row == nil {
		return evidenceRecord{}, false
	}
	skillID := strings.TrimSpace(row.SkillID)
	statement := strings.TrimSpace(row.Statement)
	if skillID == "" || statement == "" {
		return evidenceRecord{}, false
	}
	switch row.Status {
	case EvidencePending, EvidenceConfirmed, EvidenceRejected:
	default:
		return evidenceRecord{}, false
	}
	return evidenceRecord{
		ID:            row.ID,
		SkillID:       skillID,
		Status:        row.Status,
		Statement:     statement,
		SourceEntryID: row.SourceEntryID,
		ObservedAt:    row.ObservedAt,
	}, true
}

func parseEntryRow(row *types.JournalEntry) (entryRecord, bool) {
	if row == nil || row.ID == uuid.Nil {
		return entryRecord{}, false
	}
	rec := entryRecord{ID: row.ID, OccurredAt: row.OccurredAt}
	if len(row.ActionPack) > 0 {
		var doc actionPackDoc
		if err := json.Unmarshal(row.ActionPack, &doc); err == nil {
			rec.ActionPack = &doc
		}
	}
	if len(row.SessionReview) > 0 {
		var doc sessionReviewDoc
		if err := json.Unmarshal(row.SessionReview, &doc); err == nil {
			rec.SessionReview = &doc
		}
	}
	if rec.ActionPack == nil && rec.SessionReview == nil {
		return entryRecord{}, false
	}
	return rec, true
}

func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func encodeJSON(v any) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(raw)
}
