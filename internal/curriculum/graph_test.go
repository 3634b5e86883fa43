package curriculum

import (
	"errors"
	"net/http"
	"testing"

	"github.com/yungbote/matpath-backend/internal/platform/apierr"
	"github.com/yungbote/matpath-backend/internal/types"
)

func TestValidateGraph_AcceptsDAG(t *testing.T) {
	skills := []*types.Skill{
		testSkill("hip-escape", "Hip Escape", CategoryEscape),
		testSkill("scissor-sweep", "Scissor Sweep", CategorySweep, "hip-escape"),
	}
	rels := []*types.SkillRelationship{
		testRelationship("hip-escape", "scissor-sweep", RelationPrerequisite),
	}
	if err := ValidateGraph(skills, rels); err != nil {
		t.Fatalf("expected DAG to validate, got %v", err)
	}
}

func TestValidateGraph_RejectsSelfLoop(t *testing.T) {
	skills := []*types.Skill{
		testSkill("hip-escape", "Hip Escape", CategoryEscape, "hip-escape"),
	}
	err := ValidateGraph(skills, nil)
	if err == nil {
		t.Fatalf("expected self-loop to fail validation")
	}
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected apierr 400, got %v", err)
	}
}

func TestValidateGraph_RejectsMutualPrereqs(t *testing.T) {
	skills := []*types.Skill{
		testSkill("a", "A", CategoryConcept, "b"),
		testSkill("b", "B", CategoryConcept, "a"),
	}
	if err := ValidateGraph(skills, nil); err == nil {
		t.Fatalf("expected mutual prerequisites to fail validation")
	}
}

func TestValidateGraph_RejectsMultiHopCycle(t *testing.T) {
	skills := []*types.Skill{
		testSkill("a", "A", CategoryConcept, "c"),
		testSkill("b", "B", CategoryConcept, "a"),
		testSkill("c", "C", CategoryConcept, "b"),
	}
	if err := ValidateGraph(skills, nil); err == nil {
		t.Fatalf("expected three-hop cycle to fail validation")
	}
}

func TestValidateGraph_IgnoresNonPrerequisiteCycles(t *testing.T) {
	skills := []*types.Skill{
		testSkill("a", "A", CategoryConcept),
		testSkill("b", "B", CategoryConcept),
	}
	rels := []*types.SkillRelationship{
		testRelationship("a", "b", RelationSupports),
		testRelationship("b", "a", RelationSupports),
	}
	if err := ValidateGraph(skills, rels); err != nil {
		t.Fatalf("supports-only cycle must not fail validation, got %v", err)
	}
}

func TestValidateGraph_RelationshipCycleAcrossHops(t *testing.T) {
	skills := []*types.Skill{
		testSkill("a", "A", CategoryConcept),
		testSkill("b", "B", CategoryConcept),
		testSkill("c", "C", CategoryConcept),
	}
	rels := []*types.SkillRelationship{
		testRelationship("a", "b", RelationPrerequisite),
		testRelationship("b", "c", RelationPrerequisite),
		testRelationship("c", "a", RelationPrerequisite),
	}
	if err := ValidateGraph(skills, rels); err == nil {
		t.Fatalf("expected relationship cycle to fail validation")
	}
}
