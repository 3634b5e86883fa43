package curriculum

import (
	"fmt"
	"sort"

	"github.com/yungbote/matpath-backend/internal/platform/apierr"
)

// buildPrereqIndex maps each skill to its direct prerequisite ids. The set
// starts from the skill's own prerequisites field and is unioned with
// prerequisite-typed relationships: an edge from A to B means B requires A.
// Prerequisite ids that name no known skill are dropped. Other relation
// types never participate.
func buildPrereqIndex(skills []skillRecord, rels []relationshipRecord) map[string][]string {
	known := make(map[string]bool, len(skills))
	for _, s := range skills {
		known[s.SkillID] = true
	}

	sets := make(map[string]map[string]bool, len(skills))
	add := func(skillID, prereqID string) {
		if prereqID == "" || !known[prereqID] {
			return
		}
		set := sets[skillID]
		if set == nil {
			set = map[string]bool{}
			sets[skillID] = set
		}
		set[prereqID] = true
	}

	for _, s := range skills {
		for _, p := range s.Prerequisites {
			add(s.SkillID, p)
		}
	}
	for _, r := range rels {
		if r.Relation != RelationPrerequisite {
			continue
		}
		if !known[r.From] || !known[r.To] {
			continue
		}
		add(r.To, r.From)
	}

	out := make(map[string][]string, len(sets))
	for skillID, set := range sets {
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out[skillID] = ids
	}
	return out
}

// validateAcyclic walks the prerequisite graph depth-first from every skill,
// tracking nodes on the current exploration stack separately from fully
// explored nodes. Reaching a node already on the stack means a cycle
// (self-loops included) and rejects the whole graph.
func validateAcyclic(skills []skillRecord, prereqs map[string][]string) error {
	onStack := make(map[string]bool, len(skills))
	done := make(map[string]bool, len(skills))

	type frame struct {
		id   string
		next int
	}

	for _, s := range skills {
		if done[s.SkillID] {
			continue
		}
		stack := []frame{{id: s.SkillID}}
		onStack[s.SkillID] = true
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := prereqs[top.id]
			if top.next < len(deps) {
				dep := deps[top.next]
				top.next++
				if onStack[dep] {
					return apierr.BadRequest("invalid_request",
						fmt.Errorf("prerequisite cycle detected involving skill %q", dep))
				}
				if !done[dep] {
					stack = append(stack, frame{id: dep})
					onStack[dep] = true
				}
				continue
			}
			done[top.id] = true
			delete(onStack, top.id)
			stack = stack[:len(stack)-1]
		}
	}
	return nil
}
