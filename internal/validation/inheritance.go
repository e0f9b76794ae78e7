package validation

import "strings"

// Node colors for the inheritance traversal.
const (
	colorUnvisited = iota
	colorInProgress
	colorDone
)

// checkInheritance detects cycles in the category parent graph of the
// merged view. Every category whose effective parent resolves contributes
// a child -> parent edge; the graph is rebuilt fresh each run because draft
// overrides can introduce or remove canonical edges.
//
// Each category has at most one parent, so the traversal is an iterative
// chain walk with three-color marking: no recursion, and the in-progress
// path doubles as the exact cycle witness. One finding is emitted per
// distinct node on a cycle, each carrying the full rendered path.
func checkInheritance(lk *Lookup) []Finding {
	parentOf := func(id string) (string, bool) {
		def, ok := lk.Effective(EntityTypeCategory, id)
		if !ok {
			return "", false
		}
		parent := def.StringField("parent")
		// Unresolved parents are the reference checker's problem and
		// contribute no edge: only merged-view entities are nodes.
		if parent == "" || !lk.Exists(EntityTypeCategory, parent) {
			return "", false
		}
		return parent, true
	}

	var findings []Finding
	color := make(map[string]int)
	for _, start := range lk.MergedIDs(EntityTypeCategory) {
		if color[start] != colorUnvisited {
			continue
		}
		var path []string
		node := start
		terminated := false
		for color[node] == colorUnvisited {
			color[node] = colorInProgress
			path = append(path, node)
			parent, ok := parentOf(node)
			if !ok {
				terminated = true
				break
			}
			node = parent
		}
		if !terminated && color[node] == colorInProgress {
			// The chain closed on an in-progress node: everything from
			// that node to the end of the path lies on the cycle.
			at := 0
			for i, id := range path {
				if id == node {
					at = i
					break
				}
			}
			cycle := path[at:]
			rendered := strings.Join(append(append([]string{}, cycle...), node), " -> ")
			for _, id := range cycle {
				findings = append(findings, Finding{
					EntityType: EntityTypeCategory,
					EntityID:   id,
					Field:      "parent",
					Code:       CodeCircularInheritance,
					Message:    "circular inheritance detected: " + rendered,
					Severity:   SeverityError,
				})
			}
		}
		for _, id := range path {
			color[id] = colorDone
		}
	}
	return findings
}
