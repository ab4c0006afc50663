package agrammar

import "github.com/dekarrin/attrflow/internal/agraph"

// Production is one rule LHS -> RHS with its semantic equations. Variables[0]
// is the occurrence of LHS; Variables[1:] are the occurrences of each RHS
// symbol, in order. Index is this production's 0-based ordinal among all
// productions sharing its LHS, used only for display ("Production A0").
type Production struct {
	LHS       string
	RHS       []string
	Variables []*Variable
	Index     int

	Order   []*Group
	Acyclic bool
}

// findProjectionsOnce runs one pass of the transitive-closure projection
// over this production's occurrences: for every attribute a belonging to
// some occurrence at index p, it looks for every attribute b also at index
// p that is reachable from a via a used_for path leaving and re-entering
// index p (a.k.a. routed through some other occurrence in the same
// production), and if found, records the new direct dependency a -> b.
// Because b and a now share an index, this is exactly the kind of edge
// CreateGroups's same-index peel can use, even though the grammar text
// never wrote this dependency explicitly.
//
// Every new edge is mirrored onto the corresponding attribute pair at every
// other occurrence of a's symbol name elsewhere in the grammar, preserving
// the mirror invariant. Returns whether any new edge was added, which the
// Grammar-level fixpoint loop uses to decide whether to run another pass.
func (p *Production) findProjectionsOnce(gr *Grammar) bool {
	changed := false
	for _, v := range p.Variables {
		for _, name := range v.AttributeNames() {
			a, _ := v.Attribute(name)
			targetIndex := gr.Graph.Index(a)
			for _, c := range gr.Graph.UsedFor(a) {
				if gr.Graph.Index(c) == targetIndex {
					continue
				}
				for _, b := range gr.Graph.FindPathsToIndex(c, targetIndex, false) {
					if b == a {
						continue
					}
					if gr.Graph.AddDependencyOn(a, b) {
						changed = true
						gr.mirrorEdge(v, a, b)
					}
				}
			}
		}
	}
	return changed
}

// isSchedulable reports whether every member of g currently has no
// outstanding dependency of any kind (same-index dependencies were already
// cleared by grouping; what remains here, if anything, is a cross-occurrence
// dependency that the synchronized scheduler itself must clear).
func isSchedulable(gr *Grammar, g *Group) bool {
	for _, a := range g.Members {
		if gr.Graph.DependsOnCount(a) > 0 {
			return false
		}
	}
	return true
}

// consumeCrossOccurrenceEdges removes, for every member of g, the edges into
// successors belonging to a different occurrence — the bookkeeping
// counterpart of scheduling g: now that its attributes are computed, any
// other occurrence's attribute that depended on them may become
// schedulable.
func consumeCrossOccurrenceEdges(gr *Grammar, g *Group) {
	for _, a := range g.Members {
		for _, c := range gr.Graph.UsedFor(a) {
			if gr.Graph.Index(c) != gr.Graph.Index(a) {
				gr.Graph.RemoveFromDependsOn(c, a)
			}
		}
	}
}

// DetermineCompatibleLocalExecutionOrder merges this production's per-
// occurrence group sequences into one synchronized schedule: a round-robin
// scan of the occurrences (starting just after whichever occurrence was
// scheduled last) looking for a head group that is schedulable, scheduling
// the first one found and repeating until every group has been scheduled.
// If a full round-robin scan finds nothing schedulable, the scheduler
// attempts to break the deadlock by splitting a stuck head group (see
// trySplit); if splitting also fails to make progress, the production is
// irreducibly cyclic.
func (p *Production) DetermineCompatibleLocalExecutionOrder(gr *Grammar) {
	for _, v := range p.Variables {
		if v.Cyclic {
			p.Acyclic = false
			return
		}
	}

	remaining := 0
	for _, v := range p.Variables {
		remaining += len(v.Groups)
	}

	n := len(p.Variables)
	lastIdx := -1
	for remaining > 0 {
		scheduled := false
		for step := 1; step <= n; step++ {
			idx := (lastIdx + step) % n
			v := p.Variables[idx]
			if len(v.Groups) == 0 {
				continue
			}
			head := v.Groups[0]
			if !isSchedulable(gr, head) {
				continue
			}
			v.Groups = v.Groups[1:]
			consumeCrossOccurrenceEdges(gr, head)
			p.Order = append(p.Order, head)
			remaining--
			lastIdx = idx
			scheduled = true
			break
		}
		if scheduled {
			continue
		}
		if gr.trySplit(p) {
			remaining++
			continue
		}
		p.Acyclic = false
		return
	}

	p.Acyclic = true
	p.removeNotNeededAttributes(gr)
}

// removeNotNeededAttributes sweeps the finished schedule, dropping any
// attribute nobody's rule ever referenced directly and then dropping any
// group left with no members as a result.
func (p *Production) removeNotNeededAttributes(gr *Grammar) {
	var kept []*Group
	for _, g := range p.Order {
		var members []agraph.AttrHandle
		for _, a := range g.Members {
			if gr.Graph.Needed(a) {
				members = append(members, a)
			}
		}
		g.Members = members
		if len(g.Members) > 0 {
			kept = append(kept, g)
		}
	}
	p.Order = kept
}
