package agrammar

import "github.com/dekarrin/attrflow/internal/agraph"

// Grammar is the whole analyzed attribute grammar: every production, keyed
// by its LHS symbol, and every occurrence of every symbol across all of
// them, keyed by symbol name so the mirror invariant can be enforced and so
// grouping can be driven from one representative occurrence per symbol.
type Grammar struct {
	Graph *agraph.Graph

	productions map[string][]*Production
	lhsOrder    []string

	occurrences map[string][]*Variable
	occOrder    []string
}

// New returns an empty Grammar ready to have productions added to it.
func New() *Grammar {
	return &Grammar{
		Graph:       agraph.NewGraph(),
		productions: map[string][]*Production{},
		occurrences: map[string][]*Variable{},
	}
}

// Productions returns, for lhs, the productions defined for it in the order
// they were added. The returned slice is shared; callers must not mutate it.
func (gr *Grammar) Productions(lhs string) []*Production {
	return gr.productions[lhs]
}

// LHSSymbols returns every LHS symbol with at least one production, in the
// order each was first seen.
func (gr *Grammar) LHSSymbols() []string {
	out := make([]string, len(gr.lhsOrder))
	copy(out, gr.lhsOrder)
	return out
}

// Occurrences returns every occurrence of name across the whole grammar, in
// the order each was created. occurrences[0], if present, is the
// representative occurrence that grouping runs against directly.
func (gr *Grammar) Occurrences(name string) []*Variable {
	return gr.occurrences[name]
}

// AddProduction registers a new production lhs -> rhs... and returns it.
// One Variable occurrence is created for lhs (position 0) and one for each
// symbol in rhs (positions 1..len(rhs)); each is registered with the
// grammar so it immediately inherits any attribute names already mirrored
// for its symbol name from earlier occurrences.
func (gr *Grammar) AddProduction(lhs string, rhs []string) *Production {
	p := &Production{
		LHS:   lhs,
		RHS:   append([]string(nil), rhs...),
		Index: len(gr.productions[lhs]),
	}

	lhsVar := NewVariable(lhs, 0, gr.Graph)
	lhsVar.Production = p
	gr.registerOccurrence(lhsVar)
	p.Variables = append(p.Variables, lhsVar)

	for i, sym := range rhs {
		v := NewVariable(sym, i+1, gr.Graph)
		v.Production = p
		gr.registerOccurrence(v)
		p.Variables = append(p.Variables, v)
	}

	if len(gr.productions[lhs]) == 0 {
		gr.lhsOrder = append(gr.lhsOrder, lhs)
	}
	gr.productions[lhs] = append(gr.productions[lhs], p)
	return p
}

// registerOccurrence records a newly created occurrence and brings it up to
// date with whatever attributes the symbol's other occurrences already
// carry (as unneeded mirrors of the same kind).
func (gr *Grammar) registerOccurrence(v *Variable) {
	existing := gr.occurrences[v.Name]
	if len(existing) == 0 {
		gr.occOrder = append(gr.occOrder, v.Name)
	} else {
		rep := existing[0]
		for _, name := range rep.AttributeNames() {
			repH, _ := rep.Attribute(name)
			v.EnsureAttribute(name, gr.Graph.Kind(repH))
		}
	}
	gr.occurrences[v.Name] = append(gr.occurrences[v.Name], v)
}

// EnsureAttribute defines name on owner (if not already present) and
// mirrors the definition onto every other existing occurrence of owner's
// symbol, maintaining the invariant that every occurrence of a symbol
// carries the same attribute set.
func (gr *Grammar) EnsureAttribute(owner *Variable, name string, kind agraph.Kind) agraph.AttrHandle {
	h := owner.EnsureAttribute(name, kind)
	for _, vj := range gr.occurrences[owner.Name] {
		if vj == owner {
			continue
		}
		vj.EnsureAttribute(name, kind)
	}
	return h
}

// mirrorEdge mirrors the new edge a -> b (both owned by owner) onto the
// corresponding attribute pair at every other occurrence of owner's symbol.
func (gr *Grammar) mirrorEdge(owner *Variable, a, b agraph.AttrHandle) {
	aName := gr.Graph.Name(a)
	bName := gr.Graph.Name(b)
	for _, vj := range gr.occurrences[owner.Name] {
		if vj == owner {
			continue
		}
		aj, ok1 := vj.Attribute(aName)
		bj, ok2 := vj.Attribute(bName)
		if !ok1 || !ok2 {
			continue
		}
		gr.Graph.AddDependencyOn(aj, bj)
	}
}

// ComputeTransitiveClosure runs findProjectionsOnce over every production
// to a fixpoint: a projection discovered at one production can expose a new
// same-index path at another (through mirroring), so the whole pass repeats
// until a full sweep adds nothing.
func (gr *Grammar) ComputeTransitiveClosure() {
	for {
		changed := false
		for _, lhs := range gr.lhsOrder {
			for _, p := range gr.productions[lhs] {
				if p.findProjectionsOnce(gr) {
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}

// ComputeAttributeGroups runs CreateGroups against one representative
// occurrence per symbol name and clones the resulting group sequence onto
// every other occurrence of that symbol.
func (gr *Grammar) ComputeAttributeGroups() {
	for _, name := range gr.occOrder {
		occs := gr.occurrences[name]
		if len(occs) == 0 {
			continue
		}
		occs[0].CreateGroups()
		gr.cloneGroupsAcrossOccurrences(name)
	}
}

// cloneGroupsAcrossOccurrences copies the group sequence computed for
// occurrences[name][0] onto every other occurrence of name. A clone's
// members are the corresponding (by name) attributes at the target
// occurrence, filtered to those still needed; this mirrors, at each clone,
// the same-index edge consumption CreateGroups performed at the
// representative occurrence.
func (gr *Grammar) cloneGroupsAcrossOccurrences(name string) {
	occs := gr.occurrences[name]
	if len(occs) == 0 {
		return
	}
	v1 := occs[0]
	if v1.Cyclic {
		for _, v := range occs {
			v.Cyclic = true
		}
		return
	}

	for _, vj := range occs[1:] {
		vj.Groups = nil
		for _, grp := range v1.Groups {
			var members []agraph.AttrHandle
			for _, a := range grp.Members {
				aName := gr.Graph.Name(a)
				aPrime, ok := vj.Attribute(aName)
				if !ok {
					continue
				}
				for _, c := range gr.Graph.UsedFor(aPrime) {
					if gr.Graph.Index(c) == gr.Graph.Index(aPrime) {
						gr.Graph.RemoveFromDependsOn(c, aPrime)
					}
				}
				if gr.Graph.Needed(aPrime) {
					members = append(members, aPrime)
				}
			}
			vj.Groups = append(vj.Groups, &Group{Owner: vj, ID: grp.ID, End: grp.End, Members: members})
		}
	}
}

// DetermineCompatibleLocalExecutionOrders runs the synchronized scheduler
// over every production in the grammar.
func (gr *Grammar) DetermineCompatibleLocalExecutionOrders() {
	for _, lhs := range gr.lhsOrder {
		for _, p := range gr.productions[lhs] {
			p.DetermineCompatibleLocalExecutionOrder(gr)
		}
	}
}

// trySplit looks across every variable in p for a head group with at least
// one ready member and at least one not-yet-ready member, and if it finds
// one, splits the ready members out into a new head group of their own
// (inserted ahead of the residual), mirroring the same split onto every
// other occurrence of that variable's symbol. Returns whether a split was
// made; the caller re-attempts scheduling after any split.
func (gr *Grammar) trySplit(p *Production) bool {
	for _, v := range p.Variables {
		if len(v.Groups) == 0 {
			continue
		}
		head := v.Groups[0]
		if len(head.Members) < 2 {
			continue
		}

		var ready, residual []agraph.AttrHandle
		for _, a := range head.Members {
			if gr.Graph.DependsOnCount(a) == 0 {
				ready = append(ready, a)
			} else {
				residual = append(residual, a)
			}
		}
		if len(ready) == 0 || len(residual) == 0 {
			continue
		}

		originalLen := len(head.Members)
		originalID := head.ID
		head.Members = residual

		newID := gr.Graph.NextGroupID()
		newEnd := head.End - originalLen + len(ready)
		newGrp := &Group{Owner: v, ID: newID, End: newEnd, Members: ready}
		v.Groups = append([]*Group{newGrp}, v.Groups...)

		gr.mirrorSplit(v, originalID, newID, newEnd, ready)
		return true
	}
	return false
}

// mirrorSplit replicates, at every other occurrence of owner's symbol, the
// split that trySplit just performed at owner: the group sharing
// originalID is found (wherever it currently lives — still queued, or
// already consumed into its production's execution order), its
// name-matching members are peeled into a new group carrying newID, and
// that new group is inserted immediately before the residual.
func (gr *Grammar) mirrorSplit(owner *Variable, originalID, newID, newEnd int, ready []agraph.AttrHandle) {
	readyNames := make(map[string]bool, len(ready))
	for _, a := range ready {
		readyNames[gr.Graph.Name(a)] = true
	}

	for _, vj := range gr.occurrences[owner.Name] {
		if vj == owner {
			continue
		}
		if queueIdx := indexOfGroupID(vj.Groups, originalID); queueIdx >= 0 {
			target := vj.Groups[queueIdx]
			moved, stay := splitByName(gr, target.Members, readyNames)
			target.Members = stay
			newGrp := &Group{Owner: vj, ID: newID, End: newEnd, Members: moved}
			front := append([]*Group{}, vj.Groups[:queueIdx]...)
			front = append(front, newGrp)
			vj.Groups = append(front, vj.Groups[queueIdx:]...)
			continue
		}
		if vj.Production == nil {
			continue
		}
		if orderIdx := indexOfGroupID(vj.Production.Order, originalID); orderIdx >= 0 {
			target := vj.Production.Order[orderIdx]
			moved, stay := splitByName(gr, target.Members, readyNames)
			target.Members = stay
			newGrp := &Group{Owner: vj, ID: newID, End: newEnd, Members: moved}
			order := vj.Production.Order
			front := append([]*Group{}, order[:orderIdx]...)
			front = append(front, newGrp)
			vj.Production.Order = append(front, order[orderIdx:]...)
		}
	}
}

func indexOfGroupID(groups []*Group, id int) int {
	for i, g := range groups {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func splitByName(gr *Grammar, members []agraph.AttrHandle, names map[string]bool) (moved, stay []agraph.AttrHandle) {
	for _, a := range members {
		if names[gr.Graph.Name(a)] {
			moved = append(moved, a)
		} else {
			stay = append(stay, a)
		}
	}
	return moved, stay
}
