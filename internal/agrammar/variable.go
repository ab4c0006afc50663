package agrammar

import "github.com/dekarrin/attrflow/internal/agraph"

// Variable is one occurrence of a (non-)terminal symbol within a single
// Production: the LHS symbol occupies position 0, each RHS symbol occupies
// its 1-based position in the production's symbol sequence. Every
// occurrence of the same symbol name across the whole Grammar is kept in
// sync by the mirror invariant: they carry the same attribute names and,
// once closure and grouping run, the same dependency and group structure.
type Variable struct {
	Name     string
	Position int
	Graph    *agraph.Graph

	// Production is the owning production, set once by Grammar.AddProduction.
	// It lets the group-splitting pass locate a mirrored group that has
	// already been consumed into another production's execution order.
	Production *Production

	attrs map[string]agraph.AttrHandle
	order []string

	Groups []*Group
	Cyclic bool
}

// NewVariable constructs an occurrence with no attributes yet defined.
func NewVariable(name string, position int, g *agraph.Graph) *Variable {
	return &Variable{
		Name:     name,
		Position: position,
		Graph:    g,
		attrs:    map[string]agraph.AttrHandle{},
	}
}

// Attribute looks up an already-defined attribute by name.
func (v *Variable) Attribute(name string) (agraph.AttrHandle, bool) {
	h, ok := v.attrs[name]
	return h, ok
}

// EnsureAttribute returns the handle for name, allocating a new attribute
// node of the given kind if this occurrence does not yet carry one. The
// kind of an attribute is fixed at first creation; later calls for an
// already-present name return the existing handle unchanged.
func (v *Variable) EnsureAttribute(name string, kind agraph.Kind) agraph.AttrHandle {
	if h, ok := v.attrs[name]; ok {
		return h
	}
	h := v.Graph.NewAttribute(name, v.Position, kind)
	v.attrs[name] = h
	v.order = append(v.order, name)
	return h
}

// AttributeNames returns the attribute names owned by this occurrence, in
// the order they were first defined.
func (v *Variable) AttributeNames() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

// CreateGroups partitions this occurrence's attributes into an ordered
// sequence of alternating inherited/synthesized Groups via a Kahn-style
// peel restricted to same-index (intra-occurrence) dependencies:
// cross-occurrence predecessors never block an attribute from being
// emitted here, since inter-occurrence ordering is the synchronized
// scheduler's job (Production.DetermineCompatibleLocalExecutionOrder), not
// this one's.
//
// At each step, every currently ready (same-index predecessor count zero)
// member of the inherited queue is drained into one group, in name order;
// then the same is done for the synthesized queue; then the alternation
// repeats. Draining a member removes its same-index edges into its
// successors, which is what lets later attributes in the same occurrence
// become ready in a subsequent step. If a full alternation step drains
// nothing from either queue while either queue is still non-empty, this
// occurrence's attributes form a same-occurrence cycle and v.Cyclic is set.
func (v *Variable) CreateGroups() {
	var inh, syn []agraph.AttrHandle
	for _, name := range v.order {
		h := v.attrs[name]
		if v.Graph.EffectiveKind(h) == agraph.Synthesized {
			syn = append(syn, h)
		} else {
			inh = append(inh, h)
		}
	}

	endPos := 0

	drain := func(queue *[]agraph.AttrHandle) *Group {
		var ready, rest []agraph.AttrHandle
		for _, h := range *queue {
			if v.Graph.SameIndexPredCount(h) == 0 {
				ready = append(ready, h)
			} else {
				rest = append(rest, h)
			}
		}
		*queue = rest
		if len(ready) == 0 {
			return nil
		}
		sortByName(v.Graph, ready)
		endPos += len(ready)
		grp := &Group{Owner: v, ID: v.Graph.NextGroupID(), End: endPos, Members: ready}
		for _, a := range ready {
			for _, b := range v.Graph.UsedFor(a) {
				if v.Graph.Index(b) == v.Graph.Index(a) {
					v.Graph.RemoveFromDependsOn(b, a)
				}
			}
		}
		return grp
	}

	for len(inh) > 0 || len(syn) > 0 {
		gInh := drain(&inh)
		gSyn := drain(&syn)
		if gInh == nil && gSyn == nil {
			v.Cyclic = true
			return
		}
		if gInh != nil {
			v.Groups = append(v.Groups, gInh)
		}
		if gSyn != nil {
			v.Groups = append(v.Groups, gSyn)
		}
	}
}
