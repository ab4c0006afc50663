package agraph

// AttrHandle is a stable reference to an attribute node in a Graph's arena.
// Handles are dense indices, not pointers, so the attribute dependence
// graph carries no cross-references that the garbage collector or a naive
// deep-copy would need to chase, and mirroring an edge at another occurrence
// is a pure index computation rather than a pointer rewrite.
type AttrHandle int

// edgeSet is an insertion-ordered set of handles. Traversal order of the
// dependence graph must be deterministic (it drives the order in which
// projections and dump lines are produced), so membership is tracked
// alongside an explicit order slice rather than relying on Go's randomized
// map iteration.
type edgeSet struct {
	order []AttrHandle
	has   map[AttrHandle]bool
}

func newEdgeSet() edgeSet {
	return edgeSet{has: map[AttrHandle]bool{}}
}

// add inserts h into the set, returning whether it was not already present.
func (e *edgeSet) add(h AttrHandle) bool {
	if e.has[h] {
		return false
	}
	if e.has == nil {
		e.has = map[AttrHandle]bool{}
	}
	e.has[h] = true
	e.order = append(e.order, h)
	return true
}

// remove deletes h from the set, returning whether it had been present.
// Removing an absent element is a no-op, making the operation idempotent as
// required by the remove_from_depends_on contract.
func (e *edgeSet) remove(h AttrHandle) bool {
	if !e.has[h] {
		return false
	}
	delete(e.has, h)
	for i, v := range e.order {
		if v == h {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return true
}

func (e edgeSet) contains(h AttrHandle) bool {
	return e.has[h]
}

func (e edgeSet) items() []AttrHandle {
	out := make([]AttrHandle, len(e.order))
	copy(out, e.order)
	return out
}

func (e edgeSet) len() int {
	return len(e.order)
}

func (e edgeSet) copy() edgeSet {
	dup := newEdgeSet()
	dup.order = make([]AttrHandle, len(e.order))
	copy(dup.order, e.order)
	for h := range e.has {
		dup.has[h] = true
	}
	return dup
}

// node is one attribute in the dependence graph: its logical identity
// (name, index), its kind, whether any rule actually needs its value, and
// its forward/backward edge sets.
type node struct {
	name   string
	index  int
	kind   Kind
	needed bool

	dependsOn edgeSet
	usedFor   edgeSet

	// sameIndexPredCount caches |{a in dependsOn : a.index == this.index}|
	// so that grouping's Kahn-style peel can prioritize by it without
	// rescanning dependsOn on every decrement.
	sameIndexPredCount int
}

// Graph is an arena of attribute nodes scoped to a single Grammar instance.
// Handles are dense indices into nodes, allocated by NewAttribute; there is
// no global or package-level counter.
type Graph struct {
	nodes []node

	// groupIDSeq backs NextGroupID: a monotonic counter scoped to this
	// graph's analysis run, not the process.
	groupIDSeq int
}

// NewGraph returns an empty attribute dependence graph.
func NewGraph() *Graph {
	return &Graph{}
}

// NewAttribute allocates a new attribute node and returns its handle.
func (g *Graph) NewAttribute(name string, index int, kind Kind) AttrHandle {
	h := AttrHandle(len(g.nodes))
	g.nodes = append(g.nodes, node{
		name:      name,
		index:     index,
		kind:      kind,
		dependsOn: newEdgeSet(),
		usedFor:   newEdgeSet(),
	})
	return h
}

func (g *Graph) Name(h AttrHandle) string    { return g.nodes[h].name }
func (g *Graph) Index(h AttrHandle) int      { return g.nodes[h].index }
func (g *Graph) Kind(h AttrHandle) Kind      { return g.nodes[h].kind }
func (g *Graph) Needed(h AttrHandle) bool    { return g.nodes[h].needed }
func (g *Graph) SetNeeded(h AttrHandle, b bool) {
	// needed monotonically transitions false -> true during parsing, and
	// every caller in this module passes true. Passing false clears the
	// flag.
	if b {
		g.nodes[h].needed = true
		return
	}
	g.nodes[h].needed = false
}

// EffectiveKind is Kind(h) folded through the index-0 InitByValue rule.
func (g *Graph) EffectiveKind(h AttrHandle) Kind {
	n := g.nodes[h]
	return EffectiveKind(n.kind, n.index)
}

func (g *Graph) SameIndexPredCount(h AttrHandle) int {
	return g.nodes[h].sameIndexPredCount
}

// DependsOn returns, in insertion order, the predecessors of h.
func (g *Graph) DependsOn(h AttrHandle) []AttrHandle {
	return g.nodes[h].dependsOn.items()
}

// UsedFor returns, in insertion order, the successors of h.
func (g *Graph) UsedFor(h AttrHandle) []AttrHandle {
	return g.nodes[h].usedFor.items()
}

func (g *Graph) DependsOnCount(h AttrHandle) int {
	return g.nodes[h].dependsOn.len()
}

func (g *Graph) HasDependency(h, other AttrHandle) bool {
	return g.nodes[h].dependsOn.contains(other)
}

// AddDependencyOn records that h depends on other: other is inserted into
// h's depends_on, and h into other's used_for. If h and other share an
// index and the edge is new, h's same-index predecessor counter is bumped.
// Returns whether the edge was new.
func (g *Graph) AddDependencyOn(h, other AttrHandle) bool {
	if !g.nodes[h].dependsOn.add(other) {
		return false
	}
	g.nodes[other].usedFor.add(h)
	if g.nodes[h].index == g.nodes[other].index {
		g.nodes[h].sameIndexPredCount++
	}
	return true
}

// RemoveFromDependsOn removes other from h's depends_on (and h from
// other's used_for), decrementing h's same-index counter if applicable.
// Removing an edge that doesn't exist has no effect.
func (g *Graph) RemoveFromDependsOn(h, other AttrHandle) bool {
	if !g.nodes[h].dependsOn.remove(other) {
		return false
	}
	g.nodes[other].usedFor.remove(h)
	if g.nodes[h].index == g.nodes[other].index {
		g.nodes[h].sameIndexPredCount--
	}
	return true
}

// FindPathsToIndex performs a DFS over used_for starting at start, looking
// for every attribute reachable whose index equals targetIndex. The search
// explores the graph as paths rather than as a tree: a per-node visited
// flag, scoped to this call only, is set on entry and cleared on unwind, so
// the same node may be revisited along a different branch. The first node
// matching targetIndex on any given branch is appended to the result and
// that branch stops there (it is not explored further).
//
// If skipSelfFirst is true, start itself is never treated as a match on
// this initial visit, even if its own index equals targetIndex — the
// caller is looking for a path that leaves and returns, not a trivial
// zero-length one.
func (g *Graph) FindPathsToIndex(start AttrHandle, targetIndex int, skipSelfFirst bool) []AttrHandle {
	var results []AttrHandle
	visited := make(map[AttrHandle]bool, len(g.nodes))

	var dfs func(h AttrHandle, first bool)
	dfs = func(h AttrHandle, first bool) {
		if visited[h] {
			return
		}
		visited[h] = true
		defer func() { visited[h] = false }()

		if !(first && skipSelfFirst) && g.nodes[h].index == targetIndex {
			results = append(results, h)
			return
		}

		for _, next := range g.nodes[h].usedFor.items() {
			dfs(next, false)
		}
	}

	dfs(start, true)
	return results
}

// Snapshot returns a deep copy of the graph. The scheduling pass consumes
// edges destructively as it schedules groups (see agrammar.Production); a
// snapshot taken before scheduling lets diagnostics reconstruct the
// pre-scheduling dependency relation even after the canonical graph has
// been mutated.
func (g *Graph) Snapshot() *Graph {
	dup := &Graph{nodes: make([]node, len(g.nodes))}
	for i, n := range g.nodes {
		dup.nodes[i] = node{
			name:               n.name,
			index:              n.index,
			kind:               n.kind,
			needed:             n.needed,
			dependsOn:          n.dependsOn.copy(),
			usedFor:            n.usedFor.copy(),
			sameIndexPredCount: n.sameIndexPredCount,
		}
	}
	return dup
}

// Len reports how many attribute nodes the graph's arena holds.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// NextGroupID allocates the next identifier in the monotonic sequence used
// to give agrammar.Group values a stable identity across mirrored
// occurrences and splits. Scoped to this graph, not the process, so two
// Grammar instances never contend over or compare IDs.
func (g *Graph) NextGroupID() int {
	g.groupIDSeq++
	return g.groupIDSeq
}
