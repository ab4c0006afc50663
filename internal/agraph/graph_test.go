package agraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_AddDependencyOn_mirrorsUsedFor(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	a := g.NewAttribute("x", 1, Inherited)
	b := g.NewAttribute("x", 0, Synthesized)

	isNew := g.AddDependencyOn(a, b)
	assert.True(isNew)
	assert.Equal([]AttrHandle{b}, g.DependsOn(a))
	assert.Equal([]AttrHandle{a}, g.UsedFor(b))

	// adding again is not new, and does not duplicate the edge
	isNew = g.AddDependencyOn(a, b)
	assert.False(isNew)
	assert.Equal(1, g.DependsOnCount(a))
}

func Test_AddDependencyOn_sameIndexCounter(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	a := g.NewAttribute("x", 1, Inherited)
	sameIdx := g.NewAttribute("y", 1, Inherited)
	otherIdx := g.NewAttribute("z", 0, Synthesized)

	g.AddDependencyOn(a, sameIdx)
	assert.Equal(1, g.SameIndexPredCount(a))

	g.AddDependencyOn(a, otherIdx)
	assert.Equal(1, g.SameIndexPredCount(a), "cross-index predecessor must not affect the same-index counter")
}

func Test_RemoveFromDependsOn_isIdempotent(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	a := g.NewAttribute("x", 1, Inherited)
	b := g.NewAttribute("x", 1, Inherited)
	g.AddDependencyOn(a, b)

	assert.True(g.RemoveFromDependsOn(a, b))
	assert.Equal(0, g.SameIndexPredCount(a))
	assert.Empty(g.DependsOn(a))
	assert.Empty(g.UsedFor(b))

	// second removal is a no-op, not an error
	assert.False(g.RemoveFromDependsOn(a, b))
	assert.Equal(0, g.SameIndexPredCount(a))
}

func Test_FindPathsToIndex_skipsSelfOnFirstVisit(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	// a (index 1) -> b (index 2) -> c (index 1): a path that leaves index 1
	// and returns to it at c.
	a := g.NewAttribute("a", 1, Synthesized)
	b := g.NewAttribute("b", 2, Inherited)
	c := g.NewAttribute("c", 1, Synthesized)

	g.AddDependencyOn(b, a) // a -> b (a used_for b)
	g.AddDependencyOn(c, b) // b -> c

	found := g.FindPathsToIndex(a, 1, true)
	assert.Equal([]AttrHandle{c}, found)

	// without skipSelfFirst, a itself (index 1) terminates the search
	// immediately since it is the start node.
	found = g.FindPathsToIndex(a, 1, false)
	assert.Equal([]AttrHandle{a}, found)
}

func Test_FindPathsToIndex_stopsAtFirstMatchPerBranch(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	a := g.NewAttribute("a", 0, Synthesized)
	mid := g.NewAttribute("mid", 1, Inherited)
	first := g.NewAttribute("first", 0, Synthesized)
	second := g.NewAttribute("second", 0, Synthesized)

	// a -> mid -> first -> second, all via used_for
	g.AddDependencyOn(mid, a)
	g.AddDependencyOn(first, mid)
	g.AddDependencyOn(second, first)

	found := g.FindPathsToIndex(a, 0, true)
	assert.Equal([]AttrHandle{first}, found, "the branch should stop at the first index-0 node and not continue on to second")
}

func Test_FindPathsToIndex_multipleBranchesEachReported(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	a := g.NewAttribute("a", 1, Inherited)
	left := g.NewAttribute("left", 0, Synthesized)
	right := g.NewAttribute("right", 0, Synthesized)

	g.AddDependencyOn(left, a)
	g.AddDependencyOn(right, a)

	found := g.FindPathsToIndex(a, 0, true)
	assert.ElementsMatch([]AttrHandle{left, right}, found)
}

func Test_Snapshot_isIndependentOfCanonicalGraph(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	a := g.NewAttribute("a", 0, Synthesized)
	b := g.NewAttribute("b", 1, Inherited)
	g.AddDependencyOn(a, b)

	snap := g.Snapshot()
	g.RemoveFromDependsOn(a, b)

	assert.Empty(g.DependsOn(a))
	assert.Equal([]AttrHandle{b}, snap.DependsOn(a), "mutating the canonical graph must not affect a prior snapshot")
}

func Test_EffectiveKind(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Synthesized, EffectiveKind(InitByValue, 0))
	assert.Equal(Inherited, EffectiveKind(InitByValue, 2))
	assert.Equal(Synthesized, EffectiveKind(Synthesized, 0))
	assert.Equal(Inherited, EffectiveKind(Inherited, 3))
}
