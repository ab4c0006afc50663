package agrammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/attrflow/internal/agraph"
)

// Test_findProjectionsOnce_discoversSameIndexProjectionAndMirrorsIt builds a
// production where A.s reaches A.t only by leaving index 0 through B.r and
// coming back, with no rule ever writing that dependency directly. A second
// production redefining A exercises the mirror invariant: the edge
// findProjectionsOnce discovers on the first occurrence must also land on
// every other occurrence of A.
func Test_findProjectionsOnce_discoversSameIndexProjectionAndMirrorsIt(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	gr := New()

	p1 := gr.AddProduction("A", []string{"B"})
	aVar1, bVar := p1.Variables[0], p1.Variables[1]

	// After s's discovery, t's only successor is s itself, at t's own index:
	// a direct same-index successor is not a path that leaves index 0, so t
	// gains no projected edge from it.
	t1 := gr.EnsureAttribute(aVar1, "t", agraph.Synthesized)
	gr.Graph.SetNeeded(t1, true)
	s1 := gr.EnsureAttribute(aVar1, "s", agraph.Synthesized)
	gr.Graph.SetNeeded(s1, true)
	r := gr.EnsureAttribute(bVar, "r", agraph.Inherited)
	gr.Graph.SetNeeded(r, true)

	gr.Graph.AddDependencyOn(r, s1) // r[1] = s[0]
	gr.Graph.AddDependencyOn(t1, r) // t[0] = r[1]

	p2 := gr.AddProduction("A", []string{"d"})
	aVar2 := p2.Variables[0]

	changed := p1.findProjectionsOnce(gr)
	require.True(changed, "s reaches t by leaving index 0 through B.r and returning, which is exactly what a projection must catch")

	assert.True(gr.Graph.HasDependency(s1, t1), "the discovered edge runs from the search's start attribute to the same-index attribute it found")
	assert.Equal(1, gr.Graph.DependsOnCount(s1), "only the one projected edge is added to s by a single pass")
	assert.Equal(1, gr.Graph.DependsOnCount(t1), "t keeps only its rule-written dependency on r and gains no projected edge")

	t2, ok := aVar2.Attribute("t")
	require.True(ok, "t must already be mirrored onto every other occurrence of A")
	s2, ok := aVar2.Attribute("s")
	require.True(ok, "s must already be mirrored onto every other occurrence of A")
	assert.True(gr.Graph.HasDependency(s2, t2), "a newly discovered edge must mirror onto every other occurrence of A, not just the one it was found on")
}

// Test_DetermineCompatibleLocalExecutionOrder_splitsDeadlockedHeadGroup
// builds the classic naive-merge deadlock: B's group {a,b} and C's group
// {c,d} each contain one member blocked on the other occurrence (a needs c,
// d needs b) and one member that is free (b, c). Neither head group is
// schedulable as a whole, so the round-robin scheduler must call trySplit to
// peel the free member out of B's group before scheduling can proceed at
// all.
func Test_DetermineCompatibleLocalExecutionOrder_splitsDeadlockedHeadGroup(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	gr := New()
	p := gr.AddProduction("A", []string{"B", "C"})
	bVar, cVar := p.Variables[1], p.Variables[2]

	a := gr.EnsureAttribute(bVar, "a", agraph.Inherited)
	gr.Graph.SetNeeded(a, true)
	b := gr.EnsureAttribute(bVar, "b", agraph.Inherited)
	gr.Graph.SetNeeded(b, true)
	c := gr.EnsureAttribute(cVar, "c", agraph.Inherited)
	gr.Graph.SetNeeded(c, true)
	d := gr.EnsureAttribute(cVar, "d", agraph.Inherited)
	gr.Graph.SetNeeded(d, true)

	gr.Graph.AddDependencyOn(a, c) // a[1] = c[2]
	gr.Graph.AddDependencyOn(d, b) // d[2] = b[1]

	gr.ComputeTransitiveClosure()
	gr.ComputeAttributeGroups()

	require.False(bVar.Cyclic)
	require.False(cVar.Cyclic)
	require.Len(bVar.Groups, 1, "a and b share no same-index edge, so CreateGroups merges them into one ready group")
	assert.Equal([]agraph.AttrHandle{a, b}, bVar.Groups[0].Members, "collated name order: a before b")
	require.Len(cVar.Groups, 1)
	assert.Equal([]agraph.AttrHandle{c, d}, cVar.Groups[0].Members, "collated name order: c before d")

	p.DetermineCompatibleLocalExecutionOrder(gr)

	assert.True(p.Acyclic)
	if assert.Len(p.Order, 3, "the deadlocked {a,b} group must be split before the schedule can proceed") {
		assert.Equal([]agraph.AttrHandle{b}, p.Order[0].Members, "b has no dependency of its own and is split out of the head group first")
		assert.Equal([]agraph.AttrHandle{c, d}, p.Order[1].Members, "c and d both become schedulable once b frees d")
		assert.Equal([]agraph.AttrHandle{a}, p.Order[2].Members, "a becomes schedulable once c is scheduled")
	}
}
