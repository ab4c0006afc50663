package agrammar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/attrflow/internal/agraph"
)

func Test_Grammar_EndToEnd_acyclicInheritedSynthesizedChain(t *testing.T) {
	assert := assert.New(t)

	gr := New()
	p := gr.AddProduction("S", []string{"A"})
	sVar, aVar := p.Variables[0], p.Variables[1]

	aAttr := gr.EnsureAttribute(aVar, "v", agraph.InitByValue)
	gr.Graph.SetNeeded(aAttr, true)

	sAttr := gr.EnsureAttribute(sVar, "v", agraph.Synthesized)
	gr.Graph.SetNeeded(sAttr, true)
	gr.Graph.AddDependencyOn(sAttr, aAttr)

	gr.ComputeTransitiveClosure()
	gr.ComputeAttributeGroups()
	gr.DetermineCompatibleLocalExecutionOrders()

	assert.True(p.Acyclic)
	if assert.Len(p.Order, 2) {
		assert.Equal([]agraph.AttrHandle{aAttr}, p.Order[0].Members, "A.v has no unresolved dependency and must schedule first")
		assert.Equal([]agraph.AttrHandle{sAttr}, p.Order[1].Members)
	}
}

func Test_Grammar_EndToEnd_mirrorsAttributesAcrossOccurrences(t *testing.T) {
	assert := assert.New(t)

	gr := New()
	p1 := gr.AddProduction("A", []string{"b"})
	_ = p1
	p2 := gr.AddProduction("A", []string{"c"})

	lhs1 := p1.Variables[0]
	h := gr.EnsureAttribute(lhs1, "x", agraph.Synthesized)
	gr.Graph.SetNeeded(h, true)

	lhs2 := p2.Variables[0]
	h2, ok := lhs2.Attribute("x")
	if assert.True(ok, "defining an attribute on one occurrence of A must mirror it onto every other occurrence of A") {
		assert.Equal(gr.Graph.Kind(h), gr.Graph.Kind(h2))
	}
}

func Test_Grammar_EndToEnd_sameOccurrenceCyclePropagatesToProduction(t *testing.T) {
	assert := assert.New(t)

	gr := New()
	p := gr.AddProduction("A", []string{"b"})
	lhs := p.Variables[0]

	x := gr.EnsureAttribute(lhs, "x", agraph.Synthesized)
	y := gr.EnsureAttribute(lhs, "y", agraph.Synthesized)
	gr.Graph.SetNeeded(x, true)
	gr.Graph.SetNeeded(y, true)
	gr.Graph.AddDependencyOn(x, y)
	gr.Graph.AddDependencyOn(y, x)

	gr.ComputeTransitiveClosure()
	gr.ComputeAttributeGroups()
	gr.DetermineCompatibleLocalExecutionOrders()

	assert.False(p.Acyclic)
	assert.Empty(p.Order)
}
