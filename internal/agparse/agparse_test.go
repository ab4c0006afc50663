package agparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/attrflow/internal/agraph"
)

func Test_ParseGrammarString_singleProductionWithRules(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	gr, err := ParseGrammarString("S -> A : S.v[0]=A.v[1]; A.v[1]=0\n")
	require.NoError(err)

	prods := gr.Productions("S")
	require.Len(prods, 1)
	p := prods[0]
	require.Len(p.Variables, 2)

	aHandle, ok := p.Variables[1].Attribute("v")
	require.True(ok)
	assert.Equal(agraph.InitByValue, gr.Graph.Kind(aHandle))
	assert.True(gr.Graph.Needed(aHandle))

	sHandle, ok := p.Variables[0].Attribute("v")
	require.True(ok)
	assert.Equal(agraph.Synthesized, gr.Graph.Kind(sHandle))
	assert.True(gr.Graph.HasDependency(sHandle, aHandle))
}

func Test_ParseGrammarString_commentsAndBlankLineTermination(t *testing.T) {
	require := require.New(t)

	gr, err := ParseGrammarString("# a comment\nA -> b\n\nC -> d\n")
	require.NoError(err)
	require.Len(gr.Productions("A"), 1)
	require.Empty(gr.Productions("C"), "a blank line must end parsing before the next production")
}

func Test_ParseGrammarString_rejectsMultiCharacterLHS(t *testing.T) {
	require := require.New(t)

	_, err := ParseGrammarString("AB -> c\n")
	require.Error(err)
}

func Test_ParseGrammarString_rejectsOutOfRangeIndex(t *testing.T) {
	require := require.New(t)

	_, err := ParseGrammarString("A -> b : A.v[5]=0\n")
	require.Error(err)
}
