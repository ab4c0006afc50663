package agcache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_HashSource_isStableAndDistinguishesInput(t *testing.T) {
	assert := assert.New(t)

	a := HashSource("S -> A\n")
	b := HashSource("S -> A\n")
	c := HashSource("S -> B\n")

	assert.Equal(a, b)
	assert.NotEqual(a, c)
}

func Test_SaveThenLoad_roundTripsEntry(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "cache.bin")
	want := Entry{
		SourceHash:      HashSource("S -> A\n"),
		Dependencies:    "S0: A -> v\n",
		ExecutionOrders: "Production S0: S -> A\t\t[{A0.v}] cycle-free: true\n",
		Groups:          "S: [{S0.v}]\n",
	}

	require.NoError(Save(path, want))

	got, err := Load(path)
	require.NoError(err)
	assert.Equal(want, got)
}

func Test_Load_missingFileIsAnError(t *testing.T) {
	require := require.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.bin"))
	require.Error(err)
}
