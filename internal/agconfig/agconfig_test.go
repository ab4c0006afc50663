package agconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_missingFileReturnsDefault(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(Default(), cfg)
}

func Test_Load_overridesDefaultsFromFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "attrflow.toml")
	contents := "wrap_width = 40\ndump_kind = \"groups\"\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(40, cfg.WrapWidth)
	assert.Equal("groups", cfg.DumpKind)
	assert.Equal("", cfg.CacheFile, "fields absent from the file keep their Default() value")
}

func Test_Load_malformedFileIsAnError(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "attrflow.toml")
	require.NoError(os.WriteFile(path, []byte("not valid toml ["), 0o644))

	_, err := Load(path)
	require.Error(err)
}
