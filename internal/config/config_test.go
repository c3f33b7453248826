package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, ".", cfg.WorkDir)
	assert.Equal(t, []string{"."}, cfg.EverestDirs)
	assert.True(t, cfg.ClangFormat.Disabled)
	assert.Empty(t, cfg.OutputDir)
	assert.Empty(t, cfg.SchemasDir)
	assert.Nil(t, cfg.Log.Timestamps)
}
