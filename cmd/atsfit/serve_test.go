package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/atsfit/internal/config"
)

func writeServeConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	prev := serveConfigPath
	serveConfigPath = path
	t.Cleanup(func() { serveConfigPath = prev })
}

func TestResolveServeConfig_FilePortBeatsFlagDefault(t *testing.T) {
	writeServeConfig(t, `{"port": 9999}`)
	servePort = 8080

	cfg, err := resolveServeConfig(false)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Port)
}

func TestResolveServeConfig_ExplicitPortFlagWins(t *testing.T) {
	writeServeConfig(t, `{"port": 9999}`)
	servePort = 7070

	cfg, err := resolveServeConfig(true)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
}

func TestResolveServeConfig_FlagDefaultWithoutFile(t *testing.T) {
	prev := serveConfigPath
	serveConfigPath = ""
	t.Cleanup(func() { serveConfigPath = prev })
	servePort = 8080

	cfg, err := resolveServeConfig(false)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}

func TestScoreWeights_OverlaysConfiguredBonuses(t *testing.T) {
	w := scoreWeights(config.Config{SkillsBonus: 0.08})
	assert.Equal(t, 0.08, w.SkillsBonus)
	assert.Equal(t, 0.10, w.DensityBonus, "unset bonuses keep defaults")
	assert.Equal(t, 0.05, w.ExperienceBonus)
}
