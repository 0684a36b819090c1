// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MJy1023/PaperPostman/pkg/types"
)

// writeConfig drops a config file into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paperpostman.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// mapLookup builds a LookupFunc over a fixed environment.
func mapLookup(env map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
}

const sampleConfig = `keywords:
  - attention
  - retrieval
keyword_match: all
arxiv_categories:
  - cs.AI
  - cs.CL
conferences:
  - NeurIPS.2025
papers_per_day: 5
llm_api_base: https://api.deepseek.com/v1
llm_api_key: ${DEEPSEEK_API_KEY}
archive_dir: old
`

func load(t *testing.T, content string, lookup LookupFunc) (types.Config, error) {
	t.Helper()
	v := viper.New()
	InitViper(v, writeConfig(t, content))
	return Load(v, lookup)
}

func TestLoadUnmarshalsAndDefaults(t *testing.T) {
	cfg, err := load(t, sampleConfig, mapLookup(nil))
	require.NoError(t, err)

	// Values from the file.
	assert.Equal(t, []string{"attention", "retrieval"}, cfg.Keywords)
	assert.Equal(t, "all", cfg.KeywordMatch)
	assert.Equal(t, []string{"cs.AI", "cs.CL"}, cfg.ArxivCategories)
	assert.Equal(t, []string{"NeurIPS.2025"}, cfg.Conferences)
	assert.Equal(t, 5, cfg.PapersPerDay)
	assert.Equal(t, "old", cfg.ArchiveDir)

	// Defaults for everything the file leaves out.
	assert.Equal(t, types.DefaultDailyRecommendationCount, cfg.DailyRecommendationCount)
	assert.Equal(t, types.DefaultWeeklySummaryDay, cfg.WeeklySummaryDay)
	assert.Equal(t, types.DefaultLLMModel, cfg.LLMModel)
	assert.Equal(t, types.DefaultDataDir, cfg.DataDir)
	assert.Equal(t, types.DefaultArxivAPIBase, cfg.ArxivAPIBase)
}

func TestLoadResolvesEnvReferences(t *testing.T) {
	cfg, err := load(t, sampleConfig, mapLookup(map[string]string{
		"DEEPSEEK_API_KEY": "sk-test-123",
	}))
	require.NoError(t, err)

	assert.Equal(t, "sk-test-123", cfg.LLMAPIKey)
	assert.True(t, cfg.LLMConfigured())
}

func TestLoadKeepsUnresolvedReferencesLiteral(t *testing.T) {
	cfg, err := load(t, sampleConfig, mapLookup(nil))
	require.NoError(t, err)

	// The reference stays visible, and the LLM counts as unconfigured.
	assert.Equal(t, "${DEEPSEEK_API_KEY}", cfg.LLMAPIKey)
	assert.False(t, cfg.LLMConfigured())
}

func TestLoadMissingFile(t *testing.T) {
	v := viper.New()
	InitViper(v, filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load(v, mapLookup(nil))
	assert.Error(t, err)
}

func TestLoadEmptyFile(t *testing.T) {
	_, err := load(t, "", mapLookup(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")

	// A file holding only comments is just as empty.
	_, err = load(t, "# nothing configured yet\n", mapLookup(nil))
	assert.Error(t, err)
}

func TestResolveOnlyWholeStringReferences(t *testing.T) {
	cfg := types.Config{
		DataDir:   "${HOME}/data",
		Keywords:  []string{"${KW}", "plain"},
		LLMAPIKey: "${KEY}",
	}
	Resolve(&cfg, mapLookup(map[string]string{
		"HOME": "/home/bot",
		"KW":   "agents",
		"KEY":  "sk-1",
	}))

	// Embedded references are not substituted, whole-string ones are.
	assert.Equal(t, "${HOME}/data", cfg.DataDir)
	assert.Equal(t, []string{"agents", "plain"}, cfg.Keywords)
	assert.Equal(t, "sk-1", cfg.LLMAPIKey)
}

func TestLLMConfiguredRejectsUnresolvedKey(t *testing.T) {
	cfg := types.Config{LLMAPIBase: "https://api.example.com/v1"}

	cfg.LLMAPIKey = ""
	assert.False(t, cfg.LLMConfigured())

	cfg.LLMAPIKey = "${DEEPSEEK_API_KEY}"
	assert.False(t, cfg.LLMConfigured())

	cfg.LLMAPIKey = "sk-live"
	assert.True(t, cfg.LLMConfigured())

	cfg.LLMAPIBase = ""
	assert.False(t, cfg.LLMConfigured())
}
