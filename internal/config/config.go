// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config discovers and loads paperpostman.yaml through viper,
// resolves ${NAME} environment references in its values, and fills in
// defaults. The result is a plain types.Config; nothing else in the
// program touches viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/MJy1023/PaperPostman/pkg/types"
)

// LookupFunc resolves an environment variable name. Production code
// passes nil and gets os.LookupEnv; tests inject a map-backed lookup.
type LookupFunc func(name string) (string, bool)

// InitViper points v at PaperPostman's config: the explicit file when
// cfgFile is set, otherwise paperpostman.yaml in the working directory
// or $HOME/.config/paperpostman. PAPERPOSTMAN_* environment variables
// override file values.
func InitViper(v *viper.Viper, cfgFile string) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("paperpostman")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "paperpostman"))
		}
	}

	v.SetEnvPrefix("PAPERPOSTMAN")
	v.AutomaticEnv()
}

// Load reads v's config file into a types.Config, resolves ${NAME}
// references and applies defaults. A missing or empty file is an
// error: a run without keywords or categories would fetch nothing and
// overwrite the README with an empty edition.
func Load(v *viper.Viper, lookup LookupFunc) (types.Config, error) {
	var cfg types.Config

	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if len(v.AllKeys()) == 0 {
		return cfg, fmt.Errorf("config file %s is empty", v.ConfigFileUsed())
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	Resolve(&cfg, lookup)
	cfg.ApplyDefaults()
	return cfg, nil
}

// Resolve replaces whole-string ${NAME} values in cfg with the value
// of the environment variable NAME. Unresolved references stay
// literal so the failure is visible downstream; Config.LLMConfigured
// treats a literal reference as unset.
func Resolve(cfg *types.Config, lookup LookupFunc) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	fields := []*string{
		&cfg.KeywordMatch,
		&cfg.WeeklySummaryDay,
		&cfg.LLMAPIBase,
		&cfg.LLMAPIKey,
		&cfg.LLMModel,
		&cfg.ArchiveDir,
		&cfg.DataDir,
		&cfg.ArxivAPIBase,
		&cfg.PapersCoolBaseURL,
		&cfg.UserAgent,
	}
	for _, f := range fields {
		*f = resolveValue(*f, lookup)
	}

	for _, list := range [][]string{cfg.Keywords, cfg.ArxivCategories, cfg.Conferences} {
		for i := range list {
			list[i] = resolveValue(list[i], lookup)
		}
	}
}

// resolveValue resolves a single value. Only whole-string references
// count; "${HOME}/data" passes through untouched.
func resolveValue(s string, lookup LookupFunc) string {
	if !strings.HasPrefix(s, "${") || !strings.HasSuffix(s, "}") {
		return s
	}
	if v, ok := lookup(s[2 : len(s)-1]); ok {
		return v
	}
	return s
}
