// Package config provides hierarchical configuration management for relog
// using koanf. Configuration is loaded with priority: environment variables
// > project config (.relog/config.yml) > user config (~/.config/relog/config.yml)
// > defaults. Legacy JSON configs are still read, with a deprecation warning.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration represents the relog CLI tool configuration.
type Configuration struct {
	// GitlabURL is the base URL of the GitLab instance.
	GitlabURL string `koanf:"gitlab_url"`

	// Repo is the "group/project" slug on GitLab. When empty, the slug is
	// detected from the git remote of the working directory.
	Repo string `koanf:"repo"`

	// Token authenticates API requests. Usually provided via the
	// GITLAB_TOKEN environment variable rather than a config file.
	Token string `koanf:"token"`

	// File is the changelog file to read and write.
	File string `koanf:"file"`

	// Branches limits merge-request collection to MRs merged into these
	// target branches.
	Branches []string `koanf:"branches"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .relog/config.yml)
	ProjectConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"gitlab_url": "https://gitlab.com",
		"repo":       "",
		"token":      "",
		"file":       "CHANGELOG.md",
		// MRs merged anywhere else (feature branches, hotfix staging) are
		// not release content.
		"branches": []string{"master", "staging"},
	}
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := opts.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if err := loadUserConfig(k, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}
	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// GITLAB_TOKEN is the conventional variable name; it wins over config
	// files but not over the relog-specific RELOG_TOKEN.
	if os.Getenv("RELOG_TOKEN") == "" {
		if token := os.Getenv("GITLAB_TOKEN"); token != "" {
			cfg.Token = token
		}
	}

	return &cfg, nil
}

// loadUserConfig loads user-level config (YAML preferred, legacy JSON supported).
func loadUserConfig(k *koanf.Koanf, warningWriter io.Writer, skipWarnings bool) error {
	userYAMLPath, _ := UserConfigPath()
	legacyUserPath, _ := LegacyUserConfigPath()

	if fileExists(userYAMLPath) {
		if err := k.Load(file.Provider(userYAMLPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading user config %s: %w", userYAMLPath, err)
		}
		return nil
	}
	if fileExists(legacyUserPath) {
		return loadLegacyJSONConfig(k, legacyUserPath, warningWriter, skipWarnings)
	}
	return nil
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON
// supported). Supports a custom path override, used in tests.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	projectYAMLPath := ProjectConfigPath()
	if customPath != "" {
		projectYAMLPath = customPath
	}

	if fileExists(projectYAMLPath) {
		if err := k.Load(file.Provider(projectYAMLPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading project config %s: %w", projectYAMLPath, err)
		}
		return nil
	}
	if legacyPath := LegacyProjectConfigPath(); fileExists(legacyPath) {
		return loadLegacyJSONConfig(k, legacyPath, warningWriter, skipWarnings)
	}
	return nil
}

// loadLegacyJSONConfig loads legacy JSON and warns about migration.
func loadLegacyJSONConfig(k *koanf.Koanf, path string, warningWriter io.Writer, skipWarnings bool) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("loading legacy JSON config %s: %w", path, err)
	}
	if !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s; migrate it to YAML.\n", path)
	}
	return nil
}

// loadEnvironmentConfig loads RELOG_* environment variable overrides.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider("RELOG_", ".", envTransform), nil); err != nil {
		return fmt.Errorf("loading environment config: %w", err)
	}
	return nil
}

// envTransform maps RELOG_GITLAB_URL to the gitlab_url config key.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "RELOG_"))
}
