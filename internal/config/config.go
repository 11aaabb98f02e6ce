// Package config loads compscan.yaml (or a file given on the command
// line) into a Config, validates it, and translates it to domain.CoreConfig
// at the core boundary. Grounded on internal/config/config.go's
// viper-backed load/validate/discover shape, pared down to the fields
// spec.md §6's CoreConfig actually needs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/compscan/compscan/domain"
)

// Config is the on-disk/CLI-flag configuration shape. Fields mirror
// domain.CoreConfig one-to-one, plus output-path settings that live
// outside the core's contract.
type Config struct {
	ProjectPath      string   `json:"project_path" mapstructure:"project_path" yaml:"project_path"`
	Framework        string   `json:"framework" mapstructure:"framework" yaml:"framework"`
	UserExcludes     []string `json:"user_excludes" mapstructure:"user_excludes" yaml:"user_excludes"`
	Concurrency      int      `json:"concurrency" mapstructure:"concurrency" yaml:"concurrency"`
	PerFileTimeout   string   `json:"per_file_timeout" mapstructure:"per_file_timeout" yaml:"per_file_timeout"`
	TsconfigOverride string   `json:"tsconfig_override" mapstructure:"tsconfig_override" yaml:"tsconfig_override"`
	OutputPath       string   `json:"output_path" mapstructure:"output_path" yaml:"output_path"`
}

// DefaultConfig returns a Config with every field at its documented
// default (spec.md §6: concurrency = hardware parallelism via 0,
// per_file_timeout unbounded).
func DefaultConfig() *Config {
	return &Config{
		Framework:  "react",
		OutputPath: "compscan-report.json",
	}
}

// Validate checks values Config itself is responsible for (CoreConfig's
// own constructor, via internal/scanner.New, validates project_path and
// framework again at the core boundary).
func (c *Config) Validate() error {
	if c.Framework != "react" && c.Framework != "vue" {
		return fmt.Errorf("invalid framework %q, must be one of: react, vue", c.Framework)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be >= 0, got %d", c.Concurrency)
	}
	if c.PerFileTimeout != "" {
		if _, err := time.ParseDuration(c.PerFileTimeout); err != nil {
			return fmt.Errorf("invalid per_file_timeout %q: %w", c.PerFileTimeout, err)
		}
	}
	return nil
}

// ToCoreConfig translates a validated Config to the core's input contract.
func (c *Config) ToCoreConfig() domain.CoreConfig {
	var timeout time.Duration
	if c.PerFileTimeout != "" {
		timeout, _ = time.ParseDuration(c.PerFileTimeout)
	}
	framework := domain.FrameworkReact
	if c.Framework == "vue" {
		framework = domain.FrameworkVue
	}
	return domain.CoreConfig{
		ProjectPath:      c.ProjectPath,
		Framework:        framework,
		UserExcludes:     c.UserExcludes,
		Concurrency:      c.Concurrency,
		PerFileTimeout:   timeout,
		TsconfigOverride: c.TsconfigOverride,
	}
}

// Load reads configPath (discovering compscan.yaml/.compscan.yaml near
// projectPath when configPath is empty) layered over DefaultConfig, then
// validates the result.
func Load(configPath, projectPath string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.ProjectPath = projectPath

	if configPath == "" {
		configPath = discoverConfigFile(projectPath)
	}
	if configPath != "" {
		v := viper.New()
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
		}
		if err := v.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", configPath, err)
		}
		if cfg.ProjectPath == "" {
			cfg.ProjectPath = projectPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func discoverConfigFile(projectPath string) string {
	candidates := []string{"compscan.yaml", "compscan.yml", ".compscan.yaml", ".compscan.yml"}
	dir := projectPath
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		dir = filepath.Dir(projectPath)
	}
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	// COMPSCAN_CONFIG as a last resort, mirroring the teacher's
	// PYSCN_CONFIG fallback.
	if envConfig := os.Getenv("COMPSCAN_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}
	return ""
}
