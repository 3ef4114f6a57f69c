package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/unitypm/domain"
)

const (
	// DefaultRegistry is the primary registry consulted for packages.
	DefaultRegistry = "https://package.openupm.com"

	// DefaultUpstreamRegistry is the official registry used as fallback.
	DefaultUpstreamRegistry = "https://packages.unity.com"
)

// Config is the top-level configuration for unitypm.
type Config struct {
	Registry         string `yaml:"registry"`          // Primary registry URL
	UpstreamRegistry string `yaml:"upstream_registry"` // Fallback registry URL
	Upstream         *bool  `yaml:"upstream"`          // Enable upstream fallback (default true)
}

// Env is the resolved environment one command invocation runs against.
type Env struct {
	PrimaryRegistry  domain.Registry
	UpstreamRegistry domain.Registry
	UseUpstream      bool
	CWD              string
}

// UpstreamOrNil returns the upstream registry when fallback is enabled.
func (e Env) UpstreamOrNil() *domain.Registry {
	if !e.UseUpstream {
		return nil
	}
	upstream := e.UpstreamRegistry
	return &upstream
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Load reads and parses a configuration file, expanding environment
// variable references in registry URLs.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var cfg Config
	if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	cfg.Registry = expandEnv(cfg.Registry)
	cfg.UpstreamRegistry = expandEnv(cfg.UpstreamRegistry)

	return &cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".unitypm.yaml",
		".unitypm.yml",
		"unitypm.yaml",
		"unitypm.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// expandEnv replaces ${ENV_VAR} references with their values.
func expandEnv(raw string) string {
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// EnvOptions carries the CLI-level overrides feeding ParseEnv. Empty
// fields fall back to the config file, then to environment variables,
// then to the built-in defaults.
type EnvOptions struct {
	ConfigPath string
	Registry   string
	CWD        string
	NoUpstream bool
}

// ParseEnv resolves the effective environment for one invocation: flags
// override the config file, which overrides UNITYPM_* environment
// variables, which override the defaults.
func ParseEnv(opts EnvOptions) (Env, error) {
	cfg := &Config{}
	path := opts.ConfigPath
	if path == "" {
		if found, findErr := FindConfigFile(); findErr == nil {
			path = found
		}
	}
	if path != "" {
		loaded, loadErr := Load(path)
		if loadErr != nil {
			return Env{}, loadErr
		}
		cfg = loaded
	}

	registry := firstNonEmpty(
		opts.Registry, cfg.Registry, os.Getenv("UNITYPM_REGISTRY"), DefaultRegistry,
	)
	upstreamRegistry := firstNonEmpty(
		cfg.UpstreamRegistry, os.Getenv("UNITYPM_UPSTREAM_REGISTRY"), DefaultUpstreamRegistry,
	)

	primaryURL, err := domain.ParseRegistryUrl(registry)
	if err != nil {
		return Env{}, err
	}
	upstreamURL, err := domain.ParseRegistryUrl(upstreamRegistry)
	if err != nil {
		return Env{}, err
	}

	useUpstream := true
	if cfg.Upstream != nil {
		useUpstream = *cfg.Upstream
	}
	if strings.EqualFold(os.Getenv("UNITYPM_UPSTREAM"), "false") {
		useUpstream = false
	}
	if opts.NoUpstream {
		useUpstream = false
	}

	cwd := opts.CWD
	if cwd == "" {
		cwd, err = os.Getwd()
		if err != nil {
			return Env{}, fmt.Errorf("failed to determine working directory: %w", err)
		}
	}

	return Env{
		PrimaryRegistry:  domain.Registry{URL: primaryURL},
		UpstreamRegistry: domain.Registry{URL: upstreamURL},
		UseUpstream:      useUpstream,
		CWD:              cwd,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
