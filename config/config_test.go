package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/unitypm/config"
	"github.com/rios0rios0/unitypm/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".unitypm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("should parse registry settings", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, `
registry: https://registry.example.com
upstream_registry: https://upstream.example.com
upstream: false
`)

		// when
		cfg, err := config.Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://registry.example.com", cfg.Registry)
		assert.Equal(t, "https://upstream.example.com", cfg.UpstreamRegistry)
		require.NotNil(t, cfg.Upstream)
		assert.False(t, *cfg.Upstream)
	})

	t.Run("should expand environment variable references", func(t *testing.T) {
		// given - not parallel, mutates the environment
		t.Setenv("UNITYPM_TEST_HOST", "registry.example.com")
		path := writeConfig(t, "registry: https://${UNITYPM_TEST_HOST}\n")

		// when
		cfg, err := config.Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://registry.example.com", cfg.Registry)
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		assert.Error(t, err)
	})

	t.Run("should fail on malformed yaml", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, "registry: [broken\n")

		// when
		_, err := config.Load(path)

		// then
		assert.Error(t, err)
	})
}

func TestParseEnv(t *testing.T) {
	t.Run("should apply defaults without a config file", func(t *testing.T) {
		// given - not parallel, reads the environment
		cwd := t.TempDir()

		// when
		env, err := config.ParseEnv(config.EnvOptions{ConfigPath: "", CWD: cwd, Registry: ""})

		// then
		require.NoError(t, err)
		assert.Equal(t, domain.RegistryUrl(config.DefaultRegistry), env.PrimaryRegistry.URL)
		assert.Equal(t, domain.RegistryUrl(config.DefaultUpstreamRegistry), env.UpstreamRegistry.URL)
		assert.True(t, env.UseUpstream)
		assert.Equal(t, cwd, env.CWD)
	})

	t.Run("should let the registry flag override everything", func(t *testing.T) {
		// given
		t.Setenv("UNITYPM_REGISTRY", "https://env.example.com")

		// when
		env, err := config.ParseEnv(config.EnvOptions{
			Registry: "https://flag.example.com",
			CWD:      t.TempDir(),
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, domain.RegistryUrl("https://flag.example.com"), env.PrimaryRegistry.URL)
	})

	t.Run("should read the registry from the environment", func(t *testing.T) {
		// given
		t.Setenv("UNITYPM_REGISTRY", "https://env.example.com")

		// when
		env, err := config.ParseEnv(config.EnvOptions{CWD: t.TempDir()})

		// then
		require.NoError(t, err)
		assert.Equal(t, domain.RegistryUrl("https://env.example.com"), env.PrimaryRegistry.URL)
	})

	t.Run("should disable upstream via flag", func(t *testing.T) {
		// when
		env, err := config.ParseEnv(config.EnvOptions{CWD: t.TempDir(), NoUpstream: true})

		// then
		require.NoError(t, err)
		assert.False(t, env.UseUpstream)
		assert.Nil(t, env.UpstreamOrNil())
	})

	t.Run("should disable upstream via environment variable", func(t *testing.T) {
		// given
		t.Setenv("UNITYPM_UPSTREAM", "false")

		// when
		env, err := config.ParseEnv(config.EnvOptions{CWD: t.TempDir()})

		// then
		require.NoError(t, err)
		assert.False(t, env.UseUpstream)
	})

	t.Run("should honor the config file settings", func(t *testing.T) {
		// given
		path := writeConfig(t, `
registry: https://file.example.com
upstream: false
`)

		// when
		env, err := config.ParseEnv(config.EnvOptions{ConfigPath: path, CWD: t.TempDir()})

		// then
		require.NoError(t, err)
		assert.Equal(t, domain.RegistryUrl("https://file.example.com"), env.PrimaryRegistry.URL)
		assert.False(t, env.UseUpstream)
	})

	t.Run("should reject an invalid registry url", func(t *testing.T) {
		// when
		_, err := config.ParseEnv(config.EnvOptions{
			Registry: "ftp://registry.example.com",
			CWD:      t.TempDir(),
		})

		// then
		assert.Error(t, err)
	})
}
