package upmconfig_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/unitypm/infrastructure/upmconfig"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("should decode registry credentials", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), ".upmconfig.toml")
		content := `[npmAuth."https://registry.example.com"]
token = "secret"
email = "dev@example.com"
alwaysAuth = true
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// when
		file, err := upmconfig.Load(path)

		// then
		require.NoError(t, err)
		entry, ok := file.NpmAuth["https://registry.example.com"]
		require.True(t, ok)
		assert.Equal(t, "secret", entry.Token)
		assert.Equal(t, "dev@example.com", entry.Email)
		assert.True(t, entry.AlwaysAuth)
	})

	t.Run("should yield an empty config when the file is missing", func(t *testing.T) {
		t.Parallel()

		// when
		file, err := upmconfig.Load(filepath.Join(t.TempDir(), ".upmconfig.toml"))

		// then
		require.NoError(t, err)
		assert.Empty(t, file.NpmAuth)
	})

	t.Run("should fail on malformed toml", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), ".upmconfig.toml")
		require.NoError(t, os.WriteFile(path, []byte("npmAuth = ["), 0o600))

		// when
		_, err := upmconfig.Load(path)

		// then
		require.Error(t, err)
	})
}

func TestSave(t *testing.T) {
	t.Parallel()

	t.Run("should round-trip a token credential", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), ".upmconfig.toml")
		file := &upmconfig.File{}
		file.SetToken("https://registry.example.com", "secret", "dev@example.com", true)

		// when
		require.NoError(t, upmconfig.Save(path, file))
		loaded, err := upmconfig.Load(path)

		// then
		require.NoError(t, err)
		auth := loaded.AuthFor("https://registry.example.com")
		require.NotNil(t, auth)
		assert.Equal(t, "secret", auth.Token)
		assert.Equal(t, "dev@example.com", auth.Email)
		assert.True(t, auth.AlwaysAuth)
	})
}

func TestFile_AuthFor(t *testing.T) {
	t.Parallel()

	t.Run("should match keys after url normalization", func(t *testing.T) {
		t.Parallel()

		// given - trailing slash and uppercase host in the stored key
		file := &upmconfig.File{NpmAuth: map[string]upmconfig.Entry{
			"https://Registry.Example.com/": {Token: "secret"},
		}}

		// when
		auth := file.AuthFor("https://registry.example.com")

		// then
		require.NotNil(t, auth)
		assert.Equal(t, "secret", auth.Token)
	})

	t.Run("should decode basic auth into username and password", func(t *testing.T) {
		t.Parallel()

		// given
		encoded := base64.StdEncoding.EncodeToString([]byte("dev:hunter2"))
		file := &upmconfig.File{NpmAuth: map[string]upmconfig.Entry{
			"https://registry.example.com": {BasicAuth: encoded},
		}}

		// when
		auth := file.AuthFor("https://registry.example.com")

		// then
		require.NotNil(t, auth)
		assert.Equal(t, "dev", auth.Username)
		assert.Equal(t, "hunter2", auth.Password)
	})

	t.Run("should return nil for an unknown registry", func(t *testing.T) {
		t.Parallel()

		// given
		file := &upmconfig.File{NpmAuth: map[string]upmconfig.Entry{}}

		// when
		auth := file.AuthFor("https://registry.example.com")

		// then
		assert.Nil(t, auth)
	})
}
