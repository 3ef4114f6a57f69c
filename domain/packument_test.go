package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/unitypm/domain"
)

func buildPackument(versions ...string) domain.Packument {
	packument := domain.Packument{Name: "com.foo"}
	for _, raw := range versions {
		packument.Versions = append(packument.Versions, domain.PackumentVersion{
			Name:    "com.foo",
			Version: domain.MustParseSemanticVersion(raw),
		})
	}
	packument.SortVersions()
	return packument
}

func TestPackumentLatestVersion(t *testing.T) {
	t.Parallel()

	t.Run("should prefer the latest dist-tag", func(t *testing.T) {
		t.Parallel()

		// given
		packument := buildPackument("1.0.0", "2.0.0")
		packument.DistTags = map[string]domain.SemanticVersion{
			"latest": domain.MustParseSemanticVersion("1.0.0"),
		}

		// when
		latest, found := packument.LatestVersion()

		// then
		require.True(t, found)
		assert.Equal(t, "1.0.0", latest.Version.String())
	})

	t.Run("should fall back to the highest stable version", func(t *testing.T) {
		t.Parallel()

		// given
		packument := buildPackument("1.0.0", "2.0.0-preview.3", "1.5.0")

		// when
		latest, found := packument.LatestVersion()

		// then
		require.True(t, found)
		assert.Equal(t, "1.5.0", latest.Version.String())
	})

	t.Run("should fall back to the highest prerelease when nothing is stable", func(t *testing.T) {
		t.Parallel()

		// given
		packument := buildPackument("1.0.0-preview.1", "1.0.0-preview.2")

		// when
		latest, found := packument.LatestVersion()

		// then
		require.True(t, found)
		assert.Equal(t, "1.0.0-preview.2", latest.Version.String())
	})

	t.Run("should report no version for an empty packument", func(t *testing.T) {
		t.Parallel()

		// given
		packument := domain.Packument{Name: "com.foo"}

		// when
		_, found := packument.LatestVersion()

		// then
		assert.False(t, found)
	})
}

func TestPackumentAvailableVersions(t *testing.T) {
	t.Parallel()

	t.Run("should list versions newest-first", func(t *testing.T) {
		t.Parallel()

		// given
		packument := buildPackument("1.0.0", "0.9.0", "2.0.0")

		// when
		available := packument.AvailableVersions()

		// then
		require.Len(t, available, 3)
		assert.Equal(t, "2.0.0", available[0].String())
		assert.Equal(t, "1.0.0", available[1].String())
		assert.Equal(t, "0.9.0", available[2].String())
	})
}
