package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/unitypm/application"
	"github.com/rios0rios0/unitypm/domain"
	testdoubles "github.com/rios0rios0/unitypm/test"
)

func TestRemoveService_Remove(t *testing.T) {
	t.Parallel()

	t.Run("should remove a declared package and persist the manifest", func(t *testing.T) {
		t.Parallel()

		// given
		manifest := domain.AddDependency(
			domain.EmptyManifest(), "com.foo",
			domain.VersionDependency(domain.MustParseSemanticVersion("1.0.0")),
		)
		manifests := testdoubles.NewSpyManifestRepository(manifest)
		service := application.NewRemoveService(manifests)

		// when
		summary, err := service.Remove(buildEnv(), []domain.DomainName{"com.foo"})

		// then
		require.NoError(t, err)
		require.Len(t, summary.Removed, 1)
		assert.Equal(t, domain.DomainName("com.foo"), summary.Removed[0].Name)
		assert.Equal(t, "1.0.0", summary.Removed[0].Version.String())
		assert.True(t, summary.Saved)
		require.Len(t, manifests.Saved, 1)
		assert.False(t, manifests.Saved[0].HasDependency("com.foo"))
	})

	t.Run("should fail on a package the manifest does not declare", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := testdoubles.NewSpyManifestRepository(domain.EmptyManifest())
		service := application.NewRemoveService(manifests)

		// when
		summary, err := service.Remove(buildEnv(), []domain.DomainName{"com.ghost"})

		// then
		require.NoError(t, err)
		assert.Empty(t, summary.Removed)
		require.Len(t, summary.Failures, 1)
		assert.ErrorIs(t, summary.Failures[0].Err, domain.ErrNotFound)
		assert.False(t, summary.Saved)
		assert.Empty(t, manifests.Saved)
	})

	t.Run("should persist partial removals of a mixed batch", func(t *testing.T) {
		t.Parallel()

		// given
		manifest := domain.AddDependency(
			domain.EmptyManifest(), "com.foo",
			domain.VersionDependency(domain.MustParseSemanticVersion("1.0.0")),
		)
		manifests := testdoubles.NewSpyManifestRepository(manifest)
		service := application.NewRemoveService(manifests)

		// when
		summary, err := service.Remove(buildEnv(), []domain.DomainName{"com.ghost", "com.foo"})

		// then
		require.NoError(t, err)
		require.Len(t, summary.Removed, 1)
		require.Len(t, summary.Failures, 1)
		assert.True(t, summary.Saved)
		require.Len(t, manifests.Saved, 1)
		assert.False(t, manifests.Saved[0].HasDependency("com.foo"))
	})

	t.Run("should drop the package's scopes and testable marker", func(t *testing.T) {
		t.Parallel()

		// given
		manifest := domain.AddDependency(
			domain.EmptyManifest(), "com.foo",
			domain.VersionDependency(domain.MustParseSemanticVersion("1.0.0")),
		)
		manifest = domain.MapScopedRegistry(manifest, primaryURL,
			func(*domain.ScopedRegistry) *domain.ScopedRegistry {
				entry := domain.ScopedRegistry{Name: primaryURL.Host(), URL: primaryURL}
				entry = domain.AddScope(entry, "com.foo")
				return &entry
			})
		manifest = domain.AddTestable(manifest, "com.foo")
		manifests := testdoubles.NewSpyManifestRepository(manifest)
		service := application.NewRemoveService(manifests)

		// when
		summary, err := service.Remove(buildEnv(), []domain.DomainName{"com.foo"})

		// then
		require.NoError(t, err)
		assert.True(t, summary.Saved)
		require.Len(t, manifests.Saved, 1)
		assert.Nil(t, manifests.Saved[0].ScopedRegistries)
		assert.Nil(t, manifests.Saved[0].Testables)
	})

	t.Run("should fail the invocation when the manifest cannot be loaded", func(t *testing.T) {
		t.Parallel()

		// given
		manifests := testdoubles.NewSpyManifestRepository(domain.EmptyManifest())
		manifests.LoadErr = assert.AnError
		service := application.NewRemoveService(manifests)

		// when
		summary, err := service.Remove(buildEnv(), []domain.DomainName{"com.foo"})

		// then
		require.Error(t, err)
		assert.Nil(t, summary)
	})
}
