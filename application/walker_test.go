package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/unitypm/application"
	"github.com/rios0rios0/unitypm/domain"
	testdoubles "github.com/rios0rios0/unitypm/test"
	"github.com/rios0rios0/unitypm/test/domain/entitybuilders"
)

// buildGraphSource serves com.root -> {com.mid, com.leaf}, com.mid -> {com.leaf}
// from the primary registry and com.unity.dep from the upstream.
func buildGraphSource() *testdoubles.StubPackumentSource {
	root := entitybuilders.NewPackumentBuilder().
		WithName("com.root").
		WithVersion("1.0.0", map[string]string{
			"com.mid":       "1.0.0",
			"com.leaf":      "1.0.0",
			"com.unity.dep": "1.0.0",
		}).
		BuildPackument()
	mid := entitybuilders.NewPackumentBuilder().
		WithName("com.mid").
		WithVersion("1.0.0", map[string]string{"com.leaf": "2.0.0"}).
		BuildPackument()
	leaf := entitybuilders.NewPackumentBuilder().
		WithName("com.leaf").
		WithVersion("1.0.0", nil).
		WithVersion("2.0.0", nil).
		BuildPackument()
	official := entitybuilders.NewPackumentBuilder().
		WithName("com.unity.dep").
		WithVersion("1.0.0", nil).
		BuildPackument()

	return testdoubles.NewStubPackumentSource().
		Put(primaryURL, root).
		Put(primaryURL, mid).
		Put(primaryURL, leaf).
		Put(upstreamURL, official)
}

func buildWalker(source *testdoubles.StubPackumentSource) *application.DependencyWalker {
	resolver := application.NewResolverService(source)
	return application.NewDependencyWalker(resolver, primaryRegistry, &upstreamRegistry)
}

func TestDependencyWalker_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("should resolve the transitive closure breadth-first", func(t *testing.T) {
		t.Parallel()

		// given
		walker := buildWalker(buildGraphSource())

		// when
		resolved, unresolved := walker.Resolve(
			context.Background(), domain.EmptyManifest(),
			"com.root", domain.LatestSpecifier(), true,
		)

		// then
		assert.Empty(t, unresolved)
		names := make([]domain.DomainName, len(resolved))
		for i, node := range resolved {
			names[i] = node.Name
		}
		assert.Equal(t, []domain.DomainName{
			"com.root", "com.leaf", "com.mid", "com.unity.dep",
		}, names)
	})

	t.Run("should resolve each package at most once with first specifier winning", func(t *testing.T) {
		t.Parallel()

		// given - com.root asks for com.leaf@1.0.0, com.mid for com.leaf@2.0.0
		walker := buildWalker(buildGraphSource())

		// when
		resolved, _ := walker.Resolve(
			context.Background(), domain.EmptyManifest(),
			"com.root", domain.LatestSpecifier(), true,
		)

		// then
		leafCount := 0
		for _, node := range resolved {
			if node.Name == "com.leaf" {
				leafCount++
				assert.Equal(t, "1.0.0", node.Version.String())
			}
		}
		assert.Equal(t, 1, leafCount)
	})

	t.Run("should mark packages satisfied by the upstream registry", func(t *testing.T) {
		t.Parallel()

		// given
		walker := buildWalker(buildGraphSource())

		// when
		resolved, _ := walker.Resolve(
			context.Background(), domain.EmptyManifest(),
			"com.root", domain.LatestSpecifier(), true,
		)

		// then
		for _, node := range resolved {
			if node.Name == "com.unity.dep" {
				assert.True(t, node.Upstream)
			} else {
				assert.False(t, node.Upstream, string(node.Name))
			}
		}
	})

	t.Run("should mark dependencies already satisfied by the manifest as internal", func(t *testing.T) {
		t.Parallel()

		// given
		source := buildGraphSource()
		walker := buildWalker(source)
		manifest := domain.AddDependency(
			domain.EmptyManifest(), "com.mid",
			domain.VersionDependency(domain.MustParseSemanticVersion("1.0.0")),
		)

		// when
		resolved, unresolved := walker.Resolve(
			context.Background(), manifest, "com.root", domain.LatestSpecifier(), true,
		)

		// then
		assert.Empty(t, unresolved)
		for _, node := range resolved {
			if node.Name == "com.mid" {
				assert.True(t, node.Internal)
				assert.Equal(t, "1.0.0", node.Version.String())
			}
		}
		// internal nodes are never fetched
		for _, call := range source.Calls {
			assert.NotEqual(t, domain.DomainName("com.mid"), call.Name)
		}
	})

	t.Run("should re-resolve a pinned dependency older than the request", func(t *testing.T) {
		t.Parallel()

		// given - manifest pins com.leaf below what com.root requires
		walker := buildWalker(buildGraphSource())
		manifest := domain.AddDependency(
			domain.EmptyManifest(), "com.leaf",
			domain.VersionDependency(domain.MustParseSemanticVersion("0.1.0")),
		)

		// when
		resolved, _ := walker.Resolve(
			context.Background(), manifest, "com.root", domain.LatestSpecifier(), true,
		)

		// then
		for _, node := range resolved {
			if node.Name == "com.leaf" {
				assert.False(t, node.Internal)
				assert.Equal(t, "1.0.0", node.Version.String())
			}
		}
	})

	t.Run("should stop at direct dependencies when deep is false", func(t *testing.T) {
		t.Parallel()

		// given
		walker := buildWalker(buildGraphSource())

		// when - com.mid's own dependency on com.leaf@2.0.0 is not followed,
		// but com.leaf is still reached as a direct dependency of the root
		resolved, _ := walker.Resolve(
			context.Background(), domain.EmptyManifest(),
			"com.root", domain.LatestSpecifier(), false,
		)

		// then
		names := make([]domain.DomainName, len(resolved))
		for i, node := range resolved {
			names[i] = node.Name
		}
		assert.Equal(t, []domain.DomainName{
			"com.root", "com.leaf", "com.mid", "com.unity.dep",
		}, names)
	})

	t.Run("should collect unresolved nodes with their original failure", func(t *testing.T) {
		t.Parallel()

		// given
		root := entitybuilders.NewPackumentBuilder().
			WithName("com.root").
			WithVersion("1.0.0", map[string]string{"com.ghost": "1.0.0"}).
			BuildPackument()
		source := testdoubles.NewStubPackumentSource().Put(primaryURL, root)
		walker := buildWalker(source)

		// when
		resolved, unresolved := walker.Resolve(
			context.Background(), domain.EmptyManifest(),
			"com.root", domain.LatestSpecifier(), true,
		)

		// then
		require.Len(t, resolved, 1)
		require.Len(t, unresolved, 1)
		assert.Equal(t, domain.DomainName("com.ghost"), unresolved[0].Name)
		assert.ErrorIs(t, unresolved[0].Reason, domain.ErrNotFound)
	})

	t.Run("should record url dependencies as unresolved", func(t *testing.T) {
		t.Parallel()

		// given
		root := entitybuilders.NewPackumentBuilder().
			WithName("com.root").
			WithVersion("1.0.0", map[string]string{
				"com.pinned": "git+https://github.com/foo/pinned.git",
			}).
			BuildPackument()
		source := testdoubles.NewStubPackumentSource().Put(primaryURL, root)
		walker := buildWalker(source)

		// when
		_, unresolved := walker.Resolve(
			context.Background(), domain.EmptyManifest(),
			"com.root", domain.LatestSpecifier(), true,
		)

		// then
		require.Len(t, unresolved, 1)
		assert.ErrorIs(t, unresolved[0].Reason, domain.ErrURLDependency)
	})

	t.Run("should be deterministic across runs", func(t *testing.T) {
		t.Parallel()

		// given
		first := buildWalker(buildGraphSource())
		second := buildWalker(buildGraphSource())

		// when
		firstResolved, firstUnresolved := first.Resolve(
			context.Background(), domain.EmptyManifest(),
			"com.root", domain.LatestSpecifier(), true,
		)
		secondResolved, secondUnresolved := second.Resolve(
			context.Background(), domain.EmptyManifest(),
			"com.root", domain.LatestSpecifier(), true,
		)

		// then
		assert.Equal(t, firstResolved, secondResolved)
		assert.Equal(t, firstUnresolved, secondUnresolved)
	})
}
