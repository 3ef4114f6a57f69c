package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/unitypm/domain"
)

// PackumentBuilder helps create test packuments with a fluent interface.
type PackumentBuilder struct {
	*testkit.BaseBuilder
	name     domain.DomainName
	versions []domain.PackumentVersion
	distTags map[string]domain.SemanticVersion
}

// NewPackumentBuilder creates a new packument builder with sensible defaults.
func NewPackumentBuilder() *PackumentBuilder {
	return &PackumentBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "com.example.package",
		distTags:    map[string]domain.SemanticVersion{},
	}
}

// WithName sets the package name.
func (b *PackumentBuilder) WithName(name domain.DomainName) *PackumentBuilder {
	b.name = name
	return b
}

// WithVersion adds a published version with its declared dependencies,
// given as raw name -> specifier strings.
func (b *PackumentBuilder) WithVersion(version string, dependencies map[string]string) *PackumentBuilder {
	parsed := domain.PackumentVersion{
		Name:    b.name,
		Version: domain.MustParseSemanticVersion(version),
	}
	if len(dependencies) > 0 {
		parsed.Dependencies = map[domain.DomainName]domain.VersionSpecifier{}
		for rawName, rawSpecifier := range dependencies {
			name, err := domain.ParseDomainName(rawName)
			if err != nil {
				panic(err)
			}
			parsed.Dependencies[name] = domain.ParseVersionSpecifier(rawSpecifier)
		}
	}
	b.versions = append(b.versions, parsed)
	return b
}

// WithTargetEditor sets the target editor of the most recently added version.
func (b *PackumentBuilder) WithTargetEditor(target string) *PackumentBuilder {
	if len(b.versions) > 0 {
		b.versions[len(b.versions)-1].TargetEditor = target
	}
	return b
}

// WithDistTag maps a dist-tag to a version.
func (b *PackumentBuilder) WithDistTag(tag, version string) *PackumentBuilder {
	b.distTags[tag] = domain.MustParseSemanticVersion(version)
	return b
}

// Build creates the packument (satisfies testkit.Builder interface).
func (b *PackumentBuilder) Build() interface{} {
	return b.BuildPackument()
}

// BuildPackument creates the packument with a concrete return type.
func (b *PackumentBuilder) BuildPackument() domain.Packument {
	packument := domain.Packument{
		Name:     b.name,
		Versions: append([]domain.PackumentVersion(nil), b.versions...),
	}
	for i := range packument.Versions {
		packument.Versions[i].Name = b.name
	}
	if len(b.distTags) > 0 {
		packument.DistTags = map[string]domain.SemanticVersion{}
		for tag, version := range b.distTags {
			packument.DistTags[tag] = version
		}
	}
	packument.SortVersions()
	return packument
}

// Reset clears the builder state, allowing it to be reused.
func (b *PackumentBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "com.example.package"
	b.versions = nil
	b.distTags = map[string]domain.SemanticVersion{}
	return b
}

// Clone creates a deep copy of the PackumentBuilder.
func (b *PackumentBuilder) Clone() testkit.Builder {
	clone := &PackumentBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		versions:    append([]domain.PackumentVersion(nil), b.versions...),
		distTags:    map[string]domain.SemanticVersion{},
	}
	for tag, version := range b.distTags {
		clone.distTags[tag] = version
	}
	return clone
}
