package domain

import "sort"

// PackumentVersion is the metadata of one published version of a package.
type PackumentVersion struct {
	Name    DomainName
	Version SemanticVersion

	// TargetEditor is the minimum Unity editor release this version
	// supports, as "MAJOR.MINOR" (e.g. "2021.3"). Empty means any.
	TargetEditor string

	// Dependencies maps each dependency to the version it was published
	// against.
	Dependencies map[DomainName]VersionSpecifier
}

// Packument is the registry metadata document for one package: its
// published versions and dist-tags.
type Packument struct {
	Name        DomainName
	Description string
	Homepage    string

	// Versions is ordered ascending by semver precedence.
	Versions []PackumentVersion

	// DistTags maps tag names ("latest", "preview", ...) to versions.
	DistTags map[string]SemanticVersion
}

// SortVersions orders the version list ascending by semver precedence.
func (p *Packument) SortVersions() {
	sort.Slice(p.Versions, func(i, j int) bool {
		return p.Versions[i].Version.LessThan(p.Versions[j].Version)
	})
}

// FindVersion returns the metadata for an exact version.
func (p *Packument) FindVersion(version SemanticVersion) (PackumentVersion, bool) {
	for _, v := range p.Versions {
		if v.Version.Equal(version) {
			return v, true
		}
	}
	return PackumentVersion{}, false
}

// AvailableVersions returns all published versions ordered newest-first,
// suitable for "did you mean" suggestions.
func (p *Packument) AvailableVersions() []SemanticVersion {
	versions := make([]SemanticVersion, len(p.Versions))
	for i, v := range p.Versions {
		versions[len(p.Versions)-1-i] = v.Version
	}
	return versions
}

// LatestVersion selects the version the "latest" specifier resolves to:
// the "latest" dist-tag when present, otherwise the highest stable
// version, otherwise the highest version overall.
func (p *Packument) LatestVersion() (PackumentVersion, bool) {
	if tagged, ok := p.DistTags["latest"]; ok {
		if v, found := p.FindVersion(tagged); found {
			return v, true
		}
	}
	for i := len(p.Versions) - 1; i >= 0; i-- {
		if !p.Versions[i].Version.IsPrerelease() {
			return p.Versions[i], true
		}
	}
	if len(p.Versions) > 0 {
		return p.Versions[len(p.Versions)-1], true
	}
	return PackumentVersion{}, false
}
