package domain

import "strings"

// PackageUrl is a version specifier that points at a package directly
// (git, http or file reference) instead of a registry version.
type PackageUrl string

func (u PackageUrl) String() string {
	return string(u)
}

// packageURLPrefixes lists the schemes Unity accepts as direct package
// references in a manifest dependency value.
var packageURLPrefixes = []string{
	"git+",
	"git:",
	"http:",
	"https:",
	"ssh:",
	"file:",
}

// IsPackageUrl reports whether a raw version string is a direct package
// reference rather than a registry version or tag.
func IsPackageUrl(raw string) bool {
	for _, prefix := range packageURLPrefixes {
		if strings.HasPrefix(raw, prefix) {
			return true
		}
	}
	return strings.HasSuffix(raw, ".git")
}

type specifierKind int

const (
	specifierLatest specifierKind = iota
	specifierVersion
	specifierTag
	specifierURL
)

// VersionSpecifier is a tagged union over the ways a package version can
// be requested: a concrete semantic version, a dist-tag, a direct package
// URL, or nothing at all (meaning "latest"). Exactly one representation
// is active.
type VersionSpecifier struct {
	kind    specifierKind
	version SemanticVersion
	tag     string
	url     PackageUrl
}

// LatestSpecifier returns the specifier meaning "highest stable version".
func LatestSpecifier() VersionSpecifier {
	return VersionSpecifier{kind: specifierLatest}
}

// VersionSpecifierFor wraps a concrete semantic version.
func VersionSpecifierFor(version SemanticVersion) VersionSpecifier {
	return VersionSpecifier{kind: specifierVersion, version: version}
}

// TagSpecifier wraps a registry dist-tag such as "latest" or "preview".
func TagSpecifier(tag string) VersionSpecifier {
	return VersionSpecifier{kind: specifierTag, tag: tag}
}

// URLSpecifier wraps a direct package reference.
func URLSpecifier(url PackageUrl) VersionSpecifier {
	return VersionSpecifier{kind: specifierURL, url: url}
}

// ParseVersionSpecifier interprets a raw version string. An empty string
// and the literal "latest" both mean latest; a valid semver string is a
// concrete version; a URL-shaped string is a direct reference; anything
// else is treated as a dist-tag.
func ParseVersionSpecifier(raw string) VersionSpecifier {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "latest" {
		return LatestSpecifier()
	}
	if IsPackageUrl(raw) {
		return URLSpecifier(PackageUrl(raw))
	}
	if version, err := ParseSemanticVersion(raw); err == nil {
		return VersionSpecifierFor(version)
	}
	return TagSpecifier(raw)
}

// IsLatest reports whether the specifier means "latest".
func (s VersionSpecifier) IsLatest() bool {
	return s.kind == specifierLatest
}

// Version returns the concrete version and true when that variant is active.
func (s VersionSpecifier) Version() (SemanticVersion, bool) {
	return s.version, s.kind == specifierVersion
}

// Tag returns the dist-tag and true when that variant is active.
func (s VersionSpecifier) Tag() (string, bool) {
	return s.tag, s.kind == specifierTag
}

// URL returns the package reference and true when that variant is active.
func (s VersionSpecifier) URL() (PackageUrl, bool) {
	return s.url, s.kind == specifierURL
}

func (s VersionSpecifier) String() string {
	switch s.kind {
	case specifierVersion:
		return s.version.String()
	case specifierTag:
		return s.tag
	case specifierURL:
		return s.url.String()
	default:
		return "latest"
	}
}
