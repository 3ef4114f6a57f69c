package domain

import (
	"encoding/json"
	"fmt"
)

// DependencyVersion is the value side of a manifest dependency entry:
// either a concrete semantic version or a direct package URL, never both.
type DependencyVersion struct {
	version SemanticVersion
	url     PackageUrl
}

// VersionDependency wraps a concrete semantic version.
func VersionDependency(version SemanticVersion) DependencyVersion {
	return DependencyVersion{version: version}
}

// URLDependency wraps a direct package reference.
func URLDependency(url PackageUrl) DependencyVersion {
	return DependencyVersion{url: url}
}

// ParseDependencyVersion interprets a manifest dependency value string.
func ParseDependencyVersion(raw string) (DependencyVersion, error) {
	if IsPackageUrl(raw) {
		return URLDependency(PackageUrl(raw)), nil
	}
	version, err := ParseSemanticVersion(raw)
	if err != nil {
		return DependencyVersion{}, fmt.Errorf("invalid dependency version %q: %w", raw, err)
	}
	return VersionDependency(version), nil
}

// IsURL reports whether the entry is a direct package reference.
func (d DependencyVersion) IsURL() bool {
	return d.url != ""
}

// Version returns the semantic version and true when that variant is active.
func (d DependencyVersion) Version() (SemanticVersion, bool) {
	return d.version, !d.IsURL() && !d.version.IsZero()
}

// URL returns the package reference and true when that variant is active.
func (d DependencyVersion) URL() (PackageUrl, bool) {
	return d.url, d.IsURL()
}

func (d DependencyVersion) String() string {
	if d.IsURL() {
		return d.url.String()
	}
	return d.version.String()
}

// Equal reports whether two entries denote the same version or URL.
func (d DependencyVersion) Equal(other DependencyVersion) bool {
	if d.IsURL() != other.IsURL() {
		return false
	}
	if d.IsURL() {
		return d.url == other.url
	}
	return d.version.Equal(other.version)
}

func (d DependencyVersion) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DependencyVersion) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDependencyVersion(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
