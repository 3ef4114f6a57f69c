package domain

import (
	"fmt"

	semver "github.com/Masterminds/semver/v3"
)

// SemanticVersion is a validated MAJOR.MINOR.PATCH[-prerelease][+build]
// value, totally ordered by semver precedence.
type SemanticVersion struct {
	value *semver.Version
}

// ParseSemanticVersion parses a strict semver string.
func ParseSemanticVersion(raw string) (SemanticVersion, error) {
	v, err := semver.StrictNewVersion(raw)
	if err != nil {
		return SemanticVersion{}, fmt.Errorf("invalid semantic version %q: %w", raw, err)
	}
	return SemanticVersion{value: v}, nil
}

// MustParseSemanticVersion parses a semver string and panics on failure.
// Intended for constants and tests.
func MustParseSemanticVersion(raw string) SemanticVersion {
	v, err := ParseSemanticVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether the value is the uninitialized SemanticVersion.
func (v SemanticVersion) IsZero() bool {
	return v.value == nil
}

// Compare returns -1, 0 or 1 by semver precedence.
func (v SemanticVersion) Compare(other SemanticVersion) int {
	return v.value.Compare(other.value)
}

// LessThan reports whether v precedes other.
func (v SemanticVersion) LessThan(other SemanticVersion) bool {
	return v.value.LessThan(other.value)
}

// Equal reports semver equality (build metadata ignored).
func (v SemanticVersion) Equal(other SemanticVersion) bool {
	if v.IsZero() || other.IsZero() {
		return v.IsZero() == other.IsZero()
	}
	return v.value.Equal(other.value)
}

// IsPrerelease reports whether the version carries a prerelease field.
func (v SemanticVersion) IsPrerelease() bool {
	return v.value.Prerelease() != ""
}

func (v SemanticVersion) String() string {
	if v.value == nil {
		return ""
	}
	return v.value.String()
}
