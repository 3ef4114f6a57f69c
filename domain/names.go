package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// domainNamePattern matches reverse-domain package identifiers such as
// "com.unity.textmeshpro". Segments are lowercase alphanumerics, dashes
// and underscores, separated by dots.
var domainNamePattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9._-]*[a-z0-9])?$`)

const maxDomainNameLength = 214

// DomainName is a validated reverse-domain package identifier.
// It is immutable and compares by its normalized string value.
type DomainName string

// ParseDomainName validates and normalizes a package identifier.
func ParseDomainName(raw string) (DomainName, error) {
	name := strings.TrimSpace(strings.ToLower(raw))
	if name == "" {
		return "", fmt.Errorf("package name must not be empty")
	}
	if len(name) > maxDomainNameLength {
		return "", fmt.Errorf("package name %q exceeds %d characters", raw, maxDomainNameLength)
	}
	if !domainNamePattern.MatchString(name) {
		return "", fmt.Errorf("invalid package name %q", raw)
	}
	return DomainName(name), nil
}

func (n DomainName) String() string {
	return string(n)
}
