package domain

import "strings"

// PackageReference is a user-supplied "name" or "name@specifier" request.
type PackageReference struct {
	Name      DomainName
	Specifier VersionSpecifier
}

// ParsePackageReference splits a raw request such as
// "com.foo.bar@1.2.3", "com.foo.bar@latest" or
// "com.foo.bar@https://github.com/foo/bar.git" into a validated name and
// version specifier. Without an "@" the specifier is "latest".
func ParsePackageReference(raw string) (PackageReference, error) {
	namePart := raw
	specPart := ""
	if index := strings.Index(raw, "@"); index >= 0 {
		namePart = raw[:index]
		specPart = raw[index+1:]
	}

	name, err := ParseDomainName(namePart)
	if err != nil {
		return PackageReference{}, err
	}

	return PackageReference{
		Name:      name,
		Specifier: ParseVersionSpecifier(specPart),
	}, nil
}

func (r PackageReference) String() string {
	if r.Specifier.IsLatest() {
		return r.Name.String()
	}
	return r.Name.String() + "@" + r.Specifier.String()
}
