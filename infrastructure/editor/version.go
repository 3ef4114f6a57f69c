// Package editor reads and compares Unity editor version strings.
package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

const projectVersionFile = "ProjectSettings/ProjectVersion.txt"

var (
	editorVersionLine = regexp.MustCompile(`m_EditorVersion:\s*(\S+)`)

	// versionPattern captures the numeric MAJOR.MINOR prefix of editor
	// version strings such as "2021.3.1f1" or "2021.3".
	versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)`)
)

// VersionReader resolves the editor version a project targets and
// compares it against packument requirements. Implements
// application.EditorVersionSource.
type VersionReader struct{}

// NewVersionReader creates an editor version reader.
func NewVersionReader() *VersionReader {
	return &VersionReader{}
}

// ProjectEditorVersion reads the editor version from
// ProjectSettings/ProjectVersion.txt.
func (r *VersionReader) ProjectEditorVersion(cwd string) (string, error) {
	path := filepath.Join(cwd, filepath.FromSlash(projectVersionFile))
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", path, err)
	}

	match := editorVersionLine.FindSubmatch(data)
	if match == nil {
		return "", fmt.Errorf("no m_EditorVersion entry in %q", path)
	}
	return string(match[1]), nil
}

// IsCompatible reports whether a project editor version satisfies a
// package's target editor requirement: the project's MAJOR.MINOR must be
// equal or newer.
func (r *VersionReader) IsCompatible(projectVersion, targetVersion string) (bool, error) {
	projectMajor, projectMinor, err := parseRelease(projectVersion)
	if err != nil {
		return false, err
	}
	targetMajor, targetMinor, err := parseRelease(targetVersion)
	if err != nil {
		return false, err
	}

	if projectMajor != targetMajor {
		return projectMajor > targetMajor, nil
	}
	return projectMinor >= targetMinor, nil
}

func parseRelease(version string) (major, minor int, err error) {
	match := versionPattern.FindStringSubmatch(version)
	if match == nil {
		return 0, 0, fmt.Errorf("unparsable editor version %q", version)
	}
	major, _ = strconv.Atoi(match[1])
	minor, _ = strconv.Atoi(match[2])
	return major, minor, nil
}
