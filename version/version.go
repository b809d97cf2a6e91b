// Package version holds the server version and semver helpers used by the
// schema migrator.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is the current release. Bump on release.
var Version = "0.2.1"

func GetCurrentVersion() string {
	return Version
}

// GetMinorVersion returns the minor version of a full version string,
// e.g. "0.2" for "0.2.1".
func GetMinorVersion(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) < 3 {
		return version
	}
	return strings.Join(parts[:2], ".")
}

// GetSchemaVersion returns the version that owns the database schema: the
// minor version with a zero patch.
func GetSchemaVersion(version string) string {
	return GetMinorVersion(version) + ".0"
}

func IsVersionGreaterOrEqualThan(version, target string) bool {
	return semver.Compare("v"+version, "v"+target) >= 0
}

func IsVersionGreaterThan(version, target string) bool {
	return semver.Compare("v"+version, "v"+target) > 0
}

// SortVersionList sorts a version list in ascending order, in place.
func SortVersionList(versions []string) {
	for i := 1; i < len(versions); i++ {
		for j := i; j > 0 && IsVersionGreaterThan(versions[j-1], versions[j]); j-- {
			versions[j-1], versions[j] = versions[j], versions[j-1]
		}
	}
}
