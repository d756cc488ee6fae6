package containerize

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

const (
	// MinDbtVersion is the oldest supported dbt release (inclusive).
	MinDbtVersion = "0.19.0"

	// MaxDbtVersion is the first unsupported dbt release (exclusive).
	MaxDbtVersion = "0.22.0"
)

// UnsupportedVersionError reports a dbt version outside of [MinDbtVersion, MaxDbtVersion).
type UnsupportedVersionError struct {
	Version string
	Invalid bool
}

func (e *UnsupportedVersionError) Error() string {
	if e.Invalid {
		return fmt.Sprintf("dbt version %q is not a valid semantic version", e.Version)
	}

	return fmt.Sprintf(
		"dbt version %s is not supported (supported: >= %s, < %s)",
		e.Version,
		MinDbtVersion,
		MaxDbtVersion,
	)
}

// ValidateDbtVersion returns an *UnsupportedVersionError unless v (with or without a leading "v")
// is a semantic version within [MinDbtVersion, MaxDbtVersion).
//
// Example:
//
//	containerize.ValidateDbtVersion("0.21.1") // nil
//	containerize.ValidateDbtVersion("1.0.0")  // dbt version 1.0.0 is not supported (...)
func ValidateDbtVersion(v string) error {
	canonical := "v" + strings.TrimPrefix(strings.TrimSpace(v), "v")
	if !semver.IsValid(canonical) {
		return &UnsupportedVersionError{Version: v, Invalid: true}
	}

	// prereleases of the upper bound (0.22.0-b1) sort below it but are still unsupported
	release := strings.TrimSuffix(semver.Canonical(canonical), semver.Prerelease(canonical))
	if semver.Compare(canonical, "v"+MinDbtVersion) < 0 || semver.Compare(release, "v"+MaxDbtVersion) >= 0 {
		return &UnsupportedVersionError{Version: v}
	}

	return nil
}
