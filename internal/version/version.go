// Package version normalizes release version strings into the vMAJOR.MINOR.PATCH
// form used as issue labels.
package version

import (
	"errors"
	"fmt"
	"strings"

	masterminds "github.com/Masterminds/semver/v3"
)

// ErrInvalidVersionFormat is matched by every InvalidVersionFormatError.
var ErrInvalidVersionFormat = errors.New("invalid version format")

// InvalidVersionFormatError reports a version string that is neither
// MAJOR.MINOR nor MAJOR.MINOR.PATCH.
type InvalidVersionFormatError struct {
	Version string
}

func (e *InvalidVersionFormatError) Error() string {
	return "unable to understand version string, " + e.Version
}

// Is lets errors.Is match against ErrInvalidVersionFormat.
func (e *InvalidVersionFormatError) Is(target error) bool {
	return target == ErrInvalidVersionFormat
}

// Normalize returns version as vMAJOR.MINOR.PATCH. A missing patch component
// defaults to 0.
//
//	Normalize("2.4")   == "v2.4.0"
//	Normalize("3.0.1") == "v3.0.1"
func Normalize(version string) (string, error) {
	parts := strings.Split(version, ".")
	for _, p := range parts {
		if p == "" {
			return "", &InvalidVersionFormatError{Version: version}
		}
	}

	var numeric string
	switch len(parts) {
	case 3:
		numeric = version
	case 2:
		numeric = version + ".0"
	default:
		return "", &InvalidVersionFormatError{Version: version}
	}

	if strings.HasPrefix(version, "v") {
		return "", &InvalidVersionFormatError{Version: version}
	}
	sv, err := masterminds.NewVersion(numeric)
	if err != nil {
		return "", fmt.Errorf("%w: %v", &InvalidVersionFormatError{Version: version}, err)
	}
	if sv.Prerelease() != "" || sv.Metadata() != "" {
		return "", &InvalidVersionFormatError{Version: version}
	}
	return "v" + numeric, nil
}

// NormalizeAll normalizes every version, stopping at the first failure.
func NormalizeAll(versions []string) ([]string, error) {
	out := make([]string, 0, len(versions))
	for _, v := range versions {
		n, err := Normalize(v)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
