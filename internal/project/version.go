package project

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a target language version such as 3.12.
type Version struct {
	Major int
	Minor int
}

// DefaultTargetVersion is used when neither the file nor the CLI names one.
var DefaultTargetVersion = Version{Major: 3, Minor: 12}

// ParseVersion accepts "3", "3.12" and "py312".
func ParseVersion(s string) (Version, error) {
	text := strings.TrimSpace(strings.ToLower(s))
	if rest, ok := strings.CutPrefix(text, "py"); ok && len(rest) >= 2 && !strings.Contains(rest, ".") {
		text = rest[:1] + "." + rest[1:]
	}
	majorText, minorText, hasMinor := strings.Cut(text, ".")
	major, err := strconv.Atoi(majorText)
	if err != nil || major < 2 || major > 3 {
		return Version{}, fmt.Errorf("invalid target version %q (expected e.g. 3.12)", s)
	}
	v := Version{Major: major}
	if hasMinor {
		minor, err := strconv.Atoi(minorText)
		if err != nil || minor < 0 {
			return Version{}, fmt.Errorf("invalid target version %q (expected e.g. 3.12)", s)
		}
		v.Minor = minor
	}
	return v, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Less orders versions by major then minor.
func (v Version) Less(other Version) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	return v.Minor < other.Minor
}

// MarshalText lets toml and json write "3.12".
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
