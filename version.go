package confsearch

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a <major>.<minor> configuration version number.
//
// Only the major and minor components are meaningful for compatibility
// checks. Additional dotted segments are accepted but discarded.
type Version struct {
	Major int
	Minor int
}

// ParseVersion parses text of the form "<major>.<minor>[.<more>...]".
//
// Every segment must be a non-negative integer, and at least two segments
// must be present. Anything else fails with a MalformedVersionError.
func ParseVersion(text string) (Version, error) {
	segments := strings.Split(strings.TrimSpace(text), ".")
	if len(segments) < 2 {
		return Version{}, NewMalformedVersionError(text)
	}

	numbers := make([]int, 0, 2)
	for i, segment := range segments {
		value, err := strconv.ParseUint(segment, 10, 31)
		if err != nil {
			return Version{}, NewMalformedVersionError(text)
		}
		if i < 2 {
			numbers = append(numbers, int(value))
		}
	}

	return Version{Major: numbers[0], Minor: numbers[1]}, nil
}

// SameMajor reports whether v and other share the same major component.
func (v Version) SameMajor(other Version) bool {
	return v.Major == other.Major
}

// CompareMinor compares the minor components of v and other.
//
// It returns -1 when v's minor is lower, 0 when equal, and 1 when higher.
func (v Version) CompareMinor(other Version) int {
	switch {
	case v.Minor < other.Minor:
		return -1
	case v.Minor > other.Minor:
		return 1
	}

	return 0
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
