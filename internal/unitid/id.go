package unitid

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var segmentRegex = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_-]*$`)

// ID is the canonical, immutable identifier of a work unit.
type ID string

// Parse validates a raw identifier and returns it in canonical form.
func Parse(raw string) (ID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("unit id cannot be empty")
	}

	for i, seg := range strings.Split(raw, ".") {
		if seg == "" {
			return "", fmt.Errorf("invalid unit id '%s': empty segment at position %d", raw, i)
		}
		if !segmentRegex.MatchString(seg) {
			return "", fmt.Errorf("invalid unit id '%s': malformed segment '%s'", raw, seg)
		}
	}
	return ID(raw), nil
}

// MustParse is like Parse but panics on an invalid identifier. It is meant
// for tests and static tables.
func MustParse(raw string) ID {
	id, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the canonical string form.
func (id ID) String() string {
	return string(id)
}

// Less reports whether id sorts before other.
func (id ID) Less(other ID) bool {
	return id < other
}

// Sort orders ids in place, lexicographically.
func Sort(ids []ID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
}
