// Package binding implements name-based member resolution for statically
// typed objects that must be reachable from a script engine.
//
// Every bound object has a class, which owns a table of built-in members per
// scripting level, and an expando store for properties created at runtime.
// Built-ins always win over expandos.
package binding

import (
	"strings"

	"github.com/pkg/errors"
)

// Level is a scripting specification level. A member declared at a level is
// visible at that level and every higher one.
type Level uint8

const (
	// LevelDOM0 is the legacy level (styles, forms, click).
	LevelDOM0 Level = iota
	// LevelDOM1 adds the core tree and attribute members.
	LevelDOM1
	// LevelDOM2 adds the later convenience members.
	LevelDOM2

	levelCount = int(LevelDOM2) + 1
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = LevelDOM2

// String returns the lower-case name of the level.
func (l Level) String() string {
	switch l {
	case LevelDOM0:
		return "dom0"
	case LevelDOM1:
		return "dom1"
	case LevelDOM2:
		return "dom2"
	default:
		return "unknown"
	}
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	return int(l) < levelCount
}

// ParseLevel parses "dom0", "dom1" or "dom2" (also "0", "1", "2").
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dom0", "0":
		return LevelDOM0, nil
	case "dom1", "1":
		return LevelDOM1, nil
	case "dom2", "2", "":
		return LevelDOM2, nil
	}
	return DefaultLevel, errors.Errorf("unknown scripting level %q", s)
}
