// Package maturity defines the ordinal maturity scale used across the
// scoring engine. Levels form a closed set L0-L4 with an explicit
// ordering; they are never handled as raw integers outside this package.
package maturity

import "fmt"

// Level is an ordinal compliance depth, from "not performed" (L0) to
// "quantitatively managed" (L4).
type Level int

const (
	L0 Level = iota // not performed
	L1              // performed informally
	L2              // planned and tracked
	L3              // well defined
	L4              // quantitatively managed
)

var levelNames = map[Level]string{
	L0: "L0 - Not Performed",
	L1: "L1 - Initial",
	L2: "L2 - Managed",
	L3: "L3 - Defined",
	L4: "L4 - Measured",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("L%d", int(l))
}

// Valid reports whether l is inside the closed L0-L4 set.
func (l Level) Valid() bool { return l >= L0 && l <= L4 }

// Clamp forces l into the valid range.
func (l Level) Clamp() Level {
	if l < L0 {
		return L0
	}
	if l > L4 {
		return L4
	}
	return l
}

// AtLeast reports whether l meets or exceeds floor.
func (l Level) AtLeast(floor Level) bool { return l >= floor }

// Percentage expresses a level as its nominal percentage (level/4 * 100).
func (l Level) Percentage() float64 { return float64(l.Clamp()) / 4 * 100 }

// ForPercentage converts an aggregate percentage score into a level
// using the flat band table: >=85 L4, >=70 L3, >=50 L2, >=25 L1, else L0.
// Per-requirement scoring uses a different, documentation-sensitive
// table (see the scoring package); the two are intentionally distinct.
func ForPercentage(pct float64) Level {
	switch {
	case pct >= 85:
		return L4
	case pct >= 70:
		return L3
	case pct >= 50:
		return L2
	case pct >= 25:
		return L1
	default:
		return L0
	}
}
