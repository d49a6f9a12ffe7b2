package comfort

// Level is the ordinal comfort classification assigned to a single
// environmental metric relative to a room's acceptable value.
type Level string

const (
	LevelReallyBad  Level = "REALLY_BAD"
	LevelBad        Level = "BAD"
	LevelGood       Level = "GOOD"
	LevelReallyGood Level = "REALLY_GOOD"
)

// severity maps each level to its rank, worst first. Aggregation depends on
// this order staying total and consistent with the classifier output.
var severity = map[Level]int{
	LevelReallyBad:  0,
	LevelBad:        1,
	LevelGood:       2,
	LevelReallyGood: 3,
}

// Valid reports whether l is one of the four known levels.
func (l Level) Valid() bool {
	_, ok := severity[l]
	return ok
}

// Classify maps an observed value against the room's acceptable value.
// The split is asymmetric on purpose: readings below the acceptable value
// swing negative fast (BAD, then REALLY_BAD under half), while readings
// above it stay positive (GOOD up to 120%, REALLY_GOOD beyond).
//
// Callers must not classify against an unset (zero) acceptable value;
// with acceptable <= 0 every positive reading would land above the
// reference and score GOOD or better regardless of severity.
func Classify(value, acceptable float64) Level {
	if value < acceptable {
		if value < acceptable*0.5 {
			return LevelReallyBad
		}
		return LevelBad
	}
	if value <= acceptable*1.2 {
		return LevelGood
	}
	return LevelReallyGood
}

// WorstOf aggregates per-metric statuses into a room-level status.
// Nil entries mean "never evaluated" and are excluded rather than treated
// as worst. If nothing remains the room status is unknown (nil).
func WorstOf(levels ...*Level) *Level {
	var worst *Level
	for _, l := range levels {
		if l == nil || !l.Valid() {
			continue
		}
		if worst == nil || severity[*l] < severity[*worst] {
			worst = l
		}
	}
	if worst == nil {
		return nil
	}
	w := *worst
	return &w
}

// Distribution counts rooms per aggregated status. Unknown holds rooms
// with no evaluated metric; the five buckets always sum to the room count.
type Distribution struct {
	ReallyGood int `json:"REALLY_GOOD"`
	Good       int `json:"GOOD"`
	Bad        int `json:"BAD"`
	ReallyBad  int `json:"REALLY_BAD"`
	Unknown    int `json:"UNKNOWN"`
}

// Add places one room-level status into its bucket.
func (d *Distribution) Add(l *Level) {
	if l == nil {
		d.Unknown++
		return
	}
	switch *l {
	case LevelReallyGood:
		d.ReallyGood++
	case LevelGood:
		d.Good++
	case LevelBad:
		d.Bad++
	case LevelReallyBad:
		d.ReallyBad++
	default:
		d.Unknown++
	}
}

// Total returns the number of rooms counted so far.
func (d *Distribution) Total() int {
	return d.ReallyGood + d.Good + d.Bad + d.ReallyBad + d.Unknown
}
