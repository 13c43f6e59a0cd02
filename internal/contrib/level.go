package contrib

// Level is a small ordinal bucket summarizing a day's contribution
// count for display purposes.
type Level int

const (
	LevelNone Level = iota
	LevelLow
	LevelMedium
	LevelHigh
	LevelVeryHigh
)

func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelLow:
		return "low"
	case LevelMedium:
		return "medium"
	case LevelHigh:
		return "high"
	case LevelVeryHigh:
		return "veryHigh"
	default:
		return "unknown"
	}
}

// AbsoluteLevel buckets a count against fixed thresholds. It needs no
// distribution context, which makes it the right scheme for compact
// displays that show only a handful of days.
func AbsoluteLevel(count int) Level {
	switch {
	case count <= 0:
		return LevelNone
	case count <= 2:
		return LevelLow
	case count <= 5:
		return LevelMedium
	case count <= 8:
		return LevelHigh
	default:
		return LevelVeryHigh
	}
}

// RelativeLevel buckets a count against the maximum daily count in the
// observed window, so full-year grids self-scale to the user's own
// activity range. Not interchangeable with AbsoluteLevel.
func RelativeLevel(count, max int) Level {
	if count <= 0 || max <= 0 {
		return LevelNone
	}
	ratio := float64(count) / float64(max)
	switch {
	case ratio <= 0.25:
		return LevelLow
	case ratio <= 0.5:
		return LevelMedium
	case ratio <= 0.75:
		return LevelHigh
	default:
		return LevelVeryHigh
	}
}
