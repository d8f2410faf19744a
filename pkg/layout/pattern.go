package layout

// Pattern classifies a chunk by the position of its expanded item.
type Pattern int

const (
	// PatternNone places up to three regular cells left to right.
	PatternNone Pattern = iota
	// PatternStart puts the expanded cell on the left with two cells stacked
	// to its right.
	PatternStart
	// PatternMiddle puts the expanded cell on the right with the first and
	// last cells stacked to its left.
	PatternMiddle
	// PatternEnd puts the first two cells stacked on the left and the
	// expanded cell on the right.
	PatternEnd
)

var patternNames = [...]string{"none", "start", "middle", "end"}

func (p Pattern) String() string {
	if p < PatternNone || p > PatternEnd {
		return "unknown"
	}
	return patternNames[p]
}

// Expanded returns the position within the chunk that holds the expanded
// item, or -1 for PatternNone.
func (p Pattern) Expanded() int {
	switch p {
	case PatternStart:
		return 0
	case PatternMiddle:
		return 1
	case PatternEnd:
		return 2
	default:
		return -1
	}
}

// PatternOf classifies a chunk of expansion flags. The first true flag wins;
// any later true flag in the same chunk is laid out as a regular cell.
// Chunks shorter than ChunkSize are always PatternNone.
func PatternOf(flags []bool) Pattern {
	if len(flags) < ChunkSize {
		return PatternNone
	}
	for i, expanded := range flags[:ChunkSize] {
		if expanded {
			return PatternStart + Pattern(i)
		}
	}
	return PatternNone
}
