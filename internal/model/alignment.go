package model

// Alignment describes the line a set of tiles lies on
type Alignment int

const (
	AlignmentUndefined  Alignment = iota // scattered tiles
	AlignmentVertical                    // all tiles share one X, axis is Y
	AlignmentHorizontal                  // all tiles share one Y, axis is X
)

// alignmentChecks is evaluated in order, so a single tile (which satisfies
// both predicates) is always classified Vertical.
var alignmentChecks = []struct {
	alignment Alignment
	matches   func(tiles []Tile) bool
}{
	{AlignmentVertical, func(tiles []Tile) bool {
		return allEqual(tiles, func(t Tile) int { return t.X })
	}},
	{AlignmentHorizontal, func(tiles []Tile) bool {
		return allEqual(tiles, func(t Tile) int { return t.Y })
	}},
}

// ClassifyAlignment returns the alignment of the given tiles
func ClassifyAlignment(tiles []Tile) Alignment {
	if len(tiles) == 0 {
		return AlignmentUndefined
	}
	for _, check := range alignmentChecks {
		if check.matches(tiles) {
			return check.alignment
		}
	}
	return AlignmentUndefined
}

// IsDefined reports whether the alignment is Horizontal or Vertical
func (a Alignment) IsDefined() bool {
	return a == AlignmentHorizontal || a == AlignmentVertical
}

// AxisValue returns the coordinate of p that varies along this alignment
func (a Alignment) AxisValue(p Position) int {
	switch a {
	case AlignmentHorizontal:
		return p.X
	case AlignmentVertical:
		return p.Y
	default:
		return 0
	}
}

// Step moves p by n cells along this alignment. Undefined alignments do not move.
func (a Alignment) Step(p Position, n int) Position {
	switch a {
	case AlignmentHorizontal:
		return Position{X: p.X + n, Y: p.Y}
	case AlignmentVertical:
		return Position{X: p.X, Y: p.Y + n}
	default:
		return p
	}
}

func (a Alignment) String() string {
	switch a {
	case AlignmentHorizontal:
		return "horizontal"
	case AlignmentVertical:
		return "vertical"
	default:
		return "undefined"
	}
}

func allEqual(tiles []Tile, value func(Tile) int) bool {
	for _, t := range tiles[1:] {
		if value(t) != value(tiles[0]) {
			return false
		}
	}
	return true
}
