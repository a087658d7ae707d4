package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Word is an ordered run of tiles together with the alignment they form.
// When the alignment is defined, tiles are sorted ascending along its axis.
type Word struct {
	Tiles     []Tile
	Alignment Alignment
}

// Border pairs a tile of a word with one of its free neighbouring cells
type Border struct {
	Tile     Tile
	Position Position
}

// NewWord classifies the tiles and sorts them along the resulting axis
func NewWord(tiles ...Tile) Word {
	w := Word{
		Tiles:     append([]Tile(nil), tiles...),
		Alignment: ClassifyAlignment(tiles),
	}
	if w.Alignment.IsDefined() {
		sort.SliceStable(w.Tiles, func(i, j int) bool {
			return w.Alignment.AxisValue(w.Tiles[i].Position) < w.Alignment.AxisValue(w.Tiles[j].Position)
		})
	}
	return w
}

// Len returns the number of tiles in the word
func (w Word) Len() int {
	return len(w.Tiles)
}

// Text returns the letters of the word in order
func (w Word) Text() string {
	var sb strings.Builder
	for _, t := range w.Tiles {
		sb.WriteRune(t.Letter)
	}
	return sb.String()
}

func (w Word) String() string {
	return fmt.Sprintf("%s %v", w.Text(), w.Tiles)
}

// Positions returns the positions covered by the word, in tile order
func (w Word) Positions() []Position {
	return lo.Map(w.Tiles, func(t Tile, _ int) Position { return t.Position })
}

// Covers reports whether one of the word's tiles sits on p
func (w Word) Covers(p Position) bool {
	return lo.ContainsBy(w.Tiles, func(t Tile) bool { return t.Position == p })
}

// IsContinuous reports whether the tiles occupy consecutive cells along the axis
func (w Word) IsContinuous() bool {
	if !w.Alignment.IsDefined() {
		return false
	}
	values := lo.Map(w.Tiles, func(t Tile, _ int) int { return w.Alignment.AxisValue(t.Position) })
	sort.Ints(values)
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]+1 {
			return false
		}
	}
	return true
}

// IsValidPosition reports whether the word is aligned and has no gaps
func (w Word) IsValidPosition() bool {
	return w.Alignment.IsDefined() && w.IsContinuous()
}

// Score sums the letter values of every tile in the word
func (w Word) Score(values map[rune]int) int {
	return lo.SumBy(w.Tiles, func(t Tile) int { return values[t.Letter] })
}

// Borders returns, for every tile, the axis neighbours not covered by the word
// itself. The result is de-duplicated and sorted by tile position, then border
// position.
func (w Word) Borders() []Border {
	var borders []Border
	for _, t := range w.Tiles {
		for _, n := range t.Neighbours() {
			if !w.Covers(n) {
				borders = append(borders, Border{Tile: t, Position: n})
			}
		}
	}
	borders = lo.Uniq(borders)
	sort.SliceStable(borders, func(i, j int) bool {
		if c := comparePositions(borders[i].Tile.Position, borders[j].Tile.Position); c != 0 {
			return c < 0
		}
		return comparePositions(borders[i].Position, borders[j].Position) < 0
	})
	return borders
}

// First returns the first tile along the axis
func (w Word) First() Tile {
	return w.Tiles[0]
}

// Last returns the last tile along the axis
func (w Word) Last() Tile {
	return w.Tiles[len(w.Tiles)-1]
}

// Join returns a new word holding the tiles of w plus any of the given tiles
// whose position is not already covered.
func (w Word) Join(tiles []Tile) Word {
	joined := append([]Tile(nil), w.Tiles...)
	for _, t := range tiles {
		if !lo.ContainsBy(joined, func(j Tile) bool { return j.Position == t.Position }) {
			joined = append(joined, t)
		}
	}
	return NewWord(joined...)
}

// key identifies the word by its set of positions
func (w Word) key() string {
	positions := w.Positions()
	sort.Slice(positions, func(i, j int) bool { return comparePositions(positions[i], positions[j]) < 0 })
	return fmt.Sprint(positions)
}
