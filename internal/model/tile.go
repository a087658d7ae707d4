package model

import (
	"encoding/json"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Position identifies a cell on the board
type Position struct {
	X int // column, grows to the right
	Y int // row, grows downward
}

// Up returns the position directly above
func (p Position) Up() Position { return Position{X: p.X, Y: p.Y - 1} }

// Down returns the position directly below
func (p Position) Down() Position { return Position{X: p.X, Y: p.Y + 1} }

// Left returns the position directly to the left
func (p Position) Left() Position { return Position{X: p.X - 1, Y: p.Y} }

// Right returns the position directly to the right
func (p Position) Right() Position { return Position{X: p.X + 1, Y: p.Y} }

// Neighbours returns the four axis neighbours: up, down, left, right
func (p Position) Neighbours() [4]Position {
	return [4]Position{p.Up(), p.Down(), p.Left(), p.Right()}
}

// IsAdjacent reports whether q is one of the four axis neighbours of p
func (p Position) IsAdjacent(q Position) bool {
	dx, dy := abs(p.X-q.X), abs(p.Y-q.Y)
	return dx+dy == 1
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// comparePositions orders positions by X, then Y
func comparePositions(a, b Position) int {
	if a.X != b.X {
		return a.X - b.X
	}
	return a.Y - b.Y
}

// Tile is a letter placed, or proposed to be placed, at a position.
// Tiles are values: two tiles are equal when letter and position match.
type Tile struct {
	Letter rune
	Position
}

// NewTile creates a tile with the letter normalized to upper case
func NewTile(letter rune, x, y int) Tile {
	return Tile{
		Letter:   unicode.ToUpper(letter),
		Position: Position{X: x, Y: y},
	}
}

// IsBordering reports whether the two tiles sit on axis-adjacent cells
func (t Tile) IsBordering(other Tile) bool {
	return t.Position.IsAdjacent(other.Position)
}

func (t Tile) String() string {
	return fmt.Sprintf("%c %s", t.Letter, t.Position)
}

type tileJSON struct {
	Letter string `json:"letter"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// MarshalJSON encodes the letter as a one-character string
func (t Tile) MarshalJSON() ([]byte, error) {
	return json.Marshal(tileJSON{Letter: string(t.Letter), X: t.X, Y: t.Y})
}

// UnmarshalJSON decodes a tile, rejecting anything but a single letter
func (t *Tile) UnmarshalJSON(data []byte) error {
	var raw tileJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	letter, err := ParseLetter(raw.Letter)
	if err != nil {
		return err
	}
	*t = NewTile(letter, raw.X, raw.Y)
	return nil
}

// ParseLetter converts a one-character string to an upper-case letter
func ParseLetter(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLetter, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if !unicode.IsLetter(r) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLetter, s)
	}
	return unicode.ToUpper(r), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
