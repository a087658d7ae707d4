package model

import (
	"encoding/json"
	"sort"

	"github.com/samber/lo"
)

// Matrix is the sparse set of tiles committed to a board.
// It is append-only: a cell, once written, is never overwritten or cleared.
type Matrix struct {
	tiles map[Position]Tile
}

// NewMatrix creates an empty matrix
func NewMatrix() *Matrix {
	return &Matrix{tiles: make(map[Position]Tile)}
}

// Get returns the tile at p, if any
func (m *Matrix) Get(p Position) (Tile, bool) {
	t, ok := m.tiles[p]
	return t, ok
}

// IsOccupied reports whether a tile has been committed at p
func (m *Matrix) IsOccupied(p Position) bool {
	_, ok := m.tiles[p]
	return ok
}

// IsEmpty reports whether no tile has been committed yet
func (m *Matrix) IsEmpty() bool {
	return len(m.tiles) == 0
}

// Len returns the number of committed tiles
func (m *Matrix) Len() int {
	return len(m.tiles)
}

// Tiles returns every committed tile ordered by row, then column
func (m *Matrix) Tiles() []Tile {
	tiles := lo.Values(m.tiles)
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Y != tiles[j].Y {
			return tiles[i].Y < tiles[j].Y
		}
		return tiles[i].X < tiles[j].X
	})
	return tiles
}

// HasFreeSpace reports whether every cell of the word is unoccupied
func (m *Matrix) HasFreeSpace(w Word) bool {
	return lo.EveryBy(w.Tiles, func(t Tile) bool { return !m.IsOccupied(t.Position) })
}

// IsBordering reports whether the word touches a committed tile.
// An empty matrix accepts any word, so the opening play is exempt.
func (m *Matrix) IsBordering(w Word) bool {
	if m.IsEmpty() {
		return true
	}
	return lo.SomeBy(w.Tiles, func(t Tile) bool {
		neighbours := t.Neighbours()
		return lo.SomeBy(neighbours[:], m.IsOccupied)
	})
}

// Place writes the word's tiles. Either every tile is written or, if any
// cell is already occupied, none are.
func (m *Matrix) Place(w Word) error {
	if !m.HasFreeSpace(w) {
		return ErrCellOccupied
	}
	for _, t := range w.Tiles {
		m.tiles[t.Position] = t
	}
	return nil
}

// Assemble returns every word the candidate would form if placed: the
// candidate's own line extended through adjacent committed tiles, followed by
// each perpendicular word created where a candidate tile touches a committed
// tile. The candidate must be aligned and continuous and must not overlap the
// matrix. Assemble never mutates the matrix.
func (m *Matrix) Assemble(candidate Word) []Word {
	if m.IsEmpty() {
		return []Word{candidate}
	}

	var words []Word

	// A lone new tile with nothing collinear forms no primary word
	if primary := m.extend(candidate); primary.Len() > 1 {
		words = append(words, primary)
	}

	for _, b := range candidate.Borders() {
		neighbour, ok := m.Get(b.Position)
		if !ok {
			continue
		}
		seed := NewWord(b.Tile, neighbour)
		if !seed.Alignment.IsDefined() || seed.Alignment == candidate.Alignment {
			continue
		}
		words = append(words, m.extend(seed))
	}

	return lo.UniqBy(words, Word.key)
}

// extend grows the word along its alignment through contiguously occupied
// cells beyond both ends
func (m *Matrix) extend(w Word) Word {
	if !w.Alignment.IsDefined() || w.Len() == 0 {
		return w
	}
	before := m.scan(w.First().Position, w.Alignment, -1)
	after := m.scan(w.Last().Position, w.Alignment, 1)
	if len(before) == 0 && len(after) == 0 {
		return w
	}
	return w.Join(append(before, after...))
}

// scan walks from p in the given direction collecting tiles until the
// first empty cell
func (m *Matrix) scan(p Position, a Alignment, direction int) []Tile {
	var tiles []Tile
	for next := a.Step(p, direction); ; next = a.Step(next, direction) {
		t, ok := m.tiles[next]
		if !ok {
			return tiles
		}
		tiles = append(tiles, t)
	}
}

// MarshalJSON encodes the matrix as its ordered list of tiles
func (m *Matrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Tiles())
}

// UnmarshalJSON rebuilds the matrix from a list of tiles
func (m *Matrix) UnmarshalJSON(data []byte) error {
	var tiles []Tile
	if err := json.Unmarshal(data, &tiles); err != nil {
		return err
	}
	m.tiles = make(map[Position]Tile, len(tiles))
	for _, t := range tiles {
		if _, ok := m.tiles[t.Position]; ok {
			return ErrCellOccupied
		}
		m.tiles[t.Position] = t
	}
	return nil
}

// Clone returns an independent copy of the matrix
func (m *Matrix) Clone() *Matrix {
	tiles := make(map[Position]Tile, len(m.tiles))
	for p, t := range m.tiles {
		tiles[p] = t
	}
	return &Matrix{tiles: tiles}
}
