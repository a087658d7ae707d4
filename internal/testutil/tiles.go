package testutil

import "github.com/jmg/scrabbly/internal/model"

// Across lays text out left to right starting at (x, y)
func Across(text string, x, y int) []model.Tile {
	var tiles []model.Tile
	for _, r := range text {
		tiles = append(tiles, model.NewTile(r, x, y))
		x++
	}
	return tiles
}

// Down lays text out top to bottom starting at (x, y)
func Down(text string, x, y int) []model.Tile {
	var tiles []model.Tile
	for _, r := range text {
		tiles = append(tiles, model.NewTile(r, x, y))
		y++
	}
	return tiles
}
