package request

// CreateGameRequest is the request body for creating a game.
// Zero or missing fields fall back to the server defaults.
type CreateGameRequest struct {
	Width        int      `json:"width,omitempty"`
	Height       int      `json:"height,omitempty"`
	Players      []string `json:"players"`
	Language     string   `json:"language,omitempty"`
	StrictBounds *bool    `json:"strict_bounds,omitempty"`
}

// Tile is a single letter placement
type Tile struct {
	Letter string `json:"letter"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// PlayRequest is the request body for playing tiles
type PlayRequest struct {
	Tiles []Tile `json:"tiles"`
}

// DrawRequest is the request body for drawing tiles.
// A missing count draws a full rack; an explicit zero draws nothing.
type DrawRequest struct {
	Count *int `json:"count,omitempty"`
}
