package model

// Player is a participant of a game and their accumulated score
type Player struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}
