package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/jmg/scrabbly/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	w      io.Writer
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(w io.Writer, format string) *Output {
	return &Output{w: w, format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Game:
		o.printGame(v)
	case response.GameList:
		o.printGameList(v)
	case response.PlayResponse:
		o.printPlay(v)
	case response.DrawResponse:
		o.printDraw(v)
	case response.Player:
		fmt.Fprintf(o.w, "Current player: %s (%d points)\n", v.Name, v.Points)
	case response.Standings:
		o.printStandings(v)
	case response.HealthResponse:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printGame(g response.Game) {
	fmt.Fprintf(o.w, "Game: %s\n", g.ID)
	bounds := "unbounded"
	if g.StrictBounds {
		bounds = "strict"
	}
	fmt.Fprintf(o.w, "Board: %dx%d (%s)\n", g.Width, g.Height, bounds)
	fmt.Fprintf(o.w, "Language: %s\n", g.Language)
	fmt.Fprintf(o.w, "Plays: %d\n", g.PlayCount)
	fmt.Fprintf(o.w, "Tiles in bag: %d\n", g.BagRemaining)
	fmt.Fprintln(o.w, "Players:")
	for i, p := range g.Players {
		marker := " "
		if i == g.Turn {
			marker = "*"
		}
		fmt.Fprintf(o.w, " %s %s: %d points\n", marker, p.Name, p.Points)
	}
	fmt.Fprintln(o.w)
	o.printBoard(g)
}

// printBoard draws the board grid, widened to include any tiles placed
// outside it
func (o *Output) printBoard(g response.Game) {
	minX, minY, maxX, maxY := 0, 0, g.Width-1, g.Height-1
	cells := make(map[[2]int]string, len(g.Tiles))
	for _, t := range g.Tiles {
		cells[[2]int{t.X, t.Y}] = t.Letter
		minX, maxX = min(minX, t.X), max(maxX, t.X)
		minY, maxY = min(minY, t.Y), max(maxY, t.Y)
	}
	if maxX < minX || maxY < minY {
		return
	}

	fmt.Fprint(o.w, "    ")
	for x := minX; x <= maxX; x++ {
		fmt.Fprintf(o.w, "%3d", x)
	}
	fmt.Fprintln(o.w)

	border := "    +" + strings.Repeat("---", maxX-minX+1) + "+"
	fmt.Fprintln(o.w, border)
	for y := minY; y <= maxY; y++ {
		fmt.Fprintf(o.w, "%3d |", y)
		for x := minX; x <= maxX; x++ {
			letter, ok := cells[[2]int{x, y}]
			if !ok {
				letter = "."
			}
			fmt.Fprintf(o.w, " %s ", letter)
		}
		fmt.Fprintln(o.w, "|")
	}
	fmt.Fprintln(o.w, border)
}

func (o *Output) printGameList(l response.GameList) {
	if len(l.Games) == 0 {
		fmt.Fprintln(o.w, "No games")
		return
	}
	for _, id := range l.Games {
		fmt.Fprintln(o.w, id)
	}
}

func (o *Output) printPlay(p response.PlayResponse) {
	fmt.Fprintf(o.w, "Play scored %d points\n", p.Score)
	for _, w := range p.Words {
		fmt.Fprintf(o.w, "  - %s (%d pts)\n", w.Word, w.Score)
	}
	fmt.Fprintf(o.w, "Next player: %s\n", p.NextPlayer)
}

func (o *Output) printDraw(d response.DrawResponse) {
	fmt.Fprintf(o.w, "Drew: %s\n", strings.Join(d.Letters, " "))
	fmt.Fprintf(o.w, "Tiles left: %d\n", d.Remaining)
}

func (o *Output) printStandings(s response.Standings) {
	width := lo.Max(lo.Map(s.Players, func(p response.Player, _ int) int { return len(p.Name) }))
	for i, p := range s.Players {
		fmt.Fprintf(o.w, "%d. %-*s %d\n", i+1, width, p.Name, p.Points)
	}
	if s.Winner != "" {
		fmt.Fprintf(o.w, "Winner: %s\n", s.Winner)
	} else {
		fmt.Fprintln(o.w, "No winner: tied")
	}
}
