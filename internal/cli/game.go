package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/jmg/scrabbly/internal/api/request"
	"github.com/jmg/scrabbly/internal/api/response"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameDeleteCmd())
	cmd.AddCommand(newGamePlayCmd())
	cmd.AddCommand(newGameDrawCmd())
	cmd.AddCommand(newGameCurrentCmd())
	cmd.AddCommand(newGameStandingsCmd())

	return cmd
}

func gamePath(id string, parts ...string) string {
	return "/api/v1/games/" + strings.Join(append([]string{url.PathEscape(id)}, parts...), "/")
}

func newGameCreateCmd() *cobra.Command {
	var (
		req    request.CreateGameRequest
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		Example: `  scrabbly game create --player alice --player bob
  scrabbly game create -p ana --language spanish --width 11 --height 11 --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(req.Players) == 0 {
				return fmt.Errorf("at least one --player is required")
			}
			// Only send strict_bounds when asked so the server default applies otherwise
			if cmd.Flags().Changed("strict") {
				req.StrictBounds = &strict
			}

			var result response.Game
			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&req.Players, "player", "p", nil, "Player name, in turn order (repeatable)")
	cmd.Flags().IntVar(&req.Width, "width", 0, "Board width (server default when 0)")
	cmd.Flags().IntVar(&req.Height, "height", 0, "Board height (server default when 0)")
	cmd.Flags().StringVar(&req.Language, "language", "", "Language: english, spanish")
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject tiles outside the board")

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List game IDs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameList
			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a game and its board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game
			if err := client.Get(gamePath(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(gamePath(args[0])); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).PrintMessage("Game deleted")
			return nil
		},
	}
}

func newGamePlayCmd() *cobra.Command {
	var (
		word string
		at   string
		down bool
	)

	cmd := &cobra.Command{
		Use:   "play <id> [letter@x,y ...]",
		Short: "Play tiles for the current player",
		Long: `Play tiles for the current player.

Tiles are given either one by one as letter@x,y or as a word with --word and
its first cell with --at. Words run left to right unless --down is set.`,
		Example: `  scrabbly game play GAME01 C@7,7 A@8,7 T@9,7
  scrabbly game play GAME01 --word cat --at 7,7 --down`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tiles []request.Tile
			switch {
			case word != "" && len(args) > 1:
				return fmt.Errorf("give either tiles or --word, not both")
			case word != "":
				x, y, err := parseCell(at)
				if err != nil {
					return fmt.Errorf("invalid --at: %w", err)
				}
				tiles = wordTiles(word, x, y, down)
			default:
				for _, arg := range args[1:] {
					t, err := parseTile(arg)
					if err != nil {
						return err
					}
					tiles = append(tiles, t)
				}
			}

			var result response.PlayResponse
			if err := client.Post(gamePath(args[0], "plays"), request.PlayRequest{Tiles: tiles}, &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&word, "word", "", "Word to play")
	cmd.Flags().StringVar(&at, "at", "0,0", "Cell of the word's first letter as x,y")
	cmd.Flags().BoolVar(&down, "down", false, "Play the word top to bottom")

	return cmd
}

func newGameDrawCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "draw <id>",
		Short: "Draw tiles from the game's bag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req request.DrawRequest
			if cmd.Flags().Changed("count") {
				req.Count = &count
			}

			var result response.DrawResponse
			if err := client.Post(gamePath(args[0], "draws"), req, &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of tiles (a full rack when omitted)")

	return cmd
}

func newGameCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current <id>",
		Short: "Show whose turn it is",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Player
			if err := client.Get(gamePath(args[0], "current-player"), &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameStandingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standings <id>",
		Short: "Show players ranked by points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Standings
			if err := client.Get(gamePath(args[0], "standings"), &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}

// parseTile parses letter@x,y
func parseTile(arg string) (request.Tile, error) {
	letter, cell, ok := strings.Cut(arg, "@")
	if !ok || utf8.RuneCountInString(letter) != 1 {
		return request.Tile{}, fmt.Errorf("invalid tile %q: want letter@x,y", arg)
	}
	x, y, err := parseCell(cell)
	if err != nil {
		return request.Tile{}, fmt.Errorf("invalid tile %q: %w", arg, err)
	}
	return request.Tile{Letter: letter, X: x, Y: y}, nil
}

// parseCell parses x,y
func parseCell(s string) (int, int, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid y: %w", err)
	}
	return x, y, nil
}

func wordTiles(word string, x, y int, down bool) []request.Tile {
	var tiles []request.Tile
	for _, r := range word {
		tiles = append(tiles, request.Tile{Letter: string(r), X: x, Y: y})
		if down {
			y++
		} else {
			x++
		}
	}
	return tiles
}
