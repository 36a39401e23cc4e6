package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/grid-snake/internal/games/snake"
	"github.com/vovakirdan/grid-snake/internal/platform/tui"
	"github.com/vovakirdan/grid-snake/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best recorded runs.

Examples:
  snake scores
  snake scores --limit 25
  snake scores --tui
  snake scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded runs")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(snake.GameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All runs deleted.")
		return
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, snake.GameID, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.TopRuns(snake.GameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Snake")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-6s  %-7s  %-10s  %s\n", "Rank", "Score", "Length", "Moves", "Board", "Player", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-6s  %-7s  %-10s  %s\n", "----", "-----", "------", "-----", "-----", "------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-6d  %-6d  %-7s  %-10s  %s\n",
			i+1, r.Score, r.Length, r.Moves,
			fmt.Sprintf("%dx%d", r.GridH, r.GridW),
			r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GameStats(snake.GameID); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.1f  Longest snake: %d\n",
			stats.Runs, stats.HighScore, stats.AvgScore, stats.MaxLength)
	}
}
