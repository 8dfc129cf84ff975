package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blastpong/internal/registry"
	"github.com/vovakirdan/blastpong/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores and recent runs for a game",
	Long: `Display the top high scores, run statistics and the most recent
runs for the specified game.

Examples:
  arcade scores bomber
  arcade scores pong --limit 20
  arcade scores bomber --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores and runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores and runs of the game")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]
	mustGame(gameID)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s.\n", title)
		return
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Printf("  %-4s  %-12s  %-10s  %s\n", "Rank", "Player", "Score", "Date")
		fmt.Printf("  %-4s  %-12s  %-10s  %s\n", "----", "------", "-----", "----")
		for i, entry := range scores {
			player := entry.Player
			if player == "" {
				player = "-"
			}
			fmt.Printf("  %-4d  %-12s  %-10d  %s\n", i+1, player, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Wins: %d  Best: %d  Average: %.1f\n",
			stats.GamesCount, stats.Wins, stats.HighScore, stats.AvgScore)
	}

	runs, err := store.RecentRuns(gameID, flagScoresLimit)
	if err != nil || len(runs) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Recent runs:")
	fmt.Printf("  %-6s  %-20s  %-10s  %-8s  %-6s  %s\n", "ID", "Seed", "Outcome", "Ticks", "Score", "Date")
	for _, r := range runs {
		fmt.Printf("  %-6d  %-20d  %-10s  %-8d  %-6d  %s\n",
			r.ID, r.Seed, r.Outcome, r.Ticks, r.Score, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
