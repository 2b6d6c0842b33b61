package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/ecoquest/internal/config"
	"github.com/jwebster45206/ecoquest/internal/leaderboard"
	"github.com/jwebster45206/ecoquest/internal/logger"
	"github.com/jwebster45206/ecoquest/pkg/game"
)

func main() {
	cfg := config.Load()

	log, logCloser, err := logger.Setup(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logCloser.Close() // Ignore error in defer
	}()

	store, broadcaster := openLeaderboard(cfg, log)
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Failed to close leaderboard", "error", err)
		}
	}()

	g := game.New(game.Options{
		RepeatMissionRewards: cfg.RepeatMissionRewards,
		Logger:               log,
	})
	defer g.Teardown()

	log.Info("EcoQuest starting", "environment", cfg.Environment, "player", cfg.PlayerName, "redis", cfg.RedisURL != "")

	p := tea.NewProgram(NewConsoleUI(cfg, g, store, broadcaster, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("Program exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// openLeaderboard connects to Redis when configured and falls back to an
// in-memory board otherwise, so the game always starts.
func openLeaderboard(cfg *config.Config, log *slog.Logger) (leaderboard.Store, *leaderboard.Broadcaster) {
	if cfg.RedisURL == "" {
		return leaderboard.NewMemoryStore(), leaderboard.NewBroadcaster(nil, log)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.LeaderboardTimeout)
	defer cancel()

	store, err := leaderboard.NewRedisStore(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Warn("Redis leaderboard unavailable, using in-memory board", "error", err)
		return leaderboard.NewMemoryStore(), leaderboard.NewBroadcaster(nil, log)
	}
	return store, leaderboard.NewBroadcaster(store.Client(), log)
}
