package gamemaster

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"tron/config"
	"tron/engine"
	"tron/experiments/metrics"
	"tron/game"
	"tron/searcher/agent"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Game.Seed = 42
	cfg.Game.MaxTurns = 200
	cfg.Search.Goroutines = 2
	cfg.Players = []config.Player{
		config.DefaultPlayer("hugger", config.StrategyHugger),
		config.DefaultPlayer("avoider", config.StrategyAvoider),
		config.DefaultPlayer("crosser", config.StrategyCrosser),
	}
	cfg.Players[0].Start = &config.Start{X: 3, Y: 4}
	return cfg
}

func TestNewGame(t *testing.T) {
	/*
		Seat the configured players, in configuration order and rotated,
		and check titles, pinned starts and the turn limit.
	*/
	t.Run("configuration order", func(t *testing.T) {
		e, err := NewGame(context.Background(), testConfig(), nil, zerolog.Nop())
		require.NoError(t, err)

		players := e.Players()
		require.Len(t, players, 3)
		require.Equal(t, "hugger", players[0].Title)
		require.Equal(t, "crosser", players[2].Title)
		require.Equal(t, game.Head(0), e.Grid().Get(3, 4), "Pinned start should be used")
	})

	t.Run("rotated seats", func(t *testing.T) {
		e, err := NewGame(context.Background(), testConfig(), []int{2, 0, 1}, zerolog.Nop())
		require.NoError(t, err)

		players := e.Players()
		require.Equal(t, "crosser", players[0].Title)
		require.Equal(t, "hugger", players[1].Title)
		require.Equal(t, game.Head(1), e.Grid().Get(3, 4), "Pinned start follows the player")
	})

	t.Run("plays to the end", func(t *testing.T) {
		cfg := testConfig()
		e, err := NewGame(context.Background(), cfg, nil, zerolog.Nop(), engine.WithCollector(metrics.NewCollector()))
		require.NoError(t, err)

		winners, gameMetric, moves := e.Run()

		require.NotEmpty(t, winners)
		require.LessOrEqual(t, gameMetric.Turns, cfg.Game.MaxTurns)
		require.Positive(t, gameMetric.Turns)
		require.Equal(t, gameMetric.TotalMoves, len(moves))
	})

	t.Run("bad seats", func(t *testing.T) {
		_, err := NewGame(context.Background(), testConfig(), []int{0, 5}, zerolog.Nop())
		require.Error(t, err)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		cfg := testConfig()
		cfg.Players[1].Strategy = "teleporter"
		_, err := NewGame(context.Background(), cfg, nil, zerolog.Nop())
		require.ErrorIs(t, err, agent.ErrNotLocal)
	})

	t.Run("program that cannot start", func(t *testing.T) {
		cfg := testConfig()
		cfg.Players[2].Strategy = config.StrategyProcess
		cfg.Players[2].Command = []string{"/nonexistent/tron-player"}
		_, err := NewGame(context.Background(), cfg, nil, zerolog.Nop())
		require.ErrorContains(t, err, "crosser")
	})
}
