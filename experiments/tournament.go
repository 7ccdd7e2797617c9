package experiments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"tron/config"
	"tron/engine"
	"tron/experiments/metrics"
	"tron/gamemaster"
)

// Standings counts the games each configured player won or shared.
type Standings map[int]int

// RunTournament plays cfg.Game.Games games between the configured players,
// rotating the seats every game, and stores the players, games and moves as
// CSV files under cfg.Output.Dir. It returns the directory written to.
func RunTournament(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (string, Standings, error) {
	writer, err := metrics.NewWriter(cfg.Output.Dir, "tournament")
	if err != nil {
		return "", nil, err
	}

	players := make([]metrics.PlayerRecord, len(cfg.Players))
	for i, p := range cfg.Players {
		players[i] = metrics.PlayerRecord{ID: i, Name: p.Name, Strategy: p.Strategy}
	}
	if err := writer.WritePlayers(players); err != nil {
		return "", nil, err
	}

	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	standings := Standings{}

	logger.Info().Int("games", cfg.Game.Games).Int("players", len(players)).Msg("starting tournament")
	for g := range cfg.Game.Games {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}
		seats := rotation(len(cfg.Players), g)

		gameCfg := *cfg
		if cfg.Game.Seed != 0 {
			gameCfg.Game.Seed = cfg.Game.Seed + uint64(g)
		}
		gameLogger := logger.With().Int("game", g+1).Logger()
		e, err := gamemaster.NewGame(ctx, &gameCfg, seats, gameLogger, engine.WithCollector(metrics.NewCollector()))
		if err != nil {
			return "", nil, fmt.Errorf("game %d: %w", g+1, err)
		}

		winners, gameMetric, moveMetrics := e.Run()
		for _, seat := range winners {
			standings[seats[seat]]++
		}
		gameRecords = append(gameRecords, metrics.GameRecord{Seats: seats, GameMetric: gameMetric})
		for _, mm := range moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: gameMetric.ID.String(), MoveMetric: mm})
		}
		gameLogger.Info().Ints("winners", winners).Int("turns", gameMetric.Turns).
			Msgf("completed game %d of %d", g+1, cfg.Game.Games)
	}
	logger.Info().Msg("completed tournament")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", nil, err
	}
	logger.Debug().Msg("stored game records")
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", nil, err
	}
	logger.Debug().Msg("stored move records")
	return writer.Dir(), standings, nil
}

// rotation seats player (i+game) mod n in seat i.
func rotation(n, game int) []int {
	seats := make([]int, n)
	for i := range seats {
		seats[i] = (i + game) % n
	}
	return seats
}
