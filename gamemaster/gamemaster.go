package gamemaster

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"tron/communication/server"
	"tron/config"
	"tron/engine"
	"tron/searcher/agent"
)

// NewGame seats the configured players and returns a game ready to run.
// seats lists the index in cfg.Players of the player taking each seat; nil
// seats the players in configuration order. Player programs are killed when
// ctx is cancelled.
func NewGame(ctx context.Context, cfg *config.Config, seats []int, logger zerolog.Logger, options ...engine.Option) (*engine.LocalEngine, error) {
	if seats == nil {
		seats = make([]int, len(cfg.Players))
		for i := range seats {
			seats[i] = i
		}
	}

	titles := make([]string, len(seats))
	agents := make([]agent.Agent, 0, len(seats))
	settings := []engine.Option{
		engine.WithLogger(logger),
		engine.WithMaxTurns(cfg.Game.MaxTurns),
		engine.WithSeed(cfg.Game.Seed),
	}
	for seat, index := range seats {
		if index < 0 || index >= len(cfg.Players) {
			closeAll(agents)
			return nil, fmt.Errorf("seat %d: no player %d", seat, index)
		}
		p := &cfg.Players[index]
		a, err := newAgent(ctx, cfg, p, logger.With().Int("player", seat).Logger())
		if err != nil {
			closeAll(agents)
			return nil, fmt.Errorf("player %q: %w", p.Name, err)
		}
		titles[seat] = p.Name
		agents = append(agents, a)
		if p.Start != nil {
			settings = append(settings, engine.WithStart(seat, p.Start.X, p.Start.Y))
		}
	}

	return engine.NewLocalEngine(titles, agents, append(settings, options...)...), nil
}

func newAgent(ctx context.Context, cfg *config.Config, p *config.Player, logger zerolog.Logger) (agent.Agent, error) {
	a, err := agent.New(p, &cfg.Search)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, agent.ErrNotLocal) || p.Strategy != config.StrategyProcess {
		return nil, err
	}
	return server.Start(ctx, p.Command, cfg.Game.MoveTimeout, logger)
}

func closeAll(agents []agent.Agent) {
	for _, a := range agents {
		if closer, ok := a.(io.Closer); ok {
			_ = closer.Close()
		}
	}
}
