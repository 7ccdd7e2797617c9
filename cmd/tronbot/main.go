// Command tronbot plays one local strategy over standard input and output,
// for use as a process player.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"tron/communication/client"
	"tron/config"
	"tron/meta"
	"tron/searcher/agent"
)

func main() {
	strategy := flag.String("strategy", config.StrategyWanderer, "Strategy to play")
	configPath := flag.String("config", "", "YAML configuration to take the player parameters from")
	name := flag.String("player", "", "Name of the configured player whose parameters are used")
	goroutines := flag.Int("goroutines", meta.GO_ROUTINES, "Workers for the minimax search")
	level := flag.String("log-level", "warn", "Log level")
	flag.Parse()

	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	// Standard output carries the protocol, so logs go to standard error.
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(lvl).With().Timestamp().Str("strategy", *strategy).Logger()

	player, err := selectPlayer(*configPath, *name, *strategy)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid player")
	}
	a, err := agent.New(player, &config.Search{Goroutines: *goroutines})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create agent")
	}

	c := client.New(client.NewStdioCommunicator(os.Stdin, os.Stdout), a, logger)
	if err := c.Run(); err != nil {
		logger.Fatal().Err(err).Msg("game aborted")
	}
}

func selectPlayer(path, name, strategy string) (*config.Player, error) {
	if path == "" {
		p := config.DefaultPlayer(strategy, strategy)
		return &p, p.Validate()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	for i := range cfg.Players {
		if cfg.Players[i].Name == name {
			return &cfg.Players[i], nil
		}
	}
	return nil, fmt.Errorf("no player named %q in %s", name, path)
}
