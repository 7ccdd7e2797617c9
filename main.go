package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tron/config"
	"tron/engine"
	"tron/experiments"
	"tron/game"
	"tron/gamemaster"
	"tron/render"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file (defaults to $TRON_CONFIG)")
	tournament := flag.Bool("tournament", false, "Play the configured number of games and store the records")
	throughput := flag.Bool("throughput", false, "Time the minimax search with increasing goroutine counts")
	quiet := flag.Bool("quiet", false, "Do not render the game")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *throughput:
		dir, _, err := experiments.RunThroughput(cfg.Output.Dir, experiments.DefaultThroughputOptions(), log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("throughput experiment failed")
		}
		log.Info().Str("dir", dir).Msg("stored throughput records")
	case *tournament:
		dir, standings, err := experiments.RunTournament(ctx, cfg, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("tournament failed")
		}
		for i, p := range cfg.Players {
			fmt.Printf("%d:%s won %d of %d\n", i, p.Name, standings[i], cfg.Game.Games)
		}
		log.Info().Str("dir", dir).Msg("stored tournament records")
	default:
		var options []engine.Option
		if !*quiet {
			options = append(options, engine.WithObserver(screen(cfg.Game.FrameRate)))
		}
		e, err := gamemaster.NewGame(ctx, cfg, nil, log.Logger, options...)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to set up the game")
		}
		winners, _, _ := e.Run()
		for _, seat := range winners {
			fmt.Printf("Winner: %d:%s\n", seat, e.Players()[seat].Title)
		}
	}
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()
}

// screen redraws the terminal after every turn at the given frame rate.
func screen(frameRate float64) engine.Observer {
	var delay time.Duration
	if frameRate > 0 {
		delay = time.Duration(float64(time.Second) / frameRate)
	}
	return func(turn int, g *game.Grid, players []engine.Player) {
		fmt.Print("\033[H\033[2J")
		fmt.Print(render.Frame(g, players, turn))
		time.Sleep(delay)
	}
}
