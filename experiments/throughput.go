package experiments

import (
	"github.com/rs/zerolog"

	"tron/experiments/metrics"
	"tron/game"
	"tron/searcher"
)

// ThroughputOptions sizes the throughput experiment.
type ThroughputOptions struct {
	Goroutines   []int
	Rounds       int
	MaxLayers    int
	MaxLayerSize int
}

func DefaultThroughputOptions() ThroughputOptions {
	return ThroughputOptions{
		Goroutines:   []int{1, 2, 4, 8, 16},
		Rounds:       3,
		MaxLayers:    6,
		MaxLayerSize: 5000,
	}
}

// Arena returns the position searched by the throughput experiment: four
// players in the open, one per quadrant.
func Arena() (*game.Grid, []game.PlayerInfo) {
	g := game.NewGrid()
	starts := [][2]int{{7, 5}, {22, 5}, {7, 14}, {22, 14}}
	players := make([]game.PlayerInfo, len(starts))
	for i, s := range starts {
		g.Put(s[0], s[1], game.Head(i))
		players[i] = *game.NewPlayerInfo(i, s[0], s[1])
	}
	return g, players
}

// RunThroughput times the same minimax search with each goroutine count and
// stores the results under dir.
func RunThroughput(dir string, opts ThroughputOptions, logger zerolog.Logger) (string, []metrics.ThroughputRecord, error) {
	writer, err := metrics.NewWriter(dir, "throughput")
	if err != nil {
		return "", nil, err
	}

	g, players := Arena()
	records := []metrics.ThroughputRecord{}
	logger.Info().Ints("goroutines", opts.Goroutines).Int("rounds", opts.Rounds).Msg("starting throughput experiment")
	for _, goroutines := range opts.Goroutines {
		for round := range opts.Rounds {
			mm := searcher.New(g, &players[0],
				searcher.WithMaxLayers(opts.MaxLayers),
				searcher.WithMaxLayerSize(opts.MaxLayerSize),
				searcher.WithGoroutines(goroutines),
				searcher.WithMetrics(searcher.NewMetricsCollector()),
			)
			mm.FindBestMove()
			search := mm.Metrics()
			record := metrics.ThroughputRecord{
				Goroutines: goroutines,
				Round:      round + 1,
				Duration:   search.Duration,
				SearchMetric: metrics.SearchMetric{
					Searched:   true,
					Goroutines: search.Goroutines,
					Layers:     search.Layers,
					States:     search.States,
					Evaluated:  search.Evaluated,
				},
			}
			records = append(records, record)
			logger.Info().Int("goroutines", goroutines).Int("round", round+1).
				Dur("duration", search.Duration).Int64("states", search.States).
				Float64("states_per_second", record.StatesPerSecond()).Msg("search timed")
		}
	}

	if err := writer.WriteThroughput(records); err != nil {
		return "", nil, err
	}
	return writer.Dir(), records, nil
}
