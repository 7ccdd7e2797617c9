package agent

import (
	"tron/config"
	"tron/game"
	"tron/searcher"
)

// Minimaxer searches the moves of everybody sharing its pocket and falls
// back to wandering when alone or when the search sees no advantage.
type Minimaxer struct {
	cfg        config.Minimaxer
	goroutines int
	wanderer   *Wanderer
	last       searcher.SearchMetrics
	searched   bool
}

func NewMinimaxer(cfg *config.Minimaxer, goroutines int) *Minimaxer {
	return &Minimaxer{
		cfg:        *cfg,
		goroutines: goroutines,
		wanderer:   NewWanderer(&cfg.Wanderer),
	}
}

func (m *Minimaxer) FindMove(s Situation) (game.Direction, error) {
	m.searched = false
	g, pos := s.Grid, s.Pos()

	pocket := g.BFSProbe(pos)
	if game.SeesHeads(pocket) {
		mm := searcher.New(g, s.Self(),
			searcher.WithPocket(pocket),
			searcher.WithMaxLayers(m.cfg.MaxLayers),
			searcher.WithMaxLayerSize(m.cfg.MaxLayerSize),
			searcher.WithGoroutines(m.goroutines),
			searcher.WithMetrics(searcher.NewMetricsCollector()),
		)
		result := mm.FindBestMove()
		m.last, m.searched = mm.Metrics(), true
		if result.OK && result.Value > 0 {
			return result.Direction, nil
		}
	}
	return m.wanderer.Wander(g, pos)
}

func (m *Minimaxer) LastSearch() (searcher.SearchMetrics, bool) {
	return m.last, m.searched
}
