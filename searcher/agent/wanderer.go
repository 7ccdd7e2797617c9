package agent

import (
	"tron/config"
	"tron/game"
)

// Wanderer moves towards the direction with the most room, weighing the
// depth of the pocket behind each neighbour, its volume and how far the
// nearest obstacle is.
type Wanderer struct {
	cfg config.Wanderer
}

func NewWanderer(cfg *config.Wanderer) *Wanderer {
	return &Wanderer{cfg: *cfg}
}

func (w *Wanderer) FindMove(s Situation) (game.Direction, error) {
	return w.Wander(s.Grid, s.Pos())
}

// Wander picks the best weighted direction from pos.
func (w *Wanderer) Wander(g *game.Grid, pos int) (game.Direction, error) {
	best, bestWeight := game.NoDirection, 0
	for _, d := range game.Directions {
		next := pos + d.Offset()
		if g.At(next) != game.Empty {
			continue
		}
		weight, ok := w.weigh(g.BFSProbe(next, game.WithLimit(w.cfg.Depth)))
		if !ok {
			continue
		}
		// Strictly greater: the first direction scanned keeps a tie.
		if best == game.NoDirection || weight > bestWeight {
			best, bestWeight = d, weight
		}
	}
	if best == game.NoDirection {
		return game.NoDirection, ErrNoViableMove
	}
	return best, nil
}

// weigh scores a probe from a neighbour. Dead end cells are not scored.
func (w *Wanderer) weigh(pr game.ProbeResult) (int, bool) {
	weight := pr.MaxDistance() * w.cfg.DistanceLove
	if weight <= 0 {
		return 0, false
	}
	weight += w.cfg.SpaceLove * pr.EmptyCount()
	if _, distance, ok := pr.Closest(); ok {
		weight += w.cfg.ObstacleFear * distance
	}
	return weight, true
}
