package agent

import (
	"tron/config"
	"tron/game"
)

type Phase int

const (
	// Open means others are in sight and there is plenty of space.
	Open Phase = iota
	// Pocket means others are in sight in a small space.
	Pocket
	// Lonely means nobody else can be reached.
	Lonely
)

func (p Phase) String() string {
	switch p {
	case Open:
		return "open"
	case Pocket:
		return "pocket"
	default:
		return "lonely"
	}
}

// phaseDepth bounds the probe used to tell the phases apart.
const phaseDepth = 50

// Crosser runs straight across the field towards the most open side while
// others are around and fills its space with a wanderer once alone.
type Crosser struct {
	cfg      config.Crosser
	wanderer *Wanderer
}

func NewCrosser(cfg *config.Crosser) *Crosser {
	return &Crosser{cfg: *cfg, wanderer: NewWanderer(&cfg.Wanderer)}
}

// Phase classifies the situation at pos and returns the probe it used.
func (c *Crosser) Phase(g *game.Grid, pos int) (Phase, game.ProbeResult) {
	pr := g.BFSProbe(pos, game.WithLimit(phaseDepth))
	switch {
	case !game.SeesHeads(pr):
		return Lonely, pr
	case pr.EmptyCount() >= c.cfg.PocketThreshold:
		return Open, pr
	default:
		return Pocket, pr
	}
}

func (c *Crosser) FindMove(s Situation) (game.Direction, error) {
	g, pos := s.Grid, s.Pos()
	phase, full := c.Phase(g, pos)
	if phase == Lonely {
		return c.wanderer.Wander(g, pos)
	}

	d := c.straight(g, pos)
	next := pos + d.Offset()
	if g.At(next) == game.Empty {
		threshold := float64(full.EmptyCount()) * float64(c.cfg.Claustrophobia) / 100
		if float64(game.Volume(g, next, c.cfg.Wanderer.Depth)) > threshold {
			return d, nil
		}
	}
	return c.wanderer.Wander(g, pos)
}

// straight returns the direction whose ray goes furthest and meets its first
// obstacle latest.
func (c *Crosser) straight(g *game.Grid, pos int) game.Direction {
	best, bestWeight := game.NoDirection, 0
	for _, d := range game.Directions {
		ray := g.RayProbe(pos, d, c.cfg.RayWidth)
		_, closest, _ := ray.Closest()
		weight := ray.MaxDistance() + 3*closest
		if best == game.NoDirection || weight > bestWeight {
			best, bestWeight = d, weight
		}
	}
	return best
}
