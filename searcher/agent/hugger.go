package agent

import (
	"tron/config"
	"tron/game"
	"tron/utils"
)

// Hugger follows the closest obstacle clockwise, or turns away from it when
// unhugging, as long as the chosen side keeps enough of the pocket.
type Hugger struct {
	cfg config.Hugger
}

func NewHugger(cfg *config.Hugger) *Hugger {
	return &Hugger{cfg: *cfg}
}

func (h *Hugger) FindMove(s Situation) (game.Direction, error) {
	g, pos := s.Grid, s.Pos()

	// Scan clockwise from the side after the last blocked one.
	start := -1
	for i, d := range game.Clockwise {
		if g.At(pos+d.Offset()) != game.Empty {
			start = i + 1
			if h.cfg.Unhug {
				start++
			}
		}
	}
	if start < 0 {
		return game.Left, nil // nothing to hug
	}

	full := g.BFSProbe(pos, game.WithLimit(h.cfg.Depth))
	threshold := float64(full.EmptyCount()) * float64(h.cfg.Threshold) / 100

	best, bestVolume := game.NoDirection, -1
	for i := start; i < start+len(game.Clockwise); i++ {
		d := utils.Cycle(game.Clockwise[:], i)
		next := pos + d.Offset()
		if g.At(next) != game.Empty {
			continue
		}
		volume := game.Volume(g, next, h.cfg.Depth)
		if float64(volume) >= threshold {
			return d, nil
		}
		// Strictly greater: the first direction scanned keeps a tie.
		if volume > bestVolume {
			best, bestVolume = d, volume
		}
	}
	if best == game.NoDirection {
		return game.NoDirection, ErrNoViableMove
	}
	return best, nil
}
