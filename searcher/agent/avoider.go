package agent

import (
	"slices"

	"tron/config"
	"tron/game"
	"tron/utils"
)

// Relative turns, as offsets into game.Clockwise from the last move.
const (
	TurnLeft     = -1
	GoStraight   = 0
	TurnRight    = 1
	farAway      = 100 // distance used for features that were not seen
	closeToEnemy = 2
)

var turns = [3]int{TurnLeft, GoStraight, TurnRight}

// features summarises one probe from the point of view of the player.
type features struct {
	maxDistance int
	closest     int // nearest obstacle of any kind
	empty       int
	head        int // nearest enemy head
	body        int // nearest enemy trail
	wall        int // nearest wall or own trail
}

// outlook holds what a player sees when taking one relative turn.
type outlook struct {
	turn int
	ray  features
	bfs  features
}

// Avoider hugs the walls while keeping most of its pocket open and stays
// clear of enemy heads when the pocket gets tight. It only ever turns
// relative to its last move.
type Avoider struct {
	cfg      config.Avoider
	lastMove game.Direction
}

func NewAvoider(cfg *config.Avoider) *Avoider {
	return &Avoider{cfg: *cfg, lastMove: game.NoDirection}
}

func (a *Avoider) FindMove(s Situation) (game.Direction, error) {
	g, pos := s.Grid, s.Pos()
	if !a.lastMove.Valid() {
		for _, d := range game.Clockwise {
			if g.At(pos+d.Offset()) == game.Empty {
				a.lastMove = d
				return d, nil
			}
		}
		return game.NoDirection, ErrNoViableMove
	}

	last := utils.FindIndex(game.Clockwise[:], a.lastMove)
	full := g.BFSProbe(pos)

	outlooks := make([]outlook, 0, len(turns))
	open := false
	for _, turn := range turns {
		d := utils.Cycle(game.Clockwise[:], last+turn)
		open = open || g.At(pos+d.Offset()) == game.Empty
		outlooks = append(outlooks, a.look(s, d, turn))
	}
	if !open {
		return game.NoDirection, ErrNoViableMove
	}

	turn := a.decide(outlooks, full.EmptyCount())
	a.lastMove = utils.Cycle(game.Clockwise[:], last+turn)
	return a.lastMove, nil
}

// decide prefers the leftmost turn that keeps most of the pocket. Otherwise
// it takes the most voluminous turn that does not run into an enemy head.
func (a *Avoider) decide(outlooks []outlook, pocket int) int {
	threshold := float64(pocket) * float64(a.cfg.Threshold) / 100
	for _, o := range outlooks {
		if float64(o.bfs.empty) > threshold {
			return o.turn
		}
	}

	sorted := slices.Clone(outlooks)
	slices.SortStableFunc(sorted, func(x, y outlook) int {
		if wx, wy := x.ray.empty+x.bfs.empty, y.ray.empty+y.bfs.empty; wx != wy {
			return wy - wx
		}
		return y.turn - x.turn
	})
	for _, o := range sorted {
		if o.ray.head >= closeToEnemy {
			return o.turn
		}
	}
	return sorted[0].turn
}

func (a *Avoider) look(s Situation, d game.Direction, turn int) outlook {
	g, pos := s.Grid, s.Pos()
	next := pos + d.Offset()
	if value := g.At(next); value != game.Empty {
		f := a.blocked(value, s.Me)
		return outlook{turn: turn, ray: f, bfs: f}
	}
	return outlook{
		turn: turn,
		ray:  a.probed(g.RayProbe(pos, d, a.cfg.RayWidth), s.Me),
		bfs:  a.probed(g.BFSProbe(next), s.Me),
	}
}

func (a *Avoider) probed(pr game.ProbeResult, me int) features {
	f := features{
		maxDistance: pr.MaxDistance(),
		closest:     farAway,
		empty:       pr.EmptyCount(),
		head:        farAway,
		body:        farAway,
		wall:        min(pr.DistanceOr(game.Wall, farAway), pr.DistanceOr(game.Body(me), farAway)),
	}
	if _, d, ok := pr.Closest(); ok {
		f.closest = d
	}
	for player := 0; player < game.MaxPlayers; player++ {
		if player == me {
			continue
		}
		f.head = min(f.head, pr.DistanceOr(game.Head(player), farAway))
		f.body = min(f.body, pr.DistanceOr(game.Body(player), farAway))
	}
	return f
}

// blocked describes a turn straight into a filled cell.
func (a *Avoider) blocked(value game.Cell, me int) features {
	f := features{head: farAway, body: farAway, wall: farAway}
	if player, ok := value.Owner(); ok && player != me {
		if value.IsHead() {
			f.head = 0
		} else {
			f.body = 0
		}
		return f
	}
	f.wall = 0
	return f
}
