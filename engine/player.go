package engine

import (
	"time"

	"tron/game"
)

// Player is the engine's record of one seat.
type Player struct {
	game.PlayerInfo
	Title     string
	Steps     int
	TotalTime time.Duration
	MaxTime   time.Duration
	Message   string // last answer of the agent
	DeathTurn int
	Reason    string
}

// AvgStepTime returns the mean time the agent took per move.
func (p *Player) AvgStepTime() time.Duration {
	if p.Steps == 0 {
		return 0
	}
	return p.TotalTime / time.Duration(p.Steps)
}

func (p *Player) record(elapsed time.Duration) {
	p.Steps++
	p.TotalTime += elapsed
	p.MaxTime = max(p.MaxTime, elapsed)
}
