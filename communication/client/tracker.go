package client

import (
	"fmt"

	"tron/communication"
	"tron/game"
	"tron/searcher/agent"
)

// Tracker rebuilds the grid on the player side from the coordinate updates.
// The previous head of a moving player becomes body, the new one head, and the
// trail of a player reported dead is erased.
type Tracker struct {
	grid    *game.Grid
	players []game.PlayerInfo
}

func NewTracker() *Tracker {
	return &Tracker{grid: game.NewGrid()}
}

func (t *Tracker) Grid() *game.Grid { return t.grid }

func (t *Tracker) Players() []game.PlayerInfo { return t.players }

// Apply folds one update into the grid.
func (t *Tracker) Apply(u communication.Update) error {
	if t.players == nil {
		t.players = make([]game.PlayerInfo, u.PlayerCount)
		for i := range t.players {
			t.players[i] = game.PlayerInfo{Number: i, X0: -1, Y0: -1, X1: -1, Y1: -1}
		}
	} else if len(t.players) != u.PlayerCount {
		return fmt.Errorf("%w: %d players, was %d", communication.ErrMalformed, u.PlayerCount, len(t.players))
	}

	for i, c := range u.Coords {
		p := &t.players[i]
		if c == communication.Dead {
			if p.Alive {
				t.grid.Replace(game.Body(i), game.Empty)
				t.grid.Replace(game.Head(i), game.Empty)
				p.Die()
			}
			continue
		}
		if !onBoard(c[0], c[1]) || !onBoard(c[2], c[3]) {
			return fmt.Errorf("%w: player %d at %v", communication.ErrMalformed, i, c)
		}
		switch {
		case p.X1 == -1:
			// First sighting: the trail so far is just the two reported cells.
			*p = *game.NewPlayerInfo(i, c[2], c[3])
			p.X0, p.Y0 = c[0], c[1]
			t.grid.Put(c[0], c[1], game.Body(i))
		case !p.Alive:
			continue
		default:
			t.grid.Put(p.X1, p.Y1, game.Body(i))
		}
		t.grid.Put(c[2], c[3], game.Head(i))
		p.Move(c[0], c[1], c[2], c[3])
	}
	return nil
}

// Situation returns what the agent of seat me gets to see.
func (t *Tracker) Situation(me int) agent.Situation {
	players := make([]game.PlayerInfo, len(t.players))
	copy(players, t.players)
	return agent.Situation{
		PlayerCount: len(players),
		Me:          me,
		Players:     players,
		Grid:        t.grid.Clone(),
	}
}

func onBoard(x, y int) bool {
	return x >= 0 && x < game.Width && y >= 0 && y < game.Height
}
