package searcher

import (
	"fmt"

	"tron/game"
)

// Move records one step of one player inside the search tree.
type Move struct {
	Player    int
	Mine      bool
	Direction game.Direction
}

func (m Move) String() string {
	return fmt.Sprintf("%d:%s", m.Player, m.Direction)
}

// untracked marks a player slot that takes no part in the search.
const untracked = -1

// State is one node of the search tree. States live in per-layer slices; the
// parent is an index into the previous layer and the children are the range
// [ChildStart, ChildEnd) of the next layer, so dropping the layers releases
// the whole tree at once.
type State struct {
	Moves      []Move
	Grid       *game.Grid
	Positions  [game.MaxPlayers]int // head index per player, untracked if not searched
	Next       int                  // player to move after this state
	Parent     int                  // index in the previous layer, -1 below the root
	ChildStart int
	ChildEnd   int
	Value      float64
}

// Player returns the player that made the last move.
func (s *State) Player() int {
	return s.Moves[len(s.Moves)-1].Player
}

// Direction returns the first move on the path to this state.
func (s *State) Direction() game.Direction {
	return s.Moves[0].Direction
}

// Children returns the number of child states.
func (s *State) Children() int {
	return s.ChildEnd - s.ChildStart
}

// play returns the child state reached when player moves in direction, or
// false when the target cell is not empty in this state's grid.
func (s *State) play(player int, direction game.Direction, mine bool) (State, bool) {
	cur := s.Positions[player]
	pos := cur + direction.Offset()
	if s.Grid.At(pos) != game.Empty {
		return State{}, false
	}

	grid := s.Grid.Clone()
	grid.Set(pos, game.Head(player))
	grid.Set(cur, game.Body(player))

	moves := make([]Move, len(s.Moves)+1)
	copy(moves, s.Moves)
	moves[len(s.Moves)] = Move{Player: player, Mine: mine, Direction: direction}

	child := State{
		Moves:     moves,
		Grid:      grid,
		Positions: s.Positions,
		Parent:    -1,
	}
	child.Positions[player] = pos
	return child, true
}
