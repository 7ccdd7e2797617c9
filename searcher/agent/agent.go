package agent

import (
	"errors"
	"fmt"

	"tron/config"
	"tron/game"
	"tron/searcher"
)

var (
	// ErrNoViableMove is returned when every move available to the player is fatal.
	ErrNoViableMove = errors.New("no viable move")
	// ErrNotLocal is returned by New for players that are not played in process.
	ErrNotLocal = errors.New("not a local strategy")
)

// Situation is everything a player is told before each move.
type Situation struct {
	PlayerCount int
	Me          int
	Players     []game.PlayerInfo
	Grid        *game.Grid
}

// Self returns the player being asked for a move.
func (s Situation) Self() *game.PlayerInfo {
	return &s.Players[s.Me]
}

// Pos returns the head index of the player being asked for a move.
func (s Situation) Pos() int {
	return s.Players[s.Me].Pos()
}

type Agent interface {
	// FindMove returns the direction to move in, or ErrNoViableMove.
	FindMove(s Situation) (game.Direction, error)
}

// SearchReporter is implemented by agents that may run a tree search for a move.
type SearchReporter interface {
	// LastSearch returns the metrics of the search behind the last move, if any.
	LastSearch() (searcher.SearchMetrics, bool)
}

// New builds the local strategy configured for a player.
func New(p *config.Player, search *config.Search) (Agent, error) {
	switch p.Strategy {
	case config.StrategyWanderer:
		return NewWanderer(&p.Wanderer), nil
	case config.StrategyHugger:
		return NewHugger(&p.Hugger), nil
	case config.StrategyCrosser:
		return NewCrosser(&p.Crosser), nil
	case config.StrategyMinimaxer:
		return NewMinimaxer(&p.Minimaxer, search.Goroutines), nil
	case config.StrategyAvoider:
		return NewAvoider(&p.Avoider), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrNotLocal, p.Strategy)
	}
}
