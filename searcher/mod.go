package searcher

import "tron/game"

// Values backed up through the search tree, from the searching player's view.
const (
	DeadEnd    = -100.0 // the searching player has no legal move
	Kill       = 100.0  // split among the opponents in the pocket
	SpaceScale = 80.0   // bound of the territorial advantage of a leaf
)

// Defaults for the layer bounds and the leaf flood probe depth.
const (
	DefaultMaxLayers    = 5
	DefaultMaxLayerSize = 60
	DefaultEvalDepth    = 40
)

// Result is the outcome of a search. OK is false when the searching player
// has no legal opening move, in which case Direction is game.NoDirection.
type Result struct {
	Value     float64
	Direction game.Direction
	OK        bool
}

// Searcher picks a move for the player described by the grid and its head.
type Searcher interface {
	FindBestMove() Result
}
