package metrics

import (
	"time"

	"github.com/google/uuid"
)

// SearchMetric describes the tree search behind a move, if any.
type SearchMetric struct {
	Searched   bool
	Goroutines int
	Layers     int
	States     int64
	Evaluated  int64
}

type MoveMetric struct {
	Turn      int
	Player    int // seat
	Direction string
	Duration  time.Duration
	Death     string // reason the move killed the player, empty if it did not
	SearchMetric
}

type GameMetric struct {
	ID         uuid.UUID
	Players    int
	Winners    []int // seats
	Turns      int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// Collector accumulates the metrics of one game.
type Collector interface {
	Start(players int)
	AddMove(move MoveMetric)
	Complete(winners []int, turns int) (GameMetric, []MoveMetric)
}

type collector struct {
	id        uuid.UUID
	players   int
	startTime time.Time
	moves     []MoveMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(players int) {
	c.id = uuid.New()
	c.players = players
	c.startTime = time.Now()
	c.moves = nil
}

func (c *collector) AddMove(move MoveMetric) {
	c.moves = append(c.moves, move)
}

func (c *collector) Complete(winners []int, turns int) (GameMetric, []MoveMetric) {
	end := time.Now()
	return GameMetric{
		ID:         c.id,
		Players:    c.players,
		Winners:    winners,
		Turns:      turns,
		StartTime:  c.startTime,
		EndTime:    end,
		Duration:   end.Sub(c.startTime),
		TotalMoves: len(c.moves),
	}, c.moves
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start(players int)       {}
func (c *dummyCollector) AddMove(move MoveMetric) {}
func (c *dummyCollector) Complete(winners []int, turns int) (GameMetric, []MoveMetric) {
	return GameMetric{Winners: winners, Turns: turns}, nil
}
