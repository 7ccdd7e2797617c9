package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"tron/experiments/metrics"
	"tron/game"
	"tron/meta"
	"tron/searcher/agent"
)

// Observer is called after every turn with a read-only view of the game.
type Observer func(turn int, grid *game.Grid, players []Player)

// LocalEngine owns the live grid and plays the agents against each other in
// seat order. A player moving later in a turn sees the moves already applied
// earlier in the same turn.
type LocalEngine struct {
	grid      *game.Grid
	players   []Player
	agents    []agent.Agent
	turn      int
	maxTurns  int
	seed      uint64
	starts    map[int][2]int
	observers []Observer
	collector metrics.Collector
	logger    zerolog.Logger
}

var _ Engine = (*LocalEngine)(nil)

type Option func(e *LocalEngine)

func WithLogger(logger zerolog.Logger) Option {
	return func(e *LocalEngine) {
		e.logger = logger
	}
}

func WithMaxTurns(turns int) Option {
	return func(e *LocalEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// WithSeed fixes the spawn positions of players without a start. 0 uses the clock.
func WithSeed(seed uint64) Option {
	return func(e *LocalEngine) {
		e.seed = seed
	}
}

// WithStart pins the spawn cell of a seat.
func WithStart(seat, x, y int) Option {
	return func(e *LocalEngine) {
		e.starts[seat] = [2]int{x, y}
	}
}

func WithObserver(observer Observer) Option {
	return func(e *LocalEngine) {
		e.observers = append(e.observers, observer)
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(e *LocalEngine) {
		if collector != nil {
			e.collector = collector
		}
	}
}

// NewLocalEngine seats one agent per title and spawns every player on an empty cell.
func NewLocalEngine(titles []string, agents []agent.Agent, options ...Option) *LocalEngine {
	if len(titles) != len(agents) {
		panic("number of players does not match number of agents")
	}
	if len(titles) < 2 || len(titles) > game.MaxPlayers {
		panic(fmt.Sprintf("need 2 to %d players", game.MaxPlayers))
	}

	e := &LocalEngine{ // Default values
		grid:      game.NewGrid(),
		players:   make([]Player, len(titles)),
		agents:    agents,
		maxTurns:  meta.MAX_TURNS,
		starts:    map[int][2]int{},
		collector: metrics.NewDummyCollector(),
		logger:    zerolog.Nop(),
	}
	for _, option := range options {
		option(e)
	}
	if e.seed == 0 {
		e.seed = uint64(time.Now().UnixNano())
	}

	// Pinned starts are placed before any random draw.
	heads := make([][2]int, len(titles))
	for seat := range titles {
		start, pinned := e.starts[seat]
		if !pinned {
			continue
		}
		if e.grid.Get(start[0], start[1]) != game.Empty {
			panic(fmt.Sprintf("start of player %d is taken", seat))
		}
		e.grid.Put(start[0], start[1], game.Head(seat))
		heads[seat] = start
	}
	rng := rand.New(rand.NewSource(e.seed))
	for seat := range titles {
		if _, pinned := e.starts[seat]; pinned {
			continue
		}
		x, y := e.spawn(rng)
		e.grid.Put(x, y, game.Head(seat))
		heads[seat] = [2]int{x, y}
	}
	for seat, title := range titles {
		x, y := heads[seat][0], heads[seat][1]
		e.players[seat] = Player{PlayerInfo: *game.NewPlayerInfo(seat, x, y), Title: title}
	}
	return e
}

// spawn draws a random empty cell.
func (e *LocalEngine) spawn(rng *rand.Rand) (x, y int) {
	for {
		x, y = rng.Intn(game.Width), rng.Intn(game.Height)
		if e.grid.Get(x, y) == game.Empty {
			return x, y
		}
	}
}

func (e *LocalEngine) Grid() *game.Grid { return e.grid }

func (e *LocalEngine) Players() []Player { return e.players }

func (e *LocalEngine) Turn() int { return e.turn }

// Alive returns the seats of the live players.
func (e *LocalEngine) Alive() []int {
	var alive []int
	for seat := range e.players {
		if e.players[seat].Alive {
			alive = append(alive, seat)
		}
	}
	return alive
}

// Run plays until at most one player is left or the turn limit is reached.
// The winners are the players alive at the end or, when the last turn killed
// everybody, the players that entered it.
func (e *LocalEngine) Run() ([]int, metrics.GameMetric, []metrics.MoveMetric) {
	defer e.closeAgents()
	e.collector.Start(len(e.players))
	e.logger.Info().Int("players", len(e.players)).Uint64("seed", e.seed).Msg("game started")

	survivors := e.Alive()
	for len(survivors) > 1 && e.turn < e.maxTurns {
		e.PlayTurn()
		for _, observer := range e.observers {
			observer(e.turn, e.grid, e.players)
		}
		if alive := e.Alive(); len(alive) > 0 {
			survivors = alive
		} else {
			break
		}
	}

	gameMetric, moveMetrics := e.collector.Complete(survivors, e.turn)
	e.logger.Info().Ints("winners", survivors).Int("turns", e.turn).Msg("game completed")
	return survivors, gameMetric, moveMetrics
}

// PlayTurn moves every live player once, in seat order.
func (e *LocalEngine) PlayTurn() {
	e.turn++
	e.logger.Debug().Int("turn", e.turn).Msg("turn started")
	for seat := range e.players {
		if e.players[seat].Alive {
			e.playMove(seat)
		}
	}
	e.logger.Debug().Int("turn", e.turn).Msg("turn completed")
}

func (e *LocalEngine) playMove(seat int) {
	p := &e.players[seat]
	situation := agent.Situation{
		PlayerCount: len(e.players),
		Me:          seat,
		Players:     e.infos(),
		Grid:        e.grid.Clone(),
	}

	start := time.Now()
	direction, err := e.agents[seat].FindMove(situation)
	elapsed := time.Since(start)
	p.record(elapsed)

	move := metrics.MoveMetric{Turn: e.turn, Player: seat, Direction: direction.String(), Duration: elapsed}
	if reporter, ok := e.agents[seat].(agent.SearchReporter); ok {
		if search, searched := reporter.LastSearch(); searched {
			move.SearchMetric = metrics.SearchMetric{
				Searched:   true,
				Goroutines: search.Goroutines,
				Layers:     search.Layers,
				States:     search.States,
				Evaluated:  search.Evaluated,
			}
		}
	}

	switch {
	case err != nil:
		p.Message = err.Error()
		move.Death = fmt.Sprintf("no move: %v", err)
	case !direction.Valid():
		move.Death = fmt.Sprintf("invalid command: %s", direction)
	default:
		p.Message = direction.String()
		pos := p.Pos()
		next := pos + direction.Offset()
		if e.grid.At(next) != game.Empty {
			move.Death = fmt.Sprintf("%s is an illegal move", direction)
			break
		}
		e.grid.Set(pos, game.Body(seat))
		e.grid.Set(next, game.Head(seat))
		x, y := game.Coords(next)
		p.Move(p.X1, p.Y1, x, y)
	}
	if move.Death != "" {
		e.kill(seat, move.Death)
	}
	e.collector.AddMove(move)
}

// kill marks the player dead and erases its trail from the grid.
func (e *LocalEngine) kill(seat int, reason string) {
	p := &e.players[seat]
	p.Die()
	p.DeathTurn = e.turn
	p.Reason = reason
	e.grid.Replace(game.Body(seat), game.Empty)
	e.grid.Replace(game.Head(seat), game.Empty)
	e.logger.Info().Int("player", seat).Int("turn", e.turn).Str("reason", reason).Msg("player died")
	e.closeAgent(seat)
}

func (e *LocalEngine) infos() []game.PlayerInfo {
	infos := make([]game.PlayerInfo, len(e.players))
	for i := range e.players {
		infos[i] = e.players[i].PlayerInfo
	}
	return infos
}

func (e *LocalEngine) closeAgent(seat int) {
	if closer, ok := e.agents[seat].(io.Closer); ok {
		if err := closer.Close(); err != nil {
			e.logger.Warn().Err(err).Int("player", seat).Msg("failed to close agent")
		}
	}
}

func (e *LocalEngine) closeAgents() {
	for seat := range e.players {
		if e.players[seat].Alive {
			e.closeAgent(seat)
		}
	}
}
