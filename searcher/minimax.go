package searcher

import (
	"math"

	"golang.org/x/sync/errgroup"

	"tron/game"
)

// Minimax searches the joint moves of one player and the opponents sharing
// its pocket. Players move in index order; the searching player maximises the
// backed-up value and the opponents minimise it.
type Minimax struct {
	grid         *game.Grid
	me           int
	myPos        int
	pocket       *game.ProbeResult
	opponents    map[int]int
	root         State
	layers       [][]State
	movers       []int // player moving into each layer
	maxLayers    int
	maxLayerSize int
	goroutines   int
	evalDepth    int
	metrics      MetricsCollector
}

// New prepares a search for player on grid. The grid is never modified.
func New(grid *game.Grid, player *game.PlayerInfo, options ...Option) *Minimax {
	m := &Minimax{ // Default values
		grid:         grid,
		me:           player.Number,
		myPos:        player.Pos(),
		maxLayers:    DefaultMaxLayers,
		maxLayerSize: DefaultMaxLayerSize,
		goroutines:   1,
		evalDepth:    DefaultEvalDepth,
		metrics:      NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.pocket == nil {
		pocket := grid.BFSProbe(m.myPos)
		m.pocket = &pocket
	}
	m.opponents = game.HeadsInPocket(*m.pocket, m.me)
	m.root = m.initState()
	return m
}

func (m *Minimax) initState() State {
	s := State{Grid: m.grid, Next: m.me, Parent: -1}
	for i := range s.Positions {
		s.Positions[i] = untracked
	}
	for player, pos := range m.opponents {
		s.Positions[player] = pos
	}
	s.Positions[m.me] = m.myPos
	return s
}

// Me returns the searching player.
func (m *Minimax) Me() int { return m.me }

// Pos returns the searching player's head index.
func (m *Minimax) Pos() int { return m.myPos }

// Opponents returns the head positions of the opponents taking part.
func (m *Minimax) Opponents() map[int]int {
	out := make(map[int]int, len(m.opponents))
	for player, pos := range m.opponents {
		out[player] = pos
	}
	return out
}

// Layers returns the expanded layers, shallowest first.
func (m *Minimax) Layers() [][]State { return m.layers }

// Root returns the zero-move state the tree grows from.
func (m *Minimax) Root() State { return m.root }

func (m *Minimax) FindBestMove() Result {
	m.metrics.Start(m.goroutines, len(m.opponents))
	for i := 0; i < m.maxLayers; i++ {
		if !m.ComputeNextLayer() {
			break
		}
		if len(m.layers[len(m.layers)-1]) > m.maxLayerSize {
			break
		}
	}
	m.ComputeValues()
	result := m.Decide()
	m.Release()
	return result
}

// NextPlayerAfter returns who moves after player, skipping players outside the search.
func (m *Minimax) NextPlayerAfter(player int) int {
	next := (player + 1) % game.MaxPlayers
	for next != m.me {
		if _, ok := m.opponents[next]; ok {
			break
		}
		next = (next + 1) % game.MaxPlayers
	}
	return next
}

// ComputeNextLayer expands every state of the deepest layer by one move of
// the next player. It reports false when there was nothing left to expand.
func (m *Minimax) ComputeNextLayer() bool {
	var prev []State
	var mover int
	if len(m.layers) == 0 {
		prev = []State{m.root}
		mover = m.me // we start
	} else {
		prev = m.layers[len(m.layers)-1]
		mover = m.NextPlayerAfter(m.movers[len(m.movers)-1])
	}
	if len(prev) == 0 {
		return false
	}

	expanded := make([][]State, len(prev))
	m.forEach(len(prev), func(i int) {
		expanded[i] = m.expand(&prev[i], mover)
	})

	var layer []State
	for i := range prev {
		prev[i].ChildStart = len(layer)
		for _, child := range expanded[i] {
			child.Parent = i
			layer = append(layer, child)
		}
		prev[i].ChildEnd = len(layer)
	}
	if len(m.layers) == 0 {
		m.root = prev[0]
	}

	m.layers = append(m.layers, layer)
	m.movers = append(m.movers, mover)
	m.metrics.AddLayer(len(layer))
	return true
}

func (m *Minimax) expand(state *State, player int) []State {
	next := m.NextPlayerAfter(player)
	children := make([]State, 0, len(game.Directions))
	for _, d := range game.Directions {
		child, ok := state.play(player, d, player == m.me)
		if !ok {
			continue
		}
		child.Next = next
		children = append(children, child)
	}
	return children
}

// ComputeValues scores the deepest layer and backs the values up to the first.
func (m *Minimax) ComputeValues() {
	for depth := len(m.layers) - 1; depth >= 0; depth-- {
		layer := m.layers[depth]
		if depth == len(m.layers)-1 {
			m.forEach(len(layer), func(i int) {
				m.evaluate(&layer[i])
			})
			continue
		}
		below := m.layers[depth+1]
		for i := range layer {
			m.aggregate(&layer[i], below)
		}
	}
}

// evaluate scores a leaf by comparing the space each tracked player can reach.
func (m *Minimax) evaluate(state *State) {
	volume := func(player int) int {
		return game.Volume(state.Grid, state.Positions[player], m.evalDepth)
	}

	mine := volume(m.me)
	others := make([]int, 0, len(m.opponents))
	for player := range m.opponents {
		others = append(others, volume(player))
	}
	state.Value = game.Advantage(mine, others, SpaceScale)
	m.metrics.AddEvaluated()
}

// aggregate backs up the value of the children of state.
func (m *Minimax) aggregate(state *State, below []State) {
	nextIsMe := state.Next == m.me
	children := below[state.ChildStart:state.ChildEnd]
	if len(children) == 0 {
		if nextIsMe {
			state.Value = DeadEnd
		} else {
			state.Value = Kill / float64(len(m.opponents))
		}
		return
	}

	value := children[0].Value
	for _, child := range children[1:] {
		if nextIsMe {
			value = math.Max(value, child.Value)
		} else {
			value = math.Min(value, child.Value)
		}
	}
	state.Value = value
}

// Decide picks the opening move with the highest value, the first one on ties.
func (m *Minimax) Decide() Result {
	if len(m.layers) == 0 || len(m.layers[0]) == 0 {
		return Result{Value: DeadEnd, Direction: game.NoDirection}
	}
	best := &m.layers[0][0]
	for i := range m.layers[0][1:] {
		if s := &m.layers[0][i+1]; s.Value > best.Value {
			best = s
		}
	}
	return Result{Value: best.Value, Direction: best.Direction(), OK: true}
}

// Metrics returns the measurements of the last search.
func (m *Minimax) Metrics() SearchMetrics {
	return m.metrics.Complete()
}

// Release drops the tree so it can be collected in one go.
func (m *Minimax) Release() {
	m.layers = nil
	m.movers = nil
	m.root.ChildStart, m.root.ChildEnd = 0, 0
}

func (m *Minimax) forEach(n int, fn func(i int)) {
	if m.goroutines <= 1 || n < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var g errgroup.Group
	g.SetLimit(m.goroutines)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}
