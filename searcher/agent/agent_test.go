package agent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tron/config"
	"tron/game"
)

// situation places the heads of the given players (x, y pairs) on g.
func situation(g *game.Grid, me int, heads ...[2]int) Situation {
	players := make([]game.PlayerInfo, len(heads))
	for i, h := range heads {
		players[i] = *game.NewPlayerInfo(i, h[0], h[1])
		g.Put(h[0], h[1], game.Head(i))
	}
	return Situation{PlayerCount: len(heads), Me: me, Players: players, Grid: g}
}

func boxed() Situation {
	g := game.NewGrid()
	s := situation(g, 0, [2]int{0, 0})
	g.Put(1, 0, game.Wall)
	g.Put(0, 1, game.Body(0))
	return s
}

func TestNew(t *testing.T) {
	search := &config.Search{Goroutines: 2}
	tests := []struct {
		strategy string
		want     Agent
	}{
		{config.StrategyWanderer, &Wanderer{}},
		{config.StrategyHugger, &Hugger{}},
		{config.StrategyCrosser, &Crosser{}},
		{config.StrategyMinimaxer, &Minimaxer{}},
		{config.StrategyAvoider, &Avoider{}},
	}
	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			p := config.DefaultPlayer("p", tt.strategy)
			got, err := New(&p, search)
			require.NoError(t, err)
			require.IsType(t, tt.want, got)
		})
	}

	t.Run("process players are not local", func(t *testing.T) {
		p := config.DefaultPlayer("p", config.StrategyProcess)
		_, err := New(&p, search)
		require.ErrorIs(t, err, ErrNotLocal)
	})

	t.Run("reporting strategies", func(t *testing.T) {
		p := config.DefaultPlayer("p", config.StrategyMinimaxer)
		got, _ := New(&p, search)
		require.Implements(t, (*SearchReporter)(nil), got)
	})
}

func TestBoxedPlayers(t *testing.T) {
	cfg := config.Default().Players[0]
	agents := map[string]Agent{
		"wanderer":  NewWanderer(&cfg.Wanderer),
		"hugger":    NewHugger(&cfg.Hugger),
		"crosser":   NewCrosser(&cfg.Crosser),
		"minimaxer": NewMinimaxer(&cfg.Minimaxer, 1),
		"avoider":   NewAvoider(&cfg.Avoider),
	}
	for name, a := range agents {
		t.Run(name, func(t *testing.T) {
			d, err := a.FindMove(boxed())
			require.ErrorIs(t, err, ErrNoViableMove, "A boxed player has no viable move")
			require.Equal(t, game.NoDirection, d)
		})
	}
}

func TestWanderer(t *testing.T) {
	w := NewWanderer(&config.Wanderer{Depth: 20, DistanceLove: 100, ObstacleFear: 100, SpaceLove: 100})

	t.Run("open field", func(t *testing.T) {
		d, err := w.FindMove(situation(game.NewGrid(), 0, [2]int{15, 10}))
		require.NoError(t, err)
		require.True(t, d.Valid())
	})

	t.Run("skips dead ends", func(t *testing.T) {
		g := game.NewGrid()
		s := situation(g, 0, [2]int{0, 0})
		g.Put(2, 0, game.Wall)
		g.Put(1, 1, game.Wall)

		d, err := w.FindMove(s)

		require.NoError(t, err)
		require.Equal(t, game.Down, d, "The cell to the right leads nowhere")
	})

	t.Run("single open side", func(t *testing.T) {
		g := game.NewGrid()
		s := situation(g, 0, [2]int{5, 10})
		g.VLine(4, 0, game.Height-1, game.Wall)
		g.HLine(10, 6, game.Width-1, game.Wall)
		g.VLine(5, 11, game.Height-1, game.Wall)

		d, err := w.FindMove(s)

		require.NoError(t, err)
		require.Equal(t, game.Up, d, "Only up is open")
	})
}

func TestHugger(t *testing.T) {
	t.Run("nothing to hug", func(t *testing.T) {
		h := NewHugger(&config.Hugger{Depth: 30, Threshold: 90})
		d, err := h.FindMove(situation(game.NewGrid(), 0, [2]int{15, 10}))
		require.NoError(t, err)
		require.Equal(t, game.Left, d)
	})

	t.Run("follows the wall clockwise", func(t *testing.T) {
		h := NewHugger(&config.Hugger{Depth: 30, Threshold: 90})
		d, err := h.FindMove(situation(game.NewGrid(), 0, [2]int{0, 10}))
		require.NoError(t, err)
		require.Equal(t, game.Up, d, "With the wall on the left the hugger turns up")
	})

	t.Run("unhug turns away", func(t *testing.T) {
		h := NewHugger(&config.Hugger{Depth: 30, Unhug: true, Threshold: 90})
		d, err := h.FindMove(situation(game.NewGrid(), 0, [2]int{0, 10}))
		require.NoError(t, err)
		require.Equal(t, game.Right, d)
	})

	t.Run("falls back to the largest side", func(t *testing.T) {
		h := NewHugger(&config.Hugger{Depth: 30, Threshold: 100})
		g := game.NewGrid()
		s := situation(g, 0, [2]int{0, 10})
		g.HLine(9, 1, game.Width-1, game.Wall)
		g.HLine(11, 1, game.Width-1, game.Wall)

		d, err := h.FindMove(s)

		require.NoError(t, err)
		require.Equal(t, game.Up, d, "Up leads to the larger half, right is a corridor")
	})
}

func TestCrosser(t *testing.T) {
	cfg := config.DefaultCrosser()

	t.Run("phases", func(t *testing.T) {
		c := NewCrosser(&cfg)

		g := game.NewGrid()
		situation(g, 0, [2]int{2, 10})
		phase, _ := c.Phase(g, game.Index(2, 10))
		require.Equal(t, Lonely, phase)

		situation(g, 0, [2]int{2, 10}, [2]int{5, 10})
		phase, pr := c.Phase(g, game.Index(2, 10))
		require.Equal(t, Open, phase)
		require.GreaterOrEqual(t, pr.EmptyCount(), cfg.PocketThreshold)

		tight := cfg
		tight.PocketThreshold = 10000
		phase, _ = NewCrosser(&tight).Phase(g, game.Index(2, 10))
		require.Equal(t, Pocket, phase)
	})

	t.Run("lonely crosser wanders", func(t *testing.T) {
		c := NewCrosser(&cfg)
		s := situation(game.NewGrid(), 0, [2]int{2, 10})

		got, err := c.FindMove(s)
		require.NoError(t, err)
		want, _ := NewWanderer(&cfg.Wanderer).FindMove(s)
		require.Equal(t, want, got)
	})

	t.Run("crosses towards the open side", func(t *testing.T) {
		c := NewCrosser(&cfg)
		s := situation(game.NewGrid(), 0, [2]int{2, 10}, [2]int{27, 10})

		d, err := c.FindMove(s)

		require.NoError(t, err)
		require.Equal(t, game.Right, d)
	})
}

func TestMinimaxer(t *testing.T) {
	cfg := config.DefaultMinimaxer()

	t.Run("alone it wanders", func(t *testing.T) {
		m := NewMinimaxer(&cfg, 1)
		s := situation(game.NewGrid(), 0, [2]int{2, 10})

		got, err := m.FindMove(s)

		require.NoError(t, err)
		want, _ := NewWanderer(&cfg.Wanderer).FindMove(s)
		require.Equal(t, want, got)
		_, searched := m.LastSearch()
		require.False(t, searched, "No search without opponents in sight")
	})

	t.Run("catches the opponent", func(t *testing.T) {
		m := NewMinimaxer(&cfg, 2)
		g := game.NewGrid()
		s := situation(g, 1, [2]int{20, 5}, [2]int{2, 15}, [2]int{0, 5})
		g.VLine(19, 0, game.Height-1, game.Wall) // keeps player 0 out of the pocket
		g.VLine(3, 0, 15, game.Body(1))

		d, err := m.FindMove(s)

		require.NoError(t, err)
		require.Equal(t, game.Left, d)
		metrics, searched := m.LastSearch()
		require.True(t, searched)
		require.Equal(t, 1, metrics.Opponents)
		require.Equal(t, 3, metrics.Layers, "Third layer outgrows the layer bound")
	})
}

func TestAvoider(t *testing.T) {
	cfg := config.DefaultAvoider()

	t.Run("first move is the first open side clockwise", func(t *testing.T) {
		a := NewAvoider(&cfg)
		d, err := a.FindMove(situation(game.NewGrid(), 0, [2]int{0, 0}))
		require.NoError(t, err)
		require.Equal(t, game.Right, d)
	})

	t.Run("turns left while the pocket stays open", func(t *testing.T) {
		a := NewAvoider(&cfg)
		s := situation(game.NewGrid(), 0, [2]int{15, 10})

		first, err := a.FindMove(s)
		require.NoError(t, err)
		require.Equal(t, game.Up, first)

		second, err := a.FindMove(s)
		require.NoError(t, err)
		require.Equal(t, game.Left, second, "Left of up is left")
	})

	t.Run("avoids enemy heads in a tight pocket", func(t *testing.T) {
		a := NewAvoider(&cfg)
		outlooks := []outlook{
			{turn: TurnLeft, ray: features{empty: 5, head: farAway}, bfs: features{empty: 10}},
			{turn: GoStraight, ray: features{empty: 9, head: 1}, bfs: features{empty: 20}},
			{turn: TurnRight, ray: features{empty: 1, head: farAway}, bfs: features{empty: 10}},
		}

		require.Equal(t, TurnLeft, a.decide(outlooks, 100),
			"Straight is the largest but leads to a head, left beats right")
	})

	t.Run("keeps an open turn", func(t *testing.T) {
		a := NewAvoider(&cfg)
		outlooks := []outlook{
			{turn: TurnLeft, bfs: features{empty: 10}},
			{turn: GoStraight, bfs: features{empty: 90}},
			{turn: TurnRight, bfs: features{empty: 95}},
		}

		require.Equal(t, GoStraight, a.decide(outlooks, 100))
	})

	t.Run("every turn near a head", func(t *testing.T) {
		a := NewAvoider(&cfg)
		outlooks := []outlook{
			{turn: TurnLeft, ray: features{empty: 1, head: 0}},
			{turn: GoStraight, ray: features{empty: 1, head: 1}},
			{turn: TurnRight, ray: features{empty: 3, head: 0}},
		}

		require.Equal(t, TurnRight, a.decide(outlooks, 100), "Largest volume wins")
	})
}
