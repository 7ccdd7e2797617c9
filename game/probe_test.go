package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var center = Index(15, 10)

// boxGrid surrounds the middle of the board with the trail of player 0.
func boxGrid() *Grid {
	g := NewGrid()
	g.HLine(5, 5, 24, Body(0))
	g.HLine(15, 5, 24, Body(0))
	g.VLine(5, 5, 14, Body(0))
	g.VLine(25, 5, 14, Body(0))
	return g
}

func TestBFSProbe(t *testing.T) {
	t.Run("probing the center of an empty board", func(t *testing.T) {
		g := NewGrid()
		res := g.BFSProbe(center)

		obj, d, ok := res.Closest()
		require.True(t, ok)
		require.Equal(t, Wall, obj, "The only obstacle should be the wall")
		require.Equal(t, 10, d, "The nearest border is 10 steps down")
		require.Equal(t, 25, res.MaxDistance())
		require.Equal(t, Cells-1, res.EmptyCount(), "The start point is never counted")
		require.Equal(t, []Cell{Wall}, res.Objects())
	})

	t.Run("probing is repeatable and leaves the grid untouched", func(t *testing.T) {
		g := boxGrid()
		g.Put(6, 6, Head(1))
		before := *g

		first := g.BFSProbe(center, WithPOIs(Index(6, 7)))
		second := g.BFSProbe(center, WithPOIs(Index(6, 7)))

		require.Equal(t, first, second)
		require.Equal(t, before, *g)
	})

	t.Run("probing with obstacles", func(t *testing.T) {
		g := NewGrid()
		g.Put(10, 8, 1)
		g.Put(5, 19, 2)

		res := g.BFSProbe(center)

		obj, d, ok := res.Closest()
		require.True(t, ok)
		require.Equal(t, Cell(1), obj)
		require.Equal(t, 7, d)
		require.Equal(t, 25, res.MaxDistance())
		require.Equal(t, Cells-3, res.EmptyCount(), "Two obstacles and the start point are not counted")
		require.ElementsMatch(t, []Cell{1, 2, Wall}, res.Objects())
		require.Equal(t, 7, res.DistanceOr(1, 100))
		require.Equal(t, 19, res.DistanceOr(2, 100))
		require.Equal(t, 10, res.DistanceOr(Wall, 100))
		pos, ok := res.Position(2)
		require.True(t, ok)
		require.Equal(t, Index(5, 19), pos)
	})

	t.Run("probing inside a trail box", func(t *testing.T) {
		g := boxGrid()
		res := g.BFSProbe(center)

		obj, d, ok := res.Closest()
		require.True(t, ok)
		require.Equal(t, Body(0), obj)
		require.Equal(t, 5, d)
		require.Equal(t, 13, res.MaxDistance())
		require.Equal(t, 9*19-1, res.EmptyCount())
		require.Equal(t, []Cell{Body(0)}, res.Objects())
	})

	t.Run("probing with a depth limit", func(t *testing.T) {
		g := boxGrid()
		res := g.BFSProbe(center, WithLimit(3))

		_, _, ok := res.Closest()
		require.False(t, ok, "No obstacle is within 3 steps")
		require.Equal(t, 3, res.MaxDistance())
		require.Equal(t, 24, res.EmptyCount())
		require.Empty(t, res.Objects())
	})

	t.Run("probing a box with a head inside", func(t *testing.T) {
		g := boxGrid()
		g.Put(6, 6, Head(0))
		res := g.BFSProbe(center)

		obj, d, _ := res.Closest()
		require.Equal(t, Body(0), obj)
		require.Equal(t, 5, d)
		require.Equal(t, 13, res.MaxDistance())
		require.Equal(t, 9*19-2, res.EmptyCount())
		require.ElementsMatch(t, []Cell{Body(0), Head(0)}, res.Objects())
	})

	t.Run("probing a box with a head outside", func(t *testing.T) {
		g := boxGrid()
		g.Put(5, 4, Head(0))
		res := g.BFSProbe(center)

		require.Equal(t, 9*19-1, res.EmptyCount())
		require.Equal(t, []Cell{Body(0)}, res.Objects())
		require.False(t, res.Contains(Head(0)))
	})

	t.Run("tracking points of interest", func(t *testing.T) {
		g := boxGrid()
		right := Index(16, 10)
		left := Index(14, 10)
		up := Index(15, 9)
		out := Index(1, 1)

		res := g.BFSProbe(center, WithPOIs(right, left, up, out))

		require.Equal(t, []int{up, left, right}, res.PointsReached())
		require.False(t, res.Reached(out))
	})

	t.Run("probing from a sealed cell", func(t *testing.T) {
		g := NewGrid()
		g.Put(0, 1, Body(0))
		g.Put(1, 0, Body(1))
		res := g.BFSProbe(Index(0, 0))

		require.Equal(t, 0, res.EmptyCount())
		require.Equal(t, 0, res.MaxDistance())
		require.ElementsMatch(t, []Cell{Wall, Body(0), Body(1)}, res.Objects())
	})
}

func TestRayProbe(t *testing.T) {
	t.Run("scanning an empty board from the center", func(t *testing.T) {
		cases := []struct {
			direction   Direction
			width       int
			maxDistance int
			obstacle    int
			empty       int
		}{
			{Up, 0, 10, 10, 10},
			{Down, 0, 9, 9, 9},
			{Left, 0, 15, 15, 15},
			{Right, 0, 14, 14, 14},
			{Up, 5, 10, 10, 50},
			{Up, 10, 10, 10, 100},
			{Down, 5, 9, 9, 41},
			{Down, 10, 9, 9, 81},
			{Left, 5, 15, 15, 113},
			{Left, 10, 15, 10, 200},
			{Right, 5, 14, 14, 98},
			{Right, 10, 14, 10, 180},
		}
		g := NewGrid()
		for _, c := range cases {
			res := g.RayProbe(center, c.direction, c.width)

			obj, d, ok := res.Closest()
			require.True(t, ok, "%s/%d", c.direction, c.width)
			require.Equal(t, Wall, obj, "%s/%d", c.direction, c.width)
			require.Equal(t, c.obstacle+1, d, "%s/%d", c.direction, c.width)
			require.Equal(t, c.maxDistance, res.MaxDistance(), "%s/%d", c.direction, c.width)
			require.Equal(t, c.empty, res.EmptyCount(), "%s/%d", c.direction, c.width)
			require.Equal(t, []Cell{Wall}, res.Objects(), "%s/%d", c.direction, c.width)
		}
	})

	t.Run("scanning into obstacles", func(t *testing.T) {
		g := NewGrid()
		g.Put(20, 10, 1)
		g.Put(25, 10, 2)
		g.Put(25, 13, 3)

		res := g.RayProbe(center, Right, 0)
		require.Equal(t, []Cell{1}, res.Objects())
		require.Equal(t, 5, res.DistanceOr(1, 100))

		res = g.RayProbe(center, Right, 4)
		require.ElementsMatch(t, []Cell{1, 3, Wall}, res.Objects())
		require.Equal(t, 10, res.DistanceOr(3, 100))
	})

	t.Run("a narrow ray visits one cell per round", func(t *testing.T) {
		g := NewGrid()
		for depth := 1; depth <= 9; depth++ {
			res := g.RayProbe(center, Down, 0, WithLimit(depth))
			require.Equal(t, depth, res.EmptyCount())
			require.Equal(t, depth, res.MaxDistance())
		}
	})

	t.Run("widening at least doubles the scanned space", func(t *testing.T) {
		g := NewGrid()
		for _, d := range Directions {
			narrow := g.RayProbe(center, d, 0, WithLimit(6))
			wide := g.RayProbe(center, d, 10, WithLimit(6))
			require.GreaterOrEqual(t, wide.EmptyCount(), 2*narrow.EmptyCount(), d.String())
		}
	})

	t.Run("ignoring points of interest", func(t *testing.T) {
		g := NewGrid()
		res := g.RayProbe(center, Up, 0, WithPOIs(Index(15, 9)))
		require.Empty(t, res.PointsReached())
	})
}
