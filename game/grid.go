package game

import (
	"fmt"
	"strings"
)

// Board geometry. Coordinates map to indices as idx = x + y<<StrideShift, so
// x = idx & (RowStride-1) and y = idx >> StrideShift. Columns Width..RowStride-1
// of every row and PadRows rows above and below the board are permanent walls,
// which lets any in-board cell be displaced by a step (or a diagonal step)
// without bounds checks.
const (
	Width       = 30
	Height      = 20
	StrideShift = 6
	RowStride   = 1 << StrideShift
	PadRows     = 2

	// Cells is the number of playable cells.
	Cells = Width * Height

	origin    = PadRows * RowStride
	totalRows = Height + 2*PadRows
)

// MaxPlayers is the number of player slots the cell encoding supports.
const MaxPlayers = 4

// Cell is the content of one grid position.
type Cell int16

const (
	Wall  Cell = -1
	Empty Cell = 0
)

// Body returns the trail value of the given player.
func Body(player int) Cell {
	return Cell(player + 4)
}

// Head returns the head value of the given player.
func Head(player int) Cell {
	return Cell(player + 8)
}

// Owner returns the player a body or head value belongs to.
func (c Cell) Owner() (player int, ok bool) {
	switch {
	case c >= 4 && c < 4+MaxPlayers:
		return int(c) - 4, true
	case c >= 8 && c < 8+MaxPlayers:
		return int(c) - 8, true
	}
	return -1, false
}

// IsHead reports whether c is a player head.
func (c Cell) IsHead() bool {
	return c >= 8 && c < 8+MaxPlayers
}

// Grid is the 30x20 playfield. The zero value is not usable, use NewGrid.
type Grid struct {
	cells [totalRows * RowStride]Cell
}

// NewGrid returns an empty board surrounded by walls.
func NewGrid() *Grid {
	g := &Grid{}
	for i := range g.cells {
		g.cells[i] = Wall
	}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			g.cells[origin+Index(x, y)] = Empty
		}
	}
	return g
}

// Index maps board coordinates to a grid index.
func Index(x, y int) int {
	return x + y<<StrideShift
}

// Coords maps a grid index back to board coordinates.
func Coords(idx int) (x, y int) {
	return idx & (RowStride - 1), idx >> StrideShift
}

// Playable reports whether idx addresses a cell inside the board.
func Playable(idx int) bool {
	x, y := Coords(idx)
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// At returns the value at idx. idx must be within one diagonal step of the board.
func (g *Grid) At(idx int) Cell {
	return g.cells[origin+idx]
}

// Set writes the value at idx.
func (g *Grid) Set(idx int, value Cell) {
	g.cells[origin+idx] = value
}

func (g *Grid) Get(x, y int) Cell {
	return g.At(Index(x, y))
}

func (g *Grid) Put(x, y int, value Cell) {
	g.Set(Index(x, y), value)
}

// HLine fills row y from x0 to x1 inclusive.
func (g *Grid) HLine(y, x0, x1 int, value Cell) {
	for x := x0; x <= x1; x++ {
		g.Put(x, y, value)
	}
}

// VLine fills column x from y0 to y1 inclusive.
func (g *Grid) VLine(x, y0, y1 int, value Cell) {
	for y := y0; y <= y1; y++ {
		g.Put(x, y, value)
	}
}

// Replace substitutes every playable cell holding src with dst.
func (g *Grid) Replace(src, dst Cell) {
	for y := 0; y < Height; y++ {
		row := origin + y<<StrideShift
		for i := row; i < row+Width; i++ {
			if g.cells[i] == src {
				g.cells[i] = dst
			}
		}
	}
}

// Count returns the number of playable cells holding value.
func (g *Grid) Count(value Cell) int {
	n := 0
	for y := 0; y < Height; y++ {
		row := origin + y<<StrideShift
		for i := row; i < row+Width; i++ {
			if g.cells[i] == value {
				n++
			}
		}
	}
	return n
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := *g
	return &c
}

// FloodFill overwrites every empty cell reachable from origins with value,
// one breadth-first ring at a time. Origins are only filled if reached again
// from a neighbour.
func (g *Grid) FloodFill(value Cell, origins []int) {
	if value == Empty {
		return
	}
	front := append([]int(nil), origins...)
	for len(front) > 0 {
		var next []int
		for _, o := range front {
			for _, d := range Directions {
				idx := o + d.Offset()
				if g.At(idx) == Empty {
					g.Set(idx, value)
					next = append(next, idx)
				}
			}
		}
		front = next
	}
}

func (g *Grid) String() string {
	var b strings.Builder
	border := strings.Repeat("#", Width*3+2)
	b.WriteString(border + "\n")
	for y := 0; y < Height; y++ {
		b.WriteByte('#')
		for x := 0; x < Width; x++ {
			if v := g.Get(x, y); v != Empty {
				fmt.Fprintf(&b, "%2d ", v)
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteString("#\n")
	}
	b.WriteString(border)
	return b.String()
}
