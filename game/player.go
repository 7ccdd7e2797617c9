package game

// PlayerInfo tracks one light cycle. X0,Y0 is the head position before the
// last move and X1,Y1 the current head.
type PlayerInfo struct {
	Number int
	X0, Y0 int
	X1, Y1 int
	Alive  bool
}

// NewPlayerInfo places a live player at (x, y).
func NewPlayerInfo(number, x, y int) *PlayerInfo {
	return &PlayerInfo{Number: number, X0: x, Y0: y, X1: x, Y1: y, Alive: true}
}

// Move records a coordinate update. x0 == -1 marks the player dead for good.
func (p *PlayerInfo) Move(x0, y0, x1, y1 int) {
	if x0 == -1 {
		p.Alive = false
		return
	}
	if !p.Alive {
		return
	}
	p.X0, p.Y0, p.X1, p.Y1 = x0, y0, x1, y1
}

// Die marks the player dead. Dead players never come back.
func (p *PlayerInfo) Die() {
	p.Alive = false
}

// Head returns the current head coordinates.
func (p *PlayerInfo) Head() (x, y int) {
	return p.X1, p.Y1
}

// Pos returns the grid index of the head.
func (p *PlayerInfo) Pos() int {
	return Index(p.X1, p.Y1)
}

// Coords returns the protocol tuple, all -1 for a dead player.
func (p *PlayerInfo) Coords() [4]int {
	if !p.Alive {
		return [4]int{-1, -1, -1, -1}
	}
	return [4]int{p.X0, p.Y0, p.X1, p.Y1}
}
