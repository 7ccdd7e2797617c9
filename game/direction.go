package game

import (
	"errors"
	"fmt"
)

var ErrUnknownDirection = errors.New("unknown direction")

// Direction is one of the four axis moves a light cycle can make.
type Direction int8

const (
	Up Direction = iota
	Down
	Left
	Right
	NoDirection Direction = -1
)

// Directions lists the moves in the order branches are expanded and probed.
var Directions = [4]Direction{Up, Down, Left, Right}

// Clockwise lists the moves in turning order, used for relative turns.
var Clockwise = [4]Direction{Up, Right, Down, Left}

var directionNames = [4]string{"UP", "DOWN", "LEFT", "RIGHT"}

var directionOffsets = [4]int{-RowStride, RowStride, -1, 1}

// Valid reports whether d is one of the four moves.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Offset returns the signed index delta of the move.
func (d Direction) Offset() int {
	if !d.Valid() {
		panic(fmt.Sprintf("offset of invalid direction %d", d))
	}
	return directionOffsets[d]
}

// Opposite returns the reverse move.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return NoDirection
}

// Lateral returns the two moves orthogonal to d, in Directions order.
func (d Direction) Lateral() [2]Direction {
	if d == Up || d == Down {
		return [2]Direction{Left, Right}
	}
	return [2]Direction{Up, Down}
}

func (d Direction) String() string {
	if !d.Valid() {
		return "NONE"
	}
	return directionNames[d]
}

// ParseDirection maps a protocol token to a move.
func ParseDirection(token string) (Direction, error) {
	for i, name := range directionNames {
		if name == token {
			return Direction(i), nil
		}
	}
	return NoDirection, fmt.Errorf("%w: %q", ErrUnknownDirection, token)
}
