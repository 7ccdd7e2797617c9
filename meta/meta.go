// meta/meta.go
package meta

import "time"

// GO_ROUTINES defines the number of goroutines a search may use.
const GO_ROUTINES = 4

// MAX_TURNS bounds a game. No game outlasts the playable cells of the board.
const MAX_TURNS = 600

// FRAME_RATE defines the rendered turns per second of the simulator.
const FRAME_RATE = 10

// MOVE_TIMEOUT defines how long a player program may think about one move.
const MOVE_TIMEOUT = time.Second

// OUTPUT_DIR defines where tournament records are written.
const OUTPUT_DIR = "experiments"
