package game

import "sort"

// visited marks swept empty cells in a probe's private copy of the grid.
const visited Cell = 32000

type probeConfig struct {
	limit int
	pois  []int
}

type ProbeOption func(c *probeConfig)

// WithLimit stops a probe after the given number of rounds.
func WithLimit(rounds int) ProbeOption {
	return func(c *probeConfig) {
		if rounds >= 0 {
			c.limit = rounds
		}
	}
}

// WithPOIs tracks which of the given indices a flood probe reaches.
func WithPOIs(pois ...int) ProbeOption {
	return func(c *probeConfig) {
		c.pois = append(c.pois, pois...)
	}
}

func newProbeConfig(options []ProbeOption) probeConfig {
	c := probeConfig{limit: -1}
	for _, option := range options {
		option(&c)
	}
	return c
}

func (c probeConfig) exhausted(steps int) bool {
	return c.limit >= 0 && steps > c.limit
}

// ProbeResult describes the surroundings swept by a probe. It is never
// modified after the probe returns.
type ProbeResult struct {
	maxDistance int
	emptyCount  int
	objects     []Cell // in discovery order
	distance    map[Cell]int
	position    map[Cell]int
	reached     map[int]struct{}
}

type probeRecorder struct {
	result ProbeResult
}

func newProbeRecorder() *probeRecorder {
	return &probeRecorder{result: ProbeResult{
		distance: make(map[Cell]int),
		position: make(map[Cell]int),
		reached:  make(map[int]struct{}),
	}}
}

// sight records value at idx unless it was already seen.
func (r *probeRecorder) sight(value Cell, idx, steps int) {
	if _, seen := r.result.distance[value]; seen {
		return
	}
	r.result.objects = append(r.result.objects, value)
	r.result.distance[value] = steps
	r.result.position[value] = idx
}

func (r *probeRecorder) finish(steps int) ProbeResult {
	r.result.maxDistance = steps - 1
	return r.result
}

// MaxDistance is the number of rounds the probe advanced.
func (p ProbeResult) MaxDistance() int { return p.maxDistance }

// EmptyCount is the number of empty cells discovered. The origin is not counted.
func (p ProbeResult) EmptyCount() int { return p.emptyCount }

// Objects returns the distinct non-empty values met, in discovery order.
func (p ProbeResult) Objects() []Cell {
	return append([]Cell(nil), p.objects...)
}

// Contains reports whether value was met.
func (p ProbeResult) Contains(value Cell) bool {
	_, ok := p.distance[value]
	return ok
}

// Distance returns the round at which value was first met.
func (p ProbeResult) Distance(value Cell) (int, bool) {
	d, ok := p.distance[value]
	return d, ok
}

// DistanceOr returns the distance to value or fallback if it was not met.
func (p ProbeResult) DistanceOr(value Cell, fallback int) int {
	if d, ok := p.distance[value]; ok {
		return d
	}
	return fallback
}

// Position returns the index at which value was first met.
func (p ProbeResult) Position(value Cell) (int, bool) {
	idx, ok := p.position[value]
	return idx, ok
}

// Closest returns the nearest obstacle. Ties go to the one discovered first.
// ok is false when the probe met no obstacle at all.
func (p ProbeResult) Closest() (value Cell, distance int, ok bool) {
	for _, obj := range p.objects {
		if d := p.distance[obj]; !ok || d < distance {
			value, distance, ok = obj, d, true
		}
	}
	return value, distance, ok
}

// Reached reports whether the point of interest idx was discovered.
func (p ProbeResult) Reached(idx int) bool {
	_, ok := p.reached[idx]
	return ok
}

// PointsReached returns the discovered points of interest in ascending order.
func (p ProbeResult) PointsReached() []int {
	points := make([]int, 0, len(p.reached))
	for idx := range p.reached {
		points = append(points, idx)
	}
	sort.Ints(points)
	return points
}

// BFSProbe explores outward from start in breadth-first rounds over a private
// copy of the grid, counting empty cells and recording the first round each
// distinct obstacle value is met.
func (g *Grid) BFSProbe(start int, options ...ProbeOption) ProbeResult {
	config := newProbeConfig(options)
	cells := g.cells // array copy, the grid itself is never touched
	rec := newProbeRecorder()

	left := make(map[int]struct{}, len(config.pois))
	for _, poi := range config.pois {
		left[poi] = struct{}{}
	}

	front := []int{start}
	steps := 0
	for len(front) > 0 {
		steps++
		if config.exhausted(steps) {
			break
		}
		var next []int
		for _, o := range front {
			for _, d := range Directions {
				idx := o + d.Offset()
				if idx == start {
					continue
				}
				switch value := cells[origin+idx]; value {
				case Empty:
					cells[origin+idx] = visited
					next = append(next, idx)
					rec.result.emptyCount++
				case visited:
				default:
					rec.sight(value, idx, steps)
				}
				if _, ok := left[idx]; ok {
					delete(left, idx)
					rec.result.reached[idx] = struct{}{}
				}
			}
		}
		front = next
	}

	return rec.finish(steps)
}

// RayProbe advances a front of cells from start one step per round in
// direction. Every round width/10 is added to an accumulator; whenever it
// exceeds 1 the front grows by one cell on each lateral side. Cells landing on
// anything but empty are recorded and dropped from the front.
func (g *Grid) RayProbe(start int, direction Direction, width int, options ...ProbeOption) ProbeResult {
	config := newProbeConfig(options)
	rec := newProbeRecorder()

	step := direction.Offset()
	lateral := direction.Lateral()
	widen := float64(width) / 10.0
	grow := 0.0

	front := []int{start}
	steps := 0
	for len(front) > 0 {
		steps++
		if config.exhausted(steps) {
			break
		}
		grow += widen
		moved := make([]int, 0, len(front)+2)
		if grow > 1 {
			grow--
			moved = append(moved, front[0]+step+lateral[0].Offset())
		}
		for _, pt := range front {
			moved = append(moved, pt+step)
		}
		if len(moved) > len(front) {
			moved = append(moved, front[len(front)-1]+step+lateral[1].Offset())
		}

		front = front[:0]
		for _, pt := range moved {
			if value := g.At(pt); value == Empty {
				front = append(front, pt)
			} else {
				rec.sight(value, pt, steps)
			}
		}
		rec.result.emptyCount += len(front)
	}

	return rec.finish(steps)
}
