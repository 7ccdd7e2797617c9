package engine

import "tron/experiments/metrics"

type Engine interface {
	// PlayTurn moves every live player once
	PlayTurn()
	// Run plays turns until at most one player is alive or the turn limit is reached
	Run() (winners []int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
