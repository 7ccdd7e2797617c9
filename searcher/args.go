package searcher

import "tron/game"

type Option func(m *Minimax)

// WithMaxLayers bounds the number of plies expanded.
func WithMaxLayers(layers int) Option {
	return func(m *Minimax) {
		if layers > 0 {
			m.maxLayers = layers
		}
	}
}

// WithMaxLayerSize stops expansion once a layer grows beyond size states.
func WithMaxLayerSize(size int) Option {
	return func(m *Minimax) {
		if size > 0 {
			m.maxLayerSize = size
		}
	}
}

// WithGoroutines spreads layer expansion and leaf evaluation over workers.
func WithGoroutines(goroutines int) Option {
	return func(m *Minimax) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

// WithEvalDepth sets the flood probe depth used to score leaves.
func WithEvalDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.evalDepth = depth
		}
	}
}

// WithPocket reuses a full flood probe from the searching player's head.
func WithPocket(pocket game.ProbeResult) Option {
	return func(m *Minimax) {
		m.pocket = &pocket
	}
}

func WithMetrics(collector MetricsCollector) Option {
	return func(m *Minimax) {
		if collector != nil {
			m.metrics = collector
		}
	}
}
