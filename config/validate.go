package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"tron/game"
)

var ErrInvalidConfig = errors.New("invalid config")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate checks that the configuration describes a playable game.
func (c *Config) Validate() error {
	if n := len(c.Players); n < 2 || n > game.MaxPlayers {
		return invalid("need 2 to %d players, got %d", game.MaxPlayers, n)
	}
	if c.Game.MaxTurns <= 0 {
		return invalid("max_turns must be positive")
	}
	if c.Game.Games <= 0 {
		return invalid("games must be positive")
	}
	if c.Game.FrameRate < 0 {
		return invalid("frame_rate must not be negative")
	}
	if c.Game.MoveTimeout <= 0 {
		return invalid("move_timeout must be positive")
	}
	if c.Search.Goroutines <= 0 {
		return invalid("goroutines must be positive")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return invalid("log level %q", c.Log.Level)
	}

	starts := map[Start]bool{}
	for i := range c.Players {
		p := &c.Players[i]
		if err := p.Validate(); err != nil {
			return fmt.Errorf("player %d (%s): %w", i, p.Name, err)
		}
		if p.Start != nil {
			if starts[*p.Start] {
				return invalid("player %d shares its start with another player", i)
			}
			starts[*p.Start] = true
		}
	}
	return nil
}

func (p *Player) Validate() error {
	var err error
	switch p.Strategy {
	case StrategyWanderer:
		err = p.Wanderer.Validate()
	case StrategyHugger:
		err = p.Hugger.Validate()
	case StrategyCrosser:
		err = p.Crosser.Validate()
	case StrategyMinimaxer:
		err = p.Minimaxer.Validate()
	case StrategyAvoider:
		err = p.Avoider.Validate()
	case StrategyProcess:
		if len(p.Command) == 0 || p.Command[0] == "" {
			err = invalid("process player needs a command")
		}
	default:
		err = invalid("unknown strategy %q", p.Strategy)
	}
	if err != nil {
		return err
	}
	if p.Start != nil {
		s := p.Start
		if s.X < 0 || s.X >= game.Width || s.Y < 0 || s.Y >= game.Height {
			return invalid("start (%d, %d) is off the board", s.X, s.Y)
		}
	}
	return nil
}

func (w Wanderer) Validate() error {
	if w.Depth <= 0 {
		return invalid("wanderer depth must be positive")
	}
	return nil
}

func (h Hugger) Validate() error {
	if h.Depth <= 0 {
		return invalid("hugger depth must be positive")
	}
	return percent("hugger threshold", h.Threshold)
}

func (c Crosser) Validate() error {
	if err := c.Wanderer.Validate(); err != nil {
		return err
	}
	if c.RayWidth < 0 || c.RayWidth > 10 {
		return invalid("ray_width must be within 0..10")
	}
	if c.PocketThreshold < 0 {
		return invalid("pocket_threshold must not be negative")
	}
	return percent("claustrophobia", c.Claustrophobia)
}

func (m Minimaxer) Validate() error {
	if err := m.Wanderer.Validate(); err != nil {
		return err
	}
	if m.MaxLayers <= 0 || m.MaxLayerSize <= 0 {
		return invalid("layer bounds must be positive")
	}
	return nil
}

func (a Avoider) Validate() error {
	if a.RayWidth < 0 || a.RayWidth > 10 {
		return invalid("ray_width must be within 0..10")
	}
	return percent("avoider threshold", a.Threshold)
}

func percent(name string, v int) error {
	if v < 0 || v > 100 {
		return invalid("%s must be within 0..100", name)
	}
	return nil
}
