package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"tron/meta"
)

// Strategy names accepted in the players list.
const (
	StrategyWanderer  = "wanderer"
	StrategyHugger    = "hugger"
	StrategyCrosser   = "crosser"
	StrategyMinimaxer = "minimaxer"
	StrategyAvoider   = "avoider"
	StrategyProcess   = "process"
)

// Environment variables read by Load.
const (
	EnvConfig   = "TRON_CONFIG"
	EnvLogLevel = "TRON_LOG_LEVEL"
	EnvSeed     = "TRON_SEED"
	EnvMaxTurns = "TRON_MAX_TURNS"
)

type Config struct {
	Game    Game     `yaml:"game"`
	Search  Search   `yaml:"search"`
	Log     Log      `yaml:"log"`
	Output  Output   `yaml:"output"`
	Players []Player `yaml:"players"`
}

type Game struct {
	MaxTurns    int           `yaml:"max_turns"`
	Seed        uint64        `yaml:"seed"` // 0 picks a seed from the clock
	FrameRate   float64       `yaml:"frame_rate"`
	Games       int           `yaml:"games"` // per tournament
	MoveTimeout time.Duration `yaml:"move_timeout"`
}

type Search struct {
	Goroutines int `yaml:"goroutines"`
}

type Log struct {
	Level string `yaml:"level"`
}

type Output struct {
	Dir string `yaml:"dir"`
}

// Start pins the spawn cell of a player.
type Start struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Player describes one seat: a local strategy or an external program.
type Player struct {
	Name      string    `yaml:"name"`
	Strategy  string    `yaml:"strategy"`
	Command   []string  `yaml:"command"`
	Start     *Start    `yaml:"start"`
	Wanderer  Wanderer  `yaml:"wanderer"`
	Hugger    Hugger    `yaml:"hugger"`
	Crosser   Crosser   `yaml:"crosser"`
	Minimaxer Minimaxer `yaml:"minimaxer"`
	Avoider   Avoider   `yaml:"avoider"`
}

type Wanderer struct {
	Depth        int `yaml:"depth"`
	DistanceLove int `yaml:"distance_love"`
	ObstacleFear int `yaml:"obstacle_fear"`
	SpaceLove    int `yaml:"space_love"`
}

type Hugger struct {
	Depth     int  `yaml:"depth"`
	Unhug     bool `yaml:"unhug"`
	Threshold int  `yaml:"threshold"` // % of the pocket a direction must keep
}

type Crosser struct {
	Wanderer        Wanderer `yaml:"wanderer"`
	RayWidth        int      `yaml:"ray_width"`
	PocketThreshold int      `yaml:"pocket_threshold"`
	Claustrophobia  int      `yaml:"claustrophobia"` // % of space needed to keep going straight
}

type Minimaxer struct {
	Wanderer     Wanderer `yaml:"wanderer"`
	MaxLayers    int      `yaml:"max_layers"`
	MaxLayerSize int      `yaml:"max_layer_size"`
}

type Avoider struct {
	RayWidth  int `yaml:"ray_width"`
	Threshold int `yaml:"threshold"` // % of the pocket an open direction keeps
}

func DefaultWanderer() Wanderer {
	return Wanderer{Depth: 20, DistanceLove: 100, ObstacleFear: 100, SpaceLove: 100}
}

// fillerWanderer is the wanderer used as fallback by crossers and minimaxers.
func fillerWanderer() Wanderer {
	return Wanderer{Depth: 30, DistanceLove: 100, ObstacleFear: -3, SpaceLove: 30}
}

func DefaultHugger() Hugger {
	return Hugger{Depth: 30, Threshold: 90}
}

func DefaultCrosser() Crosser {
	return Crosser{Wanderer: fillerWanderer(), RayWidth: 6, PocketThreshold: 100, Claustrophobia: 85}
}

func DefaultMinimaxer() Minimaxer {
	return Minimaxer{Wanderer: fillerWanderer(), MaxLayers: 8, MaxLayerSize: 10}
}

func DefaultAvoider() Avoider {
	return Avoider{RayWidth: 10, Threshold: 80}
}

// DefaultPlayer returns a player of the given strategy with default parameters.
func DefaultPlayer(name, strategy string) Player {
	return Player{
		Name:      name,
		Strategy:  strategy,
		Wanderer:  DefaultWanderer(),
		Hugger:    DefaultHugger(),
		Crosser:   DefaultCrosser(),
		Minimaxer: DefaultMinimaxer(),
		Avoider:   DefaultAvoider(),
	}
}

// Default returns a two player game between a minimaxer and a wanderer.
func Default() *Config {
	return &Config{
		Game: Game{
			MaxTurns:    meta.MAX_TURNS,
			FrameRate:   meta.FRAME_RATE,
			Games:       1,
			MoveTimeout: meta.MOVE_TIMEOUT,
		},
		Search: Search{Goroutines: meta.GO_ROUTINES},
		Log:    Log{Level: "info"},
		Output: Output{Dir: meta.OUTPUT_DIR},
		Players: []Player{
			DefaultPlayer("minimaxer", StrategyMinimaxer),
			DefaultPlayer("wanderer", StrategyWanderer),
		},
	}
}

// UnmarshalYAML fills the parameters a player entry leaves out with defaults.
func (p *Player) UnmarshalYAML(value *yaml.Node) error {
	type plain Player
	out := plain(DefaultPlayer("", ""))
	if err := strictDecode(value, &out); err != nil {
		return err
	}
	*p = Player(out)
	return nil
}

// strictDecode decodes a node rejecting unknown fields, which Node.Decode
// does not do on its own.
func strictDecode(value *yaml.Node, out any) error {
	raw, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	return decoder.Decode(out)
}

// Decode reads a YAML document over the values already in cfg.
func Decode(r io.Reader, cfg *Config) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// Load builds the configuration from defaults, the YAML file at path (or
// TRON_CONFIG when path is empty) and environment overrides, then validates it.
// A .env file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open config: %w", err)
		}
		defer f.Close()
		if err := Decode(f, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if level, ok := os.LookupEnv(EnvLogLevel); ok {
		c.Log.Level = level
	}
	if raw, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%s must be an unsigned integer: %w", EnvSeed, err)
		}
		c.Game.Seed = seed
	}
	if raw, ok := os.LookupEnv(EnvMaxTurns); ok {
		turns, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", EnvMaxTurns, err)
		}
		c.Game.MaxTurns = turns
	}
	return nil
}
