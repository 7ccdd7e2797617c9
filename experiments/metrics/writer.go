package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// PlayerRecord identifies a configured player across the games of a tournament.
type PlayerRecord struct {
	ID       int
	Name     string
	Strategy string
}

type GameRecord struct {
	Seats []int // PlayerRecord.ID per seat
	GameMetric
}

type MoveRecord struct {
	Game string // GameMetric.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped directory for the named experiment under dir.
func NewWriter(dir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

// Dir returns the directory the records are written to.
func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WritePlayers(players []PlayerRecord) error {
	rows := make([][]string, 0, len(players))
	for _, p := range players {
		rows = append(rows, []string{strconv.Itoa(p.ID), p.Name, p.Strategy})
	}
	return w.write("players.csv", []string{"id", "name", "strategy"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "seats", "winners", "turns", "total_moves", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID.String(),
			joinInts(record.Seats),
			joinInts(record.Winners),
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "turn", "player", "direction", "duration", "death",
		"searched", "goroutines", "layers", "states", "evaluated"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game,
			strconv.Itoa(record.Turn),
			strconv.Itoa(record.Player),
			record.Direction,
			record.Duration.String(),
			record.Death,
			strconv.FormatBool(record.Searched),
			strconv.Itoa(record.Goroutines),
			strconv.Itoa(record.Layers),
			strconv.FormatInt(record.States, 10),
			strconv.FormatInt(record.Evaluated, 10),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows) // flushes
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

// joinInts renders seats as a space separated list so a CSV cell holds them all.
func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

// ThroughputRecord is one timed search of the throughput experiment.
type ThroughputRecord struct {
	Goroutines int
	Round      int
	SearchMetric
	Duration time.Duration
}

// StatesPerSecond returns how fast the search generated states.
func (r ThroughputRecord) StatesPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.States) / r.Duration.Seconds()
}

func (w *Writer) WriteThroughput(records []ThroughputRecord) error {
	header := []string{"goroutines", "round", "duration", "layers", "states", "evaluated", "states_per_second"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Goroutines),
			strconv.Itoa(record.Round),
			record.Duration.String(),
			strconv.Itoa(record.Layers),
			strconv.FormatInt(record.States, 10),
			strconv.FormatInt(record.Evaluated, 10),
			strconv.FormatFloat(record.StatesPerSecond(), 'f', 1, 64),
		})
	}
	return w.write("throughput.csv", header, rows)
}
