package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start(2)
	c.AddMove(MoveMetric{Turn: 1, Player: 0, Direction: "UP"})
	c.AddMove(MoveMetric{Turn: 1, Player: 1, Direction: "LEFT", Death: "illegal move"})

	game, moves := c.Complete([]int{0}, 1)

	require.NotEqual(t, uuid.Nil, game.ID, "Games should get an id")
	require.Equal(t, 2, game.Players)
	require.Equal(t, []int{0}, game.Winners)
	require.Equal(t, 2, game.TotalMoves)
	require.Len(t, moves, 2)
	require.False(t, game.EndTime.Before(game.StartTime))

	c.Start(2)
	next, moves := c.Complete(nil, 0)
	require.NotEqual(t, game.ID, next.ID, "Every game should get a new id")
	require.Empty(t, moves, "Moves should be reset between games")
}

func TestDummyCollector(t *testing.T) {
	c := NewDummyCollector()
	c.Start(3)
	c.AddMove(MoveMetric{Turn: 1})

	game, moves := c.Complete([]int{2}, 7)

	require.Equal(t, []int{2}, game.Winners)
	require.Equal(t, 7, game.Turns)
	require.Nil(t, moves)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "tournament")
	require.NoError(t, err)

	id := uuid.New()
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, w.WritePlayers([]PlayerRecord{{ID: 0, Name: "mm", Strategy: "minimaxer"}}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{{
		Seats: []int{1, 0},
		GameMetric: GameMetric{
			ID: id, Winners: []int{0, 1}, Turns: 12, TotalMoves: 23,
			StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second,
		},
	}}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{{
		Game: id.String(),
		MoveMetric: MoveMetric{
			Turn: 3, Player: 1, Direction: "DOWN", Duration: time.Millisecond,
			SearchMetric: SearchMetric{Searched: true, Goroutines: 4, Layers: 3, States: 40, Evaluated: 27},
		},
	}}))

	players := readCSV(t, filepath.Join(w.Dir(), "players.csv"))
	require.Equal(t, [][]string{{"id", "name", "strategy"}, {"0", "mm", "minimaxer"}}, players)

	games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, games, 2)
	require.Equal(t, []string{id.String(), "1 0", "0 1", "12", "23",
		"2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s"}, games[1])

	moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Len(t, moves, 2)
	require.Equal(t, []string{id.String(), "3", "1", "DOWN", "1ms", "", "true", "4", "3", "40", "27"}, moves[1])
}

func TestWriteThroughput(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "throughput")
	require.NoError(t, err)

	record := ThroughputRecord{
		Goroutines:   2,
		Round:        1,
		Duration:     500 * time.Millisecond,
		SearchMetric: SearchMetric{Searched: true, Layers: 4, States: 300, Evaluated: 256},
	}
	require.Equal(t, 600.0, record.StatesPerSecond())
	require.Zero(t, ThroughputRecord{}.StatesPerSecond(), "An untimed search has no rate")
	require.NoError(t, w.WriteThroughput([]ThroughputRecord{record}))

	rows := readCSV(t, filepath.Join(w.Dir(), "throughput.csv"))
	require.Equal(t, []string{"2", "1", "500ms", "4", "300", "256", "600.0"}, rows[1])
}
