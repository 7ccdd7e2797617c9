package communication

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tron/game"
)

// ErrMalformed is returned when a protocol line cannot be parsed.
var ErrMalformed = errors.New("malformed message")

// Dead is the coordinate tuple sent for a dead player.
var Dead = [4]int{-1, -1, -1, -1}

// Update is what a player program is told before each move: the number of
// players, its own seat and x0 y0 x1 y1 per player, x0,y0 being the previous
// head and x1,y1 the current one.
type Update struct {
	PlayerCount int
	Me          int
	Coords      [][4]int
}

// Communicator is the player side of the line protocol.
type Communicator interface {
	ReceiveUpdate() (Update, error)
	SendMove(d game.Direction) error
}

// UpdateOf builds the update for seat me from the players' records.
func UpdateOf(me int, players []game.PlayerInfo) Update {
	u := Update{PlayerCount: len(players), Me: me, Coords: make([][4]int, len(players))}
	for i := range players {
		u.Coords[i] = players[i].Coords()
	}
	return u
}

// WriteUpdate sends u as "N P" followed by one line per player.
func WriteUpdate(w io.Writer, u Update) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %d\n", u.PlayerCount, u.Me)
	for _, c := range u.Coords {
		fmt.Fprintf(&b, "%d %d %d %d\n", c[0], c[1], c[2], c[3])
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ReadUpdate reads one update. It returns io.EOF when the input ends before a
// new update starts.
func ReadUpdate(r *bufio.Reader) (Update, error) {
	header, err := readNumbers(r, 2)
	if err != nil {
		return Update{}, err
	}
	u := Update{PlayerCount: header[0], Me: header[1]}
	if u.PlayerCount < 1 || u.PlayerCount > game.MaxPlayers || u.Me < 0 || u.Me >= u.PlayerCount {
		return Update{}, fmt.Errorf("%w: header %d %d", ErrMalformed, u.PlayerCount, u.Me)
	}
	u.Coords = make([][4]int, u.PlayerCount)
	for i := range u.Coords {
		numbers, err := readNumbers(r, 4)
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return Update{}, fmt.Errorf("player %d: %w", i, err)
		}
		copy(u.Coords[i][:], numbers)
	}
	return u, nil
}

// WriteCommand sends the move of a player. NoDirection is sent as NONE, which
// the server rejects.
func WriteCommand(w io.Writer, d game.Direction) error {
	_, err := io.WriteString(w, d.String()+"\n")
	return err
}

// ReadCommand reads one answer line, trimmed.
func ReadCommand(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func readNumbers(r *bufio.Reader, n int) ([]int, error) {
	line, err := r.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return nil, err
	}
	fields := strings.Fields(line)
	if len(fields) != n {
		return nil, fmt.Errorf("%w: want %d numbers, got %q", ErrMalformed, n, strings.TrimSpace(line))
	}
	numbers := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		numbers[i] = v
	}
	return numbers, nil
}
