package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"tron/communication"
	"tron/game"
	"tron/searcher/agent"
)

// StdioCommunicator speaks the line protocol over a pair of streams, usually
// the standard input and output of a player program.
type StdioCommunicator struct {
	r *bufio.Reader
	w io.Writer
}

func NewStdioCommunicator(r io.Reader, w io.Writer) *StdioCommunicator {
	return &StdioCommunicator{r: bufio.NewReader(r), w: w}
}

func (sc *StdioCommunicator) ReceiveUpdate() (communication.Update, error) {
	return communication.ReadUpdate(sc.r)
}

func (sc *StdioCommunicator) SendMove(d game.Direction) error {
	return communication.WriteCommand(sc.w, d)
}

// Client plays one agent against a server until its player dies or the server
// stops sending updates.
type Client struct {
	comm    communication.Communicator
	agent   agent.Agent
	tracker *Tracker
	logger  zerolog.Logger
	moves   int
}

func New(comm communication.Communicator, a agent.Agent, logger zerolog.Logger) *Client {
	return &Client{comm: comm, agent: a, tracker: NewTracker(), logger: logger}
}

func (c *Client) Tracker() *Tracker { return c.tracker }

// Moves returns the number of answers sent so far.
func (c *Client) Moves() int { return c.moves }

func (c *Client) Run() error {
	for {
		u, err := c.comm.ReceiveUpdate()
		if errors.Is(err, io.EOF) {
			c.logger.Info().Int("moves", c.moves).Msg("server closed the game")
			return nil
		}
		if err != nil {
			return fmt.Errorf("receive update: %w", err)
		}
		if err := c.tracker.Apply(u); err != nil {
			return err
		}
		if !c.tracker.Players()[u.Me].Alive {
			c.logger.Info().Int("moves", c.moves).Msg("player is dead")
			return nil
		}

		direction, err := c.agent.FindMove(c.tracker.Situation(u.Me))
		if err != nil {
			// The answer is still sent so that the server settles the death.
			c.logger.Warn().Err(err).Int("move", c.moves+1).Msg("no move found")
			direction = game.NoDirection
		}
		if err := c.comm.SendMove(direction); err != nil {
			return fmt.Errorf("send move: %w", err)
		}
		c.moves++
		c.logger.Debug().Int("move", c.moves).Str("direction", direction.String()).Msg("move sent")
	}
}
