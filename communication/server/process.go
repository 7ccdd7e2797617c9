package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tron/communication"
	"tron/game"
	"tron/searcher/agent"
)

var (
	// ErrTimeout is returned when a player program does not answer in time.
	ErrTimeout = errors.New("move timed out")
	// ErrExited is returned once the player program closed its output.
	ErrExited = errors.New("player program exited")
)

type reply struct {
	line string
	err  error
}

// ProcessAgent plays a seat by forwarding every situation to an external
// program over its standard input and reading one answer line per move from
// its standard output.
type ProcessAgent struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	replies chan reply
	done    chan struct{}
	timeout time.Duration
	logger  zerolog.Logger

	closeOnce sync.Once
	closeErr  error
}

// Start launches the program. The process is killed when ctx is cancelled or
// the agent is closed.
func Start(ctx context.Context, command []string, timeout time.Duration, logger zerolog.Logger) (*ProcessAgent, error) {
	if len(command) == 0 {
		return nil, errors.New("empty command")
	}
	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %q: %w", command[0], err)
	}

	p := &ProcessAgent{
		cmd:     cmd,
		stdin:   stdin,
		replies: make(chan reply, 1),
		done:    make(chan struct{}),
		timeout: timeout,
		logger:  logger.With().Str("command", command[0]).Int("pid", cmd.Process.Pid).Logger(),
	}
	go p.read(bufio.NewReader(stdout))
	p.logger.Debug().Msg("player program started")
	return p, nil
}

func (p *ProcessAgent) read(r *bufio.Reader) {
	defer close(p.replies)
	for {
		line, err := communication.ReadCommand(r)
		select {
		case p.replies <- reply{line: line, err: err}:
		case <-p.done:
			return
		}
		if err != nil {
			return
		}
	}
}

func (p *ProcessAgent) FindMove(s agent.Situation) (game.Direction, error) {
	if err := communication.WriteUpdate(p.stdin, communication.UpdateOf(s.Me, s.Players)); err != nil {
		return game.NoDirection, fmt.Errorf("send update: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	select {
	case r, ok := <-p.replies:
		if !ok {
			return game.NoDirection, ErrExited
		}
		if r.err != nil {
			if errors.Is(r.err, io.EOF) {
				return game.NoDirection, ErrExited
			}
			return game.NoDirection, fmt.Errorf("read move: %w", r.err)
		}
		direction, err := game.ParseDirection(r.line)
		if err != nil {
			return game.NoDirection, fmt.Errorf("invalid command: %w", err)
		}
		return direction, nil
	case <-ctx.Done():
		return game.NoDirection, fmt.Errorf("%w after %v", ErrTimeout, p.timeout)
	}
}

// Close ends the program. It is safe to call more than once.
func (p *ProcessAgent) Close() error {
	p.closeOnce.Do(func() {
		close(p.done)
		_ = p.stdin.Close()
		if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			p.closeErr = err
		}
		// Killed programs exit with an error, which is expected here.
		_ = p.cmd.Wait()
		p.logger.Debug().Msg("player program stopped")
	})
	return p.closeErr
}
