// Package game wires warriors, the machine and the observers into a
// playable battle with wall-clock pacing.
package game

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/costdin/core-war/internal/instruction"
	"github.com/costdin/core-war/internal/vm"
)

// Config holds the battle parameters.
type Config struct {
	CoreSize      int
	QueueSize     int
	TicksPerFrame int
	FrameDelay    time.Duration
}

// DefaultConfig returns the standard battle setup: an 8000-cell core,
// 32-thread queues, 64 ticks per frame at 25ms per frame.
func DefaultConfig() Config {
	return Config{
		CoreSize:      8000,
		QueueSize:     32,
		TicksPerFrame: 64,
		FrameDelay:    25 * time.Millisecond,
	}
}

// Battle runs warriors on a machine until one survives.
type Battle struct {
	machine *vm.VM
	clock   *Clock
	config  Config
}

// New builds a battle from assembled warriors.
func New(warriors []instruction.Warrior, config Config) (*Battle, error) {
	machine, err := vm.New(warriors, config.CoreSize, config.QueueSize)
	if err != nil {
		return nil, err
	}

	return &Battle{
		machine: machine,
		clock:   NewClock(config.FrameDelay),
		config:  config,
	}, nil
}

// Register adds an observer to the underlying machine. Register all
// observers before calling Run.
func (b *Battle) Register(observer vm.Observer) {
	b.machine.Register(observer)
}

// Round returns the machine's current round.
func (b *Battle) Round() uint64 {
	return b.machine.Round()
}

// Run plays frames until a single warrior survives or the context is
// cancelled. It returns the winner's definition.
func (b *Battle) Run(ctx context.Context) (*instruction.Warrior, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		winner := b.machine.Play(b.config.TicksPerFrame)
		b.clock.AddTicks(b.config.TicksPerFrame)
		if winner != nil {
			frames, ticks := b.clock.Stats()
			glog.Infof("battle over after %d rounds (%d frames, %d ticks): %s wins",
				b.machine.Round(), frames, ticks, winner.Name)
			return winner, nil
		}

		glog.V(1).Infof("played %d rounds", b.machine.Round())

		if wait := b.clock.ShouldWait(); wait > 0 {
			time.Sleep(wait)
		}
	}
}
