// Package vm implements the Core War machine: the shared circular core,
// the per-warrior thread queues, the round-robin scheduler and the full
// Redcode instruction semantics. Observers registered on the machine see
// every jump, core mutation and termination as it happens.
package vm

import (
	"fmt"

	"github.com/costdin/core-war/internal/instruction"
	"github.com/costdin/core-war/internal/numeric"
)

const (
	// MinWarriors and MaxWarriors bound how many programs share a core.
	MinWarriors = 2
	MaxWarriors = 50
)

// warriorQueue is the runtime state of one live warrior: its identity and
// the FIFO of program counters for its threads. A warrior is alive exactly
// as long as its queue exists.
type warriorQueue struct {
	id  int
	pcs []numeric.Numeric
}

// VM is the Core War machine.
type VM struct {
	core      *Core
	warriors  []instruction.Warrior
	queues    []*warriorQueue
	observers []Observer
	round     uint64
	cursor    int
	queueSize int
}

// New builds a machine for the given warriors. Warriors are loaded at
// evenly spaced offsets: warrior k starts at k*(coreSize/len(warriors))
// and occupies consecutive cells with wrap-around. Each warrior gets one
// initial thread at its load address.
func New(warriors []instruction.Warrior, coreSize, queueSize int) (*VM, error) {
	if len(warriors) < MinWarriors {
		return nil, ErrTooFewWarriors
	}
	if len(warriors) > MaxWarriors {
		return nil, ErrTooManyWarriors
	}

	slot := coreSize / len(warriors)
	core := NewCore(coreSize)
	queues := make([]*warriorQueue, 0, len(warriors))

	for id, warrior := range warriors {
		if len(warrior.Code) > slot {
			return nil, fmt.Errorf("%w: %s has %d instructions, slot is %d",
				ErrWarriorTooLarge, warrior.Name, len(warrior.Code), slot)
		}

		start := numeric.New(id*slot, coreSize)
		for i, ins := range warrior.Code {
			core.Store(start.AddInt(i), ins)
		}
		queues = append(queues, &warriorQueue{
			id:  id,
			pcs: []numeric.Numeric{start},
		})
	}

	return &VM{
		core:      core,
		warriors:  warriors,
		queues:    queues,
		queueSize: queueSize,
	}, nil
}

// Register appends an observer; observers are notified in registration
// order. Register before the first Play call.
func (vm *VM) Register(observer Observer) {
	vm.observers = append(vm.observers, observer)
}

// Round returns how many full scheduler passes have completed.
func (vm *VM) Round() uint64 {
	return vm.round
}

// CoreSize returns the size of the shared core.
func (vm *VM) CoreSize() int {
	return vm.core.Size()
}

// Alive returns how many warriors are still in the round-robin. A warrior
// whose last thread has died is counted until its next turn removes it.
func (vm *VM) Alive() int {
	return len(vm.queues)
}

func (vm *VM) notify(event VmEvent) {
	for _, observer := range vm.observers {
		observer.Notify(event)
	}
}

// Play runs up to ticks scheduler steps and stops early the moment at
// most one warrior is left. A tick serves the warrior under the cursor:
// either its front program counter is popped and executed, with the
// resulting counters appended to the back of the same queue, or - if the
// queue was already empty - the warrior is removed. Removal does not
// advance the cursor; the next warrior shifts into the vacated slot.
//
// Play returns the surviving warrior's definition once exactly one
// remains, and nil while the battle is still undecided.
func (vm *VM) Play(ticks int) *instruction.Warrior {
	played := 0
	for len(vm.queues) > 1 && played < ticks {
		current := vm.queues[vm.cursor]
		if len(current.pcs) > 0 {
			played++
			ip := current.pcs[0]
			current.pcs = current.pcs[1:]

			for _, pc := range vm.execute(vm.core.Fetch(ip), ip, vm.cursor) {
				vm.notify(VmEvent{
					Type:      Jump,
					WarriorID: current.id,
					Round:     vm.round,
					MovedFrom: ip.Value(),
					Offset:    pc.Value(),
				})
				current.pcs = append(current.pcs, pc)
			}

			vm.cursor++
		} else {
			vm.queues = append(vm.queues[:vm.cursor], vm.queues[vm.cursor+1:]...)
			vm.notify(VmEvent{
				Type:      TerminatedProgram,
				WarriorID: current.id,
				Round:     vm.round,
			})
		}

		if vm.cursor == len(vm.queues) {
			vm.cursor = 0
			vm.round++
		}
	}

	if len(vm.queues) == 1 {
		return &vm.warriors[vm.queues[0].id]
	}
	return nil
}
