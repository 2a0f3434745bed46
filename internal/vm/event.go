package vm

import "fmt"

// EventType classifies what the machine just did.
type EventType int

const (
	// TerminatedProgram fires when a warrior's queue empties and the
	// warrior is removed from the round-robin.
	TerminatedProgram EventType = iota
	// TerminatedThread fires when a thread executes DAT.
	TerminatedThread
	// Change fires whenever a core cell is mutated.
	Change
	// Jump fires for every program counter the executor produces.
	Jump
)

func (t EventType) String() string {
	switch t {
	case TerminatedProgram:
		return "TerminatedProgram"
	case TerminatedThread:
		return "TerminatedThread"
	case Change:
		return "Change"
	case Jump:
		return "Jump"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// VmEvent is the immutable snapshot observers receive.
//
// MovedFrom is the source program counter; it is meaningful for Jump and
// TerminatedThread events. Offset is the target program counter (Jump) or
// the affected core address (Change). Both are zero otherwise.
type VmEvent struct {
	Type      EventType
	WarriorID int
	Round     uint64
	MovedFrom int
	Offset    int
}

// Observer receives machine events. Notify must not re-enter the machine
// and must not block unbounded; it runs on the executor goroutine.
type Observer interface {
	Notify(event VmEvent)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(event VmEvent)

// Notify calls f.
func (f ObserverFunc) Notify(event VmEvent) {
	f(event)
}
