package vm

import (
	"github.com/costdin/core-war/internal/instruction"
	"github.com/costdin/core-war/internal/numeric"
)

// fold resolves one operand to an absolute core address. Pre-increment and
// pre-decrement mutate the pointed-to cell's B-field before the resolved
// address is computed, so the new value is the one that takes part in the
// resolution.
func (vm *VM) fold(operand instruction.Operand, ip numeric.Numeric, warriorID int) numeric.Numeric {
	switch operand.Mode {
	case instruction.Immediate:
		return ip
	case instruction.Direct:
		return ip.Add(operand.Pointer)
	case instruction.Indirect:
		address := ip.Add(operand.Pointer)
		return address.Add(vm.core.Fetch(address).B.Pointer)
	case instruction.PreIncrement:
		address := ip.Add(operand.Pointer)
		cell := vm.core.Cell(address)
		cell.B.Pointer = cell.B.Pointer.AddInt(1)
		vm.notify(VmEvent{
			Type:      Change,
			WarriorID: warriorID,
			Round:     vm.round,
			Offset:    address.Value(),
		})
		return address.Add(cell.B.Pointer)
	default: // PreDecrement
		address := ip.Add(operand.Pointer)
		cell := vm.core.Cell(address)
		cell.B.Pointer = cell.B.Pointer.SubInt(1)
		vm.notify(VmEvent{
			Type:      Change,
			WarriorID: warriorID,
			Round:     vm.round,
			Offset:    address.Value(),
		})
		return address.Add(cell.B.Pointer)
	}
}

// execute runs one instruction for the warrior at the given scheduler
// slot and returns the program counters the thread continues with. An
// empty result means the thread died.
func (vm *VM) execute(operation instruction.Instruction, ip numeric.Numeric, cursor int) []numeric.Numeric {
	warriorID := vm.queues[cursor].id

	// Phase 1: fold both operands, a-operand first. The snapshots are
	// taken after both folds so pre-side-effects are visible to Phase 2.
	aAddress := vm.fold(operation.A, ip, warriorID)
	bAddress := vm.fold(operation.B, ip, warriorID)
	aIns := vm.core.Fetch(aAddress)
	bIns := vm.core.Fetch(bAddress)

	next := ip.AddInt(1)
	skip := ip.AddInt(2)

	switch operation.Op {
	case instruction.DAT:
		vm.notify(VmEvent{
			Type:      TerminatedThread,
			WarriorID: warriorID,
			Round:     vm.round,
			MovedFrom: ip.Value(),
		})
		return nil

	case instruction.MOV:
		target := vm.core.Cell(bAddress)
		switch operation.Modifier {
		case instruction.ModA:
			target.A = aIns.A
		case instruction.ModB:
			target.B = aIns.B
		case instruction.ModAB:
			target.B = aIns.A
		case instruction.ModBA:
			target.A = aIns.B
		case instruction.ModF:
			target.A = aIns.A
			target.B = aIns.B
		case instruction.ModX:
			target.A = aIns.B
			target.B = aIns.A
		case instruction.ModI:
			*target = aIns
		}
		vm.notifyChange(bAddress, warriorID)
		return []numeric.Numeric{next}

	case instruction.ADD:
		return []numeric.Numeric{vm.applyArithmetic(aIns, bIns, bAddress, operation.Modifier, next, warriorID, numeric.Numeric.Add)}
	case instruction.SUB:
		return []numeric.Numeric{vm.applyArithmetic(aIns, bIns, bAddress, operation.Modifier, next, warriorID, numeric.Numeric.Sub)}
	case instruction.MUL:
		return []numeric.Numeric{vm.applyArithmetic(aIns, bIns, bAddress, operation.Modifier, next, warriorID, numeric.Numeric.Mul)}
	case instruction.DIV:
		return vm.applyGuardedArithmetic(aIns, bIns, bAddress, operation.Modifier, next, warriorID, numeric.Numeric.Div)
	case instruction.MOD:
		return vm.applyGuardedArithmetic(aIns, bIns, bAddress, operation.Modifier, next, warriorID, numeric.Numeric.Mod)

	case instruction.JMP:
		return []numeric.Numeric{aAddress}

	case instruction.JMZ:
		if jmzSelectionZero(bIns, operation.Modifier) {
			return []numeric.Numeric{aAddress}
		}
		return []numeric.Numeric{next}

	case instruction.JMN:
		if jmzSelectionZero(bIns, operation.Modifier) {
			return []numeric.Numeric{next}
		}
		return []numeric.Numeric{aAddress}

	case instruction.DJN:
		target := vm.core.Cell(bAddress)
		var branch bool
		switch operation.Modifier {
		case instruction.ModA, instruction.ModBA:
			target.A.Pointer = target.A.Pointer.SubInt(1)
			branch = !target.A.Pointer.IsZero()
		case instruction.ModB, instruction.ModAB:
			target.B.Pointer = target.B.Pointer.SubInt(1)
			branch = !target.B.Pointer.IsZero()
		default: // F, X, I
			target.A.Pointer = target.A.Pointer.SubInt(1)
			target.B.Pointer = target.B.Pointer.SubInt(1)
			branch = !target.A.Pointer.IsZero() || !target.B.Pointer.IsZero()
		}
		vm.notifyChange(bAddress, warriorID)
		if branch {
			return []numeric.Numeric{aAddress}
		}
		return []numeric.Numeric{next}

	case instruction.CMP:
		var equal bool
		switch operation.Modifier {
		case instruction.ModA:
			equal = bIns.A.Pointer == aIns.A.Pointer
		case instruction.ModB:
			equal = bIns.B.Pointer == aIns.B.Pointer
		case instruction.ModAB:
			equal = bIns.B.Pointer == aIns.A.Pointer
		case instruction.ModBA:
			equal = bIns.A.Pointer == aIns.B.Pointer
		case instruction.ModF:
			equal = bIns.A.Pointer == aIns.A.Pointer && bIns.B.Pointer == aIns.B.Pointer
		case instruction.ModX:
			equal = bIns.A.Pointer == aIns.B.Pointer && bIns.B.Pointer == aIns.A.Pointer
		case instruction.ModI:
			equal = bIns == aIns
		}
		if equal {
			return []numeric.Numeric{skip}
		}
		return []numeric.Numeric{next}

	case instruction.SLT:
		var less bool
		switch operation.Modifier {
		case instruction.ModA:
			less = aIns.A.Pointer.Less(bIns.A.Pointer)
		case instruction.ModB:
			less = aIns.B.Pointer.Less(bIns.B.Pointer)
		case instruction.ModAB:
			less = aIns.A.Pointer.Less(bIns.B.Pointer)
		case instruction.ModBA:
			less = aIns.B.Pointer.Less(bIns.A.Pointer)
		case instruction.ModF, instruction.ModI:
			less = aIns.A.Pointer.Less(bIns.A.Pointer) && aIns.B.Pointer.Less(bIns.B.Pointer)
		case instruction.ModX:
			less = aIns.A.Pointer.Less(bIns.B.Pointer) && aIns.B.Pointer.Less(bIns.A.Pointer)
		}
		if less {
			return []numeric.Numeric{skip}
		}
		return []numeric.Numeric{next}

	default: // SPL
		// The fork is refused when the queue is already near capacity;
		// the spawning thread always continues.
		if len(vm.queues[cursor].pcs) >= vm.queueSize-1 {
			return []numeric.Numeric{next}
		}
		return []numeric.Numeric{next, aAddress}
	}
}

func (vm *VM) notifyChange(address numeric.Numeric, warriorID int) {
	vm.notify(VmEvent{
		Type:      Change,
		WarriorID: warriorID,
		Round:     vm.round,
		Offset:    address.Value(),
	})
}

// jmzSelectionZero reports whether the B-field selection for JMZ/JMN is
// all zero: the a-field for A|BA, the b-field for B|AB, both for F|X|I.
func jmzSelectionZero(bIns instruction.Instruction, modifier instruction.Modifier) bool {
	switch modifier {
	case instruction.ModA, instruction.ModBA:
		return bIns.A.Pointer.IsZero()
	case instruction.ModB, instruction.ModAB:
		return bIns.B.Pointer.IsZero()
	default: // F, X, I
		return bIns.A.Pointer.IsZero() && bIns.B.Pointer.IsZero()
	}
}

// binaryOp combines two modular values; the second argument comes from the
// a-instruction and is the divisor for DIV and MOD.
type binaryOp func(numeric.Numeric, numeric.Numeric) numeric.Numeric

// fieldWrite is one pending field update: the selected pair of source
// values and where the result lands in the target cell.
type fieldWrite struct {
	left     numeric.Numeric
	right    numeric.Numeric
	toAField bool
}

// selectWrites expands a modifier into the field updates it performs.
// For X the pairings cross: the target's b-field combines with the
// a-instruction's a-field and vice versa.
func selectWrites(aIns, bIns instruction.Instruction, modifier instruction.Modifier) []fieldWrite {
	switch modifier {
	case instruction.ModA:
		return []fieldWrite{{bIns.A.Pointer, aIns.A.Pointer, true}}
	case instruction.ModB:
		return []fieldWrite{{bIns.B.Pointer, aIns.B.Pointer, false}}
	case instruction.ModAB:
		return []fieldWrite{{bIns.B.Pointer, aIns.A.Pointer, false}}
	case instruction.ModBA:
		return []fieldWrite{{bIns.A.Pointer, aIns.B.Pointer, true}}
	case instruction.ModX:
		return []fieldWrite{
			{bIns.B.Pointer, aIns.A.Pointer, false},
			{bIns.A.Pointer, aIns.B.Pointer, true},
		}
	default: // F, I
		return []fieldWrite{
			{bIns.A.Pointer, aIns.A.Pointer, true},
			{bIns.B.Pointer, aIns.B.Pointer, false},
		}
	}
}

// applyArithmetic performs ADD/SUB/MUL on the selected fields of the
// target cell and returns the follow-on program counter.
func (vm *VM) applyArithmetic(aIns, bIns instruction.Instruction, bAddress numeric.Numeric, modifier instruction.Modifier, next numeric.Numeric, warriorID int, op binaryOp) numeric.Numeric {
	target := vm.core.Cell(bAddress)
	for _, w := range selectWrites(aIns, bIns, modifier) {
		if w.toAField {
			target.A.Pointer = op(w.left, w.right)
		} else {
			target.B.Pointer = op(w.left, w.right)
		}
	}
	vm.notifyChange(bAddress, warriorID)
	return next
}

// applyGuardedArithmetic performs DIV/MOD. A zero divisor skips that
// field's write; the thread is killed only when every selected divisor
// was zero. Change is emitted only if something was written.
func (vm *VM) applyGuardedArithmetic(aIns, bIns instruction.Instruction, bAddress numeric.Numeric, modifier instruction.Modifier, next numeric.Numeric, warriorID int, op binaryOp) []numeric.Numeric {
	target := vm.core.Cell(bAddress)
	wrote := false
	for _, w := range selectWrites(aIns, bIns, modifier) {
		if w.right.IsZero() {
			continue
		}
		if w.toAField {
			target.A.Pointer = op(w.left, w.right)
		} else {
			target.B.Pointer = op(w.left, w.right)
		}
		wrote = true
	}

	if !wrote {
		return nil
	}
	vm.notifyChange(bAddress, warriorID)
	return []numeric.Numeric{next}
}
