package vm

import (
	"github.com/costdin/core-war/internal/instruction"
	"github.com/costdin/core-war/internal/numeric"
)

// Core is the fixed-size circular instruction memory all warriors share.
// Cells start out as the DAT.A $0, $0 sentinel. The core is owned by the
// machine and mutated only through the executor's write paths.
type Core struct {
	cells []instruction.Instruction
	size  int
}

// NewCore allocates a core of the given size with every cell set to the
// sentinel instruction.
func NewCore(size int) *Core {
	sentinel := instruction.Instruction{
		Op:       instruction.DAT,
		Modifier: instruction.ModA,
		A:        instruction.Operand{Pointer: numeric.New(0, size), Mode: instruction.Direct},
		B:        instruction.Operand{Pointer: numeric.New(0, size), Mode: instruction.Direct},
	}

	cells := make([]instruction.Instruction, size)
	for i := range cells {
		cells[i] = sentinel
	}
	return &Core{cells: cells, size: size}
}

// Size returns the number of cells.
func (c *Core) Size() int {
	return c.size
}

// Fetch returns a copy of the cell at addr.
func (c *Core) Fetch(addr numeric.Numeric) instruction.Instruction {
	return c.cells[addr.Value()]
}

// Cell returns the cell at addr for in-place mutation.
func (c *Core) Cell(addr numeric.Numeric) *instruction.Instruction {
	return &c.cells[addr.Value()]
}

// Store replaces the cell at addr.
func (c *Core) Store(addr numeric.Numeric, ins instruction.Instruction) {
	c.cells[addr.Value()] = ins
}
