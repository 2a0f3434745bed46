// Package instruction defines the Redcode instruction model shared by the
// assembler and the virtual machine: opcodes, modifiers, addressing modes,
// operands and whole instructions, plus the canonical text form they
// round-trip through.
package instruction

import (
	"fmt"
	"strings"

	"github.com/costdin/core-war/internal/numeric"
)

// OpCode identifies a Redcode operation.
type OpCode int

const (
	DAT OpCode = iota
	MOV
	ADD
	SUB
	MUL
	DIV
	MOD
	JMP
	JMZ
	JMN
	DJN
	CMP
	SLT
	SPL
)

var opCodeNames = map[OpCode]string{
	DAT: "DAT",
	MOV: "MOV",
	ADD: "ADD",
	SUB: "SUB",
	MUL: "MUL",
	DIV: "DIV",
	MOD: "MOD",
	JMP: "JMP",
	JMZ: "JMZ",
	JMN: "JMN",
	DJN: "DJN",
	CMP: "CMP",
	SLT: "SLT",
	SPL: "SPL",
}

// ParseOpCode parses an opcode mnemonic case-insensitively.
func ParseOpCode(s string) (OpCode, error) {
	switch strings.ToLower(s) {
	case "dat":
		return DAT, nil
	case "mov":
		return MOV, nil
	case "add":
		return ADD, nil
	case "sub":
		return SUB, nil
	case "mul":
		return MUL, nil
	case "div":
		return DIV, nil
	case "mod":
		return MOD, nil
	case "jmp":
		return JMP, nil
	case "jmz":
		return JMZ, nil
	case "jmn":
		return JMN, nil
	case "djn":
		return DJN, nil
	case "cmp":
		return CMP, nil
	case "slt":
		return SLT, nil
	case "spl":
		return SPL, nil
	default:
		return DAT, fmt.Errorf("invalid opcode: %s", s)
	}
}

func (op OpCode) String() string {
	if name, ok := opCodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OpCode(%d)", int(op))
}

// Modifier selects which instruction fields an opcode reads and writes.
type Modifier int

const (
	ModA Modifier = iota
	ModB
	ModAB
	ModBA
	ModF
	ModX
	ModI
)

var modifierNames = map[Modifier]string{
	ModA:  "A",
	ModB:  "B",
	ModAB: "AB",
	ModBA: "BA",
	ModF:  "F",
	ModX:  "X",
	ModI:  "I",
}

// ParseModifier parses a modifier suffix case-insensitively.
func ParseModifier(s string) (Modifier, error) {
	switch strings.ToLower(s) {
	case "a":
		return ModA, nil
	case "b":
		return ModB, nil
	case "ab":
		return ModAB, nil
	case "ba":
		return ModBA, nil
	case "f":
		return ModF, nil
	case "x":
		return ModX, nil
	case "i":
		return ModI, nil
	default:
		return ModA, fmt.Errorf("invalid modifier: %s", s)
	}
}

func (m Modifier) String() string {
	if name, ok := modifierNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Modifier(%d)", int(m))
}

// AddressMode is an operand addressing mode.
type AddressMode int

const (
	Direct       AddressMode = iota // $ or bare
	Immediate                       // #
	Indirect                        // @
	PreDecrement                    // <
	PreIncrement                    // >
)

// Symbol returns the mode's sigil in warrior source.
func (m AddressMode) Symbol() string {
	switch m {
	case Immediate:
		return "#"
	case Indirect:
		return "@"
	case PreDecrement:
		return "<"
	case PreIncrement:
		return ">"
	default:
		return "$"
	}
}

func (m AddressMode) String() string {
	switch m {
	case Direct:
		return "Direct"
	case Immediate:
		return "Immediate"
	case Indirect:
		return "Indirect"
	case PreDecrement:
		return "PreDecrement"
	case PreIncrement:
		return "PreIncrement"
	default:
		return fmt.Sprintf("AddressMode(%d)", int(m))
	}
}

// Operand is an addressing mode paired with a modular pointer.
type Operand struct {
	Pointer numeric.Numeric
	Mode    AddressMode
}

func (o Operand) String() string {
	return o.Mode.Symbol() + o.Pointer.String()
}

// Instruction is one core cell: opcode, modifier and two operands.
type Instruction struct {
	Op       OpCode
	Modifier Modifier
	A        Operand
	B        Operand
}

// String emits the canonical text form, e.g. "MOV.I $6, $7999".
// Canonical text re-parses to the identical instruction.
func (i Instruction) String() string {
	return fmt.Sprintf("%s.%s %s, %s", i.Op, i.Modifier, i.A, i.B)
}

// Warrior is a named, assembled program.
type Warrior struct {
	Name string
	Code []Instruction
}
