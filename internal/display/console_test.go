package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costdin/core-war/internal/vm"
)

func TestConsoleDisplayTracksCells(t *testing.T) {
	var out bytes.Buffer
	console := newConsoleDisplay(8000, &out)

	console.Notify(vm.VmEvent{Type: vm.Jump, WarriorID: 0, MovedFrom: 0, Offset: 1})
	assert.Equal(t, byte('.'), console.cells[0].glyph)
	assert.Equal(t, byte('*'), console.cells[1].glyph)

	console.Notify(vm.VmEvent{Type: vm.Change, WarriorID: 1, Offset: 4000})
	assert.Equal(t, byte('.'), console.cells[4000].glyph)
	assert.Equal(t, 1, console.cells[4000].warrior)

	console.Notify(vm.VmEvent{Type: vm.TerminatedThread, WarriorID: 1, MovedFrom: 4000})
	assert.Equal(t, byte('.'), console.cells[4000].glyph)

	// No repaint yet: updates only touch the buffer.
	assert.Zero(t, out.Len())
}

func TestConsoleDisplayRepaintsOnProgramTermination(t *testing.T) {
	var out bytes.Buffer
	console := newConsoleDisplay(8000, &out)

	console.Notify(vm.VmEvent{Type: vm.Jump, WarriorID: 0, MovedFrom: 10, Offset: 11})
	console.Notify(vm.VmEvent{Type: vm.TerminatedProgram, WarriorID: 1, Round: 42})

	frame := out.String()
	assert.Contains(t, frame, "Warrior 1 terminated in round 42")
	assert.Contains(t, frame, "*")
	assert.Contains(t, frame, "Round 42")
}

func TestConsoleDisplayRepaintsPeriodically(t *testing.T) {
	var out bytes.Buffer
	console := newConsoleDisplay(8000, &out)

	for i := 0; i < repaintEvery; i++ {
		console.Notify(vm.VmEvent{Type: vm.Change, WarriorID: 0, Offset: i % 8000})
	}
	assert.NotZero(t, out.Len())

	// The grid has one line per row plus the status line.
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Len(t, lines, 8000/consoleWidth+1)
}

func TestConsoleDisplayGridCoversCore(t *testing.T) {
	console := newConsoleDisplay(8000, &bytes.Buffer{})
	assert.Equal(t, 50, console.rows)
	assert.Len(t, console.cells, 8000)

	// Odd core sizes round the grid up so every address has a cell.
	console = newConsoleDisplay(1001, &bytes.Buffer{})
	assert.GreaterOrEqual(t, len(console.cells), 1001)
}
