// Package display implements the visual observers that render the battle:
// a colored grid on the terminal and an SDL pixel canvas. Both are thin
// adapters over the machine's event stream; neither ever calls back into
// the machine.
package display

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/costdin/core-war/internal/vm"
)

const (
	// consoleWidth is how many core cells one terminal row shows.
	consoleWidth = 160

	// repaintEvery bounds how often the whole grid is redrawn.
	repaintEvery = 4096
)

// warriorStyles colors cells by warrior id; ids wrap around the palette.
var warriorStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("9")),  // red
	lipgloss.NewStyle().Foreground(lipgloss.Color("12")), // blue
	lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // green
	lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // yellow
	lipgloss.NewStyle().Foreground(lipgloss.Color("13")), // magenta
	lipgloss.NewStyle().Foreground(lipgloss.Color("15")), // white
}

var statusStyle = lipgloss.NewStyle().Bold(true)

// cell is one grid position: which warrior touched it last and how.
type cell struct {
	glyph   byte
	warrior int
}

// ConsoleDisplay renders the core as a character grid. Each event updates
// the backing cell buffer; the full frame is repainted at a bounded
// cadence so the terminal is not flooded on every tick.
type ConsoleDisplay struct {
	out      io.Writer
	cells    []cell
	rows     int
	events   uint64
	statuses []string
}

// NewConsoleDisplay creates a console observer for a core of the given
// size, writing to stdout.
func NewConsoleDisplay(coreSize int) *ConsoleDisplay {
	return newConsoleDisplay(coreSize, os.Stdout)
}

func newConsoleDisplay(coreSize int, out io.Writer) *ConsoleDisplay {
	rows := (coreSize + consoleWidth - 1) / consoleWidth
	return &ConsoleDisplay{
		out:   out,
		cells: make([]cell, rows*consoleWidth),
		rows:  rows,
	}
}

// Notify updates the grid from one machine event.
func (c *ConsoleDisplay) Notify(event vm.VmEvent) {
	switch event.Type {
	case vm.Jump:
		c.cells[event.MovedFrom] = cell{glyph: '.', warrior: event.WarriorID}
		c.cells[event.Offset] = cell{glyph: '*', warrior: event.WarriorID}
	case vm.Change:
		c.cells[event.Offset] = cell{glyph: '.', warrior: event.WarriorID}
	case vm.TerminatedThread:
		// Erase the dead thread's head cursor.
		c.cells[event.MovedFrom] = cell{glyph: '.', warrior: event.WarriorID}
	case vm.TerminatedProgram:
		c.statuses = append(c.statuses,
			fmt.Sprintf("Warrior %d terminated in round %d", event.WarriorID, event.Round))
		c.repaint(event.Round)
		return
	}

	c.events++
	if c.events%repaintEvery == 0 {
		c.repaint(event.Round)
	}
}

// repaint redraws the whole grid from the cell buffer.
func (c *ConsoleDisplay) repaint(round uint64) {
	w := bufio.NewWriter(c.out)

	// Home the cursor; the grid overdraws the previous frame in place.
	fmt.Fprint(w, "\x1b[H")

	for y := 0; y < c.rows; y++ {
		for x := 0; x < consoleWidth; x++ {
			current := c.cells[y*consoleWidth+x]
			if current.glyph == 0 {
				w.WriteByte(' ')
				continue
			}
			style := warriorStyles[current.warrior%len(warriorStyles)]
			w.WriteString(style.Render(string(current.glyph)))
		}
		w.WriteByte('\n')
	}

	fmt.Fprintln(w, statusStyle.Render(fmt.Sprintf("Round %d", round)))
	for _, status := range c.statuses {
		fmt.Fprintln(w, statusStyle.Render(status))
	}
	w.Flush()
}
