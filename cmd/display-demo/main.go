// Command display-demo plays a canned imp-versus-dwarf battle on the
// console display. Handy for checking display changes without SDL or a
// warriors directory.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/costdin/core-war/internal/assembler"
	"github.com/costdin/core-war/internal/display"
	"github.com/costdin/core-war/internal/instruction"
	"github.com/costdin/core-war/internal/vm"
)

const impSource = `imp: mov 0, 1`

const dwarfSource = `
	add #4, 3
	mov 2, @2
	jmp -2, 0
	dat #0, #0`

func main() {
	frames := flag.Int("frames", 400, "number of frames to play")
	flag.Parse()

	const coreSize = 8000

	warriors := []instruction.Warrior{
		mustParse("imp", impSource, coreSize),
		mustParse("dwarf", dwarfSource, coreSize),
	}

	machine, err := vm.New(warriors, coreSize, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	machine.Register(display.NewConsoleDisplay(coreSize))

	for i := 0; i < *frames; i++ {
		if winner := machine.Play(64); winner != nil {
			fmt.Printf("Game ended! Player %s won!\n", winner.Name)
			return
		}
		time.Sleep(25 * time.Millisecond)
	}

	fmt.Printf("Demo over after %d rounds, no winner yet\n", machine.Round())
}

func mustParse(name, source string, coreSize int) instruction.Warrior {
	code, err := assembler.Parse(source, coreSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot parse %s: %v\n", name, err)
		os.Exit(1)
	}
	return instruction.Warrior{Name: name, Code: code}
}
