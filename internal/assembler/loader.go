package assembler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/costdin/core-war/internal/instruction"
)

// WarriorExtension is the file suffix warrior sources are recognized by.
const WarriorExtension = ".war"

// LoadWarrior reads and assembles a single warrior file. The warrior name
// is the filename without its extension.
func LoadWarrior(path string, coreSize int) (instruction.Warrior, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return instruction.Warrior{}, fmt.Errorf("failed to read warrior file %s: %w", path, err)
	}

	code, err := Parse(string(body), coreSize)
	if err != nil {
		return instruction.Warrior{}, fmt.Errorf("failed to parse warrior %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return instruction.Warrior{Name: name, Code: code}, nil
}

// ScanWarriorDirectory assembles every *.war file in dir, in lexical
// order. Any unreadable or unparseable warrior fails the whole scan.
func ScanWarriorDirectory(dir string, coreSize int) ([]instruction.Warrior, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot access directory %s: %w", dir, err)
	}

	var warriors []instruction.Warrior
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != WarriorExtension {
			continue
		}

		warrior, err := LoadWarrior(filepath.Join(dir, entry.Name()), coreSize)
		if err != nil {
			return nil, err
		}
		warriors = append(warriors, warrior)
	}

	return warriors, nil
}
