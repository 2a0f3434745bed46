package vm

import "errors"

// Machine construction error definitions
var (
	ErrTooFewWarriors  = errors.New("a battle needs at least 2 warriors")
	ErrTooManyWarriors = errors.New("a battle supports at most 50 warriors")
	ErrWarriorTooLarge = errors.New("warrior does not fit its core slot")
)
