// Package numeric implements the modular arithmetic the core is built on.
// Every value is reduced modulo the core size on construction and after
// every operation, so addresses and operand pointers can never leave the
// [0, size) range no matter how they are combined.
package numeric

import "fmt"

// Numeric is a non-negative integer reduced modulo the core size.
// The modulus travels with the value; all binary operations expect both
// operands to share it.
type Numeric struct {
	value int
	size  int
}

// New creates a Numeric from a non-negative value, reducing it into [0, size).
func New(value, size int) Numeric {
	return Numeric{value: value % size, size: size}
}

// FromInt creates a Numeric from a possibly negative value.
// Negative values are reduced with ((n mod size) + size) mod size so that
// -1 maps to size-1.
func FromInt(value int64, size int) Numeric {
	s := int64(size)
	return Numeric{value: int(((value % s) + s) % s), size: size}
}

// Value returns the reduced representative in [0, size).
func (n Numeric) Value() int {
	return n.value
}

// Size returns the modulus.
func (n Numeric) Size() int {
	return n.size
}

// Add returns n + o reduced.
func (n Numeric) Add(o Numeric) Numeric {
	return New(n.value+o.value, n.size)
}

// AddInt returns n + v reduced. v must be non-negative.
func (n Numeric) AddInt(v int) Numeric {
	return New(n.value+v, n.size)
}

// Sub returns n - o, computed as (n + size - o) mod size so the result
// stays non-negative.
func (n Numeric) Sub(o Numeric) Numeric {
	return New(n.value+n.size-o.value, n.size)
}

// SubInt returns n - v reduced. v must be in [0, size].
func (n Numeric) SubInt(v int) Numeric {
	return New(n.value+n.size-v, n.size)
}

// Mul returns n * o reduced.
func (n Numeric) Mul(o Numeric) Numeric {
	return New(n.value*o.value, n.size)
}

// Div returns n / o (integer division). o must be non-zero; the executor
// guards every division site.
func (n Numeric) Div(o Numeric) Numeric {
	return New(n.value/o.value, n.size)
}

// Mod returns n % o. o must be non-zero.
func (n Numeric) Mod(o Numeric) Numeric {
	return New(n.value%o.value, n.size)
}

// IsZero reports whether the reduced representative is zero.
func (n Numeric) IsZero() bool {
	return n.value == 0
}

// Less compares reduced representatives.
func (n Numeric) Less(o Numeric) bool {
	return n.value < o.value
}

func (n Numeric) String() string {
	return fmt.Sprintf("%d", n.value)
}
