// Package register describes bit-fields inside packed 32-bit hardware
// registers and provides the read-modify-write primitives the clock tree is
// built on.
package register

import "fmt"

// Field locates a value inside a register array: the word index, the bit
// offset of the least significant bit and the width in bits.
type Field struct {
	Register int
	Offset   uint8
	Width    uint8
}

// Max returns the largest value the field can hold.
func (f Field) Max() uint32 {
	if f.Width >= 32 {
		return ^uint32(0)
	}
	return 1<<f.Width - 1
}

// Mask returns the field's bits in register position.
func (f Field) Mask() uint32 {
	return f.Max() << f.Offset
}

// Fits reports whether v can be stored without truncation.
func (f Field) Fits(v uint32) bool {
	return v <= f.Max()
}

func (f Field) String() string {
	if f.Width == 1 {
		return fmt.Sprintf("r%d[%d]", f.Register, f.Offset)
	}
	return fmt.Sprintf("r%d[%d:%d]", f.Register, int(f.Offset)+int(f.Width)-1, f.Offset)
}

// Get extracts the field from regs.
func Get(f Field, regs []uint32) uint32 {
	return (regs[f.Register] >> f.Offset) & f.Max()
}

// Set stores v into the field, preserving every other bit of the word. The
// word is left untouched when v does not fit.
func Set(f Field, v uint32, regs []uint32) error {
	if f.Register < 0 || f.Register >= len(regs) {
		return fmt.Errorf("%w: %v", ErrNoRegister, f)
	}

	if !f.Fits(v) {
		return fmt.Errorf("%w: %d does not fit %v", ErrValueOutOfRange, v, f)
	}

	regs[f.Register] = regs[f.Register]&^f.Mask() | v<<f.Offset
	return nil
}
