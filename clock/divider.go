package clock

import (
	"fmt"
	"math/bits"

	"omibyte.io/clocktree/register"
)

type Encoding uint8

const (
	// Linear stores ratio-1.
	Linear Encoding = iota
	// PowerOfTwo stores log2(ratio), bounded by MaxExponent.
	PowerOfTwo
)

// Divider is a prescaler field.
type Divider struct {
	Field       register.Field
	Encoding    Encoding
	MaxExponent uint32
}

// Encode converts a division ratio into the raw field value.
func (d Divider) Encode(ratio uint32) (uint32, error) {
	var raw uint32
	switch d.Encoding {
	case PowerOfTwo:
		if ratio == 0 || ratio&(ratio-1) != 0 {
			return 0, fmt.Errorf("%w: divisor %d is not a power of two", ErrValueOutOfRange, ratio)
		}
		raw = uint32(bits.TrailingZeros32(ratio))
		if raw > d.MaxExponent {
			return 0, fmt.Errorf("%w: divisor %d exceeds %d", ErrValueOutOfRange, ratio, d.MaxRatio())
		}
	default:
		if ratio == 0 {
			return 0, fmt.Errorf("%w: divisor 0", ErrValueOutOfRange)
		}
		raw = ratio - 1
	}

	if !d.Field.Fits(raw) {
		return 0, fmt.Errorf("%w: divisor %d exceeds %d", ErrValueOutOfRange, ratio, d.MaxRatio())
	}
	return raw, nil
}

// Decode converts a raw field value into the division ratio.
func (d Divider) Decode(raw uint32) uint32 {
	if d.Encoding == PowerOfTwo {
		return 1 << raw
	}
	return raw + 1
}

// MaxRaw is the raw value of the largest ratio.
func (d Divider) MaxRaw() uint32 {
	if d.Encoding == PowerOfTwo {
		return min(d.MaxExponent, d.Field.Max())
	}
	return d.Field.Max()
}

func (d Divider) MaxRatio() uint32 {
	return d.Decode(d.MaxRaw())
}

// Ratio reads the division ratio currently programmed.
func (d Divider) Ratio(regs *register.File) uint32 {
	return d.Decode(regs.Get(d.Field))
}
