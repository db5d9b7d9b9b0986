// Package pinmux holds the multi-function pin table for the signals the
// clock tree drives or consumes: the crystal pads and the clock output.
package pinmux

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"omibyte.io/clocktree/chip"
	"omibyte.io/clocktree/register"
)

var ErrInvalidPin = errors.New("invalid pin")

// Pin encodes the port in the upper nibble and the pin number in the lower.
type Pin uint8

const numPorts = 6

// Pin group A..F, only the pads with a clock function are named.
const (
	PB14 Pin = 0x1E
	PC13 Pin = 0x2D
	PD12 Pin = 0x3C
	PF2  Pin = 0x52
	PF3  Pin = 0x53
	PF4  Pin = 0x54
	PF5  Pin = 0x55
)

func (p Pin) Port() int {
	return int(p >> 4)
}

func (p Pin) Number() int {
	return int(p & 0xF)
}

func (p Pin) String() string {
	return fmt.Sprintf("P%c%d", 'A'+p.Port(), p.Number())
}

func (p Pin) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pin) UnmarshalText(text []byte) error {
	parsed, err := ParsePin(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePin accepts names of the form "PB14".
func ParsePin(name string) (Pin, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if len(name) < 3 || name[0] != 'P' || name[1] < 'A' || name[1] >= 'A'+numPorts {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPin, name)
	}

	n, err := strconv.Atoi(name[2:])
	if err != nil || n < 0 || n > 15 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPin, name)
	}
	return Pin(int(name[1]-'A')<<4 | n), nil
}

// Signal is a clock-related pin function.
type Signal uint8

const (
	XT1In Signal = iota
	XT1Out
	X32In
	X32Out
	CLKO
)

func (s Signal) String() string {
	switch s {
	case XT1In:
		return "XT1_IN"
	case XT1Out:
		return "XT1_OUT"
	case X32In:
		return "X32_IN"
	case X32Out:
		return "X32_OUT"
	case CLKO:
		return "CLKO"
	default:
		return "Signal(" + strconv.Itoa(int(s)) + ")"
	}
}

// analog reports whether the signal is an oscillator pad whose digital input
// path must be disconnected.
func (s Signal) analog() bool {
	return s != CLKO
}

// Function is the value programmed into a pin's MFP field.
type Function uint8

type alternate struct {
	signal   Signal
	function Function
}

var alternates = map[Pin][]alternate{
	PB14: {{CLKO, 14}},
	PC13: {{CLKO, 13}},
	PD12: {{CLKO, 13}},
	PF2:  {{XT1Out, 10}},
	PF3:  {{XT1In, 10}},
	PF4:  {{X32Out, 10}},
	PF5:  {{X32In, 10}},
}

// Lookup returns the MFP value routing signal s to pin p.
func Lookup(p Pin, s Signal) (Function, error) {
	for _, alt := range alternates[p] {
		if alt.signal == s {
			return alt.function, nil
		}
	}
	return 0, fmt.Errorf("%w: %v cannot carry %v", ErrInvalidPin, p, s)
}

// PinsFor lists every pin that can carry s in ascending order.
func PinsFor(s Signal) []Pin {
	var pins []Pin
	for _, p := range maps.Keys(alternates) {
		if _, err := Lookup(p, s); err == nil {
			pins = append(pins, p)
		}
	}
	slices.Sort(pins)
	return pins
}

func mfpField(p Pin) register.Field {
	return register.Field{
		Register: chip.SYS_GPA_MFPL + 2*p.Port() + p.Number()/8,
		Offset:   uint8(4 * (p.Number() % 8)),
		Width:    4,
	}
}

func modeField(p Pin) register.Field {
	return register.Field{Register: chip.PA_MODE + p.Port(), Offset: uint8(2 * p.Number()), Width: 2}
}

func dinoffField(p Pin) register.Field {
	return register.Field{Register: chip.PA_DINOFF + p.Port(), Offset: uint8(16 + p.Number()), Width: 1}
}

// Configure routes s to p. Oscillator pads are switched to input mode with
// the digital input path disabled.
func Configure(regs *register.File, p Pin, s Signal) error {
	fn, err := Lookup(p, s)
	if err != nil {
		return err
	}

	if s.analog() {
		if err = regs.Set(modeField(p), 0); err != nil {
			return err
		}
		if err = regs.Set(dinoffField(p), 1); err != nil {
			return err
		}
	}
	return regs.Set(mfpField(p), uint32(fn))
}

// Current returns the MFP value currently programmed for p.
func Current(regs *register.File, p Pin) Function {
	return Function(regs.Get(mfpField(p)))
}
