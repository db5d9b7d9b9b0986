package clock

import (
	"fmt"
	"strings"
)

// Source identifies a frequency producer that a branch can select.
type Source uint8

const (
	Undefined Source = iota
	InternalRC
	InternalLowSpeedRC
	InternalHighSpeedRC
	ExternalCrystal
	RtcCrystal
	Pll
	MainClock
	ApbDerived
)

var sourceNames = [...]string{
	Undefined:           "UNDEFINED",
	InternalRC:          "HIRC",
	InternalLowSpeedRC:  "LIRC",
	InternalHighSpeedRC: "HIRC48",
	ExternalCrystal:     "HXT",
	RtcCrystal:          "LXT",
	Pll:                 "PLL",
	MainClock:           "HCLK",
	ApbDerived:          "PCLK",
}

func (s Source) String() string {
	if int(s) < len(sourceNames) {
		return sourceNames[s]
	}
	return fmt.Sprintf("Source(%d)", uint8(s))
}

func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Source) UnmarshalText(text []byte) error {
	parsed, err := ParseSource(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSource maps a source name such as "hxt" or "PLL" to its Source.
func ParseSource(name string) (Source, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range sourceNames {
		if Source(i) != Undefined && n == name {
			return Source(i), nil
		}
	}
	return Undefined, fmt.Errorf("%w: unknown clock source %q", ErrValueOutOfRange, name)
}
