// Package clock models the clock generation and distribution tree: the
// oscillators and PLL at its leaves, the multiplexers and dividers that feed
// buses and peripherals, and the procedures that re-clock them safely.
//
// All state lives in a Tree bound to one register.File. The package takes no
// locks; callers serialise access to a Tree.
package clock

import "omibyte.io/clocktree/pinmux"

// Clock is implemented by every node of the tree.
type Clock interface {
	// Enable programs the node. The config type depends on the node kind; nodes
	// without settings accept nil.
	Enable(cfg Config) error
	Disable()
	// Frequency returns the node's frequency in Hz, or 0 when it cannot be
	// resolved. It never polls status bits.
	Frequency() uint32
	// Ready polls the hardware status of the node.
	Ready() bool
}

// Config is one of the configuration payloads below.
type Config interface {
	clockConfig()
}

type ExternalOscConfig struct {
	Frequency uint32
}

type PLLConfig struct {
	Source     Source
	Multiplier uint32
	Divisor    uint32
}

type APBConfig struct {
	Divisor uint32
}

type ExtendedConfig struct {
	Source  Source
	Divisor uint32
}

type GenericConfig struct {
	Source Source
}

type ClockOutputConfig struct {
	Pin     pinmux.Pin
	Source  Source
	Divisor uint32
}

func (ExternalOscConfig) clockConfig() {}
func (PLLConfig) clockConfig()         {}
func (APBConfig) clockConfig()         {}
func (ExtendedConfig) clockConfig()    {}
func (GenericConfig) clockConfig()     {}
func (ClockOutputConfig) clockConfig() {}

// node is the internal view shared by every Clock the Tree owns.
type node interface {
	Clock
	Name() string
	// Source is the source currently feeding the node, or the node's own
	// identity for leaves.
	Source() Source
	resolve() (uint32, error)
	inputs() []node
}
