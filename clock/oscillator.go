package clock

import (
	"fmt"

	"omibyte.io/clocktree/pinmux"
	"omibyte.io/clocktree/register"
)

// LeafState is the life cycle of an oscillator or the PLL. Running means the
// status bit reports a stable output.
type LeafState uint8

const (
	Disabled LeafState = iota
	Enabling
	Running
)

func (s LeafState) String() string {
	switch s {
	case Disabled:
		return "disabled"
	case Enabling:
		return "enabling"
	default:
		return "running"
	}
}

func leafState(enabled, ready bool) LeafState {
	switch {
	case !enabled:
		return Disabled
	case !ready:
		return Enabling
	default:
		return Running
	}
}

// pad is a crystal pin an oscillator needs routed before it is enabled.
type pad struct {
	pin    pinmux.Pin
	signal pinmux.Signal
}

func checkPads(pads []pad) error {
	for _, p := range pads {
		if _, err := pinmux.Lookup(p.pin, p.signal); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) configurePads(pads []pad) error {
	for _, p := range pads {
		if err := pinmux.Configure(t.regs, p.pin, p.signal); err != nil {
			return err
		}
	}
	return nil
}

// Oscillator is a fixed-frequency source.
type Oscillator struct {
	tree      *Tree
	name      string
	source    Source
	frequency uint32
	enable    register.Field
	status    register.Field
	pads      []pad
}

func (o *Oscillator) Name() string {
	return o.name
}

func (o *Oscillator) Source() Source {
	return o.source
}

func (o *Oscillator) Enable(cfg Config) error {
	if cfg != nil {
		return fmt.Errorf("%w: %s takes no configuration, got %T", ErrValueOutOfRange, o.name, cfg)
	}

	if err := checkPads(o.pads); err != nil {
		return err
	}

	err := o.tree.protected(func() error {
		if err := o.tree.configurePads(o.pads); err != nil {
			return err
		}
		return o.tree.regs.Set(o.enable, 1)
	})
	if err != nil {
		return err
	}

	o.tree.log.Debug("oscillator enabled", "clock", o.name, "frequency", o.frequency)
	return nil
}

// Disable refuses to stop an oscillator that the running PLL or the main
// clock takes its input from.
func (o *Oscillator) Disable() {
	if err := o.tree.checkUnused(o); err != nil {
		o.tree.log.Error("disable refused", "clock", o.name, "err", err)
		return
	}
	err := o.tree.protected(func() error {
		return o.tree.regs.Set(o.enable, 0)
	})
	if err != nil {
		o.tree.log.Error("disable failed", "clock", o.name, "err", err)
		return
	}
	o.tree.log.Debug("oscillator disabled", "clock", o.name)
}

// Frequency returns the nominal frequency while the enable bit is set.
func (o *Oscillator) Frequency() uint32 {
	f, _ := o.resolve()
	return f
}

func (o *Oscillator) Ready() bool {
	return o.tree.regs.Get(o.status) == 1
}

func (o *Oscillator) State() LeafState {
	return leafState(o.tree.regs.Get(o.enable) == 1, o.Ready())
}

func (o *Oscillator) resolve() (uint32, error) {
	if o.tree.regs.Get(o.enable) == 0 {
		return 0, nil
	}
	return o.frequency, nil
}

func (o *Oscillator) inputs() []node {
	return nil
}

const hxtMinFrequency = 4_000_000

// hxtBands are the upper bounds of the crystal gain ranges, indexed by the
// HXTGAIN value.
var hxtBands = [...]uint32{8_000_000, 12_000_000, 16_000_000, 24_000_000}

// ExternalOscillator is the high-speed crystal. Its frequency depends on the
// fitted part and is supplied on Enable.
type ExternalOscillator struct {
	tree   *Tree
	enable register.Field
	gain   register.Field
	status register.Field
	pads   []pad
}

func (x *ExternalOscillator) Name() string {
	return "hxt"
}

func (x *ExternalOscillator) Source() Source {
	return ExternalCrystal
}

// Enable expects an ExternalOscConfig with the crystal frequency in Hz.
func (x *ExternalOscillator) Enable(cfg Config) error {
	c, ok := cfg.(ExternalOscConfig)
	if !ok {
		return fmt.Errorf("%w: hxt expects ExternalOscConfig, got %T", ErrValueOutOfRange, cfg)
	}

	gain, err := crystalGain(c.Frequency)
	if err != nil {
		return err
	}

	if err = checkPads(x.pads); err != nil {
		return err
	}
	if c.Frequency != x.tree.hxtFrequency {
		if err = x.tree.checkUnused(x); err != nil {
			return err
		}
	}

	err = x.tree.protected(func() error {
		if err := x.tree.configurePads(x.pads); err != nil {
			return err
		}
		if err := x.tree.regs.Set(x.gain, gain); err != nil {
			return err
		}
		return x.tree.regs.Set(x.enable, 1)
	})
	if err != nil {
		return err
	}

	x.tree.hxtFrequency = c.Frequency
	x.tree.log.Debug("oscillator enabled", "clock", "hxt", "frequency", c.Frequency, "gain", gain)
	return nil
}

func crystalGain(freq uint32) (uint32, error) {
	if freq >= hxtMinFrequency {
		for gain, limit := range hxtBands {
			if freq <= limit {
				return uint32(gain), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: crystal frequency %d Hz outside %d..%d Hz",
		ErrValueOutOfRange, freq, hxtMinFrequency, hxtBands[len(hxtBands)-1])
}

func (x *ExternalOscillator) Disable() {
	if err := x.tree.checkUnused(x); err != nil {
		x.tree.log.Error("disable refused", "clock", "hxt", "err", err)
		return
	}
	err := x.tree.protected(func() error {
		return x.tree.regs.Set(x.enable, 0)
	})
	if err != nil {
		x.tree.log.Error("disable failed", "clock", "hxt", "err", err)
		return
	}
	x.tree.hxtFrequency = 0
	x.tree.log.Debug("oscillator disabled", "clock", "hxt")
}

// Frequency returns the crystal frequency recorded by the last successful
// Enable, or 0 after Disable.
func (x *ExternalOscillator) Frequency() uint32 {
	return x.tree.hxtFrequency
}

func (x *ExternalOscillator) Ready() bool {
	return x.tree.regs.Get(x.status) == 1
}

func (x *ExternalOscillator) State() LeafState {
	return leafState(x.tree.regs.Get(x.enable) == 1, x.Ready())
}

func (x *ExternalOscillator) resolve() (uint32, error) {
	return x.tree.hxtFrequency, nil
}

func (x *ExternalOscillator) inputs() []node {
	return nil
}
