// Package sim models the parts of the device that react to clock register
// writes: oscillator and PLL status bits follow their enable bits.
package sim

import (
	"io"
	"log/slog"

	"omibyte.io/clocktree/chip"
	"omibyte.io/clocktree/register"
)

// stabilizers pairs each enable bit with the status bit it drives.
var stabilizers = []struct {
	enable, status register.Field
	inverted       bool
}{
	{chip.CLK_PWRCTL_HXTEN, chip.CLK_STATUS_HXTSTB, false},
	{chip.CLK_PWRCTL_LXTEN, chip.CLK_STATUS_LXTSTB, false},
	{chip.CLK_PWRCTL_HIRCEN, chip.CLK_STATUS_HIRCSTB, false},
	{chip.CLK_PWRCTL_LIRCEN, chip.CLK_STATUS_LIRCSTB, false},
	{chip.CLK_PWRCTL_HIRC48EN, chip.CLK_STATUS_HIRC48STB, false},
	{chip.CLK_PLLCTL_PD, chip.CLK_STATUS_PLLSTB, true},
}

type Option func(d *Device)

// WithLogger traces every register write at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(d *Device) {
		d.log = l
	}
}

// Device is a simulated part. Status bits settle as soon as the matching
// enable bit is written, unless they are held.
type Device struct {
	regs   *register.File
	log    *slog.Logger
	held   map[register.Field]bool
	cancel func()
}

// New returns a device in its power-on state.
func New(options ...Option) *Device {
	d := &Device{
		regs: chip.NewFile(),
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		held: map[register.Field]bool{},
	}
	for _, option := range options {
		option(d)
	}

	for i, v := range chip.ResetValues {
		d.regs.Poke(i, v)
	}
	d.settle()
	d.cancel = d.regs.Observe(d.observe)
	return d
}

// Registers returns the device's register file.
func (d *Device) Registers() *register.File {
	return d.regs
}

// Hold keeps status cleared until Release, as if the oscillator never started.
func (d *Device) Hold(status register.Field) {
	d.held[status] = true
	d.settle()
}

func (d *Device) Release(status register.Field) {
	delete(d.held, status)
	d.settle()
}

// Close detaches the model. Status bits stop following later writes.
func (d *Device) Close() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *Device) observe(w register.Write) {
	d.log.Debug("write",
		"register", chip.RegisterNames[w.Register],
		"old", w.Old,
		"new", w.New)

	if w.Register == chip.CLK_PWRCTL || w.Register == chip.CLK_PLLCTL {
		d.settle()
	}
}

// settle recomputes every status bit from the enable bits.
func (d *Device) settle() {
	for _, s := range stabilizers {
		on := d.regs.Get(s.enable) == 1
		if s.inverted {
			on = !on
		}
		if d.held[s.status] {
			on = false
		}

		var v uint32
		if on {
			v = 1
		}
		d.regs.PokeField(s.status, v)
	}
}
