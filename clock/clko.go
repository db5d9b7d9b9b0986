package clock

import (
	"fmt"
	"math/bits"

	"omibyte.io/clocktree/chip"
	"omibyte.io/clocktree/pinmux"
)

const maxClockOutputDivisor = 1 << 15

// ClockOutput drives a selected clock onto a CLKO pin, divided by a power of
// two.
type ClockOutput struct {
	branch
}

// Divisor returns the programmed division ratio.
func (c *ClockOutput) Divisor() uint32 {
	regs := c.tree.regs
	if regs.Get(chip.CLK_CLKOCTL_DIV1EN) == 1 {
		return 1
	}
	return 1 << (regs.Get(chip.CLK_CLKOCTL_FREQSEL) + 1)
}

// Enable expects a ClockOutputConfig.
func (c *ClockOutput) Enable(cfg Config) error {
	co, ok := cfg.(ClockOutputConfig)
	if !ok {
		return fmt.Errorf("%w: clko expects ClockOutputConfig, got %T", ErrValueOutOfRange, cfg)
	}

	if _, err := pinmux.Lookup(co.Pin, pinmux.CLKO); err != nil {
		return err
	}
	if co.Divisor == 0 || co.Divisor&(co.Divisor-1) != 0 || co.Divisor > maxClockOutputDivisor {
		return fmt.Errorf("%w: clko divisor %d is not a power of two up to %d",
			ErrValueOutOfRange, co.Divisor, maxClockOutputDivisor)
	}
	sel, f, err := c.prepare(co.Source)
	if err != nil {
		return err
	}

	n := uint32(bits.TrailingZeros32(co.Divisor))
	regs := c.tree.regs
	err = c.tree.protected(func() error {
		if err := pinmux.Configure(regs, co.Pin, pinmux.CLKO); err != nil {
			return err
		}
		if err := c.ungate(); err != nil {
			return err
		}
		if err := regs.Set(c.selector, sel); err != nil {
			return err
		}
		if n == 0 {
			if err := regs.Set(chip.CLK_CLKOCTL_DIV1EN, 1); err != nil {
				return err
			}
		} else {
			if err := regs.Set(chip.CLK_CLKOCTL_FREQSEL, n-1); err != nil {
				return err
			}
			if err := regs.Set(chip.CLK_CLKOCTL_DIV1EN, 0); err != nil {
				return err
			}
		}
		return regs.Set(chip.CLK_CLKOCTL_CLKOEN, 1)
	})
	if err != nil {
		return err
	}

	c.tree.log.Debug("clock output enabled",
		"pin", co.Pin,
		"source", co.Source,
		"divisor", co.Divisor,
		"frequency", f/co.Divisor)
	return nil
}

// Disable stops the output. Pin routing and the source gate are kept.
func (c *ClockOutput) Disable() {
	if err := c.tree.regs.Set(chip.CLK_CLKOCTL_CLKOEN, 0); err != nil {
		c.tree.log.Error("disable failed", "clock", c.name, "err", err)
		return
	}
	c.tree.log.Debug("clock output disabled")
}

func (c *ClockOutput) Frequency() uint32 {
	f, _ := c.resolve()
	return f
}

func (c *ClockOutput) resolve() (uint32, error) {
	if c.tree.regs.Get(chip.CLK_CLKOCTL_CLKOEN) == 0 {
		return 0, nil
	}
	f, err := c.branch.resolve()
	if err != nil {
		return 0, err
	}
	return f / c.Divisor(), nil
}
