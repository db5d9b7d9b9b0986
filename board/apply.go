package board

import (
	"context"
	"fmt"

	"omibyte.io/clocktree/clock"
	"omibyte.io/clocktree/sim"
)

// Configs maps every node the profile sets to its configuration.
func (p *Profile) Configs(t *clock.Tree) (map[string]clock.Config, error) {
	configs := map[string]clock.Config{}

	if p.HXT != 0 {
		configs["hxt"] = clock.ExternalOscConfig{Frequency: p.HXT}
	}
	if p.LXT {
		configs["lxt"] = nil
	}
	if p.HIRC48 {
		configs["hirc48"] = nil
	}
	if p.PLL != nil {
		configs["pll"] = clock.PLLConfig{Source: p.PLL.Source, Multiplier: p.PLL.Multiplier, Divisor: p.PLL.Divisor}
	}
	if p.HCLK != nil {
		configs["hclk"] = clock.ExtendedConfig{Source: p.HCLK.Source, Divisor: divisor(p.HCLK.Divisor)}
	}

	for name, div := range p.Buses {
		c, err := t.Clock(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidProfile, p.Name, err)
		}
		if _, ok := c.(*clock.APBBranch); !ok {
			return nil, fmt.Errorf("%w: %s: %s is not a bus", ErrInvalidProfile, p.Name, name)
		}
		configs[name] = clock.APBConfig{Divisor: div}
	}

	for name, b := range p.Clocks {
		c, err := t.Clock(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidProfile, p.Name, err)
		}
		switch c.(type) {
		case *clock.GenericBranch:
			configs[name] = clock.GenericConfig{Source: b.Source}
		case *clock.ExtendedBranch:
			configs[name] = clock.ExtendedConfig{Source: b.Source, Divisor: divisor(b.Divisor)}
		case *clock.DividedBranch:
			configs[name] = clock.APBConfig{Divisor: divisor(b.Divisor)}
		default:
			return nil, fmt.Errorf("%w: %s: %s is not a peripheral clock", ErrInvalidProfile, p.Name, name)
		}
	}

	if p.ClockOutput != nil {
		configs["clko"] = clock.ClockOutputConfig{
			Pin:     p.ClockOutput.Pin,
			Source:  p.ClockOutput.Source,
			Divisor: divisor(p.ClockOutput.Divisor),
		}
	}
	return configs, nil
}

func divisor(d uint32) uint32 {
	if d == 0 {
		return 1
	}
	return d
}

// Apply enables every node the profile sets, dependencies first. Oscillators
// and the PLL are waited on before anything that may select them.
func (p *Profile) Apply(ctx context.Context, t *clock.Tree) error {
	configs, err := p.Configs(t)
	if err != nil {
		return err
	}

	log := t.Logger().With("board", p.Name)
	for _, name := range t.Names() {
		cfg, ok := configs[name]
		if !ok {
			continue
		}

		c, err := t.Clock(name)
		if err != nil {
			return err
		}
		if err = c.Enable(cfg); err != nil {
			return fmt.Errorf("%s: %s: %w", p.Name, name, err)
		}
		if err = clock.WaitReady(ctx, c); err != nil {
			return fmt.Errorf("%s: %s: %w", p.Name, name, err)
		}
		log.Info("clock configured", "clock", name, "frequency", c.Frequency())
	}
	return nil
}

// Check applies the profile to a simulated device.
func (p *Profile) Check(ctx context.Context) error {
	dev := sim.New()
	defer dev.Close()

	t, err := clock.New(dev.Registers())
	if err != nil {
		return err
	}
	return p.Apply(ctx, t)
}
