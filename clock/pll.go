package clock

import (
	"fmt"

	"omibyte.io/clocktree/chip"
)

const (
	pllMinVCO       = 200_000_000
	pllMaxVCO       = 500_000_000
	pllMinReference = 4_000_000
	pllMaxReference = 8_000_000 // exclusive
	pllMaxInDiv     = 33
	pllMinFeedback  = 2
	pllMaxFeedback  = 513
)

// pllOutputDividers maps the supported output division ratios to OUTDIV.
var pllOutputDividers = map[uint32]uint32{1: 0, 2: 1, 4: 3}

// pllSettings are the coefficients computed for one PLLConfig.
type pllSettings struct {
	selector uint32
	inDiv    uint32
	feedback uint32
	outDiv   uint32
	vco      uint64
	output   uint32
}

// solvePLL computes the PLL coefficients that produce input*multiplier/divisor.
// The input divider is the smallest one that brings the reference below 8 MHz.
func solvePLL(input uint32, cfg PLLConfig) (pllSettings, error) {
	var s pllSettings

	outDiv, ok := pllOutputDividers[cfg.Divisor]
	if !ok {
		return s, fmt.Errorf("%w: pll divisor %d is not 1, 2 or 4", ErrValueOutOfRange, cfg.Divisor)
	}
	s.outDiv = outDiv

	sel, err := GroupPLL.selectorFor(cfg.Source, chip.CLK_PLLCTL_PLLSRC)
	if err != nil {
		return s, err
	}
	s.selector = sel

	if input == 0 {
		return s, fmt.Errorf("%w: pll input %v is not running", ErrNotReady, cfg.Source)
	}

	s.vco = uint64(input) * uint64(cfg.Multiplier)
	if s.vco < pllMinVCO || s.vco > pllMaxVCO {
		return s, fmt.Errorf("%w: pll vco %d Hz outside %d..%d Hz", ErrValueOutOfRange, s.vco, pllMinVCO, pllMaxVCO)
	}

	for s.inDiv = 1; s.inDiv <= pllMaxInDiv; s.inDiv++ {
		if input/s.inDiv < pllMaxReference {
			break
		}
	}
	if s.inDiv > pllMaxInDiv || input/s.inDiv < pllMinReference {
		return s, fmt.Errorf("%w: no input divider brings %d Hz into %d..%d Hz",
			ErrValueOutOfRange, input, pllMinReference, pllMaxReference)
	}
	if !chip.CLK_PLLCTL_INDIV.Fits(s.inDiv - 1) {
		return s, fmt.Errorf("%w: pll input divider %d", ErrValueOutOfRange, s.inDiv)
	}

	reference := uint64(input / s.inDiv)
	s.feedback = uint32(s.vco / (2 * reference))
	if s.feedback < pllMinFeedback || s.feedback > pllMaxFeedback {
		return s, fmt.Errorf("%w: pll feedback divider %d outside %d..%d",
			ErrValueOutOfRange, s.feedback, pllMinFeedback, pllMaxFeedback)
	}

	// The feedback divider truncates, so the programmed VCO can fall short of
	// input*multiplier.
	s.vco = 2 * reference * uint64(s.feedback)
	if s.vco < pllMinVCO {
		return s, fmt.Errorf("%w: pll vco %d Hz below %d Hz after rounding the feedback divider",
			ErrValueOutOfRange, s.vco, pllMinVCO)
	}
	s.output = uint32(s.vco / uint64(cfg.Divisor))
	return s, nil
}

// PLL multiplies HXT or HIRC.
type PLL struct {
	tree *Tree
}

func (p *PLL) Name() string {
	return "pll"
}

func (p *PLL) Source() Source {
	return Pll
}

// Input returns the source currently selected as the PLL reference.
func (p *PLL) Input() Source {
	return GroupPLL.Source(p.tree.regs.Get(chip.CLK_PLLCTL_PLLSRC))
}

// Enable expects a PLLConfig. The register block is left untouched when the
// configuration is rejected, including while the main clock runs from the
// PLL: move the main clock elsewhere first.
func (p *PLL) Enable(cfg Config) error {
	c, ok := cfg.(PLLConfig)
	if !ok {
		return fmt.Errorf("%w: pll expects PLLConfig, got %T", ErrValueOutOfRange, cfg)
	}
	if err := p.tree.checkUnused(p); err != nil {
		return err
	}

	var input uint32
	if n := p.tree.nodeFor(c.Source, nil); n != nil && GroupPLL.Contains(c.Source) {
		var err error
		if input, err = n.resolve(); err != nil {
			return err
		}
	}

	s, err := solvePLL(input, c)
	if err != nil {
		p.tree.log.Debug("pll rejected", "source", c.Source, "multiplier", c.Multiplier, "divisor", c.Divisor, "err", err)
		return err
	}

	regs := p.tree.regs
	err = p.tree.protected(func() error {
		if err := regs.Set(chip.CLK_PLLCTL_PD, 1); err != nil {
			return err
		}
		if err := regs.Set(chip.CLK_PLLCTL_INDIV, s.inDiv-1); err != nil {
			return err
		}
		if err := regs.Set(chip.CLK_PLLCTL_FBDIV, s.feedback-pllMinFeedback); err != nil {
			return err
		}
		if err := regs.Set(chip.CLK_PLLCTL_OUTDIV, s.outDiv); err != nil {
			return err
		}
		if err := regs.Set(chip.CLK_PLLCTL_PLLSRC, s.selector); err != nil {
			return err
		}
		if err := regs.Set(chip.CLK_PLLCTL_BP, 0); err != nil {
			return err
		}
		if err := regs.Set(chip.CLK_PLLCTL_OE, 0); err != nil {
			return err
		}
		return regs.Set(chip.CLK_PLLCTL_PD, 0)
	})
	if err != nil {
		return err
	}

	p.tree.pllFrequency = s.output
	p.tree.log.Debug("pll enabled",
		"source", c.Source,
		"indiv", s.inDiv,
		"fbdiv", s.feedback,
		"outdiv", c.Divisor,
		"vco", s.vco,
		"frequency", s.output)
	return nil
}

// Disable refuses to stop the PLL while the main clock runs from it.
func (p *PLL) Disable() {
	if err := p.tree.checkUnused(p); err != nil {
		p.tree.log.Error("disable refused", "clock", "pll", "err", err)
		return
	}
	err := p.tree.protected(func() error {
		return p.tree.regs.Set(chip.CLK_PLLCTL_PD, 1)
	})
	if err != nil {
		p.tree.log.Error("disable failed", "clock", "pll", "err", err)
		return
	}
	p.tree.pllFrequency = 0
	p.tree.log.Debug("pll disabled")
}

// Frequency returns the output computed by the last successful Enable.
func (p *PLL) Frequency() uint32 {
	return p.tree.pllFrequency
}

func (p *PLL) Ready() bool {
	regs := p.tree.regs
	return regs.Get(chip.CLK_PLLCTL_PD) == 0 && regs.Get(chip.CLK_STATUS_PLLSTB) == 1
}

func (p *PLL) State() LeafState {
	return leafState(p.tree.regs.Get(chip.CLK_PLLCTL_PD) == 0, p.Ready())
}

func (p *PLL) resolve() (uint32, error) {
	return p.tree.pllFrequency, nil
}

func (p *PLL) inputs() []node {
	return []node{p.tree.HXT, p.tree.HIRC}
}
