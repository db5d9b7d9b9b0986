package clock

import (
	"fmt"

	"omibyte.io/clocktree/register"
)

// SequencerState tracks the main clock through a source or divisor change.
type SequencerState uint8

const (
	Stable SequencerState = iota
	TransitionPending
	DividerRaised
	SourceSwitched
	DividerFinal
	LatencyAndPowerUpdated
)

func (s SequencerState) String() string {
	switch s {
	case Stable:
		return "stable"
	case TransitionPending:
		return "transition-pending"
	case DividerRaised:
		return "divider-raised"
	case SourceSwitched:
		return "source-switched"
	case DividerFinal:
		return "divider-final"
	case LatencyAndPowerUpdated:
		return "latency-and-power-updated"
	default:
		return fmt.Sprintf("SequencerState(%d)", uint8(s))
	}
}

const (
	// MaxHCLKFrequency is the fastest core clock the device supports.
	MaxHCLKFrequency = 200_000_000

	// Each flash wait state covers this much of the core clock.
	flashCycleFrequency = 27_000_000

	// basePowerLevel supports every frequency up to MaxHCLKFrequency.
	basePowerLevel = 0
)

// powerLevels lists the regulator levels from the lowest voltage up.
var powerLevels = []struct {
	level   uint32
	maxFreq uint32
}{
	{2, 48_000_000},
	{1, 96_000_000},
	{basePowerLevel, MaxHCLKFrequency},
}

func waitStatesFor(freq uint32) uint32 {
	return max(1, (freq+flashCycleFrequency-1)/flashCycleFrequency)
}

func powerLevelFor(freq uint32) uint32 {
	for _, pl := range powerLevels {
		if freq <= pl.maxFreq {
			return pl.level
		}
	}
	return basePowerLevel
}

// HCLK is the main clock. Changing it runs a five step sequence that keeps
// the core within its frequency and flash timing limits throughout.
type HCLK struct {
	ExtendedBranch
	waitStates register.Field
	powerLevel register.Field
	state      SequencerState
}

// State returns the sequencer position. It is Stable outside Enable.
func (h *HCLK) State() SequencerState {
	return h.state
}

// WaitStates returns the programmed flash wait states.
func (h *HCLK) WaitStates() uint32 {
	return h.tree.regs.Get(h.waitStates)
}

// PowerLevel returns the programmed regulator level.
func (h *HCLK) PowerLevel() uint32 {
	return h.tree.regs.Get(h.powerLevel)
}

// Enable expects an ExtendedConfig. Every check runs before the first write.
func (h *HCLK) Enable(cfg Config) error {
	c, ok := cfg.(ExtendedConfig)
	if !ok {
		return fmt.Errorf("%w: hclk expects ExtendedConfig, got %T", ErrValueOutOfRange, cfg)
	}

	tr, err := h.plan(c)
	if err != nil {
		h.tree.log.Debug("hclk rejected", "source", c.Source, "divisor", c.Divisor, "err", err)
		return err
	}

	var freq uint32
	err = h.tree.protected(func() error {
		p, err := tr.begin()
		if err != nil {
			return err
		}
		r, err := p.raiseDivider()
		if err != nil {
			return err
		}
		s, err := r.switchSource()
		if err != nil {
			return err
		}
		d, err := s.programDivider()
		if err != nil {
			return err
		}
		u, err := d.updateLatencyAndPower()
		if err != nil {
			return err
		}
		freq = u.settle()
		return nil
	})
	if err != nil {
		h.state = Stable
		return err
	}

	h.tree.log.Debug("hclk enabled", "source", c.Source, "divisor", c.Divisor, "frequency", freq)
	return nil
}

// Disable is a no-op; the core clock cannot be stopped.
func (h *HCLK) Disable() {
	h.tree.log.Debug("disable ignored", "clock", h.name)
}

func (h *HCLK) plan(c ExtendedConfig) (transition, error) {
	tr := transition{h: h, source: c.Source}

	sel, err := h.group.selectorFor(c.Source, h.selector)
	if err != nil {
		return tr, err
	}
	tr.selector = sel

	if tr.divider, err = h.divider.Encode(c.Divisor); err != nil {
		return tr, err
	}

	f, err := h.tree.resolveSource(c.Source, nil)
	if err != nil {
		return tr, err
	}
	if f/c.Divisor > MaxHCLKFrequency {
		return tr, fmt.Errorf("%w: hclk %d Hz exceeds %d Hz", ErrValueOutOfRange, f/c.Divisor, MaxHCLKFrequency)
	}
	return tr, nil
}

// transition is a validated HCLK change. Each step returns the token for the
// next one, so the steps can only run in order.
type transition struct {
	h        *HCLK
	source   Source
	selector uint32
	divider  uint32
}

type (
	pendingTransition struct{ transition }
	dividerRaised     struct{ transition }
	sourceSwitched    struct{ transition }
	dividerFinal      struct{ transition }
	latencyUpdated    struct {
		transition
		frequency uint32
	}
)

func (t transition) enter(s SequencerState) {
	t.h.state = s
	t.h.tree.log.Debug("hclk sequencer", "state", s, "source", t.source)
}

// begin moves latency and power to their safest settings.
func (t transition) begin() (pendingTransition, error) {
	regs := t.h.tree.regs
	if err := regs.Set(t.h.waitStates, t.h.waitStates.Max()); err != nil {
		return pendingTransition{}, err
	}
	if err := regs.Set(t.h.powerLevel, basePowerLevel); err != nil {
		return pendingTransition{}, err
	}
	t.enter(TransitionPending)
	return pendingTransition{t}, nil
}

func (p pendingTransition) raiseDivider() (dividerRaised, error) {
	h := p.h
	if err := h.tree.regs.Set(h.divider.Field, h.divider.MaxRaw()); err != nil {
		return dividerRaised{}, err
	}
	p.enter(DividerRaised)
	return dividerRaised{p.transition}, nil
}

func (d dividerRaised) switchSource() (sourceSwitched, error) {
	if err := d.h.tree.regs.Set(d.h.selector, d.selector); err != nil {
		return sourceSwitched{}, err
	}
	d.enter(SourceSwitched)
	return sourceSwitched{d.transition}, nil
}

func (s sourceSwitched) programDivider() (dividerFinal, error) {
	if err := s.h.tree.regs.Set(s.h.divider.Field, s.divider); err != nil {
		return dividerFinal{}, err
	}
	s.enter(DividerFinal)
	return dividerFinal{s.transition}, nil
}

// updateLatencyAndPower trims wait states and voltage to the new frequency.
func (d dividerFinal) updateLatencyAndPower() (latencyUpdated, error) {
	h := d.h
	f, err := h.resolve()
	if err != nil {
		return latencyUpdated{}, err
	}
	if err = h.tree.regs.Set(h.waitStates, waitStatesFor(f)); err != nil {
		return latencyUpdated{}, err
	}
	if err = h.tree.regs.Set(h.powerLevel, powerLevelFor(f)); err != nil {
		return latencyUpdated{}, err
	}
	d.enter(LatencyAndPowerUpdated)
	return latencyUpdated{d.transition, f}, nil
}

func (l latencyUpdated) settle() uint32 {
	l.enter(Stable)
	return l.frequency
}
