package clock

import (
	"fmt"

	"omibyte.io/clocktree/register"
)

// branch is the selector shared by generic and extended branches. A zero gate
// field means the branch cannot be gated.
type branch struct {
	tree     *Tree
	name     string
	selector register.Field
	group    *Group
	gate     register.Field
	bus      *APBBranch
}

func (b *branch) Name() string {
	return b.name
}

// Source decodes the selector field.
func (b *branch) Source() Source {
	return b.group.Source(b.tree.regs.Get(b.selector))
}

// Ready is always true for branches; only leaves report a status.
func (b *branch) Ready() bool {
	return true
}

// Gated reports whether the branch's clock gate is open.
func (b *branch) Gated() bool {
	return b.gate.Width == 0 || b.tree.regs.Get(b.gate) == 1
}

func (b *branch) Disable() {
	if b.gate.Width == 0 {
		return
	}
	if err := b.tree.regs.Set(b.gate, 0); err != nil {
		b.tree.log.Error("disable failed", "clock", b.name, "err", err)
		return
	}
	b.tree.log.Debug("clock gated", "clock", b.name)
}

// prepare validates src and returns its selector value. The selected source
// must already resolve to a nonzero frequency.
func (b *branch) prepare(src Source) (uint32, uint32, error) {
	sel, err := b.group.selectorFor(src, b.selector)
	if err != nil {
		return 0, 0, err
	}
	f, err := b.tree.resolveSource(src, b.bus)
	if err != nil {
		return 0, 0, err
	}
	return sel, f, nil
}

func (b *branch) ungate() error {
	if b.gate.Width == 0 {
		return nil
	}
	return b.tree.regs.Set(b.gate, 1)
}

func (b *branch) resolve() (uint32, error) {
	sel := b.tree.regs.Get(b.selector)
	src := b.group.Source(sel)
	if src == Undefined {
		return 0, fmt.Errorf("%w: %s selector %d is not populated", ErrNotReady, b.name, sel)
	}
	return b.tree.resolveSource(src, b.bus)
}

func (b *branch) inputs() []node {
	var nodes []node
	for _, src := range b.group.Sources() {
		if n := b.tree.nodeFor(src, b.bus); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// GenericBranch is a peripheral clock with a source selector and no divider.
type GenericBranch struct {
	branch
}

// Enable expects a GenericConfig.
func (g *GenericBranch) Enable(cfg Config) error {
	c, ok := cfg.(GenericConfig)
	if !ok {
		return fmt.Errorf("%w: %s expects GenericConfig, got %T", ErrValueOutOfRange, g.name, cfg)
	}

	sel, f, err := g.prepare(c.Source)
	if err != nil {
		return err
	}

	err = g.tree.protected(func() error {
		if err := g.tree.regs.Set(g.selector, sel); err != nil {
			return err
		}
		return g.ungate()
	})
	if err != nil {
		return err
	}

	g.tree.log.Debug("clock enabled", "clock", g.name, "source", c.Source, "frequency", f)
	return nil
}

func (g *GenericBranch) Frequency() uint32 {
	f, _ := g.resolve()
	return f
}

// ExtendedBranch is a peripheral clock with a source selector and a linear
// divider.
type ExtendedBranch struct {
	branch
	divider Divider
}

// Divisor returns the division ratio currently programmed.
func (e *ExtendedBranch) Divisor() uint32 {
	return e.divider.Ratio(e.tree.regs)
}

// Enable expects an ExtendedConfig. The divider is parked at its maximum while
// the selector moves.
func (e *ExtendedBranch) Enable(cfg Config) error {
	c, ok := cfg.(ExtendedConfig)
	if !ok {
		return fmt.Errorf("%w: %s expects ExtendedConfig, got %T", ErrValueOutOfRange, e.name, cfg)
	}

	raw, err := e.divider.Encode(c.Divisor)
	if err != nil {
		return err
	}
	sel, f, err := e.prepare(c.Source)
	if err != nil {
		return err
	}

	regs := e.tree.regs
	err = e.tree.protected(func() error {
		if err := regs.Set(e.divider.Field, e.divider.MaxRaw()); err != nil {
			return err
		}
		if err := regs.Set(e.selector, sel); err != nil {
			return err
		}
		if err := regs.Set(e.divider.Field, raw); err != nil {
			return err
		}
		return e.ungate()
	})
	if err != nil {
		return err
	}

	e.tree.log.Debug("clock enabled", "clock", e.name, "source", c.Source, "divisor", c.Divisor, "frequency", f/c.Divisor)
	return nil
}

func (e *ExtendedBranch) Frequency() uint32 {
	f, _ := e.resolve()
	return f
}

func (e *ExtendedBranch) resolve() (uint32, error) {
	f, err := e.branch.resolve()
	if err != nil {
		return 0, err
	}
	return f / e.Divisor(), nil
}

// APBBranch is a peripheral bus clock derived from HCLK by a power-of-two
// prescaler.
type APBBranch struct {
	tree    *Tree
	name    string
	divider Divider
}

func (a *APBBranch) Name() string {
	return a.name
}

func (a *APBBranch) Source() Source {
	return MainClock
}

func (a *APBBranch) Divisor() uint32 {
	return a.divider.Ratio(a.tree.regs)
}

// Enable expects an APBConfig with a power-of-two divisor up to 16.
func (a *APBBranch) Enable(cfg Config) error {
	c, ok := cfg.(APBConfig)
	if !ok {
		return fmt.Errorf("%w: %s expects APBConfig, got %T", ErrValueOutOfRange, a.name, cfg)
	}

	raw, err := a.divider.Encode(c.Divisor)
	if err != nil {
		return err
	}
	if err = a.tree.regs.Set(a.divider.Field, raw); err != nil {
		return err
	}

	a.tree.log.Debug("bus divider set", "clock", a.name, "divisor", c.Divisor)
	return nil
}

// Disable is a no-op; the peripheral buses cannot be stopped.
func (a *APBBranch) Disable() {
	a.tree.log.Debug("disable ignored", "clock", a.name)
}

func (a *APBBranch) Frequency() uint32 {
	f, _ := a.resolve()
	return f
}

func (a *APBBranch) Ready() bool {
	return true
}

func (a *APBBranch) resolve() (uint32, error) {
	f, err := a.tree.resolveSource(MainClock, nil)
	if err != nil {
		return 0, err
	}
	return f / a.Divisor(), nil
}

func (a *APBBranch) inputs() []node {
	return []node{a.tree.HCLK}
}

// DividedBranch is a gated peripheral clock with a fixed parent and a linear
// divider.
type DividedBranch struct {
	tree    *Tree
	name    string
	parent  node
	divider Divider
	gate    register.Field
}

func (d *DividedBranch) Name() string {
	return d.name
}

// Source reports the parent as ApbDerived or MainClock.
func (d *DividedBranch) Source() Source {
	if _, ok := d.parent.(*APBBranch); ok {
		return ApbDerived
	}
	return MainClock
}

func (d *DividedBranch) Divisor() uint32 {
	return d.divider.Ratio(d.tree.regs)
}

// Enable expects an APBConfig carrying the linear divisor.
func (d *DividedBranch) Enable(cfg Config) error {
	c, ok := cfg.(APBConfig)
	if !ok {
		return fmt.Errorf("%w: %s expects APBConfig, got %T", ErrValueOutOfRange, d.name, cfg)
	}

	raw, err := d.divider.Encode(c.Divisor)
	if err != nil {
		return err
	}
	if err = d.tree.regs.Set(d.divider.Field, raw); err != nil {
		return err
	}
	if err = d.tree.regs.Set(d.gate, 1); err != nil {
		return err
	}

	d.tree.log.Debug("clock enabled", "clock", d.name, "parent", d.parent.Name(), "divisor", c.Divisor)
	return nil
}

func (d *DividedBranch) Disable() {
	if err := d.tree.regs.Set(d.gate, 0); err != nil {
		d.tree.log.Error("disable failed", "clock", d.name, "err", err)
		return
	}
	d.tree.log.Debug("clock gated", "clock", d.name)
}

func (d *DividedBranch) Frequency() uint32 {
	f, _ := d.resolve()
	return f
}

func (d *DividedBranch) Ready() bool {
	return true
}

func (d *DividedBranch) resolve() (uint32, error) {
	f, err := d.parent.resolve()
	if err != nil {
		return 0, err
	}
	if f == 0 {
		return 0, fmt.Errorf("%w: %s is not running", ErrNotReady, d.parent.Name())
	}
	return f / d.Divisor(), nil
}

func (d *DividedBranch) inputs() []node {
	return []node{d.parent}
}
