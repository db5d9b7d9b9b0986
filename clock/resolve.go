package clock

import "fmt"

// Resolve computes the frequency of c by walking its selected sources down to
// a leaf. Unlike Frequency it reports why a node cannot be resolved.
func (t *Tree) Resolve(c Clock) (uint32, error) {
	n, ok := c.(node)
	if !ok || t.byName[n.Name()] != n {
		return 0, fmt.Errorf("%w: %T", ErrUnknownClock, c)
	}
	return n.resolve()
}

// nodeFor returns the node that provides src to a branch on bus.
func (t *Tree) nodeFor(src Source, bus *APBBranch) node {
	switch src {
	case InternalRC:
		return t.HIRC
	case InternalLowSpeedRC:
		return t.LIRC
	case InternalHighSpeedRC:
		return t.HIRC48
	case ExternalCrystal:
		return t.HXT
	case RtcCrystal:
		return t.LXT
	case Pll:
		return t.PLL
	case MainClock:
		return t.HCLK
	case ApbDerived:
		if bus != nil {
			return bus
		}
	}
	return nil
}

// consumer returns the running node that takes its clock directly from n:
// the PLL while it is powered, or the main clock. A stopped n feeds nothing.
// Peripheral branches are not tracked.
func (t *Tree) consumer(n node) node {
	if f, err := n.resolve(); err != nil || f == 0 {
		return nil
	}
	if n != node(t.PLL) && t.PLL.Frequency() != 0 && t.nodeFor(t.PLL.Input(), nil) == n {
		return t.PLL
	}
	if t.nodeFor(t.HCLK.Source(), nil) == n {
		return t.HCLK
	}
	return nil
}

// checkUnused fails with ErrInUse when changing n would pull the clock from
// under a running consumer.
func (t *Tree) checkUnused(n node) error {
	if c := t.consumer(n); c != nil {
		return fmt.Errorf("%w: %s feeds %s", ErrInUse, n.Name(), c.Name())
	}
	return nil
}

// resolveSource resolves src as seen from a branch on bus. A source that
// resolves to 0 is reported as ErrNotReady.
func (t *Tree) resolveSource(src Source, bus *APBBranch) (uint32, error) {
	n := t.nodeFor(src, bus)
	if n == nil {
		return 0, fmt.Errorf("%w: no %v reaches this branch", ErrNotReady, src)
	}

	f, err := n.resolve()
	if err != nil {
		return 0, err
	}
	if f == 0 {
		return 0, fmt.Errorf("%w: %s is not running", ErrNotReady, n.Name())
	}
	return f, nil
}
