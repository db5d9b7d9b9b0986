package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omibyte.io/clocktree/register"
	"omibyte.io/clocktree/sim"
)

func newTestTree(t *testing.T) (*Tree, *sim.Device) {
	t.Helper()
	dev := sim.New()
	t.Cleanup(dev.Close)

	tree, err := New(dev.Registers())
	require.NoError(t, err)
	return tree, dev
}

// enableHXT starts the 12 MHz crystal.
func enableHXT(t *testing.T, tree *Tree) {
	t.Helper()
	require.NoError(t, tree.HXT.Enable(ExternalOscConfig{Frequency: 12_000_000}))
}

// enablePLL runs the PLL at 240 MHz from the crystal.
func enablePLL(t *testing.T, tree *Tree) {
	t.Helper()
	enableHXT(t, tree)
	require.NoError(t, tree.PLL.Enable(PLLConfig{Source: ExternalCrystal, Multiplier: 40, Divisor: 2}))
}

// requireUntouched runs fn and fails if it changed any register.
func requireUntouched(t *testing.T, tree *Tree, fn func() error) error {
	t.Helper()
	before := tree.Registers().Snapshot()
	err := fn()
	require.Error(t, err)
	require.Equal(t, before, tree.Registers().Snapshot())
	return err
}

func TestNewResetFrequencies(t *testing.T) {
	tree, _ := newTestTree(t)

	tests := map[string]uint32{
		"hirc":   12_000_000,
		"lirc":   10_000,
		"hirc48": 0,
		"lxt":    0,
		"hxt":    0,
		"pll":    0,
		"hclk":   12_000_000,
		"pclk0":  12_000_000,
		"pclk1":  12_000_000,
		"uart0":  12_000_000,
		"uart1":  12_000_000,
		"sdh0":   12_000_000,
		"tmr0":   12_000_000,
		"spi0":   12_000_000,
		"wdt":    10_000,
		"rtc":    0,
		"eadc":   12_000_000,
		"emac":   12_000_000,
		"clko":   0,
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := tree.Clock(name)
			require.NoError(t, err)
			assert.Equal(t, want, c.Frequency())
		})
	}
}

func TestNewShortRegisterFile(t *testing.T) {
	_, err := New(register.NewFile(4))
	require.ErrorIs(t, err, register.ErrNoRegister)
}

func TestClockLookup(t *testing.T) {
	tree, _ := newTestTree(t)

	c, err := tree.Clock("uart0")
	require.NoError(t, err)
	assert.Same(t, tree.UART0, c)

	_, err = tree.Clock("uart9")
	require.ErrorIs(t, err, ErrUnknownClock)
}

func TestNamesAreTopological(t *testing.T) {
	tree, _ := newTestTree(t)

	names := tree.Names()
	require.Len(t, names, len(tree.byName))

	position := map[string]int{}
	for i, name := range names {
		position[name] = i
	}

	for _, n := range tree.nodes {
		for _, in := range n.inputs() {
			assert.Less(t, position[in.Name()], position[n.Name()], "%s must precede %s", in.Name(), n.Name())
		}
	}

	// Oscillators have no inputs and lead the order.
	assert.ElementsMatch(t, []string{"hirc", "lirc", "hirc48", "lxt", "hxt"}, names[:5])

	// The order is deterministic.
	again, _ := newTestTree(t)
	assert.Equal(t, names, again.Names())
}

func TestResolve(t *testing.T) {
	tree, _ := newTestTree(t)

	f, err := tree.Resolve(tree.PCLK0)
	require.NoError(t, err)
	assert.Equal(t, uint32(12_000_000), f)

	// The RTC selects LXT after reset, which is off.
	_, err = tree.Resolve(tree.RTC)
	require.ErrorIs(t, err, ErrNotReady)
	assert.Zero(t, tree.RTC.Frequency())

	other, _ := newTestTree(t)
	_, err = tree.Resolve(other.HCLK)
	require.ErrorIs(t, err, ErrUnknownClock)
}

func TestResolveFollowsSources(t *testing.T) {
	tree, _ := newTestTree(t)
	enablePLL(t, tree)

	require.NoError(t, tree.HCLK.Enable(ExtendedConfig{Source: Pll, Divisor: 2}))
	require.NoError(t, tree.PCLK1.Enable(APBConfig{Divisor: 4}))
	require.NoError(t, tree.SPI0.Enable(GenericConfig{Source: ApbDerived}))
	require.NoError(t, tree.EADC.Enable(APBConfig{Divisor: 3}))

	assert.Equal(t, uint32(120_000_000), tree.HCLK.Frequency())
	assert.Equal(t, uint32(30_000_000), tree.PCLK1.Frequency())
	assert.Equal(t, uint32(30_000_000), tree.SPI0.Frequency())
	assert.Equal(t, uint32(10_000_000), tree.EADC.Frequency())

	// Dependents follow their sources without being re-enabled.
	require.NoError(t, tree.UART0.Enable(ExtendedConfig{Source: Pll, Divisor: 4}))
	require.NoError(t, tree.HCLK.Enable(ExtendedConfig{Source: InternalRC, Divisor: 1}))
	assert.Equal(t, uint32(3_000_000), tree.SPI0.Frequency())
	assert.Equal(t, uint32(1_000_000), tree.EADC.Frequency())
	assert.Equal(t, uint32(60_000_000), tree.UART0.Frequency())

	tree.PLL.Disable()
	_, err := tree.Resolve(tree.UART0)
	require.ErrorIs(t, err, ErrNotReady)
	assert.Zero(t, tree.UART0.Frequency())
}
