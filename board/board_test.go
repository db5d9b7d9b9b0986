package board

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omibyte.io/clocktree/chip"
	"omibyte.io/clocktree/clock"
	"omibyte.io/clocktree/pinmux"
	"omibyte.io/clocktree/sim"
)

func newTree(t *testing.T) (*clock.Tree, *sim.Device) {
	t.Helper()
	dev := sim.New()
	t.Cleanup(dev.Close)

	tree, err := clock.New(dev.Registers())
	require.NoError(t, err)
	return tree, dev
}

func TestFind(t *testing.T) {
	p, err := Find("NuMaker-PFM-M487")
	require.NoError(t, err)
	assert.Equal(t, uint32(12_000_000), p.HXT)
	assert.Equal(t, &PLL{Source: clock.ExternalCrystal, Multiplier: 32, Divisor: 2}, p.PLL)
	assert.Equal(t, &ClockOutput{Pin: pinmux.PB14, Source: clock.MainClock, Divisor: 64}, p.ClockOutput)
	assert.Equal(t, Branch{Source: clock.ApbDerived}, p.Clocks["tmr0"])

	alias, err := Find("m487")
	require.NoError(t, err)
	assert.Equal(t, p.Name, alias.Name)

	_, err = Find("arduino")
	require.ErrorIs(t, err, ErrBoardNotFound)
}

func TestBuiltinProfilesCheck(t *testing.T) {
	builtin := Builtin()
	require.NotEmpty(t, builtin)

	for _, p := range builtin {
		t.Run(p.Name, func(t *testing.T) {
			require.NoError(t, p.Check(context.Background()))
		})
	}
}

func TestApply(t *testing.T) {
	tree, _ := newTree(t)
	p, err := Find("numaker-pfm-m487")
	require.NoError(t, err)

	require.NoError(t, p.Apply(context.Background(), tree))

	want := map[string]uint32{
		"hxt":   12_000_000,
		"pll":   192_000_000,
		"hclk":  192_000_000,
		"pclk0": 96_000_000,
		"pclk1": 96_000_000,
		"uart0": 12_000_000,
		"tmr0":  96_000_000,
		"spi0":  192_000_000,
		"eadc":  12_000_000,
		"rtc":   32_768,
		"clko":  3_000_000,
	}
	for name, freq := range want {
		c, err := tree.Clock(name)
		require.NoError(t, err)
		assert.Equal(t, freq, c.Frequency(), name)
	}
	assert.Equal(t, uint32(8), tree.HCLK.WaitStates())
	assert.True(t, tree.Registers().Locked())
}

func TestApplyWaitsForOscillators(t *testing.T) {
	tree, dev := newTree(t)
	p, err := Find("numaker-pfm-m487")
	require.NoError(t, err)

	dev.Hold(chip.CLK_STATUS_HXTSTB)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	err = p.Apply(ctx, tree)
	require.ErrorIs(t, err, clock.ErrNotReady)
	assert.Contains(t, err.Error(), "hxt")

	// Nothing past the crystal was touched.
	assert.Zero(t, tree.PLL.Frequency())
	assert.Equal(t, clock.InternalRC, tree.HCLK.Source())
}

func TestInvalidProfiles(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		err     error
	}{
		{"unknown clock", Profile{Name: "x", Clocks: map[string]Branch{"uart7": {}}}, ErrInvalidProfile},
		{"bus in clocks", Profile{Name: "x", Clocks: map[string]Branch{"pclk0": {Divisor: 2}}}, ErrInvalidProfile},
		{"clock in buses", Profile{Name: "x", Buses: map[string]uint32{"uart0": 2}}, ErrInvalidProfile},
		{"pll divisor 3", Profile{Name: "x", PLL: &PLL{Source: clock.InternalRC, Multiplier: 32, Divisor: 3}}, clock.ErrValueOutOfRange},
		{"hclk too fast", Profile{
			Name: "x",
			PLL:  &PLL{Source: clock.InternalRC, Multiplier: 40, Divisor: 1},
			HCLK: &Branch{Source: clock.Pll},
		}, clock.ErrValueOutOfRange},
		{"crystal not fitted", Profile{Name: "x", Clocks: map[string]Branch{"uart1": {Source: clock.ExternalCrystal}}}, clock.ErrNotReady},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.profile.Check(context.Background()), tt.err)
		})
	}
}

func TestDecode(t *testing.T) {
	boards, err := Decode(strings.NewReader(`
boards:
  - name: Custom
    aliases: [Lab-Board]
    hxt: 8000000
    pll: {source: hxt, multiplier: 50, divisor: 2}
    hclk: {source: pll}
    clocks:
      uart1: {source: pll, divisor: 4}
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"custom"}, boards.Names())

	p, err := boards.Find("CUSTOM")
	require.NoError(t, err)
	alias, err := boards.Find("lab-board")
	require.NoError(t, err)
	assert.Equal(t, p.Name, alias.Name)
	assert.Equal(t, []string{"lab-board"}, p.Aliases)

	tree, _ := newTree(t)
	require.NoError(t, p.Apply(context.Background(), tree))
	assert.Equal(t, uint32(200_000_000), tree.HCLK.Frequency())
	assert.Equal(t, uint32(50_000_000), tree.UART1.Frequency())
}

func TestDecodeRejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "boards:\n  - name: a\n    crystal: 12000000\n",
		"missing name":   "boards:\n  - hxt: 12000000\n",
		"unknown source": "boards:\n  - name: a\n    hclk: {source: xtal}\n",
		"bad pin":        "boards:\n  - name: a\n    clko: {pin: Q1, source: hirc}\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			require.ErrorIs(t, err, ErrInvalidProfile)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards.yaml")
	require.NoError(t, os.WriteFile(path, []byte("boards:\n  - name: lab\n    hirc48: true\n"), 0o644))

	boards, err := Load(path)
	require.NoError(t, err)
	p, err := boards.Find("lab")
	require.NoError(t, err)
	assert.True(t, p.HIRC48)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
