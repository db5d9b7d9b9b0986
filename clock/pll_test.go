package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omibyte.io/clocktree/chip"
)

func TestSolvePLL(t *testing.T) {
	tests := []struct {
		name     string
		input    uint32
		cfg      PLLConfig
		inDiv    uint32
		feedback uint32
		output   uint32
	}{
		{"hxt 12M x40 /2", 12_000_000, PLLConfig{ExternalCrystal, 40, 2}, 2, 40, 240_000_000},
		{"hirc 12M x32 /4", 12_000_000, PLLConfig{InternalRC, 32, 4}, 2, 32, 96_000_000},
		{"hxt 4M x50 /1", 4_000_000, PLLConfig{ExternalCrystal, 50, 1}, 1, 25, 200_000_000},
		{"hxt 24M x20 /1", 24_000_000, PLLConfig{ExternalCrystal, 20, 1}, 4, 40, 480_000_000},
		{"feedback rounds down", 5_000_000, PLLConfig{ExternalCrystal, 41, 1}, 1, 20, 200_000_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := solvePLL(tt.input, tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.inDiv, s.inDiv)
			assert.Equal(t, tt.feedback, s.feedback)
			assert.Equal(t, tt.output, s.output)
		})
	}
}

func TestSolvePLLRejects(t *testing.T) {
	tests := []struct {
		name  string
		input uint32
		cfg   PLLConfig
		err   error
	}{
		{"divisor 3", 12_000_000, PLLConfig{ExternalCrystal, 40, 3}, ErrValueOutOfRange},
		{"divisor 0", 12_000_000, PLLConfig{ExternalCrystal, 40, 0}, ErrValueOutOfRange},
		{"vco too low", 12_000_000, PLLConfig{ExternalCrystal, 10, 1}, ErrValueOutOfRange},
		{"vco too high", 12_000_000, PLLConfig{ExternalCrystal, 42, 1}, ErrValueOutOfRange},
		{"source outside group", 12_000_000, PLLConfig{RtcCrystal, 40, 2}, ErrValueOutOfRange},
		{"reference below 4 MHz", 3_000_000, PLLConfig{ExternalCrystal, 100, 2}, ErrValueOutOfRange},
		{"input stopped", 0, PLLConfig{ExternalCrystal, 40, 2}, ErrNotReady},
		{"rounded vco too low", 7_000_000, PLLConfig{ExternalCrystal, 29, 1}, ErrValueOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := solvePLL(tt.input, tt.cfg)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestPLLEnable(t *testing.T) {
	tree, _ := newTestTree(t)
	enablePLL(t, tree)

	regs := tree.Registers()
	assert.Equal(t, uint32(240_000_000), tree.PLL.Frequency())
	assert.True(t, tree.PLL.Ready())
	assert.Equal(t, Running, tree.PLL.State())
	assert.Equal(t, ExternalCrystal, tree.PLL.Input())
	assert.True(t, regs.Locked())

	assert.Equal(t, uint32(1), regs.Get(chip.CLK_PLLCTL_INDIV))
	assert.Equal(t, uint32(38), regs.Get(chip.CLK_PLLCTL_FBDIV))
	assert.Equal(t, uint32(1), regs.Get(chip.CLK_PLLCTL_OUTDIV))
	assert.Zero(t, regs.Get(chip.CLK_PLLCTL_PD))
	assert.Zero(t, regs.Get(chip.CLK_PLLCTL_BP))
	assert.Zero(t, regs.Get(chip.CLK_PLLCTL_OE))

	tree.PLL.Disable()
	assert.Zero(t, tree.PLL.Frequency())
	assert.False(t, tree.PLL.Ready())
	assert.Equal(t, Disabled, tree.PLL.State())
	assert.Equal(t, uint32(1), regs.Get(chip.CLK_PLLCTL_PD))
}

func TestPLLFromHIRC(t *testing.T) {
	tree, _ := newTestTree(t)

	require.NoError(t, tree.PLL.Enable(PLLConfig{Source: InternalRC, Multiplier: 32, Divisor: 4}))
	assert.Equal(t, uint32(96_000_000), tree.PLL.Frequency())
	assert.Equal(t, InternalRC, tree.PLL.Input())
}

func TestPLLRejectsWithoutWriting(t *testing.T) {
	tree, _ := newTestTree(t)
	enableHXT(t, tree)

	tests := []struct {
		name string
		cfg  Config
		err  error
	}{
		{"divisor 3", PLLConfig{ExternalCrystal, 40, 3}, ErrValueOutOfRange},
		{"vco out of range", PLLConfig{ExternalCrystal, 50, 2}, ErrValueOutOfRange},
		{"source outside group", PLLConfig{MainClock, 40, 2}, ErrValueOutOfRange},
		{"wrong config", APBConfig{Divisor: 2}, ErrValueOutOfRange},
		{"nil config", nil, ErrValueOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := requireUntouched(t, tree, func() error {
				return tree.PLL.Enable(tt.cfg)
			})
			assert.ErrorIs(t, err, tt.err)
			assert.Zero(t, tree.PLL.Frequency())
		})
	}
}

func TestPLLSourceNotRunning(t *testing.T) {
	tree, _ := newTestTree(t)

	err := requireUntouched(t, tree, func() error {
		return tree.PLL.Enable(PLLConfig{Source: ExternalCrystal, Multiplier: 40, Divisor: 2})
	})
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestPLLCachesProgrammedFrequency(t *testing.T) {
	tree, _ := newTestTree(t)
	require.NoError(t, tree.HXT.Enable(ExternalOscConfig{Frequency: 5_000_000}))

	require.NoError(t, tree.PLL.Enable(PLLConfig{Source: ExternalCrystal, Multiplier: 41, Divisor: 1}))
	regs := tree.Registers()
	inDiv := regs.Get(chip.CLK_PLLCTL_INDIV) + 1
	feedback := regs.Get(chip.CLK_PLLCTL_FBDIV) + pllMinFeedback
	assert.Equal(t, 2*5_000_000/inDiv*feedback, tree.PLL.Frequency())
	assert.Equal(t, uint32(200_000_000), tree.PLL.Frequency())
}
