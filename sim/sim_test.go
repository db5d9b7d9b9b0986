package sim

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omibyte.io/clocktree/chip"
)

func TestNewIsAtReset(t *testing.T) {
	d := New()
	defer d.Close()
	regs := d.Registers()

	for i, v := range chip.ResetValues {
		assert.Equal(t, v, regs.Read(i), chip.RegisterNames[i])
	}
	assert.True(t, regs.Locked())
}

func TestStatusFollowsEnable(t *testing.T) {
	d := New()
	defer d.Close()
	regs := d.Registers()

	err := regs.Protected(func() error {
		return regs.Set(chip.CLK_PWRCTL_HXTEN, 1)
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), regs.Get(chip.CLK_STATUS_HXTSTB))

	err = regs.Protected(func() error {
		return regs.Set(chip.CLK_PLLCTL_PD, 0)
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), regs.Get(chip.CLK_STATUS_PLLSTB))

	err = regs.Protected(func() error {
		return regs.Set(chip.CLK_PWRCTL_HIRCEN, 0)
	})
	require.NoError(t, err)
	assert.Zero(t, regs.Get(chip.CLK_STATUS_HIRCSTB))
}

func TestHold(t *testing.T) {
	d := New()
	defer d.Close()
	regs := d.Registers()

	d.Hold(chip.CLK_STATUS_HIRCSTB)
	assert.Zero(t, regs.Get(chip.CLK_STATUS_HIRCSTB))

	d.Release(chip.CLK_STATUS_HIRCSTB)
	assert.Equal(t, uint32(1), regs.Get(chip.CLK_STATUS_HIRCSTB))
}

func TestClose(t *testing.T) {
	d := New()
	regs := d.Registers()
	d.Close()
	d.Close()

	err := regs.Protected(func() error {
		return regs.Set(chip.CLK_PWRCTL_HXTEN, 1)
	})
	require.NoError(t, err)
	assert.Zero(t, regs.Get(chip.CLK_STATUS_HXTSTB))
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	d := New(WithLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	defer d.Close()

	require.NoError(t, d.Registers().Set(chip.CLK_CLKDIV0_UART0DIV, 3))
	assert.Contains(t, buf.String(), "register=CLK_CLKDIV0")
}
