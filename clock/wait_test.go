package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omibyte.io/clocktree/chip"
)

func TestWaitReady(t *testing.T) {
	tree, dev := newTestTree(t)

	require.NoError(t, WaitReady(context.Background(), tree.HIRC))

	dev.Hold(chip.CLK_STATUS_HXTSTB)
	enableHXT(t, tree)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	err := WaitReady(ctx, tree.HXT)
	require.ErrorIs(t, err, ErrNotReady)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	dev.Release(chip.CLK_STATUS_HXTSTB)
	require.NoError(t, WaitReady(context.Background(), tree.HXT))
}
