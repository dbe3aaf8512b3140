package order_test

import (
	"testing"

	"peermint/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeFromCode(t *testing.T) {
	bps := func(v uint16) *uint16 { return &v }

	t.Run("code 0 maps to refund", func(t *testing.T) {
		outcome, err := order.OutcomeFromCode(0, nil)
		require.NoError(t, err)
		assert.Equal(t, order.OutcomeRefundCreator, outcome.Kind())
	})

	t.Run("code 1 maps to pay helper", func(t *testing.T) {
		outcome, err := order.OutcomeFromCode(1, nil)
		require.NoError(t, err)
		assert.Equal(t, order.OutcomePayHelper, outcome.Kind())
	})

	t.Run("code 2 maps to split and carries bps", func(t *testing.T) {
		outcome, err := order.OutcomeFromCode(2, bps(3000))
		require.NoError(t, err)
		assert.Equal(t, order.OutcomeSplit, outcome.Kind())
		assert.Equal(t, uint16(3000), outcome.SplitBps())
	})

	t.Run("split without bps fails with InvalidFee", func(t *testing.T) {
		_, err := order.OutcomeFromCode(2, nil)
		require.ErrorIs(t, err, order.ErrInvalidFee)
	})

	t.Run("split above 10000 bps fails with InvalidFee", func(t *testing.T) {
		_, err := order.OutcomeFromCode(2, bps(10001))
		require.ErrorIs(t, err, order.ErrInvalidFee)
	})

	t.Run("split at exactly 10000 bps is allowed", func(t *testing.T) {
		outcome, err := order.OutcomeFromCode(2, bps(10000))
		require.NoError(t, err)
		assert.Equal(t, uint16(10000), outcome.SplitBps())
	})

	t.Run("unknown codes fail with InvalidOutcome", func(t *testing.T) {
		for _, code := range []uint8{3, 4, 255} {
			_, err := order.OutcomeFromCode(code, nil)
			require.ErrorIs(t, err, order.ErrInvalidOutcome)
		}
	})

	t.Run("bps on non-split codes is ignored", func(t *testing.T) {
		outcome, err := order.OutcomeFromCode(0, bps(5000))
		require.NoError(t, err)
		assert.Equal(t, order.OutcomeRefundCreator, outcome.Kind())
	})
}

func TestOutcome_Validate(t *testing.T) {
	t.Run("constructed outcomes validate", func(t *testing.T) {
		require.NoError(t, order.NewRefundCreatorOutcome().Validate())
		require.NoError(t, order.NewPayHelperOutcome().Validate())
		split, err := order.NewSplitOutcome(1)
		require.NoError(t, err)
		require.NoError(t, split.Validate())
	})

	t.Run("zero value fails", func(t *testing.T) {
		var outcome order.Outcome
		require.ErrorIs(t, outcome.Validate(), order.ErrInvalidOutcome)
	})
}

func TestOutcome_RequiresHelper(t *testing.T) {
	assert.False(t, order.NewRefundCreatorOutcome().RequiresHelper())
	assert.True(t, order.NewPayHelperOutcome().RequiresHelper())

	split, err := order.NewSplitOutcome(1)
	require.NoError(t, err)
	assert.True(t, split.RequiresHelper())

	// A zero-bps split pays the helper nothing, so no helper is needed.
	zeroSplit, err := order.NewSplitOutcome(0)
	require.NoError(t, err)
	assert.False(t, zeroSplit.RequiresHelper())
}
