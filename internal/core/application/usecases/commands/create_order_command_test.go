package commands_test

import (
	"strings"
	"testing"
	"time"

	"peermint/internal/core/application/usecases/commands"
	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	creator := kernel.NewUUID()
	expiry := time.Now().Add(24 * time.Hour)

	cmd, err := commands.NewCreateOrderCommand(id, creator, "USDC", 1_000_000, 8_350_000, expiry, 5, 1, "qr-payload")
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, creator, cmd.Creator())
	assert.Equal(t, "USDC", cmd.Asset())
	assert.Equal(t, int64(1_000_000), cmd.Amount())
	assert.Equal(t, int64(8_350_000), cmd.LocalAmount())
	assert.Equal(t, expiry, cmd.ExpiryAt())
	assert.Equal(t, uint8(5), cmd.FeePercentage())
	assert.Equal(t, uint64(1), cmd.Nonce())
	assert.Equal(t, "qr-payload", cmd.QRPayload())
}

func TestNewCreateOrderCommand_ZeroExpiryAllowed(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), "USDC", 1_000_000, 8_350_000, time.Time{}, 5, 1, "")
	require.NoError(t, err)
	assert.True(t, cmd.ExpiryAt().IsZero())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error
	_, err := commands.NewCreateOrderCommand(
		invalidID, kernel.NewUUID(), "USDC", 1_000_000, 8_350_000, time.Time{}, 5, 1, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_InvalidCreator(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.UUID{}, "USDC", 1_000_000, 8_350_000, time.Time{}, 5, 1, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_EmptyAsset(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), "", 1_000_000, 8_350_000, time.Time{}, 5, 1, "")
	require.Error(t, err)
}

func TestNewCreateOrderCommand_InvalidAmount(t *testing.T) {
	for _, amount := range []int64{0, -1} {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), "USDC", amount, 8_350_000, time.Time{}, 5, 1, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidAmount)
	}
}

func TestNewCreateOrderCommand_InvalidLocalAmount(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), "USDC", 1_000_000, 0, time.Time{}, 5, 1, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrInvalidAmount)
}

func TestNewCreateOrderCommand_InvalidFeePercentage(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), "USDC", 1_000_000, 8_350_000, time.Time{}, 101, 1, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrInvalidFee)
}

func TestNewCreateOrderCommand_QRPayloadTooLong(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(), "USDC", 1_000_000, 8_350_000, time.Time{}, 5, 1,
		strings.Repeat("x", 501))
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrQRTooLong)
}
