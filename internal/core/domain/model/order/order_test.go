package order_test

import (
	"testing"
	"time"

	"peermint/internal/core/domain/model/kernel"
	"peermint/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"USDC",
		1_000_000,
		8_350_000,
		time.Now().Add(24*time.Hour),
		5,
		1,
		7,
		"upi://pay?pa=merchant@bank&am=1000",
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates order in Created status", func(t *testing.T) {
		creator := kernel.NewUUID()
		now := time.Now()
		expiry := now.Add(time.Hour)

		o, err := order.NewOrder(kernel.NewUUID(), creator, "USDC", 1_000_000, 8_350_000,
			expiry, 5, 42, 200, "qr-payload", now)

		require.NoError(t, err)
		assert.Equal(t, order.Created, o.Status())
		assert.Equal(t, creator, o.Creator())
		assert.Nil(t, o.Helper())
		assert.Equal(t, int64(1_000_000), o.Amount())
		assert.Equal(t, int64(8_350_000), o.LocalAmount())
		assert.Equal(t, uint8(5), o.FeePercentage())
		assert.Equal(t, uint64(42), o.Nonce())
		assert.Equal(t, expiry, o.ExpiryAt())
		assert.Equal(t, now, o.CreatedAt())
		assert.Nil(t, o.PaidAt())
		assert.Nil(t, o.ReleasedAt())
		assert.Nil(t, o.ReceiptHash())
	})

	t.Run("arbiter defaults to creator", func(t *testing.T) {
		o := newTestOrder(t)
		assert.True(t, o.Arbiter().IsEqual(o.Creator()))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "USDC", 0, 100,
			time.Time{}, 0, 1, 0, "", time.Now())
		require.ErrorIs(t, err, order.ErrInvalidAmount)

		_, err = order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "USDC", -5, 100,
			time.Time{}, 0, 1, 0, "", time.Now())
		require.ErrorIs(t, err, order.ErrInvalidAmount)
	})

	t.Run("rejects non-positive local amount", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "USDC", 100, 0,
			time.Time{}, 0, 1, 0, "", time.Now())
		require.ErrorIs(t, err, order.ErrInvalidAmount)
	})

	t.Run("rejects fee percentage above 100", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "USDC", 100, 100,
			time.Time{}, 101, 1, 0, "", time.Now())
		require.ErrorIs(t, err, order.ErrInvalidFee)
	})

	t.Run("rejects oversized qr payload", func(t *testing.T) {
		long := make([]byte, 501)
		for i := range long {
			long[i] = 'x'
		}
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "USDC", 100, 100,
			time.Time{}, 0, 1, 0, string(long), time.Now())
		require.ErrorIs(t, err, order.ErrQRTooLong)
	})

	t.Run("accepts qr payload at the limit", func(t *testing.T) {
		limit := make([]byte, 500)
		for i := range limit {
			limit[i] = 'x'
		}
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "USDC", 100, 100,
			time.Time{}, 0, 1, 0, string(limit), time.Now())
		require.NoError(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("constructed order is valid", func(t *testing.T) {
		require.NoError(t, newTestOrder(t).Validate())
	})

	t.Run("zero value is rejected", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil order is rejected", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Join(t *testing.T) {
	t.Run("sets helper and moves to Joined", func(t *testing.T) {
		o := newTestOrder(t)
		helper := kernel.NewUUID()

		require.NoError(t, o.Join(helper))

		assert.Equal(t, order.Joined, o.Status())
		require.NotNil(t, o.Helper())
		assert.True(t, o.Helper().IsEqual(helper))
	})

	t.Run("creator cannot join own order", func(t *testing.T) {
		o := newTestOrder(t)
		require.ErrorIs(t, o.Join(o.Creator()), order.ErrUnauthorized)
		assert.Equal(t, order.Created, o.Status())
		assert.Nil(t, o.Helper())
	})

	t.Run("cannot join twice", func(t *testing.T) {
		o := newTestOrder(t)
		first := kernel.NewUUID()
		require.NoError(t, o.Join(first))

		err := o.Join(kernel.NewUUID())
		require.ErrorIs(t, err, order.ErrInvalidStatus)
		assert.True(t, o.Helper().IsEqual(first), "helper is write-once")
	})
}

func TestOrder_MarkPaid(t *testing.T) {
	join := func(t *testing.T) (*order.Order, kernel.UUID) {
		o := newTestOrder(t)
		helper := kernel.NewUUID()
		require.NoError(t, o.Join(helper))
		return o, helper
	}

	t.Run("helper marks paid with receipt", func(t *testing.T) {
		o, helper := join(t)
		receipt := order.ReceiptHash{1, 2, 3}
		now := time.Now()

		require.NoError(t, o.MarkPaid(helper, &receipt, now))

		assert.Equal(t, order.PaidLocal, o.Status())
		require.NotNil(t, o.PaidAt())
		assert.Equal(t, now, *o.PaidAt())
		require.NotNil(t, o.ReceiptHash())
		assert.Equal(t, receipt, *o.ReceiptHash())
	})

	t.Run("creator may also mark paid, without receipt", func(t *testing.T) {
		o, _ := join(t)
		require.NoError(t, o.MarkPaid(o.Creator(), nil, time.Now()))
		assert.Equal(t, order.PaidLocal, o.Status())
		assert.Nil(t, o.ReceiptHash())
	})

	t.Run("third party is rejected", func(t *testing.T) {
		o, _ := join(t)
		err := o.MarkPaid(kernel.NewUUID(), nil, time.Now())
		require.ErrorIs(t, err, order.ErrUnauthorized)
		assert.Equal(t, order.Joined, o.Status())
		assert.Nil(t, o.PaidAt())
	})

	t.Run("rejected before join", func(t *testing.T) {
		o := newTestOrder(t)
		err := o.MarkPaid(o.Creator(), nil, time.Now())
		require.ErrorIs(t, err, order.ErrInvalidStatus)
	})
}

func TestOrder_Acknowledge(t *testing.T) {
	paid := func(t *testing.T) (*order.Order, kernel.UUID) {
		o := newTestOrder(t)
		helper := kernel.NewUUID()
		require.NoError(t, o.Join(helper))
		require.NoError(t, o.MarkPaid(helper, nil, time.Now()))
		return o, helper
	}

	t.Run("creator releases after payment", func(t *testing.T) {
		o, _ := paid(t)
		now := time.Now()

		require.NoError(t, o.Acknowledge(o.Creator(), now))

		assert.Equal(t, order.Released, o.Status())
		require.NotNil(t, o.ReleasedAt())
		assert.Equal(t, now, *o.ReleasedAt())
	})

	t.Run("helper cannot release", func(t *testing.T) {
		o, helper := paid(t)
		err := o.Acknowledge(helper, time.Now())
		require.ErrorIs(t, err, order.ErrUnauthorized)
		assert.Equal(t, order.PaidLocal, o.Status())
	})

	t.Run("rejected before payment is marked", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Join(kernel.NewUUID()))
		err := o.Acknowledge(o.Creator(), time.Now())
		require.ErrorIs(t, err, order.ErrInvalidStatus)
	})

	t.Run("rejected when already released", func(t *testing.T) {
		o, _ := paid(t)
		require.NoError(t, o.Acknowledge(o.Creator(), time.Now()))
		err := o.Acknowledge(o.Creator(), time.Now())
		require.ErrorIs(t, err, order.ErrInvalidStatus)
	})
}

func TestOrder_AutoRelease(t *testing.T) {
	expired := func(t *testing.T) *order.Order {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "USDC", 500_000, 100,
			time.Now().Add(-time.Minute), 3, 1, 0, "", time.Now().Add(-time.Hour))
		require.NoError(t, err)
		return o
	}

	t.Run("releases joined order past expiry", func(t *testing.T) {
		o := expired(t)
		require.NoError(t, o.Join(kernel.NewUUID()))

		require.NoError(t, o.AutoRelease(time.Now()))

		assert.Equal(t, order.Released, o.Status())
		assert.NotNil(t, o.ReleasedAt())
	})

	t.Run("releases paid order past expiry", func(t *testing.T) {
		o := expired(t)
		helper := kernel.NewUUID()
		require.NoError(t, o.Join(helper))
		require.NoError(t, o.MarkPaid(helper, nil, time.Now()))

		require.NoError(t, o.AutoRelease(time.Now()))
		assert.Equal(t, order.Released, o.Status())
	})

	t.Run("fails with NotExpired before the deadline", func(t *testing.T) {
		o := newTestOrder(t) // expires in 24h
		require.NoError(t, o.Join(kernel.NewUUID()))

		err := o.AutoRelease(time.Now())
		require.ErrorIs(t, err, order.ErrNotExpired)
		assert.Equal(t, order.Joined, o.Status())
	})

	t.Run("zero expiry disables auto-release", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "USDC", 100, 100,
			time.Time{}, 0, 1, 0, "", time.Now())
		require.NoError(t, err)
		require.NoError(t, o.Join(kernel.NewUUID()))

		require.ErrorIs(t, o.AutoRelease(time.Now()), order.ErrNotExpired)
	})

	t.Run("rejected before a helper joined", func(t *testing.T) {
		o := expired(t)
		err := o.AutoRelease(time.Now())
		require.ErrorIs(t, err, order.ErrInvalidStatus)
	})
}

func TestOrder_Dispute(t *testing.T) {
	t.Run("allowed from Created, Joined and PaidLocal", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Dispute())
		assert.Equal(t, order.Disputed, o.Status())

		o = newTestOrder(t)
		require.NoError(t, o.Join(kernel.NewUUID()))
		require.NoError(t, o.Dispute())

		o = newTestOrder(t)
		helper := kernel.NewUUID()
		require.NoError(t, o.Join(helper))
		require.NoError(t, o.MarkPaid(helper, nil, time.Now()))
		require.NoError(t, o.Dispute())
	})

	t.Run("rejected from terminal and disputed states", func(t *testing.T) {
		o := newTestOrder(t)
		helper := kernel.NewUUID()
		require.NoError(t, o.Join(helper))
		require.NoError(t, o.MarkPaid(helper, nil, time.Now()))
		require.NoError(t, o.Acknowledge(o.Creator(), time.Now()))

		require.ErrorIs(t, o.Dispute(), order.ErrInvalidStatus)

		o = newTestOrder(t)
		require.NoError(t, o.Dispute())
		require.ErrorIs(t, o.Dispute(), order.ErrInvalidStatus)
	})
}

func TestOrder_Resolve(t *testing.T) {
	disputed := func(t *testing.T) (*order.Order, kernel.UUID) {
		o := newTestOrder(t)
		helper := kernel.NewUUID()
		require.NoError(t, o.Join(helper))
		require.NoError(t, o.Dispute())
		return o, helper
	}

	t.Run("arbiter resolves with each outcome", func(t *testing.T) {
		split, err := order.NewSplitOutcome(3000)
		require.NoError(t, err)

		for _, outcome := range []order.Outcome{
			order.NewRefundCreatorOutcome(),
			order.NewPayHelperOutcome(),
			split,
		} {
			o, _ := disputed(t)
			require.NoError(t, o.Resolve(o.Arbiter(), outcome))
			assert.Equal(t, order.Resolved, o.Status())
		}
	})

	t.Run("non-arbiter is rejected", func(t *testing.T) {
		o, helper := disputed(t)
		err := o.Resolve(helper, order.NewRefundCreatorOutcome())
		require.ErrorIs(t, err, order.ErrUnauthorized)
		assert.Equal(t, order.Disputed, o.Status())
	})

	t.Run("rejected when not disputed", func(t *testing.T) {
		o := newTestOrder(t)
		err := o.Resolve(o.Arbiter(), order.NewRefundCreatorOutcome())
		require.ErrorIs(t, err, order.ErrInvalidStatus)
	})

	t.Run("paying a helper that never joined is rejected", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Dispute())

		err := o.Resolve(o.Arbiter(), order.NewPayHelperOutcome())
		require.ErrorIs(t, err, order.ErrNoHelper)
		assert.Equal(t, order.Disputed, o.Status())
	})

	t.Run("refund works without a helper", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Dispute())
		require.NoError(t, o.Resolve(o.Arbiter(), order.NewRefundCreatorOutcome()))
		assert.Equal(t, order.Resolved, o.Status())
	})

	t.Run("unconstructed outcome is rejected", func(t *testing.T) {
		o, _ := disputed(t)
		err := o.Resolve(o.Arbiter(), order.Outcome{})
		require.ErrorIs(t, err, order.ErrInvalidOutcome)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("round-trips all fields", func(t *testing.T) {
		helper := kernel.NewUUID()
		paidAt := time.Now().Add(-time.Hour)
		receipt := order.ReceiptHash{9, 9}
		arbiter := kernel.NewUUID()

		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), &helper, "USDC",
			250_000, 2_000_000, order.PaidLocal,
			time.Now().Add(-2*time.Hour), time.Now().Add(time.Hour),
			&paidAt, nil, &receipt, 2, arbiter, 9, 251, "qr",
		)

		require.NoError(t, err)
		assert.Equal(t, order.PaidLocal, o.Status())
		assert.True(t, o.Helper().IsEqual(helper))
		assert.True(t, o.Arbiter().IsEqual(arbiter))
		assert.Equal(t, receipt, *o.ReceiptHash())
		assert.Equal(t, uint64(9), o.Nonce())
		require.NoError(t, o.Validate())
	})

	t.Run("rejects invalid stored status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), nil, "USDC",
			100, 100, order.Status(9),
			time.Now(), time.Time{}, nil, nil, nil, 0, kernel.NewUUID(), 1, 0, "",
		)
		require.ErrorIs(t, err, order.ErrInvalidStatus)
	})
}

func TestReceiptHashFromBytes(t *testing.T) {
	t.Run("accepts exactly 32 bytes", func(t *testing.T) {
		b := make([]byte, 32)
		b[0] = 0xaa
		h, err := order.ReceiptHashFromBytes(b)
		require.NoError(t, err)
		assert.Equal(t, byte(0xaa), h[0])
	})

	t.Run("rejects other lengths", func(t *testing.T) {
		_, err := order.ReceiptHashFromBytes(make([]byte, 31))
		require.Error(t, err)
		_, err = order.ReceiptHashFromBytes(make([]byte, 33))
		require.Error(t, err)
	})
}

func TestOrder_Expired(t *testing.T) {
	now := time.Now()

	o := newTestOrder(t) // expires in 24h
	assert.False(t, o.Expired(now))
	assert.True(t, o.Expired(now.Add(25*time.Hour)))
	assert.True(t, o.Expired(o.ExpiryAt()), "boundary is inclusive")

	noExpiry, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "USDC", 100, 100,
		time.Time{}, 0, 1, 0, "", now)
	require.NoError(t, err)
	assert.False(t, noExpiry.Expired(now.Add(1000*time.Hour)))
}
