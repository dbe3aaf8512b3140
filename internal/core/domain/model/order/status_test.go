package order_test

import (
	"testing"

	"peermint/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   order.Status
		expected string
	}{
		{order.Created, "Created"},
		{order.Joined, "Joined"},
		{order.PaidLocal, "PaidLocal"},
		{order.Released, "Released"},
		{order.Disputed, "Disputed"},
		{order.Resolved, "Resolved"},
		{order.Status(42), "Unknown"},
		{order.Status(-1), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

func TestStatus_Validate(t *testing.T) {
	t.Run("accepts all defined codes", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Created, order.Joined, order.PaidLocal,
			order.Released, order.Disputed, order.Resolved,
		} {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("rejects codes outside the defined set", func(t *testing.T) {
		require.ErrorIs(t, order.Status(6).Validate(), order.ErrInvalidStatus)
		require.ErrorIs(t, order.Status(-1).Validate(), order.ErrInvalidStatus)
	})
}

func TestStatus_PersistedCodes(t *testing.T) {
	// The numeric values are the stored status codes; reordering the enum
	// would corrupt every persisted order.
	assert.Equal(t, order.Status(0), order.Created)
	assert.Equal(t, order.Status(1), order.Joined)
	assert.Equal(t, order.Status(2), order.PaidLocal)
	assert.Equal(t, order.Status(3), order.Released)
	assert.Equal(t, order.Status(4), order.Disputed)
	assert.Equal(t, order.Status(5), order.Resolved)
}

func TestStatus_Transitions(t *testing.T) {
	all := []order.Status{
		order.Created, order.Joined, order.PaidLocal,
		order.Released, order.Disputed, order.Resolved,
	}

	transition := func(s order.Status, op string) (order.Status, error) {
		switch op {
		case "Join":
			return s.Join()
		case "MarkPaid":
			return s.MarkPaid()
		case "Release":
			return s.Release()
		case "AutoRelease":
			return s.AutoRelease()
		case "Dispute":
			return s.Dispute()
		default:
			return s.Resolve()
		}
	}

	allowed := map[string]map[order.Status]order.Status{
		"Join":        {order.Created: order.Joined},
		"MarkPaid":    {order.Joined: order.PaidLocal},
		"Release":     {order.PaidLocal: order.Released},
		"AutoRelease": {order.Joined: order.Released, order.PaidLocal: order.Released},
		"Dispute": {
			order.Created:   order.Disputed,
			order.Joined:    order.Disputed,
			order.PaidLocal: order.Disputed,
		},
		"Resolve": {order.Disputed: order.Resolved},
	}

	for op, table := range allowed {
		for _, from := range all {
			from := from
			t.Run(op+" from "+from.String(), func(t *testing.T) {
				next, err := transition(from, op)
				if target, ok := table[from]; ok {
					require.NoError(t, err)
					assert.Equal(t, target, next)
				} else {
					require.ErrorIs(t, err, order.ErrInvalidStatus)
				}
			})
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Released.IsTerminal())
	assert.True(t, order.Resolved.IsTerminal())
	assert.False(t, order.Created.IsTerminal())
	assert.False(t, order.Joined.IsTerminal())
	assert.False(t, order.PaidLocal.IsTerminal())
	assert.False(t, order.Disputed.IsTerminal())
}
