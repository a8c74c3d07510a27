package order_test

import (
	"fmt"
	"testing"

	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStates() []order.State {
	return []order.State{
		order.Rejected,
		order.AwaitingQuote,
		order.QuoteReview,
		order.AwaitingPayment,
		order.PaymentSubmitted,
		order.Paid,
		order.Preparing,
		order.ReadyToShip,
		order.Shipped,
		order.ArrivedAtPort,
		order.InCustoms,
		order.AtLocalWarehouse,
		order.ReadyForDelivery,
		order.Delivered,
	}
}

func TestState_Constants(t *testing.T) {
	t.Run("should use the canonical integer codes", func(t *testing.T) {
		assert.Equal(t, -1, int(order.Rejected))
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.AwaitingQuote))
		assert.Equal(t, 2, int(order.QuoteReview))
		assert.Equal(t, 3, int(order.AwaitingPayment))
		assert.Equal(t, 4, int(order.PaymentSubmitted))
		assert.Equal(t, 5, int(order.Paid))
		assert.Equal(t, 6, int(order.Preparing))
		assert.Equal(t, 7, int(order.ReadyToShip))
		assert.Equal(t, 8, int(order.Shipped))
		assert.Equal(t, 9, int(order.ArrivedAtPort))
		assert.Equal(t, 10, int(order.InCustoms))
		assert.Equal(t, 11, int(order.AtLocalWarehouse))
		assert.Equal(t, 12, int(order.ReadyForDelivery))
		assert.Equal(t, 13, int(order.Delivered))
	})
}

func TestState_Validate(t *testing.T) {
	t.Run("should validate every defined state", func(t *testing.T) {
		for _, state := range allStates() {
			t.Run(fmt.Sprintf("should validate %s", state.String()), func(t *testing.T) {
				require.NoError(t, state.Validate())
			})
		}
	})

	t.Run("should reject undefined state codes", func(t *testing.T) {
		invalidStates := []order.State{
			order.Unknown,
			order.State(-2),
			order.State(14),
			order.State(100),
		}

		for _, state := range invalidStates {
			t.Run(fmt.Sprintf("should reject state value %d", int(state)), func(t *testing.T) {
				err := state.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), "state is invalid")
				assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid order state", int(state)))
			})
		}
	})
}

func TestState_TransitionTo(t *testing.T) {
	t.Run("should accept exactly the defined successor of each state", func(t *testing.T) {
		for _, from := range allStates() {
			for _, to := range allStates() {
				isSuccessor := from.CanTransitionTo(to)

				newState, err := from.TransitionTo(to)
				if isSuccessor {
					require.NoError(t, err, "%s -> %s should be accepted", from, to)
					assert.Equal(t, to, newState)
				} else {
					require.Error(t, err, "%s -> %s should be rejected", from, to)
					require.ErrorIs(t, err, errs.ErrInvalidTransition)
					assert.Equal(t, order.State(0), newState)
				}
			}
		}
	})

	t.Run("should accept the forward chain end to end", func(t *testing.T) {
		chain := []order.State{
			order.AwaitingQuote,
			order.QuoteReview,
			order.AwaitingPayment,
			order.PaymentSubmitted,
			order.Paid,
			order.Preparing,
			order.ReadyToShip,
			order.Shipped,
			order.ArrivedAtPort,
			order.InCustoms,
			order.AtLocalWarehouse,
			order.ReadyForDelivery,
			order.Delivered,
		}

		for i := 0; i < len(chain)-1; i++ {
			newState, err := chain[i].TransitionTo(chain[i+1])
			require.NoError(t, err)
			assert.Equal(t, chain[i+1], newState)
		}
	})

	t.Run("payment retry is the only backward transition", func(t *testing.T) {
		for _, from := range allStates() {
			for _, to := range allStates() {
				if to >= from {
					continue
				}

				_, err := from.TransitionTo(to)
				if from == order.Rejected && to == order.AwaitingPayment {
					// Rejected (-1) -> AwaitingPayment (3) is forward in code
					// order; it never enters this branch. Keep the guard in
					// case the codes are ever renumbered.
					require.NoError(t, err)
					continue
				}
				require.ErrorIs(t, err, errs.ErrInvalidTransition,
					"%s -> %s is backward and must fail", from, to)
			}
		}

		newState, err := order.Rejected.TransitionTo(order.AwaitingPayment)
		require.NoError(t, err)
		assert.Equal(t, order.AwaitingPayment, newState)
	})

	t.Run("should reject transitions out of an invalid state", func(t *testing.T) {
		_, err := order.Unknown.TransitionTo(order.AwaitingQuote)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestState_IsTerminal(t *testing.T) {
	t.Run("Delivered is the only terminal state", func(t *testing.T) {
		for _, state := range allStates() {
			assert.Equal(t, state == order.Delivered, state.IsTerminal(),
				"terminal flag wrong for %s", state)
		}
	})

	t.Run("Delivered has no successors", func(t *testing.T) {
		assert.Empty(t, order.Delivered.Successors())
	})
}

func TestState_String(t *testing.T) {
	t.Run("should return correct names for defined states", func(t *testing.T) {
		testCases := []struct {
			state    order.State
			expected string
		}{
			{order.Rejected, "Rejected"},
			{order.AwaitingQuote, "AwaitingQuote"},
			{order.AwaitingPayment, "AwaitingPayment"},
			{order.Shipped, "Shipped"},
			{order.InCustoms, "InCustoms"},
			{order.Delivered, "Delivered"},
		}

		for _, tc := range testCases {
			assert.Equal(t, tc.expected, tc.state.String())
		}
	})

	t.Run("should return Unknown for undefined codes", func(t *testing.T) {
		assert.Equal(t, "Unknown", order.Unknown.String())
		assert.Equal(t, "Unknown", order.State(99).String())
		assert.Equal(t, "Unknown", order.State(-5).String())
	})
}
