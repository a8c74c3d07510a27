package queries_test

import (
	"testing"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateBucket_Validate(t *testing.T) {
	valid := []queries.StateBucket{
		queries.BucketAll,
		queries.BucketQuoting,
		queries.BucketPayment,
		queries.BucketPreparing,
		queries.BucketShipping,
		queries.BucketDelivered,
	}
	for _, bucket := range valid {
		assert.NoError(t, bucket.Validate(), "bucket %q", bucket)
	}

	err := queries.StateBucket("archived").Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStateBucket_States_CoverEveryStateOnce(t *testing.T) {
	assert.Nil(t, queries.BucketAll.States())

	seen := make(map[order.State]queries.StateBucket)
	buckets := []queries.StateBucket{
		queries.BucketQuoting,
		queries.BucketPayment,
		queries.BucketPreparing,
		queries.BucketShipping,
		queries.BucketDelivered,
	}
	for _, bucket := range buckets {
		for _, state := range bucket.States() {
			previous, dup := seen[state]
			require.False(t, dup, "state %d in both %q and %q", state, previous, bucket)
			seen[state] = bucket
		}
	}

	for state := order.Rejected; state <= order.Delivered; state++ {
		if state == 0 {
			continue
		}
		assert.Contains(t, seen, state, "state %d missing from every bucket", state)
	}
}

func TestNewListOrdersQuery(t *testing.T) {
	t.Run("ValidBucket", func(t *testing.T) {
		query, err := queries.NewListOrdersQuery("tiles", queries.BucketPayment)
		require.NoError(t, err)
		assert.NoError(t, query.Validate())
		assert.Equal(t, "tiles", query.FreeText())
		assert.Equal(t, queries.BucketPayment, query.Bucket())
	})

	t.Run("UnknownBucket", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery("", queries.StateBucket("backlog"))
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("ZeroValueFailsValidate", func(t *testing.T) {
		var query queries.ListOrdersQuery
		assert.ErrorIs(t, query.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
	})
}

func TestNewActiveWorkCountQuery(t *testing.T) {
	operatorID := kernel.NewUUID()

	t.Run("OperatorRoles", func(t *testing.T) {
		for _, role := range []services.Role{
			services.RoleSourcingOperator,
			services.RoleLogisticsOperator,
		} {
			query, err := queries.NewActiveWorkCountQuery(operatorID, role)
			require.NoError(t, err)
			assert.Equal(t, role, query.Role())
			assert.True(t, query.OperatorID().IsEqual(operatorID))
		}
	})

	t.Run("NonOperatorRolesRejected", func(t *testing.T) {
		for _, role := range []services.Role{services.RoleClient, services.RoleAdmin} {
			_, err := queries.NewActiveWorkCountQuery(operatorID, role)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid, "role %q", role)
		}
	})

	t.Run("EmptyOperatorID", func(t *testing.T) {
		_, err := queries.NewActiveWorkCountQuery(kernel.UUID{}, services.RoleSourcingOperator)
		assert.Error(t, err)
	})
}

func TestNewGetOrderQuery(t *testing.T) {
	orderID := kernel.NewUUID()

	query, err := queries.NewGetOrderQuery(orderID)
	require.NoError(t, err)
	assert.NoError(t, query.Validate())
	assert.True(t, query.OrderID().IsEqual(orderID))

	_, err = queries.NewGetOrderQuery(kernel.UUID{})
	assert.Error(t, err)

	var zero queries.GetOrderQuery
	assert.ErrorIs(t, zero.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}
