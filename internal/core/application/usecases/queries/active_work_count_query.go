package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrActiveWorkCountQueryIsNotConstructed = errors.New(
		"ActiveWorkCountQuery must be created via NewActiveWorkCountQuery constructor",
	)
)

// ActiveWorkCountQuery counts the orders an operator is currently in charge
// of. Delivered orders are the only ones excluded; everything else still
// needs attention. Drives the badge counters in the operator views.
type ActiveWorkCountQuery struct {
	operatorID kernel.UUID
	role       services.Role

	guard guard.ConstructorGuard
}

// NewActiveWorkCountQuery creates a work-count query. The role selects which
// assignment slot to count against.
func NewActiveWorkCountQuery(
	operatorID kernel.UUID,
	role services.Role,
) (ActiveWorkCountQuery, error) {
	if err := operatorID.Validate(); err != nil {
		return ActiveWorkCountQuery{}, err
	}
	if role != services.RoleSourcingOperator && role != services.RoleLogisticsOperator {
		return ActiveWorkCountQuery{}, errs.NewValueIsInvalidError("role")
	}

	return ActiveWorkCountQuery{
		operatorID: operatorID,
		role:       role,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ActiveWorkCountQuery) Validate() error {
	return q.guard.Validate(ErrActiveWorkCountQueryIsNotConstructed)
}

// OperatorID returns the operator whose workload is counted.
func (q ActiveWorkCountQuery) OperatorID() kernel.UUID {
	return q.operatorID
}

// Role returns the assignment slot being counted.
func (q ActiveWorkCountQuery) Role() services.Role {
	return q.role
}
