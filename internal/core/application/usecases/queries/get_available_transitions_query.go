package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrGetAvailableTransitionsQueryIsNotConstructed = errors.New(
	"GetAvailableTransitionsQuery must be created via NewGetAvailableTransitionsQuery constructor",
)

type GetAvailableTransitionsQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetAvailableTransitionsQuery(orderID kernel.UUID) (GetAvailableTransitionsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetAvailableTransitionsQuery{}, err
	}
	return GetAvailableTransitionsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAvailableTransitionsQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableTransitionsQueryIsNotConstructed)
}

func (q GetAvailableTransitionsQuery) OrderID() kernel.UUID { return q.orderID }
