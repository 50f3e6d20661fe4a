// Package condition defines the guard expressions shared by workflow steps and
// automation rules: a field type, an operator and an operand.
package condition

import (
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// Operator names a comparison. Unknown operators are representable on purpose:
// they are stored as-is and evaluate to false.
type Operator string

const (
	Equal          Operator = "="
	NotEqual       Operator = "!="
	GreaterThan    Operator = ">"
	LessThan       Operator = "<"
	GreaterOrEqual Operator = ">="
	LessOrEqual    Operator = "<="
	In             Operator = "in"
	NotIn          Operator = "not_in"
	Contains       Operator = "contains"
	NotContains    Operator = "not_contains"
	StartsWith     Operator = "starts_with"
	EndsWith       Operator = "ends_with"
)

// IsKnown reports whether o is one of the supported operators.
func (o Operator) IsKnown() bool {
	switch o {
	case Equal, NotEqual, GreaterThan, LessThan, GreaterOrEqual, LessOrEqual,
		In, NotIn, Contains, NotContains, StartsWith, EndsWith:
		return true
	default:
		return false
	}
}

// IsNegative reports whether o asserts absence (!=, not_in, not_contains).
func (o Operator) IsNegative() bool {
	return o == NotEqual || o == NotIn || o == NotContains
}

// Condition types read from the order snapshot.
const (
	TypeOrderStatus    = "order_status"
	TypePaymentStatus  = "payment_status"
	TypeShippingStatus = "shipping_status"
	TypeTotalAmount    = "total_amount"
	TypeOrderDate      = "order_date"
	TypeCustomerEmail  = "customer_email"
	TypeHasTag         = "has_tag"
)

// Condition is one guard: Type selects the order field, Operator and Value are
// the comparison applied to it.
type Condition struct {
	Type     string       `json:"type"`
	Operator Operator     `json:"operator"`
	Value    kernel.Value `json:"value"`
}

// New builds a condition. The type is required; the operator is kept verbatim.
func New(conditionType string, operator Operator, value kernel.Value) (Condition, error) {
	c := Condition{Type: conditionType, Operator: operator, Value: value}
	if err := c.Validate(); err != nil {
		return Condition{}, err
	}
	return c, nil
}

func (c Condition) Validate() error {
	if c.Type == "" {
		return errs.NewValueIsRequiredError("condition type")
	}
	if c.Operator == "" {
		return errs.NewValueIsRequiredErrorWithCause("condition operator", fmt.Errorf("type %s has no operator", c.Type))
	}
	return nil
}
