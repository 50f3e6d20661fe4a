package order

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/condition"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrSnapshotIsNotConstructed = errors.New("Snapshot must be created via NewSnapshot constructor")

// SnapshotParams carries the fields read from the commerce order store.
type SnapshotParams struct {
	ID             kernel.UUID
	OrderStatus    string
	PaymentStatus  string
	ShippingStatus string
	TotalAmount    float64
	CustomerEmail  string
	CreatedAt      time.Time
}

// Snapshot is a point-in-time, read-only view of an order.
type Snapshot struct {
	id             kernel.UUID
	orderStatus    string
	paymentStatus  string
	shippingStatus string
	totalAmount    float64
	customerEmail  string
	createdAt      time.Time

	guard guard.ConstructorGuard
}

// NewSnapshot validates p and builds a Snapshot. The order status may be empty
// (an order not yet placed into any status), the id may not.
func NewSnapshot(p SnapshotParams) (*Snapshot, error) {
	if err := p.ID.Validate(); err != nil {
		return nil, err
	}
	if p.TotalAmount < 0 {
		return nil, errs.NewValueIsOutOfRangeError("total_amount", p.TotalAmount, 0, "unbounded")
	}

	return &Snapshot{
		id:             p.ID,
		orderStatus:    p.OrderStatus,
		paymentStatus:  p.PaymentStatus,
		shippingStatus: p.ShippingStatus,
		totalAmount:    p.TotalAmount,
		customerEmail:  p.CustomerEmail,
		createdAt:      p.CreatedAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (s *Snapshot) Validate() error {
	if s == nil {
		return ErrSnapshotIsNotConstructed
	}
	return s.guard.Validate(ErrSnapshotIsNotConstructed)
}

func (s *Snapshot) ID() kernel.UUID        { return s.id }
func (s *Snapshot) OrderStatus() string    { return s.orderStatus }
func (s *Snapshot) PaymentStatus() string  { return s.paymentStatus }
func (s *Snapshot) ShippingStatus() string { return s.shippingStatus }
func (s *Snapshot) TotalAmount() float64   { return s.totalAmount }
func (s *Snapshot) CustomerEmail() string  { return s.customerEmail }
func (s *Snapshot) CreatedAt() time.Time   { return s.createdAt }

// Field returns the condition operand for the given condition type. The second
// result is false for types the snapshot does not carry (has_tag included, which
// needs the tag association).
func (s *Snapshot) Field(conditionType string) (kernel.Value, bool) {
	switch conditionType {
	case condition.TypeOrderStatus:
		return kernel.String(s.orderStatus), true
	case condition.TypePaymentStatus:
		return kernel.String(s.paymentStatus), true
	case condition.TypeShippingStatus:
		return kernel.String(s.shippingStatus), true
	case condition.TypeTotalAmount:
		return kernel.Number(s.totalAmount), true
	case condition.TypeOrderDate:
		return kernel.DateTime(s.createdAt), true
	case condition.TypeCustomerEmail:
		return kernel.String(s.customerEmail), true
	default:
		return kernel.Null(), false
	}
}
