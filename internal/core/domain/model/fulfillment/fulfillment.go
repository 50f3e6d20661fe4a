// Package fulfillment models shipments created for an order by automation actions.
package fulfillment

import (
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

// StatusPending is the status of a freshly created fulfillment.
const StatusPending = "pending"

// Fulfillment is a shipment record. Carrier and tracking number may be filled in
// later by the warehouse.
type Fulfillment struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	Carrier        string
	TrackingNumber string
	Status         string
	CreatedAt      time.Time
}

func NewFulfillment(orderID kernel.UUID, carrier, trackingNumber string) (Fulfillment, error) {
	if err := orderID.Validate(); err != nil {
		return Fulfillment{}, err
	}
	return Fulfillment{
		ID:             kernel.NewUUID(),
		OrderID:        orderID,
		Carrier:        strings.TrimSpace(carrier),
		TrackingNumber: strings.TrimSpace(trackingNumber),
		Status:         StatusPending,
		CreatedAt:      time.Now().UTC(),
	}, nil
}
