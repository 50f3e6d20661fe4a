package workflow

import "orderflow/internal/pkg/errs"

// RecipientCustomer is resolved to the order's customer email at dispatch time.
const RecipientCustomer = "customer"

// Notification is handed to the notification collaborator when a step is entered.
type Notification struct {
	Recipient string            `json:"recipient"`
	Template  string            `json:"template"`
	Data      map[string]string `json:"data,omitempty"`
}

func (n Notification) Validate() error {
	if n.Recipient == "" {
		return errs.NewValueIsRequiredError("notification recipient")
	}
	if n.Template == "" {
		return errs.NewValueIsRequiredError("notification template")
	}
	return nil
}
