package messaging

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Notifier hands notifications to the delivery service over TopicNotifications.
type Notifier struct {
	publisher message.Publisher
}

func NewNotifier(publisher message.Publisher) *Notifier {
	return &Notifier{publisher: publisher}
}

func (n *Notifier) Send(ctx context.Context, recipient, templateKey string, data map[string]any) error {
	return publishJSON(ctx, n.publisher, TopicNotifications, NotificationMessage{
		Recipient:   recipient,
		TemplateKey: templateKey,
		Data:        data,
	})
}

type NotificationMessage struct {
	Recipient   string         `json:"recipient"`
	TemplateKey string         `json:"template_key"`
	Data        map[string]any `json:"data"`
}

// InventoryRequests asks the inventory service to reserve stock. Stock semantics
// live in that service; this side only files the request.
type InventoryRequests struct {
	publisher message.Publisher
}

func NewInventoryRequests(publisher message.Publisher) *InventoryRequests {
	return &InventoryRequests{publisher: publisher}
}

func (r *InventoryRequests) Allocate(ctx context.Context, orderID kernel.UUID) error {
	return publishJSON(ctx, r.publisher, TopicInventoryRequested, InventoryMessage{OrderID: orderID.String()})
}

type InventoryMessage struct {
	OrderID string `json:"order_id"`
}

// AuditPublisher forwards audit events to external consumers over TopicAudit.
type AuditPublisher struct {
	publisher message.Publisher
}

func NewAuditPublisher(publisher message.Publisher) *AuditPublisher {
	return &AuditPublisher{publisher: publisher}
}

func (p *AuditPublisher) Append(ctx context.Context, event string, payload map[string]any) error {
	return publishJSON(ctx, p.publisher, TopicAudit, AuditMessage{Event: event, Payload: payload})
}

type AuditMessage struct {
	Event   string         `json:"event"`
	Payload map[string]any `json:"payload"`
}
