package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"orderflow/internal/core/domain/model/approval"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/ThreeDotsLabs/watermill/message"
)

type approvalResolvedMessage struct {
	ApprovalID string `json:"approval_id"`
	OrderID    string `json:"order_id"`
	StepID     string `json:"step_id"`
	ApproverID string `json:"approver_id"`
	Decision   string `json:"decision"`
}

// ApprovalEventPublisher publishes approval.ResolvedEvent on TopicApprovalResolved.
type ApprovalEventPublisher struct {
	publisher message.Publisher
}

func NewApprovalEventPublisher(publisher message.Publisher) *ApprovalEventPublisher {
	return &ApprovalEventPublisher{publisher: publisher}
}

func (p *ApprovalEventPublisher) PublishApprovalResolved(ctx context.Context, event approval.ResolvedEvent) error {
	return publishJSON(ctx, p.publisher, TopicApprovalResolved, approvalResolvedMessage{
		ApprovalID: event.ApprovalID.String(),
		OrderID:    event.OrderID.String(),
		StepID:     event.StepID.String(),
		ApproverID: event.ApproverID,
		Decision:   event.Decision.String(),
	})
}

// ApprovalResolvedHandler reacts to an opened approval gate.
type ApprovalResolvedHandler interface {
	Handle(ctx context.Context, event approval.ResolvedEvent) error
}

// ApprovalEventSubscriber feeds TopicApprovalResolved to a handler. Messages are
// acked whatever the outcome: the approvals are already resolved and a failed
// auto-transition is logged and left for a manual transition.
type ApprovalEventSubscriber struct {
	subscriber message.Subscriber
	handler    ApprovalResolvedHandler
	logger     *slog.Logger
}

func NewApprovalEventSubscriber(
	subscriber message.Subscriber,
	handler ApprovalResolvedHandler,
	logger *slog.Logger,
) *ApprovalEventSubscriber {
	return &ApprovalEventSubscriber{
		subscriber: subscriber,
		handler:    handler,
		logger:     logger.With("component", "approval_event_subscriber"),
	}
}

// Start subscribes and consumes in the background until ctx is done or the bus
// is closed.
func (s *ApprovalEventSubscriber) Start(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, TopicApprovalResolved)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.consume(ctx, msg)
			msg.Ack()
		}
	}()
	return nil
}

func (s *ApprovalEventSubscriber) consume(ctx context.Context, msg *message.Message) {
	event, err := decodeApprovalResolved(msg.Payload)
	if err != nil {
		s.logger.ErrorContext(ctx, "malformed approval event dropped", "message_id", msg.UUID, "error", err)
		return
	}

	if err = s.handler.Handle(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "auto-transition after approval failed",
			"order_id", event.OrderID.String(),
			"approval_id", event.ApprovalID.String(),
			"error", err,
		)
	}
}

func decodeApprovalResolved(payload []byte) (approval.ResolvedEvent, error) {
	var m approvalResolvedMessage
	if err := json.Unmarshal(payload, &m); err != nil {
		return approval.ResolvedEvent{}, err
	}

	approvalID, err := kernel.UUIDFromString(m.ApprovalID)
	if err != nil {
		return approval.ResolvedEvent{}, err
	}
	orderID, err := kernel.UUIDFromString(m.OrderID)
	if err != nil {
		return approval.ResolvedEvent{}, err
	}
	stepID, err := kernel.UUIDFromString(m.StepID)
	if err != nil {
		return approval.ResolvedEvent{}, err
	}
	decision, err := approval.ParseStatus(m.Decision)
	if err != nil {
		return approval.ResolvedEvent{}, err
	}

	return approval.ResolvedEvent{
		ApprovalID: approvalID,
		OrderID:    orderID,
		StepID:     stepID,
		ApproverID: m.ApproverID,
		Decision:   decision,
	}, nil
}
