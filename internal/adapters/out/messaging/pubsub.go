// Package messaging connects the workflow core to the in-process event bus. The
// bus is a watermill GoChannel; every payload is JSON so a broker-backed
// publisher can replace it without touching the core.
package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Topics.
const (
	TopicApprovalResolved   = "approval.resolved"
	TopicNotifications      = "notifications"
	TopicInventoryRequested = "inventory.allocation_requested"
	TopicAudit              = "audit.events"
)

// NewPubSub returns the bus shared by publishers and subscribers.
func NewPubSub(logger *slog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            256,
			Persistent:                     false,
			BlockPublishUntilSubscriberAck: false,
		},
		watermill.NewSlogLogger(logger),
	)
}

func publishJSON(ctx context.Context, publisher message.Publisher, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.SetContext(ctx)
	return publisher.Publish(topic, msg)
}
