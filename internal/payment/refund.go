// Package payment holds the boundary to the external payment collaborator.
// The engine only emits refund instructions; gateway capture and settlement
// happen elsewhere.
package payment

import (
	"context"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/notify"
)

// RefundQueueName is the durable queue the payment worker consumes refund
// instructions from.
const RefundQueueName = "payment.refunds"

// QueueRefundGateway hands refund instructions to the payment worker over
// RabbitMQ. Implements service.RefundGateway.
type QueueRefundGateway struct {
	publisher *notify.QueuePublisher
}

func NewQueueRefundGateway(publisher *notify.QueuePublisher) *QueueRefundGateway {
	return &QueueRefundGateway{publisher: publisher}
}

func (g *QueueRefundGateway) IssueRefund(ctx context.Context, instruction domain.RefundInstruction) error {
	logger.Info("Issuing refund instruction",
		"booking_id", instruction.BookingID, "amount_cents", instruction.AmountCents)
	return g.publisher.Publish(ctx, RefundQueueName, instruction)
}
