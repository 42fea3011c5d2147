// Package notify fans the engine's domain events out to the delivery
// channels: in-app notification rows, email, and the booking.events queue.
// The engine only emits events; all message formatting lives here.
package notify

import (
	"context"
	"fmt"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/repository"
)

type Dispatcher struct {
	noteRepo  repository.NotificationRepository
	userRepo  repository.UserRepository
	emailer   Emailer
	publisher *QueuePublisher
}

func NewDispatcher(
	noteRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	emailer Emailer,
	publisher *QueuePublisher,
) *Dispatcher {
	return &Dispatcher{
		noteRepo:  noteRepo,
		userRepo:  userRepo,
		emailer:   emailer,
		publisher: publisher,
	}
}

// Publish implements service.Notifier. Delivery is best effort: a failed
// channel is logged and the rest still go out.
func (d *Dispatcher) Publish(ctx context.Context, event domain.Event) {
	if d.publisher != nil {
		_ = d.publisher.Publish(ctx, EventQueueName, event)
	}

	if event.RecipientID == "" {
		return
	}

	title, message := render(event)
	if title == "" {
		return
	}

	attrs := map[string]string{"type": string(event.Type)}
	if event.BookingID != "" {
		attrs["booking_id"] = event.BookingID
	}
	for k, v := range event.Attributes {
		attrs[k] = v
	}
	note := &domain.Notification{
		UserID:     event.RecipientID,
		Title:      title,
		Message:    message,
		Attributes: attrs,
	}
	if err := d.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to create in-app notification", "event", event.Type, "error", err)
	}

	if d.emailer == nil {
		return
	}
	recipient, err := d.userRepo.GetByID(ctx, event.RecipientID)
	if err != nil {
		logger.Error("Failed to load notification recipient", "user_id", event.RecipientID, "error", err)
		return
	}
	if err := d.emailer.Send(recipient.Email, recipient.Name, title, message); err != nil {
		logger.Error("Failed to send notification email", "event", event.Type, "error", err)
	}
}

func render(event domain.Event) (title, message string) {
	switch event.Type {
	case domain.EventBookingRequested:
		return "New booking request", fmt.Sprintf("You have a new rental request for booking %s.", event.BookingID)
	case domain.EventBookingAccepted:
		return "Booking accepted", fmt.Sprintf("Your booking %s was accepted. Your pickup code is available from the start date.", event.BookingID)
	case domain.EventBookingRejected:
		return "Booking declined", fmt.Sprintf("Your booking %s was declined (%s).", event.BookingID, event.Attributes["reason"])
	case domain.EventBookingActivated:
		return "Rental started", fmt.Sprintf("Pickup confirmed; booking %s is now active.", event.BookingID)
	case domain.EventBookingCancelled:
		return "Booking cancelled", fmt.Sprintf("Booking %s was cancelled (%s).", event.BookingID, event.Attributes["reason"])
	case domain.EventReturnConfirmed:
		return "Return reported", fmt.Sprintf("The renter reported the tool of booking %s as returned. Please confirm or raise a claim.", event.BookingID)
	case domain.EventReturnAcknowledged:
		return "Return acknowledged", fmt.Sprintf("The owner acknowledged the return of booking %s. Press the return button to complete the rental.", event.BookingID)
	case domain.EventBookingCompleted:
		return "Rental completed", fmt.Sprintf("Booking %s is complete. Your deposit has been settled.", event.BookingID)
	case domain.EventDisputeOpened:
		return "Claim opened", fmt.Sprintf("A claim was opened on booking %s.", event.BookingID)
	case domain.EventDisputeResolved:
		return "Claim resolved", fmt.Sprintf("The claim on booking %s was resolved (%s).", event.BookingID, event.Attributes["resolution"])
	case domain.EventReviewSubmitted:
		return "New review", "You received a new review."
	default:
		return "", ""
	}
}
