package domain

import "time"

// EventType names the side effects the engine emits. External collaborators
// (email, push, in-app) fan these out; the engine never formats messages.
type EventType string

const (
	EventBookingRequested   EventType = "BOOKING_REQUESTED"
	EventBookingAccepted    EventType = "BOOKING_ACCEPTED"
	EventBookingRejected    EventType = "BOOKING_REJECTED"
	EventBookingActivated   EventType = "BOOKING_ACTIVATED"
	EventBookingCancelled   EventType = "BOOKING_CANCELLED"
	EventReturnConfirmed    EventType = "RETURN_CONFIRMED"
	EventReturnAcknowledged EventType = "RETURN_ACKNOWLEDGED"
	EventBookingCompleted   EventType = "BOOKING_COMPLETED"
	EventDisputeOpened      EventType = "DISPUTE_OPENED"
	EventDisputeResolved    EventType = "DISPUTE_RESOLVED"
	EventReviewSubmitted    EventType = "REVIEW_SUBMITTED"
)

type Event struct {
	Type        EventType         `json:"type"`
	BookingID   string            `json:"booking_id,omitempty"`
	ActorID     string            `json:"actor_id,omitempty"`
	RecipientID string            `json:"recipient_id,omitempty"`
	OccurredOn  time.Time         `json:"occurred_on"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}
