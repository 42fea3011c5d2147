package domain

import (
	"fmt"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusAccepted  BookingStatus = "ACCEPTED"
	BookingStatusOngoing   BookingStatus = "ONGOING"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusRejected  BookingStatus = "REJECTED"
)

// Actor identifies which party performed an operation on a booking.
type Actor string

const (
	ActorRenter Actor = "RENTER"
	ActorOwner  Actor = "OWNER"
	ActorSystem Actor = "SYSTEM"
)

// ServiceFeePercent is the fixed platform fee applied over the daily-rate subtotal.
const ServiceFeePercent = 6

const DateLayout = "2006-01-02"

type Booking struct {
	ID       string `json:"id"`
	ToolID   string `json:"tool_id"`
	OwnerID  string `json:"owner_id"`
	RenterID string `json:"renter_id"`

	StartDate  string  `json:"start_date"` // yyyy-mm-dd
	EndDate    string  `json:"end_date"`   // yyyy-mm-dd
	PickupHour *string `json:"pickup_hour,omitempty"` // HH:MM, 24h

	// Price snapshot fields, captured at booking creation time. All later
	// settlement uses these snapshots, not live tool prices.
	DailyPriceCents int64 `json:"daily_price_cents"`
	TotalPriceCents int64 `json:"total_price_cents"`
	DepositCents    int64 `json:"deposit_cents"`

	Status         BookingStatus `json:"status"`
	ValidationCode string        `json:"-"`

	RenterHasReturned       bool       `json:"renter_has_returned"`
	HasUsedReturnButton     bool       `json:"has_used_return_button"`
	OwnerAcknowledgedReturn bool       `json:"owner_acknowledged_return"`
	ReturnConfirmedOn       *time.Time `json:"return_confirmed_on,omitempty"`

	HasActiveClaim bool `json:"has_active_claim"`

	CancellationReason  ReasonCode `json:"cancellation_reason,omitempty"`
	CancellationMessage string     `json:"cancellation_message,omitempty"`
	CancelledBy         Actor      `json:"cancelled_by,omitempty"`
	RefundTier          RefundTier `json:"refund_tier,omitempty"`
	RefundAmountCents   int64      `json:"refund_amount_cents"`

	RefusalReason  ReasonCode `json:"refusal_reason,omitempty"`
	RefusalMessage string     `json:"refusal_message,omitempty"`

	CompletedBy *Actor `json:"completed_by,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// transitions is the full status graph. Anything absent is invalid, including
// every transition out of COMPLETED, CANCELLED and REJECTED.
var transitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:  {BookingStatusAccepted, BookingStatusRejected, BookingStatusCancelled},
	BookingStatusAccepted: {BookingStatusOngoing, BookingStatusCancelled},
	BookingStatusOngoing:  {BookingStatusCompleted},
}

// CanTransition reports whether from -> to is an edge of the status graph.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further status transition is defined.
func IsTerminal(s BookingStatus) bool {
	return len(transitions[s]) == 0
}

// AllowedActions lists the operations the caller may still attempt given the
// booking's current state. Returned alongside failures so the API layer can
// render disabled controls without re-deriving the rules.
func AllowedActions(b *Booking) []string {
	switch b.Status {
	case BookingStatusPending:
		return []string{"accept", "reject", "cancel"}
	case BookingStatusAccepted:
		return []string{"activate", "cancel"}
	case BookingStatusOngoing:
		actions := []string{"open_dispute"}
		if !b.HasUsedReturnButton {
			actions = append(actions, "confirm_return")
		}
		if b.RenterHasReturned && !b.HasActiveClaim {
			actions = append(actions, "acknowledge_return")
		}
		return actions
	case BookingStatusCompleted:
		return []string{"review_tool", "open_dispute"}
	default:
		return nil
	}
}

// RentalDays counts the days between start and end inclusive of both
// endpoints, minimum one day.
func RentalDays(startDate, endDate string) (int64, error) {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return 0, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	diff := int64(end.Sub(start).Hours() / 24)
	if diff < 0 {
		return 0, fmt.Errorf("end date %s is before start date %s", endDate, startDate)
	}
	return diff + 1, nil
}

// TotalPrice computes the booking total in cents: daily-rate subtotal plus the
// fixed service fee. The deposit is not part of the total; it is held and
// released separately.
func TotalPrice(dailyPriceCents int64, startDate, endDate string) (int64, error) {
	days, err := RentalDays(startDate, endDate)
	if err != nil {
		return 0, err
	}
	subtotal := dailyPriceCents * days
	fee := subtotal * ServiceFeePercent / 100
	return subtotal + fee, nil
}

// StartDateTime combines the booking's start date with its pickup hour,
// defaulting to midnight when no pickup hour was agreed. Interpreted in UTC so
// the cancellation policy stays deterministic.
func (b *Booking) StartDateTime() (time.Time, error) {
	day, err := time.Parse(DateLayout, b.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q: %w", b.StartDate, err)
	}
	if b.PickupHour == nil || *b.PickupHour == "" {
		return day, nil
	}
	parts := strings.SplitN(*b.PickupHour, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid pickup hour %q", *b.PickupHour)
	}
	hm, err := time.Parse("15:04", *b.PickupHour)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pickup hour %q: %w", *b.PickupHour, err)
	}
	return day.Add(time.Duration(hm.Hour())*time.Hour + time.Duration(hm.Minute())*time.Minute), nil
}

// EndDateTime is the end of the last rental day.
func (b *Booking) EndDateTime() (time.Time, error) {
	day, err := time.Parse(DateLayout, b.EndDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid end date %q: %w", b.EndDate, err)
	}
	return day.Add(24 * time.Hour), nil
}

// IsParty reports whether the user is the renter or the owner of the booking.
func (b *Booking) IsParty(userID string) bool {
	return b.RenterID == userID || b.OwnerID == userID
}

// ActorFor maps a user id to its role on the booking.
func (b *Booking) ActorFor(userID string) (Actor, bool) {
	switch userID {
	case b.RenterID:
		return ActorRenter, true
	case b.OwnerID:
		return ActorOwner, true
	default:
		return "", false
	}
}
