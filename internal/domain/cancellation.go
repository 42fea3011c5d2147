package domain

import "time"

type RefundTier string

const (
	RefundTierFull RefundTier = "FULL"
	RefundTierNone RefundTier = "NONE"
)

// CancellationWindow is how long before the start of the rental a committed
// (ACCEPTED) booking can still be cancelled with a full refund.
const CancellationWindow = 24 * time.Hour

// CancellationDecision is the outcome of evaluating the policy at a given
// instant. Once a cancellation is committed the decision is snapshotted on the
// booking and never re-evaluated.
type CancellationDecision struct {
	Allowed bool
	Tier    RefundTier
}

// EvaluateCancellation is a pure function of (booking, actor, now).
//
// A PENDING booking carries no commitment and can always be cancelled with a
// full refund. An ACCEPTED booking can be cancelled with a full refund up to
// 24h before the pickup time; inside that window the renter is refused, while
// the owner may still cancel but the refund tier drops to NONE. No other
// status admits cancellation.
func EvaluateCancellation(b *Booking, actor Actor, now time.Time) CancellationDecision {
	switch b.Status {
	case BookingStatusPending:
		return CancellationDecision{Allowed: true, Tier: RefundTierFull}
	case BookingStatusAccepted:
		start, err := b.StartDateTime()
		if err != nil {
			return CancellationDecision{}
		}
		if now.Before(start.Add(-CancellationWindow)) {
			return CancellationDecision{Allowed: true, Tier: RefundTierFull}
		}
		if actor == ActorOwner {
			return CancellationDecision{Allowed: true, Tier: RefundTierNone}
		}
		return CancellationDecision{}
	default:
		return CancellationDecision{}
	}
}
