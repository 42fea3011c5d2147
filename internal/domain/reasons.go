package domain

// ReasonCode is a closed, presentation-agnostic identifier shared by
// cancellation, refusal and dispute submissions. The UI resolves these to
// localized text; the engine only validates membership.
type ReasonCode string

const (
	// Cancellation reasons.
	ReasonChangeOfPlans    ReasonCode = "change-of-plans"
	ReasonFoundAlternative ReasonCode = "found-alternative"
	ReasonToolUnavailable  ReasonCode = "tool-unavailable"
	ReasonSchedulingIssue  ReasonCode = "scheduling-issue"

	// Refusal reasons.
	ReasonDatesConflict ReasonCode = "dates-conflict"
	ReasonRenterProfile ReasonCode = "renter-profile"
	ReasonToolWithdrawn ReasonCode = "tool-withdrawn"

	// Dispute reasons.
	ReasonNotCompliant ReasonCode = "not-compliant"
	ReasonDamaged      ReasonCode = "damaged"
	ReasonNotReturned  ReasonCode = "not-returned"
	ReasonLatePickup   ReasonCode = "late-pickup"

	ReasonOther ReasonCode = "other"
)

var cancellationReasons = map[ReasonCode]bool{
	ReasonChangeOfPlans:    true,
	ReasonFoundAlternative: true,
	ReasonToolUnavailable:  true,
	ReasonSchedulingIssue:  true,
	ReasonOther:            true,
}

var refusalReasons = map[ReasonCode]bool{
	ReasonDatesConflict: true,
	ReasonRenterProfile: true,
	ReasonToolWithdrawn: true,
	ReasonOther:         true,
}

var disputeReasons = map[ReasonCode]bool{
	ReasonNotCompliant: true,
	ReasonDamaged:      true,
	ReasonNotReturned:  true,
	ReasonLatePickup:   true,
	ReasonOther:        true,
}

func IsCancellationReason(r ReasonCode) bool { return cancellationReasons[r] }
func IsRefusalReason(r ReasonCode) bool      { return refusalReasons[r] }
func IsDisputeReason(r ReasonCode) bool      { return disputeReasons[r] }
