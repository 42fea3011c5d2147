package domain

import "time"

type DisputeStatus string

const (
	DisputeStatusOpen     DisputeStatus = "OPEN"
	DisputeStatusResolved DisputeStatus = "RESOLVED"
)

// DisputeResolution records how a resolved dispute settled.
type DisputeResolution string

const (
	ResolutionRefundRenter   DisputeResolution = "REFUND_RENTER"
	ResolutionReleaseOwner   DisputeResolution = "RELEASE_OWNER"
	ResolutionForfeitDeposit DisputeResolution = "FORFEIT_DEPOSIT"
)

// MaxEvidenceSizeBytes caps each evidence file at 1 MiB. A submission with any
// oversized file is rejected whole.
const MaxEvidenceSizeBytes = 1 << 20

// EvidenceFile references an already-uploaded image; the engine validates
// sizes but never handles file content.
type EvidenceFile struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	URL       string `json:"url"`
}

type Dispute struct {
	ID          string            `json:"id"`
	BookingID   string            `json:"booking_id"`
	RaisedBy    string            `json:"raised_by"`
	Reason      ReasonCode        `json:"reason"`
	Description string            `json:"description"`
	Evidence    []EvidenceFile    `json:"evidence,omitempty"`
	Status      DisputeStatus     `json:"status"`
	Resolution  DisputeResolution `json:"resolution,omitempty"`
	ResolvedOn  *time.Time        `json:"resolved_on,omitempty"`
	CreatedOn   time.Time         `json:"created_on"`
}

func (d *Dispute) IsOpen() bool { return d.Status == DisputeStatusOpen }
