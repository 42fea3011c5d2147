package domain

import (
	"time"
	"unicode"
)

// ToolReview is a renter's review of a tool after a completed booking.
type ToolReview struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"booking_id"`
	ToolID     string    `json:"tool_id"`
	ReviewerID string    `json:"reviewer_id"`
	RevieweeID string    `json:"reviewee_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedOn  time.Time `json:"created_on"`
}

// AppReview is a user's one-time review of the marketplace itself.
type AppReview struct {
	ID         string    `json:"id"`
	ReviewerID string    `json:"reviewer_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedOn  time.Time `json:"created_on"`
}

// ValidateReviewInput checks rating and comment ahead of any persistence call.
// Rating must be an integer in [1,5]; the comment needs at least three
// non-whitespace characters.
func ValidateReviewInput(rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidReviewInput
	}
	visible := 0
	for _, r := range comment {
		if !unicode.IsSpace(r) {
			visible++
			if visible >= 3 {
				return nil
			}
		}
	}
	return ErrInvalidReviewInput
}
