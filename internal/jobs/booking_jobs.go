package jobs

import (
	"context"
	"fmt"
	"time"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
)

// AutoCompleteReturns completes bookings whose renter confirmed the return
// and whose owner neither acknowledged nor raised a claim within the grace
// period. Each booking goes through the normal completion path, so a
// concurrent owner acknowledgement wins the status CAS and the job's attempt
// is simply dropped; re-runs are no-ops.
func (jr *JobRunner) AutoCompleteReturns() {
	jr.runWithRecovery("AutoCompleteReturns", func() {
		ctx := context.Background()

		grace := time.Duration(jr.config.Booking.AutoCompleteGraceHours) * time.Hour
		cutoff := time.Now().Add(-grace)

		bookings, err := jr.store.BookingRepository.ListAwaitingAutoComplete(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list bookings awaiting auto-complete", "error", err)
			return
		}

		completed := 0
		for _, b := range bookings {
			if err := jr.services.Booking.AutoComplete(ctx, b.ID); err != nil {
				logger.Error("Failed to auto-complete booking", "booking_id", b.ID, "error", err)
				continue
			}
			completed++
			logger.Debug("Auto-completed booking",
				"booking_id", b.ID,
				"return_confirmed_on", b.ReturnConfirmedOn)
		}

		logger.Info("Auto-completed returned bookings", "count", completed, "grace_hours", jr.config.Booking.AutoCompleteGraceHours)
	})
}

// SendReturnReminders nudges owners who have an unanswered return
// confirmation pending inside the grace period.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()

		query := `
			SELECT id, owner_id, return_confirmed_on
			FROM bookings
			WHERE status = $1
			  AND renter_has_returned = true
			  AND owner_acknowledged_return = false
			  AND has_active_claim = false
		`
		rows, err := jr.db.QueryContext(ctx, query, domain.BookingStatusOngoing)
		if err != nil {
			logger.Error("Failed to query pending return confirmations", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var bookingID, ownerID string
			var confirmedOn time.Time
			if err := rows.Scan(&bookingID, &ownerID, &confirmedOn); err != nil {
				logger.Error("Failed to scan pending return", "error", err)
				continue
			}

			note := &domain.Notification{
				UserID: ownerID,
				Title:  "Return awaiting your confirmation",
				Message: fmt.Sprintf("The renter reported the tool of booking %s as returned on %s. Confirm the return or raise a claim.",
					bookingID, confirmedOn.Format("2006-01-02")),
				Attributes: map[string]string{
					"type":       "RETURN_REMINDER",
					"booking_id": bookingID,
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to create return reminder", "booking_id", bookingID, "error", err)
				continue
			}
			count++
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating pending returns", "error", err)
			return
		}

		logger.Info("Sent return reminders", "count", count)
	})
}
