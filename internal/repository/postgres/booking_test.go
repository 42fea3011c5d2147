package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository/postgres"
)

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "tool_id", "owner_id", "renter_id", "start_date", "end_date", "pickup_hour",
		"daily_price_cents", "total_price_cents", "deposit_cents", "status", "validation_code",
		"renter_has_returned", "has_used_return_button", "owner_acknowledged_return", "return_confirmed_on",
		"has_active_claim", "cancellation_reason", "cancellation_message", "cancelled_by", "refund_tier",
		"refund_amount_cents", "refusal_reason", "refusal_message", "completed_by", "created_on", "updated_on",
	})
}

func TestBookingRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		b := &domain.Booking{
			ToolID:          "tool-1",
			OwnerID:         "owner-1",
			RenterID:        "renter-1",
			StartDate:       "2026-03-10",
			EndDate:         "2026-03-12",
			DailyPriceCents: 1000,
			TotalPriceCents: 3180,
			DepositCents:    5000,
			Status:          domain.BookingStatusPending,
		}

		mock.ExpectExec("INSERT INTO bookings").
			WithArgs(sqlmock.AnyArg(), b.ToolID, b.OwnerID, b.RenterID, b.StartDate, b.EndDate, nil,
				b.DailyPriceCents, b.TotalPriceCents, b.DepositCents, b.Status, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, b)
		assert.NoError(t, err)
		assert.NotEmpty(t, b.ID)
	})
}

func TestBookingRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := bookingRows().AddRow(
			"bk-1", "tool-1", "owner-1", "renter-1", "2026-03-10", "2026-03-12", nil,
			1000, 3180, 5000, "ACCEPTED", "ABC234",
			false, false, false, nil,
			false, "", "", nil, nil,
			0, "", "", nil, time.Now(), time.Now(),
		)

		mock.ExpectQuery("FROM bookings WHERE id = \\$1").
			WithArgs("bk-1").
			WillReturnRows(rows)

		b, err := repo.GetByID(ctx, "bk-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusAccepted, b.Status)
		assert.Equal(t, "ABC234", b.ValidationCode)
		assert.Nil(t, b.CompletedBy)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("FROM bookings WHERE id = \\$1").
			WithArgs("missing").
			WillReturnRows(bookingRows())

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	booking := func() *domain.Booking {
		return &domain.Booking{
			ID:             "bk-1",
			Status:         domain.BookingStatusAccepted,
			ValidationCode: "ABC234",
		}
	}

	t.Run("Guarded write lands", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET status=").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, booking(), domain.BookingStatusPending)
		assert.NoError(t, err)
	})

	t.Run("Lost race returns invalid transition", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET status=").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, booking(), domain.BookingStatusPending)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestBookingRepository_UpdateReturnFlags(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	now := time.Now()
	b := &domain.Booking{
		ID:                  "bk-1",
		Status:              domain.BookingStatusOngoing,
		RenterHasReturned:   true,
		HasUsedReturnButton: true,
		ReturnConfirmedOn:   &now,
	}

	t.Run("Only updates an ongoing booking", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET renter_has_returned=").
			WithArgs(true, true, false, b.ReturnConfirmedOn, sqlmock.AnyArg(), "bk-1", domain.BookingStatusOngoing).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateReturnFlags(ctx, b))
	})

	t.Run("Completed elsewhere in the meantime", func(t *testing.T) {
		mock.ExpectExec("UPDATE bookings SET renter_has_returned=").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateReturnFlags(ctx, b), domain.ErrInvalidTransition)
	})
}

func TestBookingRepository_ListAwaitingAutoComplete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	cutoff := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
	confirmed := cutoff.Add(-80 * time.Hour)

	rows := bookingRows().AddRow(
		"bk-1", "tool-1", "owner-1", "renter-1", "2026-03-10", "2026-03-12", nil,
		1000, 3180, 5000, "ONGOING", "",
		true, true, false, confirmed,
		false, "", "", nil, nil,
		0, "", "", nil, time.Now(), time.Now(),
	)

	mock.ExpectQuery("FROM bookings").
		WithArgs(domain.BookingStatusOngoing, cutoff).
		WillReturnRows(rows)

	bookings, err := repo.ListAwaitingAutoComplete(ctx, cutoff)
	assert.NoError(t, err)
	assert.Len(t, bookings, 1)
	assert.True(t, bookings[0].RenterHasReturned)
	assert.False(t, bookings[0].OwnerAcknowledgedReturn)
}
