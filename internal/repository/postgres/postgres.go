package postgres

import (
	"database/sql"

	"toolshare-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.BookingRepository
	repository.DisputeRepository
	repository.ReviewRepository
	repository.LedgerRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		BookingRepository:      NewBookingRepository(db),
		DisputeRepository:      NewDisputeRepository(db),
		ReviewRepository:       NewReviewRepository(db),
		LedgerRepository:       NewLedgerRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
