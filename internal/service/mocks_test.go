package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"toolshare-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, b *domain.Booking, from domain.BookingStatus) error {
	args := m.Called(ctx, b, from)
	return args.Error(0)
}
func (m *MockBookingRepo) UpdateReturnFlags(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) ListByRenter(ctx context.Context, renterID, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByOwner(ctx context.Context, ownerID, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListAwaitingAutoComplete(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockDisputeRepo
type MockDisputeRepo struct {
	mock.Mock
}

func (m *MockDisputeRepo) CreateWithClaim(ctx context.Context, d *domain.Dispute) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDisputeRepo) GetByID(ctx context.Context, id string) (*domain.Dispute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dispute), args.Error(1)
}
func (m *MockDisputeRepo) Resolve(ctx context.Context, d *domain.Dispute) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDisputeRepo) ListByBooking(ctx context.Context, bookingID string) ([]domain.Dispute, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.Dispute), args.Error(1)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) CreateToolReview(ctx context.Context, r *domain.ToolReview) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReviewRepo) CreateAppReview(ctx context.Context, r *domain.AppReview) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReviewRepo) ToolReviewExists(ctx context.Context, reviewerID, bookingID string) (bool, error) {
	args := m.Called(ctx, reviewerID, bookingID)
	return args.Bool(0), args.Error(1)
}
func (m *MockReviewRepo) AppReviewExists(ctx context.Context, reviewerID string) (bool, error) {
	args := m.Called(ctx, reviewerID)
	return args.Bool(0), args.Error(1)
}
func (m *MockReviewRepo) ListToolReviews(ctx context.Context, toolID string, page, pageSize int32) ([]domain.ToolReview, int32, error) {
	args := m.Called(ctx, toolID, page, pageSize)
	return args.Get(0).([]domain.ToolReview), args.Get(1).(int32), args.Error(2)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) CreateTransaction(ctx context.Context, tx *domain.LedgerTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListByBooking(ctx context.Context, bookingID string) ([]domain.LedgerTransaction, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.LedgerTransaction), args.Error(1)
}
func (m *MockLedgerRepo) ListByUser(ctx context.Context, userID string, page, pageSize int32) ([]domain.LedgerTransaction, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.LedgerTransaction), args.Get(1).(int32), args.Error(2)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Publish(ctx context.Context, event domain.Event) {
	m.Called(ctx, event)
}

// MockSettlement
type MockSettlement struct {
	mock.Mock
}

func (m *MockSettlement) HoldFunds(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockSettlement) Refund(ctx context.Context, b *domain.Booking, amountCents int64) error {
	args := m.Called(ctx, b, amountCents)
	return args.Error(0)
}
func (m *MockSettlement) PayoutOwner(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockSettlement) ReleaseDeposit(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockSettlement) ForfeitDeposit(ctx context.Context, b *domain.Booking, disputeID string) error {
	args := m.Called(ctx, b, disputeID)
	return args.Error(0)
}
func (m *MockSettlement) Statement(ctx context.Context, userID string, page, pageSize int32) ([]domain.LedgerTransaction, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.LedgerTransaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockSettlement) BookingLedger(ctx context.Context, bookingID string) ([]domain.LedgerTransaction, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.LedgerTransaction), args.Error(1)
}

// MockRefundGateway
type MockRefundGateway struct {
	mock.Mock
}

func (m *MockRefundGateway) IssueRefund(ctx context.Context, instruction domain.RefundInstruction) error {
	args := m.Called(ctx, instruction)
	return args.Error(0)
}
