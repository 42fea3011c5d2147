package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) CreateToolReview(ctx context.Context, rv *domain.ToolReview) error {
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	rv.CreatedOn = time.Now()
	query := `INSERT INTO tool_reviews (id, booking_id, tool_id, reviewer_id, reviewee_id, rating, comment, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, rv.ID, rv.BookingID, rv.ToolID, rv.ReviewerID, rv.RevieweeID,
		rv.Rating, rv.Comment, rv.CreatedOn)
	return err
}

func (r *reviewRepository) CreateAppReview(ctx context.Context, rv *domain.AppReview) error {
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	rv.CreatedOn = time.Now()
	query := `INSERT INTO app_reviews (id, reviewer_id, rating, comment, created_on)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, rv.ID, rv.ReviewerID, rv.Rating, rv.Comment, rv.CreatedOn)
	return err
}

func (r *reviewRepository) ToolReviewExists(ctx context.Context, reviewerID, bookingID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM tool_reviews WHERE reviewer_id = $1 AND booking_id = $2)`
	err := r.db.QueryRowContext(ctx, query, reviewerID, bookingID).Scan(&exists)
	return exists, err
}

func (r *reviewRepository) AppReviewExists(ctx context.Context, reviewerID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM app_reviews WHERE reviewer_id = $1)`
	err := r.db.QueryRowContext(ctx, query, reviewerID).Scan(&exists)
	return exists, err
}

func (r *reviewRepository) ListToolReviews(ctx context.Context, toolID string, page, pageSize int32) ([]domain.ToolReview, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM tool_reviews WHERE tool_id = $1`, toolID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, booking_id, tool_id, reviewer_id, reviewee_id, rating, comment, created_on
	          FROM tool_reviews WHERE tool_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, toolID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reviews []domain.ToolReview
	for rows.Next() {
		var rv domain.ToolReview
		if err := rows.Scan(&rv.ID, &rv.BookingID, &rv.ToolID, &rv.ReviewerID, &rv.RevieweeID,
			&rv.Rating, &rv.Comment, &rv.CreatedOn); err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, count, rows.Err()
}
