package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/domain"
)

var ErrAlreadyInterested = errors.New("already_interested")

type PassPostRepo struct{ db *gorm.DB }

func NewPassPostRepo(db *gorm.DB) *PassPostRepo {
	return &PassPostRepo{db: db}
}

func (r *PassPostRepo) Create(ctx context.Context, p *domain.PassPost) error {
	if p.ID == "" {
		p.ID = domain.NewID()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PassPostRepo) ByID(ctx context.Context, id string) (*domain.PassPost, error) {
	var p domain.PassPost
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// LiveByBookingID finds the ACTIVE or SOLD post holding the one-post-per-booking
// slot, if any.
func (r *PassPostRepo) LiveByBookingID(ctx context.Context, bookingID string) (*domain.PassPost, error) {
	var p domain.PassPost
	err := r.db.WithContext(ctx).
		Where("booking_id = ? AND status IN ?", bookingID, []domain.PassPostStatus{domain.PassActive, domain.PassSold}).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListActive returns unexpired ACTIVE posts, newest first.
func (r *PassPostRepo) ListActive(ctx context.Context, now time.Time) ([]domain.PassPost, error) {
	var out []domain.PassPost
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at > ?", domain.PassActive, now).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *PassPostRepo) BySeller(ctx context.Context, sellerID string) ([]domain.PassPost, error) {
	var out []domain.PassPost
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// AddInterest inserts the (user, post) fact. A concurrent duplicate insert
// surfaces as ErrAlreadyInterested, not a hard failure: the pair's primary
// key is the guard.
func (r *PassPostRepo) AddInterest(ctx context.Context, userID, postID string) error {
	rec := domain.InterestedUser{UserID: userID, PostID: postID, CreatedAt: time.Now().UTC()}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyInterested
		}
		return err
	}
	return nil
}

// RemoveInterest deletes the fact; reports whether a row actually went away.
func (r *PassPostRepo) RemoveInterest(ctx context.Context, userID, postID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Delete(&domain.InterestedUser{}, "user_id = ? AND post_id = ?", userID, postID)
	return res.RowsAffected > 0, res.Error
}

func (r *PassPostRepo) HasInterest(ctx context.Context, userID, postID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.InterestedUser{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&n).Error
	return n > 0, err
}

func (r *PassPostRepo) CountInterest(ctx context.Context, postID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.InterestedUser{}).
		Where("post_id = ?", postID).
		Count(&n).Error
	return n, err
}

func (r *PassPostRepo) InterestedUsers(ctx context.Context, postID string) ([]domain.InterestedUser, error) {
	var out []domain.InterestedUser
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}
