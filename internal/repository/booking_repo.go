package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/domain"
)

// ErrSlotTaken: another active booking already claims a requested court+hour.
var ErrSlotTaken = errors.New("slot_taken")

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Migrate() error {
	return r.db.AutoMigrate(
		&domain.Booking{},
		&domain.Center{},
		&domain.User{},
		&domain.PassPost{},
		&domain.InterestedUser{},
	)
}

// CreateNoConflict persists b unless an active booking on the same center and
// date shares a court+timeslot. Candidate rows are locked FOR UPDATE inside
// the txn so two writers that can see each other's rows serialize; the
// timeslot intersection itself happens here, not in SQL, because the court
// details live in a JSON column.
func (r *BookingRepo) CreateNoConflict(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var candidates []domain.Booking
		err := tx.Model(&domain.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("center_id = ? AND book_date = ? AND is_deleted = ?", b.CenterID, b.BookDate, false).
			Where("status IN ?", domain.ActiveStatuses).
			Find(&candidates).Error
		if err != nil {
			return err
		}
		for i := range candidates {
			if candidates[i].Overlaps(b.CourtBookingDetails) {
				return ErrSlotTaken
			}
		}

		if b.ID == "" {
			b.ID = domain.NewID()
		}
		return tx.Create(b).Error
	})
}

func (r *BookingRepo) ByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ? AND is_deleted = ?", id, false).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) ByIDs(ctx context.Context, ids []string) ([]domain.Booking, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("id IN ? AND is_deleted = ?", ids, false).
		Find(&out).Error
	return out, err
}

func (r *BookingRepo) ByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *BookingRepo) List(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// ActiveForDay feeds the conflict-free mapping grid.
func (r *BookingRepo) ActiveForDay(ctx context.Context, centerID string, date time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("center_id = ? AND book_date = ? AND is_deleted = ?", centerID, date, false).
		Where("status IN ?", domain.ActiveStatuses).
		Find(&out).Error
	return out, err
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id string, to domain.BookingStatus) (*domain.Booking, error) {
	var b domain.Booking
	tx := r.db.WithContext(ctx).Begin()
	if err := tx.First(&b, "id = ? AND is_deleted = ?", id, false).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	b.Status = to
	if err := tx.Save(&b).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return &b, tx.Commit().Error
}

// CancelIfPending is the expiration worker's only write. It reports whether
// this call did the transition, which keeps double-delivery of the delayed
// task a no-op. A missing or soft-deleted booking returns (nil, false, nil).
func (r *BookingRepo) CancelIfPending(ctx context.Context, id string) (*domain.Booking, bool, error) {
	var b domain.Booking
	changed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ? AND is_deleted = ?", id, false).Error; err != nil {
			return err
		}
		if b.Status != domain.StatusPending {
			return nil // already resolved elsewhere
		}
		b.Status = domain.StatusCancelled
		changed = true
		return tx.Save(&b).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &b, changed, nil
}

// Confirm moves a booking to confirmed and awards points. Used by the payment
// webhook path only.
func (r *BookingRepo) Confirm(ctx context.Context, id string, points int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ? AND is_deleted = ?", id, false).Error; err != nil {
			return err
		}
		if b.Status == domain.StatusConfirmed {
			return nil // webhook replay
		}
		b.Status = domain.StatusConfirmed
		b.PointsEarned = points
		return tx.Save(&b).Error
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
