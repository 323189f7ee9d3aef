package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/domain"
)

// CenterRepo reads the pricing projection owned by the center service.
type CenterRepo struct{ db *gorm.DB }

func NewCenterRepo(db *gorm.DB) *CenterRepo {
	return &CenterRepo{db: db}
}

func (r *CenterRepo) ByID(ctx context.Context, id string) (*domain.Center, error) {
	var c domain.Center
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CenterRepo) Upsert(ctx context.Context, c *domain.Center) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// UserRepo holds the points projection seeded from profile events.
type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Upsert(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).
		Where("id = ?", u.ID).
		Assign(map[string]any{"name": u.Name, "points": u.Points}).
		FirstOrCreate(u).Error
}
