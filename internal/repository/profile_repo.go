package repository

import (
	"context"

	"garagedesk/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *model.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	FindByEmail(ctx context.Context, email string) (*model.Profile, error)
	List(ctx context.Context, includeInactive bool) ([]model.Profile, error)
	Update(ctx context.Context, p *model.Profile) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type profileRepo struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) ProfileRepository { return &profileRepo{db: db} }

func (r *profileRepo) Create(ctx context.Context, p *model.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *profileRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *profileRepo) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).Where("email = ? AND active = true", email).First(&p).Error
	return &p, err
}

func (r *profileRepo) List(ctx context.Context, includeInactive bool) ([]model.Profile, error) {
	var profiles []model.Profile
	q := r.db.WithContext(ctx)
	if !includeInactive {
		q = q.Where("active = true")
	}
	err := q.Order("full_name ASC").Find(&profiles).Error
	return profiles, err
}

func (r *profileRepo) Update(ctx context.Context, p *model.Profile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *profileRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", id).Update("active", false).Error
}

func (r *profileRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", id).Update("active", true).Error
}
