package repository

import (
	"context"

	"garagedesk/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	GetAll(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
}

type settingsRepo struct{ db *gorm.DB }

func NewSettingsRepository(db *gorm.DB) SettingsRepository { return &settingsRepo{db: db} }

func (r *settingsRepo) Get(ctx context.Context, key string) (string, error) {
	var s model.SystemSetting
	if err := r.db.WithContext(ctx).First(&s, "key = ?", key).Error; err != nil {
		return "", err
	}
	return s.Value, nil
}

func (r *settingsRepo) GetAll(ctx context.Context) (map[string]string, error) {
	var rows []model.SystemSetting
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, s := range rows {
		out[s.Key] = s.Value
	}
	return out, nil
}

func (r *settingsRepo) Set(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model.SystemSetting{Key: key, Value: value}).Error
}
