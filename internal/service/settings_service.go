package service

import (
	"context"
	"fmt"
	"sort"

	"garagedesk/internal/dto"
	"garagedesk/internal/repository"
)

// Setting keys recognized by the settings endpoints. Shop identity fields
// feed the invoice PDF header.
var allowedSettingKeys = map[string]bool{
	"shop_name":      true,
	"shop_address":   true,
	"shop_phone":     true,
	"invoice_footer": true,
}

type SettingsService interface {
	Get(ctx context.Context, key string) (*dto.SettingResponse, error)
	GetAll(ctx context.Context) ([]dto.SettingResponse, error)
	Set(ctx context.Context, key, value string) (*dto.SettingResponse, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context, key string) (*dto.SettingResponse, error) {
	if !allowedSettingKeys[key] {
		return nil, fmt.Errorf("unknown setting %q", key)
	}
	value, err := s.repo.Get(ctx, key)
	if err != nil {
		return &dto.SettingResponse{Key: key, Value: ""}, nil
	}
	return &dto.SettingResponse{Key: key, Value: value}, nil
}

func (s *settingsService) GetAll(ctx context.Context) ([]dto.SettingResponse, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SettingResponse, 0, len(allowedSettingKeys))
	for key := range allowedSettingKeys {
		items = append(items, dto.SettingResponse{Key: key, Value: all[key]})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })
	return items, nil
}

func (s *settingsService) Set(ctx context.Context, key, value string) (*dto.SettingResponse, error) {
	if !allowedSettingKeys[key] {
		return nil, fmt.Errorf("unknown setting %q", key)
	}
	if err := s.repo.Set(ctx, key, value); err != nil {
		return nil, err
	}
	return &dto.SettingResponse{Key: key, Value: value}, nil
}
