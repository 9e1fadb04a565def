package repository

import (
	"context"

	"github.com/vfg2006/agency-ratecard-api/internal/domain"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.PricingSettings, error)
	Save(ctx context.Context, settings *domain.PricingSettings) error
}

type settingsRepository struct {
	store CollectionStore
}

func NewSettingsRepository(store CollectionStore) SettingsRepository {
	return &settingsRepository{
		store: store,
	}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.PricingSettings, error) {
	var settings domain.PricingSettings

	found, err := r.store.Load(ctx, CollectionSettings, &settings)
	if err != nil {
		return nil, err
	}

	if !found {
		settings = domain.DefaultSettings()
	}

	return &settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *domain.PricingSettings) error {
	return r.store.Save(ctx, Write{Collection: CollectionSettings, Value: settings})
}
