package repository

import (
	"context"

	"github.com/vfg2006/agency-ratecard-api/internal/domain"
)

type RateRepository interface {
	List(ctx context.Context) ([]domain.ServiceRate, error)
	Save(ctx context.Context, rates []domain.ServiceRate) error
}

type rateRepository struct {
	store CollectionStore
}

func NewRateRepository(store CollectionStore) RateRepository {
	return &rateRepository{
		store: store,
	}
}

// List returns the global catalog, or the seed catalog when none was saved.
func (r *rateRepository) List(ctx context.Context) ([]domain.ServiceRate, error) {
	return loadList(ctx, r.store, CollectionRates, domain.DefaultRates)
}

func (r *rateRepository) Save(ctx context.Context, rates []domain.ServiceRate) error {
	return r.store.Save(ctx, listWrite(CollectionRates, rates))
}
