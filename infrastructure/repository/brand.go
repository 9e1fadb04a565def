package repository

import (
	"context"

	"github.com/vfg2006/agency-ratecard-api/internal/domain"
)

type BrandRepository interface {
	List(ctx context.Context) ([]domain.Brand, error)
	Save(ctx context.Context, brands []domain.Brand) error
}

type brandRepository struct {
	store CollectionStore
}

func NewBrandRepository(store CollectionStore) BrandRepository {
	return &brandRepository{
		store: store,
	}
}

// List returns the registry, or the starter brands when none was saved.
func (r *brandRepository) List(ctx context.Context) ([]domain.Brand, error) {
	brands, err := loadList(ctx, r.store, CollectionBrands, domain.DefaultBrands)
	if err != nil {
		return nil, err
	}

	for i := range brands {
		if brands[i].LearnedRates == nil {
			brands[i].LearnedRates = []domain.ServiceRate{}
		}
	}

	return brands, nil
}

func (r *brandRepository) Save(ctx context.Context, brands []domain.Brand) error {
	return r.store.Save(ctx, listWrite(CollectionBrands, brands))
}
