package repository

import (
	"context"

	"github.com/vfg2006/agency-ratecard-api/internal/domain"
)

type InsightRepository interface {
	List(ctx context.Context) ([]domain.InvoiceInsight, error)
	Save(ctx context.Context, insights []domain.InvoiceInsight) error
	// SaveWithRates stores the pending insights and the global catalog in one write.
	SaveWithRates(ctx context.Context, insights []domain.InvoiceInsight, rates []domain.ServiceRate) error
}

type insightRepository struct {
	store CollectionStore
}

func NewInsightRepository(store CollectionStore) InsightRepository {
	return &insightRepository{
		store: store,
	}
}

func (r *insightRepository) List(ctx context.Context) ([]domain.InvoiceInsight, error) {
	return loadList[domain.InvoiceInsight](ctx, r.store, CollectionInsights, nil)
}

func (r *insightRepository) Save(ctx context.Context, insights []domain.InvoiceInsight) error {
	return r.store.Save(ctx, listWrite(CollectionInsights, insights))
}

func (r *insightRepository) SaveWithRates(ctx context.Context, insights []domain.InvoiceInsight, rates []domain.ServiceRate) error {
	return r.store.Save(ctx,
		listWrite(CollectionInsights, insights),
		listWrite(CollectionRates, rates),
	)
}
