package repository

import (
	"context"

	"github.com/vfg2006/agency-ratecard-api/internal/domain"
)

type HistoryRepository interface {
	List(ctx context.Context) ([]domain.HistoryItem, error)
	Save(ctx context.Context, items []domain.HistoryItem) error
}

type historyRepository struct {
	store CollectionStore
}

func NewHistoryRepository(store CollectionStore) HistoryRepository {
	return &historyRepository{
		store: store,
	}
}

func (r *historyRepository) List(ctx context.Context) ([]domain.HistoryItem, error) {
	return loadList[domain.HistoryItem](ctx, r.store, CollectionHistory, nil)
}

func (r *historyRepository) Save(ctx context.Context, items []domain.HistoryItem) error {
	return r.store.Save(ctx, listWrite(CollectionHistory, items))
}
