package repository

import (
	"context"

	"github.com/vfg2006/agency-ratecard-api/internal/domain"
)

type WorkLogRepository interface {
	List(ctx context.Context) ([]*domain.WorkLog, error)
	Save(ctx context.Context, logs []*domain.WorkLog) error
	// SaveWithBrands stores the logs and the brand registry in one write.
	SaveWithBrands(ctx context.Context, logs []*domain.WorkLog, brands []domain.Brand) error
}

type workLogRepository struct {
	store CollectionStore
}

func NewWorkLogRepository(store CollectionStore) WorkLogRepository {
	return &workLogRepository{
		store: store,
	}
}

func (r *workLogRepository) List(ctx context.Context) ([]*domain.WorkLog, error) {
	return loadList[*domain.WorkLog](ctx, r.store, CollectionWorkLogs, nil)
}

func (r *workLogRepository) Save(ctx context.Context, logs []*domain.WorkLog) error {
	return r.store.Save(ctx, listWrite(CollectionWorkLogs, logs))
}

func (r *workLogRepository) SaveWithBrands(ctx context.Context, logs []*domain.WorkLog, brands []domain.Brand) error {
	return r.store.Save(ctx,
		listWrite(CollectionWorkLogs, logs),
		listWrite(CollectionBrands, brands),
	)
}
