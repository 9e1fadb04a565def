package repository

import (
	"context"

	"github.com/vfg2006/agency-ratecard-api/internal/domain"
)

type SnapshotRepository interface {
	List(ctx context.Context) ([]domain.PortfolioSnapshot, error)
	// Append adds a snapshot and keeps only the newest retain entries.
	Append(ctx context.Context, snapshot domain.PortfolioSnapshot, retain int) error
}

type snapshotRepository struct {
	store CollectionStore
}

func NewSnapshotRepository(store CollectionStore) SnapshotRepository {
	return &snapshotRepository{
		store: store,
	}
}

func (r *snapshotRepository) List(ctx context.Context) ([]domain.PortfolioSnapshot, error) {
	return loadList[domain.PortfolioSnapshot](ctx, r.store, CollectionPortfolioSnapshots, nil)
}

func (r *snapshotRepository) Append(ctx context.Context, snapshot domain.PortfolioSnapshot, retain int) error {
	snapshots, err := r.List(ctx)
	if err != nil {
		return err
	}

	snapshots = append(snapshots, snapshot)
	if retain > 0 && len(snapshots) > retain {
		snapshots = snapshots[len(snapshots)-retain:]
	}

	return r.store.Save(ctx, listWrite(CollectionPortfolioSnapshots, snapshots))
}
