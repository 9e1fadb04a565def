package repository

// Repositories bundles every collection repository over a single store.
type Repositories struct {
	Rates     RateRepository
	Settings  SettingsRepository
	Brands    BrandRepository
	WorkLogs  WorkLogRepository
	History   HistoryRepository
	Insights  InsightRepository
	Snapshots SnapshotRepository
}

func NewRepositories(store CollectionStore) *Repositories {
	return &Repositories{
		Rates:     NewRateRepository(store),
		Settings:  NewSettingsRepository(store),
		Brands:    NewBrandRepository(store),
		WorkLogs:  NewWorkLogRepository(store),
		History:   NewHistoryRepository(store),
		Insights:  NewInsightRepository(store),
		Snapshots: NewSnapshotRepository(store),
	}
}
