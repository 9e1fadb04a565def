package repository

import "context"

// loadList reads a list collection; a missing document yields fallback().
func loadList[T any](ctx context.Context, store CollectionStore, collection string, fallback func() []T) ([]T, error) {
	var items []T

	found, err := store.Load(ctx, collection, &items)
	if err != nil {
		return nil, err
	}

	if !found {
		if fallback != nil {
			return fallback(), nil
		}
		return []T{}, nil
	}

	if items == nil {
		items = []T{}
	}

	return items, nil
}

func listWrite[T any](collection string, items []T) Write {
	if items == nil {
		items = []T{}
	}
	return Write{Collection: collection, Value: items}
}
