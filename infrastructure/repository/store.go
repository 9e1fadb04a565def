package repository

import (
	"context"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Collection names, kept from the keys the browser tool stored its state under.
const (
	CollectionRates              = "agency_rates"
	CollectionSettings           = "agency_settings"
	CollectionHistory            = "agency_history"
	CollectionInsights           = "agency_invoice_insights"
	CollectionBrands             = "agency_brands"
	CollectionWorkLogs           = "agency_worklogs"
	CollectionPortfolioSnapshots = "agency_portfolio_snapshots"
)

// Write replaces a whole collection with Value.
type Write struct {
	Collection string
	Value      any
}

// CollectionStore keeps one JSON document per collection.
type CollectionStore interface {
	// Load decodes the stored document into dst and reports whether it existed.
	Load(ctx context.Context, collection string, dst any) (bool, error)
	// Save applies every write or none of them.
	Save(ctx context.Context, writes ...Write) error
}

func encodeWrites(writes []Write) (map[string][]byte, error) {
	payloads := make(map[string][]byte, len(writes))
	for _, w := range writes {
		payload, err := json.Marshal(w.Value)
		if err != nil {
			return nil, wrapf(err, "encode collection %s", w.Collection)
		}
		payloads[w.Collection] = payload
	}
	return payloads, nil
}
