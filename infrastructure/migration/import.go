package migration

import (
	"bytes"
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/vfg2006/agency-ratecard-api/infrastructure/repository"
	"github.com/vfg2006/agency-ratecard-api/internal/domain"
	"github.com/vfg2006/agency-ratecard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Report counts the records written per collection.
type Report map[string]int

// Import loads a dump of the browser tool's localStorage into store. The dump is a JSON
// object keyed by collection name; values may be the stored JSON strings or plain JSON.
// Unknown keys are skipped and every known collection is written in a single save.
func Import(ctx context.Context, store repository.CollectionStore, dump []byte) (Report, error) {
	var raw map[string]jsoniter.RawMessage
	if err := json.Unmarshal(dump, &raw); err != nil {
		return nil, errors.Wrap(err, "migration: dump is not a JSON object")
	}

	report := Report{}
	var writes []repository.Write

	for key, value := range raw {
		payload, err := unquote(value)
		if err != nil {
			return nil, errors.Wrapf(err, "migration: collection %s", key)
		}

		write, count, err := decodeCollection(key, payload)
		if err != nil {
			return nil, errors.Wrapf(err, "migration: collection %s", key)
		}
		if write == nil {
			log.L.WithField("collection", key).Warn("migration: skipping unknown key")
			continue
		}

		writes = append(writes, *write)
		report[key] = count
	}

	if len(writes) == 0 {
		return report, nil
	}

	if err := store.Save(ctx, writes...); err != nil {
		return nil, errors.Wrap(err, "migration: save collections")
	}

	return report, nil
}

// unquote accepts both `"[...]"` as copied from localStorage and the bare document.
func unquote(value jsoniter.RawMessage) ([]byte, error) {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return trimmed, nil
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err != nil {
		return nil, err
	}
	return []byte(text), nil
}

func decodeCollection(key string, payload []byte) (*repository.Write, int, error) {
	switch key {
	case repository.CollectionRates:
		return decodeList[domain.ServiceRate](key, payload)
	case repository.CollectionBrands:
		return decodeList[domain.Brand](key, payload)
	case repository.CollectionHistory:
		return decodeList[domain.HistoryItem](key, payload)
	case repository.CollectionInsights:
		return decodeList[domain.InvoiceInsight](key, payload)
	case repository.CollectionPortfolioSnapshots:
		return decodeList[domain.PortfolioSnapshot](key, payload)
	case repository.CollectionWorkLogs:
		var logs []*domain.WorkLog
		if err := json.Unmarshal(payload, &logs); err != nil {
			return nil, 0, err
		}
		sequenceLegacyLogs(logs)
		return &repository.Write{Collection: key, Value: nonNil(logs)}, len(logs), nil
	case repository.CollectionSettings:
		settings := domain.DefaultSettings()
		if err := json.Unmarshal(payload, &settings); err != nil {
			return nil, 0, err
		}
		if settings.AgencyMultiplier <= 0 || settings.InternationalMultiplier <= 0 {
			return nil, 0, fmt.Errorf("multipliers must be positive")
		}
		return &repository.Write{Collection: key, Value: settings}, 1, nil
	}

	return nil, 0, nil
}

func decodeList[T any](key string, payload []byte) (*repository.Write, int, error) {
	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, 0, err
	}
	return &repository.Write{Collection: key, Value: nonNil(items)}, len(items), nil
}

// sequenceLegacyLogs numbers logs that predate the sequence field. The browser appended
// new logs, so array order is insertion order.
func sequenceLegacyLogs(logs []*domain.WorkLog) {
	var next int64
	for _, l := range logs {
		if l != nil && l.Sequence > next {
			next = l.Sequence
		}
	}

	for _, l := range logs {
		if l == nil || l.Sequence > 0 {
			continue
		}
		next++
		l.Sequence = next
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
