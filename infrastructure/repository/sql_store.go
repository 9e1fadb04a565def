package repository

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/agency-ratecard-api/infrastructure/database"
)

type sqlStore struct {
	conn database.Conn
	now  func() time.Time
}

func NewSQLStore(conn database.Conn) CollectionStore {
	return &sqlStore{
		conn: conn,
		now:  time.Now,
	}
}

func (s *sqlStore) Load(ctx context.Context, collection string, dst any) (bool, error) {
	query, args, err := squirrel.
		Select("payload").
		From(database.CollectionsTable).
		Where(squirrel.Eq{"name": collection}).
		PlaceholderFormat(s.conn.Placeholder()).
		ToSql()
	if err != nil {
		return false, wrapf(err, "build load query for %s", collection)
	}

	var payload string
	if err := s.conn.QueryRowContext(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, wrapf(err, "load collection %s", collection)
	}

	if err := json.UnmarshalFromString(payload, dst); err != nil {
		return false, wrapf(err, "decode collection %s", collection)
	}

	return true, nil
}

func (s *sqlStore) Save(ctx context.Context, writes ...Write) error {
	if len(writes) == 0 {
		return nil
	}

	payloads, err := encodeWrites(writes)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(payloads))
	for name := range payloads {
		names = append(names, name)
	}
	sort.Strings(names)

	updatedAt := s.now().UTC()

	return s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, name := range names {
			query, args, err := squirrel.
				Insert(database.CollectionsTable).
				Columns("name", "payload", "updated_at").
				Values(name, string(payloads[name]), updatedAt).
				Suffix("ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at").
				PlaceholderFormat(s.conn.Placeholder()).
				ToSql()
			if err != nil {
				return wrapf(err, "build save query for %s", name)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return wrapf(err, "save collection %s", name)
			}
		}
		return nil
	})
}
