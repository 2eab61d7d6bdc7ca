package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"shutterbid/internal/database"
	"shutterbid/internal/domain/market"

	"github.com/jackc/pgx/v5"
)

var ErrRecordNotFound = errors.New("record not found")

// Record is one document of the flat marketplace collection: a synthetic
// primary key, the kind discriminator, and the entity payload as JSON.
type Record struct {
	ID   string
	Kind market.Kind
	Data []byte
}

func NewRecord(id string, kind market.Kind, v any) (Record, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Record{}, err
	}
	return Record{ID: id, Kind: kind, Data: b}, nil
}

func (r Record) Decode(v any) error {
	return json.Unmarshal(r.Data, v)
}

// RecordStore is the contract over the single-table document store.
// ListByKind is the secondary-index scan every scatter/gather read goes
// through; there are no store-level joins or filters beyond the kind.
//
// CompareAndSwapStatus is the one conditional write: it transitions the
// top-level status field of a record only when the current value still
// matches, and reports whether the swap happened. The resolution engine
// uses it as the linearization point for job acceptance.
type RecordStore interface {
	Put(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (Record, error)
	ListByKind(ctx context.Context, kind market.Kind) ([]Record, error)
	Update(ctx context.Context, rec Record) error
	Delete(ctx context.Context, id string) error
	CompareAndSwapStatus(ctx context.Context, id string, kind market.Kind, from, to string) (bool, error)
}

type PostgresRecordStore struct {
	db database.DB
}

func NewPostgresRecordStore(db database.DB) *PostgresRecordStore {
	return &PostgresRecordStore{db: db}
}

func (s *PostgresRecordStore) Put(ctx context.Context, rec Record) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO records (id, entry_type, data)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET entry_type = EXCLUDED.entry_type, data = EXCLUDED.data, updated_at = now()`,
		rec.ID, string(rec.Kind), rec.Data,
	)
	return err
}

func (s *PostgresRecordStore) Get(ctx context.Context, id string) (Record, error) {
	rec := Record{ID: id}
	var kind string
	row := s.db.QueryRow(ctx, `SELECT entry_type, data FROM records WHERE id = $1`, id)
	if err := row.Scan(&kind, &rec.Data); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrRecordNotFound
		}
		return Record{}, err
	}
	rec.Kind = market.Kind(kind)
	return rec, nil
}

func (s *PostgresRecordStore) ListByKind(ctx context.Context, kind market.Kind) ([]Record, error) {
	rows, err := s.db.Query(ctx, `SELECT id, data FROM records WHERE entry_type = $1`, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		rec := Record{Kind: kind}
		if err := rows.Scan(&rec.ID, &rec.Data); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresRecordStore) Update(ctx context.Context, rec Record) error {
	affected, err := s.db.Exec(ctx,
		`UPDATE records SET data = $3, updated_at = now() WHERE id = $1 AND entry_type = $2`,
		rec.ID, string(rec.Kind), rec.Data,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *PostgresRecordStore) Delete(ctx context.Context, id string) error {
	affected, err := s.db.Exec(ctx, `DELETE FROM records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *PostgresRecordStore) CompareAndSwapStatus(ctx context.Context, id string, kind market.Kind, from, to string) (bool, error) {
	affected, err := s.db.Exec(ctx,
		`UPDATE records
		 SET data = jsonb_set(data, '{status}', to_jsonb($4::text)), updated_at = now()
		 WHERE id = $1 AND entry_type = $2 AND data->>'status' = $3`,
		id, string(kind), from, to,
	)
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
