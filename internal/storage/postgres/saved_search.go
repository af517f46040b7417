package postgres

import (
	"context"
	"embed"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/internal/domain/alert"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies the bundled schema files in name order
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return errors.Wrap(err, "read migrations")
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		sql, err := migrations.ReadFile("migrations/" + e.Name())
		if err != nil {
			return errors.Wrapf(err, "read %s", e.Name())
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return errors.Wrapf(err, "apply %s", e.Name())
		}
	}
	return nil
}

// SavedSearchStore persists saved searches in Postgres
type SavedSearchStore struct {
	pool *pgxpool.Pool
}

// NewSavedSearchStore creates a Postgres backed saved-search store
func NewSavedSearchStore(pool *pgxpool.Pool) (*SavedSearchStore, error) {
	if pool == nil {
		return nil, errors.New("postgres saved search store: pool is required")
	}
	return &SavedSearchStore{pool: pool}, nil
}

const savedSearchColumns = `id, preference_id, contact, channel, frequency, created_at, last_sent_at`

// Save inserts or updates a saved search
func (s *SavedSearchStore) Save(ctx context.Context, saved domain.SavedSearch) error {
	const query = `
		INSERT INTO saved_searches (` + savedSearchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			preference_id = EXCLUDED.preference_id,
			contact       = EXCLUDED.contact,
			channel       = EXCLUDED.channel,
			frequency     = EXCLUDED.frequency,
			last_sent_at  = EXCLUDED.last_sent_at`

	_, err := s.pool.Exec(ctx, query,
		saved.ID,
		saved.PreferenceID,
		saved.Contact,
		string(saved.Channel),
		string(saved.Frequency),
		saved.CreatedAt,
		saved.LastSentAt,
	)
	if err != nil {
		return errors.Wrap(err, "upsert saved search")
	}
	return nil
}

// Get loads a saved search by id
func (s *SavedSearchStore) Get(ctx context.Context, id domain.SavedSearchID) (domain.SavedSearch, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+savedSearchColumns+` FROM saved_searches WHERE id = $1`, id)

	saved, err := scanSavedSearch(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.SavedSearch{}, errors.Wrapf(domain.ErrNotFound, "saved search %s", id)
	}
	if err != nil {
		return domain.SavedSearch{}, errors.Wrap(err, "select saved search")
	}
	return saved, nil
}

// List returns saved searches oldest first
func (s *SavedSearchStore) List(ctx context.Context) ([]domain.SavedSearch, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+savedSearchColumns+` FROM saved_searches ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.Wrap(err, "list saved searches")
	}
	defer rows.Close()

	var out []domain.SavedSearch
	for rows.Next() {
		saved, err := scanSavedSearch(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan saved search")
		}
		out = append(out, saved)
	}
	return out, errors.Wrap(rows.Err(), "iterate saved searches")
}

// Delete removes a saved search
func (s *SavedSearchStore) Delete(ctx context.Context, id domain.SavedSearchID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM saved_searches WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete saved search")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(domain.ErrNotFound, "saved search %s", id)
	}
	return nil
}

func scanSavedSearch(row pgx.Row) (domain.SavedSearch, error) {
	var (
		saved     domain.SavedSearch
		channel   string
		frequency string
	)
	if err := row.Scan(
		&saved.ID,
		&saved.PreferenceID,
		&saved.Contact,
		&channel,
		&frequency,
		&saved.CreatedAt,
		&saved.LastSentAt,
	); err != nil {
		return domain.SavedSearch{}, err
	}
	saved.Channel = domain.Channel(channel)
	saved.Frequency, _ = domain.ParseFrequency(frequency)
	return saved, nil
}

var _ alert.Store = (*SavedSearchStore)(nil)
