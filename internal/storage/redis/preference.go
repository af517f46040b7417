package redis

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/internal/domain/preference"
)

const preferenceKeyPrefix = "jobflow:pref:"

// PreferenceStore keeps preferences as JSON values in Redis
type PreferenceStore struct {
	client goredis.UniversalClient
}

// NewPreferenceStore creates a Redis backed preference store
func NewPreferenceStore(client goredis.UniversalClient) (*PreferenceStore, error) {
	if client == nil {
		return nil, errors.New("redis preference store: client is required")
	}
	return &PreferenceStore{client: client}, nil
}

func preferenceKey(id domain.PreferenceID) string {
	return preferenceKeyPrefix + id.String()
}

// Save writes p, replacing any previous value
func (s *PreferenceStore) Save(ctx context.Context, p domain.Preference) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "encode preference")
	}
	if err := s.client.Set(ctx, preferenceKey(p.ID), raw, 0).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}

// Get loads a preference by id
func (s *PreferenceStore) Get(ctx context.Context, id domain.PreferenceID) (domain.Preference, error) {
	raw, err := s.client.Get(ctx, preferenceKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.Preference{}, errors.Wrapf(domain.ErrNotFound, "preference %s", id)
	}
	if err != nil {
		return domain.Preference{}, errors.Wrap(err, "redis get")
	}

	var p domain.Preference
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Preference{}, domain.Parse(err, "decode preference")
	}
	return p, nil
}

var _ preference.Store = (*PreferenceStore)(nil)
