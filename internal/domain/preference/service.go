package preference

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/pkg/logging"
)

// Store persists preferences.
// Get returns an error marked domain.ErrNotFound for unknown ids.
type Store interface {
	Save(ctx context.Context, p domain.Preference) error
	Get(ctx context.Context, id domain.PreferenceID) (domain.Preference, error)
}

// Service manages search preferences
type Service struct {
	store  Store
	logger *logging.Logger
}

// NewService builds a preference Service
func NewService(store Store, logger *logging.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("preference.Service: store is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{store: store, logger: logger.Component("preference")}, nil
}

// Save stores p under a newly assigned id
func (s *Service) Save(ctx context.Context, p domain.Preference) (domain.Preference, error) {
	p.JobTitle = strings.TrimSpace(p.JobTitle)
	p.Location = strings.TrimSpace(p.Location)
	if p.JobTitle == "" {
		return domain.Preference{}, errors.New("preference: job title is required")
	}

	p.ID = uuid.New()
	if err := s.store.Save(ctx, p); err != nil {
		return domain.Preference{}, errors.Wrap(err, "save preference")
	}

	s.logger.Info("preference saved", "preference", p.ID.String(), "title", p.JobTitle)
	return p, nil
}

// Get loads a preference
func (s *Service) Get(ctx context.Context, id domain.PreferenceID) (domain.Preference, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Preference{}, err
	}
	return p, nil
}
