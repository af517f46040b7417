package alert

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/internal/domain/job"
	"github.com/honeycarbs/jobflow/internal/domain/search"
	"github.com/honeycarbs/jobflow/pkg/logging"
)

const (
	firstDigestSize = 10
	defaultSubject  = "Your Job Alerts"
)

// Option configures Service
type Option func(*Service)

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithNotifier registers the notifier for a channel
func WithNotifier(channel domain.Channel, n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifiers[channel] = n
		}
	}
}

// Service manages saved searches and sends their digests
type Service struct {
	store     Store
	prefs     PreferenceLookup
	searcher  Searcher
	notifiers map[domain.Channel]Notifier
	clock     func() time.Time
	logger    *logging.Logger
}

// Report summarises one ProcessAlerts run
type Report struct {
	Checked int `json:"checked"`
	Sent    int `json:"sent"`
	Removed int `json:"removed"`
	Failed  int `json:"failed"`
}

// NewService builds the alert Service
func NewService(store Store, prefs PreferenceLookup, searcher Searcher, opts ...Option) (*Service, error) {
	if store == nil || prefs == nil || searcher == nil {
		return nil, fmt.Errorf("alert.Service: store, preferences and searcher are required")
	}

	s := &Service{
		store:     store,
		prefs:     prefs,
		searcher:  searcher,
		notifiers: make(map[domain.Channel]Notifier),
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.logger = s.logger.Component("alerts")
	return s, nil
}

// Create saves a new subscription for an existing preference
func (s *Service) Create(ctx context.Context, prefID domain.PreferenceID, contact, channel, frequency string) (domain.SavedSearch, error) {
	if _, err := s.prefs.Get(ctx, prefID); err != nil {
		return domain.SavedSearch{}, err
	}

	ch, err := domain.ParseChannel(channel)
	if err != nil {
		return domain.SavedSearch{}, err
	}
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return domain.SavedSearch{}, errors.New("alert: contact is required")
	}

	saved := domain.SavedSearch{
		ID:           uuid.New(),
		PreferenceID: prefID,
		Contact:      contact,
		Channel:      ch,
		Frequency:    s.parseFrequency(frequency),
		CreatedAt:    s.clock().UTC(),
	}
	if err := s.store.Save(ctx, saved); err != nil {
		return domain.SavedSearch{}, errors.Wrap(err, "save saved search")
	}

	s.logger.Info("saved search created", "id", saved.ID.String(), "channel", saved.Channel, "frequency", saved.Frequency)
	return saved, nil
}

// Update changes contact, channel or frequency; blank values keep the current one
func (s *Service) Update(ctx context.Context, id domain.SavedSearchID, contact, channel, frequency string) (domain.SavedSearch, error) {
	saved, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.SavedSearch{}, err
	}

	if c := strings.TrimSpace(contact); c != "" {
		saved.Contact = c
	}
	if strings.TrimSpace(channel) != "" {
		ch, err := domain.ParseChannel(channel)
		if err != nil {
			return domain.SavedSearch{}, err
		}
		saved.Channel = ch
	}
	if strings.TrimSpace(frequency) != "" {
		saved.Frequency = s.parseFrequency(frequency)
	}

	if err := s.store.Save(ctx, saved); err != nil {
		return domain.SavedSearch{}, errors.Wrap(err, "update saved search")
	}
	return saved, nil
}

// Delete removes a saved search
func (s *Service) Delete(ctx context.Context, id domain.SavedSearchID) error {
	return s.store.Delete(ctx, id)
}

// List returns every saved search
func (s *Service) List(ctx context.Context) ([]domain.SavedSearch, error) {
	return s.store.List(ctx)
}

// ShouldSendNow reports whether a digest is due at now
func ShouldSendNow(saved domain.SavedSearch, now time.Time) bool {
	if saved.LastSentAt == nil {
		return true
	}
	days := int(now.Sub(*saved.LastSentAt) / (24 * time.Hour))
	return days >= saved.Frequency.Days()
}

// ProcessAlerts sends every due digest. Failures are logged per saved search
// and never stop the run; only failing to list saved searches is returned.
func (s *Service) ProcessAlerts(ctx context.Context) (Report, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return Report{}, errors.Wrap(err, "list saved searches")
	}

	var report Report
	for _, saved := range all {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		now := s.clock()
		if !ShouldSendNow(saved, now) {
			continue
		}
		report.Checked++

		log := s.logger.With("saved_search", saved.ID.String(), "channel", saved.Channel)
		sent, removed, err := s.process(ctx, saved, now)
		switch {
		case err != nil:
			report.Failed++
			log.Error("alert failed", "err", err)
		case removed:
			report.Removed++
			log.Warn("preference gone, saved search removed")
		case sent:
			report.Sent++
		}
	}

	s.logger.Info("alerts processed",
		"checked", report.Checked, "sent", report.Sent, "removed", report.Removed, "failed", report.Failed)
	return report, nil
}

func (s *Service) process(ctx context.Context, saved domain.SavedSearch, now time.Time) (sent, removed bool, err error) {
	pref, err := s.prefs.Get(ctx, saved.PreferenceID)
	if errors.Is(err, domain.ErrNotFound) {
		if err := s.store.Delete(ctx, saved.ID); err != nil {
			return false, false, errors.Wrap(err, "delete orphaned saved search")
		}
		return false, true, nil
	}
	if err != nil {
		return false, false, err
	}

	page, err := s.searcher.Search(ctx, search.Params{
		PreferenceID: saved.PreferenceID,
		Page:         0,
		Size:         job.PoolCap,
		Source:       search.SourceAll,
		SortBy:       search.SortRecency,
	})
	if err != nil {
		return false, false, errors.Wrap(err, "search")
	}

	fresh := selectNew(page.Items, saved.LastSentAt)
	if len(fresh) == 0 {
		return false, false, nil
	}

	notifier, ok := s.notifiers[saved.Channel]
	if !ok {
		return false, false, errors.Newf("no notifier for channel %s", saved.Channel)
	}

	digest := domain.Digest{Contact: saved.Contact, Subject: subjectFor(pref), Jobs: fresh}
	if err := notifier.Send(ctx, digest); err != nil {
		return false, false, errors.Wrap(err, "send digest")
	}

	sentAt := now.UTC()
	saved.LastSentAt = &sentAt
	if err := s.store.Save(ctx, saved); err != nil {
		return false, false, errors.Wrap(err, "record last sent")
	}
	return true, false, nil
}

// selectNew picks the first digest's top postings, or postings newer than the
// previous digest. Undated postings are never new after the first digest.
func selectNew(items []domain.JobView, lastSentAt *time.Time) []domain.JobView {
	if lastSentAt == nil {
		return items[:min(len(items), firstDigestSize)]
	}
	var out []domain.JobView
	for _, it := range items {
		if it.PostedAt != nil && it.PostedAt.After(*lastSentAt) {
			out = append(out, it)
		}
	}
	return out
}

func subjectFor(p domain.Preference) string {
	if t := strings.TrimSpace(p.JobTitle); t != "" {
		return fmt.Sprintf("New %s jobs for you!", t)
	}
	return defaultSubject
}

func (s *Service) parseFrequency(v string) domain.Frequency {
	f, ok := domain.ParseFrequency(v)
	if !ok && strings.TrimSpace(v) != "" {
		s.logger.Warn("unknown frequency, using daily", "frequency", v)
	}
	return f
}
