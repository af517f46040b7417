package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/pkg/logging"
)

// DefaultAlertsTab receives digest rows when no tab is given
const DefaultAlertsTab = "Alerts"

// SheetAppender appends rows to a spreadsheet range
type SheetAppender interface {
	EnsureTab(ctx context.Context, spreadsheetID, title string) error
	AppendValues(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error
}

// Sheets appends digest rows to the spreadsheet named by the contact.
// A contact of the form "<spreadsheet id>/<tab>" selects a tab.
type Sheets struct {
	client SheetAppender
	clock  func() time.Time
	logger *logging.Logger

	mu    sync.Mutex
	ready map[string]struct{}
}

// NewSheets builds a Google Sheets notifier
func NewSheets(client SheetAppender, logger *logging.Logger) (*Sheets, error) {
	if client == nil {
		return nil, fmt.Errorf("notify: sheets client is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Sheets{
		client: client,
		clock:  time.Now,
		logger: logger.Component("sheets"),
		ready:  make(map[string]struct{}),
	}, nil
}

// Send appends one row per job
func (s *Sheets) Send(ctx context.Context, d domain.Digest) error {
	spreadsheetID, tab := splitContact(d.Contact)
	if spreadsheetID == "" {
		return fmt.Errorf("notify: spreadsheet id is empty")
	}
	if len(d.Jobs) == 0 {
		return nil
	}

	if err := s.ensureTab(ctx, spreadsheetID, tab); err != nil {
		return err
	}

	sentAt := s.clock().UTC().Format(time.RFC3339)
	if err := s.client.AppendValues(ctx, spreadsheetID, tab+"!A1", DigestRows(sentAt, d)); err != nil {
		return errors.Wrapf(err, "notify: append to spreadsheet %s", spreadsheetID)
	}

	s.logger.Info("digest appended to sheet", "spreadsheet", spreadsheetID, "tab", tab, "rows", len(d.Jobs))
	return nil
}

func (s *Sheets) ensureTab(ctx context.Context, spreadsheetID, tab string) error {
	key := spreadsheetID + "/" + tab

	s.mu.Lock()
	_, ok := s.ready[key]
	s.mu.Unlock()
	if ok {
		return nil
	}

	if err := s.client.EnsureTab(ctx, spreadsheetID, tab); err != nil {
		return errors.Wrapf(err, "notify: prepare tab %q", tab)
	}

	s.mu.Lock()
	s.ready[key] = struct{}{}
	s.mu.Unlock()
	return nil
}

// DigestRows flattens a digest into sheet rows
func DigestRows(sentAt string, d domain.Digest) [][]interface{} {
	values := make([][]interface{}, len(d.Jobs))
	for i, j := range d.Jobs {
		posted := ""
		if j.PostedAt != nil {
			posted = j.PostedAt.UTC().Format(time.RFC3339)
		}
		values[i] = []interface{}{
			sentAt,
			d.Subject,
			j.Title,
			j.Company,
			j.Location,
			j.Source,
			j.ApplyURL,
			posted,
		}
	}
	return values
}

func splitContact(contact string) (spreadsheetID, tab string) {
	contact = strings.TrimSpace(contact)
	spreadsheetID, tab, _ = strings.Cut(contact, "/")
	if tab == "" {
		tab = DefaultAlertsTab
	}
	return spreadsheetID, tab
}
