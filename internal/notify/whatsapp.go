package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/pkg/logging"
)

const (
	defaultTwilioBaseURL = "https://api.twilio.com"
	whatsappMaxJobs      = 10
)

// TwilioConfig holds Twilio messaging credentials
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	BaseURL    string
	HTTPClient *http.Client
}

// Enabled reports whether credentials are present
func (c TwilioConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

// WhatsApp sends plain-text digests through the Twilio Messages API
type WhatsApp struct {
	cfg    TwilioConfig
	client *http.Client
	logger *logging.Logger
}

// NewWhatsApp builds a Twilio WhatsApp notifier
func NewWhatsApp(cfg TwilioConfig, logger *logging.Logger) (*WhatsApp, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("notify: twilio account sid, auth token and from number are required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultTwilioBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &WhatsApp{
		cfg:    cfg,
		client: client,
		logger: logger.Component("whatsapp"),
	}, nil
}

// Send posts the digest as one WhatsApp message to d.Contact
func (w *WhatsApp) Send(ctx context.Context, d domain.Digest) error {
	if strings.TrimSpace(d.Contact) == "" {
		return fmt.Errorf("notify: whatsapp contact is empty")
	}

	form := url.Values{}
	form.Set("To", whatsappAddress(d.Contact))
	form.Set("From", whatsappAddress(w.cfg.FromNumber))
	form.Set("Body", textDigest(d, whatsappMaxJobs))

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", w.cfg.BaseURL, url.PathEscape(w.cfg.AccountSID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "notify: build twilio request")
	}
	req.SetBasicAuth(w.cfg.AccountSID, w.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := w.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "notify: twilio request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Newf("notify: twilio returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	w.logger.Info("digest sent over whatsapp", "to", d.Contact, "jobs", len(d.Jobs))
	return nil
}

func whatsappAddress(number string) string {
	number = strings.TrimSpace(number)
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}

// textDigest renders at most limit jobs, one per line
func textDigest(d domain.Digest, limit int) string {
	var b strings.Builder
	b.WriteString(d.Subject)
	b.WriteString("\n")

	for i, j := range d.Jobs {
		if i == limit {
			fmt.Fprintf(&b, "\n...and %d more", len(d.Jobs)-limit)
			break
		}
		fmt.Fprintf(&b, "\n%d. %s", i+1, j.Title)
		if j.Company != "" {
			fmt.Fprintf(&b, " at %s", j.Company)
		}
		if j.ApplyURL != "" {
			fmt.Fprintf(&b, "\n%s", j.ApplyURL)
		}
	}
	return b.String()
}
