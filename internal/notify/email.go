package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/pkg/logging"
)

const dateLayout = "02 Jan 2006"

var digestTemplate = template.Must(template.New("digest").Funcs(template.FuncMap{
	"posted": postedLabel,
}).Parse(`<html><body style="font-family:Arial,sans-serif">
<h2>{{.Subject}}</h2>
<p>{{len .Jobs}} job(s) matched your saved search.</p>
<table cellpadding="6" style="border-collapse:collapse">
<tr><th align="left">Title</th><th align="left">Company</th><th align="left">Location</th><th align="left">Posted</th></tr>
{{range .Jobs}}<tr>
<td><a href="{{.ApplyURL}}">{{.Title}}</a></td>
<td>{{.Company}}</td>
<td>{{.Location}}</td>
<td>{{posted .PostedAt}}</td>
</tr>
{{end}}</table>
</body></html>`))

// SMTPConfig holds outgoing mail settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether a mail relay is configured
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Email sends HTML digests over SMTP
type Email struct {
	cfg      SMTPConfig
	sender   string
	sendMail sendMailFunc
	logger   *logging.Logger
}

// NewEmail builds an SMTP notifier
func NewEmail(cfg SMTPConfig, logger *logging.Logger) (*Email, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("notify: smtp host and from address are required")
	}
	from, err := mail.ParseAddress(cfg.From)
	if err != nil {
		return nil, errors.Wrapf(err, "notify: invalid from address %q", cfg.From)
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Email{
		cfg:      cfg,
		sender:   from.Address,
		sendMail: smtp.SendMail,
		logger:   logger.Component("email"),
	}, nil
}

// Send renders the digest and mails it to d.Contact
func (e *Email) Send(ctx context.Context, d domain.Digest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(d.Contact) == "" {
		return fmt.Errorf("notify: email contact is empty")
	}

	msg, err := e.compose(d)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if e.cfg.Username != "" {
		auth = smtp.PlainAuth("", e.cfg.Username, e.cfg.Password, e.cfg.Host)
	}

	addr := net.JoinHostPort(e.cfg.Host, fmt.Sprint(e.cfg.Port))
	if err := e.sendMail(addr, auth, e.sender, []string{d.Contact}, msg); err != nil {
		return errors.Wrapf(err, "notify: send email to %s", d.Contact)
	}

	e.logger.Info("digest emailed", "to", d.Contact, "jobs", len(d.Jobs))
	return nil
}

func (e *Email) compose(d domain.Digest) ([]byte, error) {
	var body bytes.Buffer
	if err := digestTemplate.Execute(&body, d); err != nil {
		return nil, errors.Wrap(err, "notify: render digest")
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", e.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", d.Contact)
	fmt.Fprintf(&msg, "Subject: %s\r\n", d.Subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}

func postedLabel(t *time.Time) string {
	if t == nil {
		return "n/a"
	}
	return t.Format(dateLayout)
}
