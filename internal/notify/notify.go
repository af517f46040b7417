// Package notify delivers alert digests over email, WhatsApp, Google Sheets and RabbitMQ.
package notify

import "github.com/honeycarbs/jobflow/internal/domain/alert"

var (
	_ alert.Notifier = (*Email)(nil)
	_ alert.Notifier = (*WhatsApp)(nil)
	_ alert.Notifier = (*Sheets)(nil)
	_ alert.Notifier = (*Queue)(nil)
)
