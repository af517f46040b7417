package domain

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// SavedSearchID identifies a saved search
type SavedSearchID = uuid.UUID

// Channel is how an alert digest is delivered
type Channel string

const (
	ChannelEmail    Channel = "EMAIL"
	ChannelWhatsApp Channel = "WHATSAPP"
	ChannelSheets   Channel = "SHEETS"
	ChannelQueue    Channel = "QUEUE"
)

// ParseChannel accepts channel names case-insensitively
func ParseChannel(s string) (Channel, error) {
	c := Channel(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case ChannelEmail, ChannelWhatsApp, ChannelSheets, ChannelQueue:
		return c, nil
	default:
		return "", errors.Newf("unknown channel %q", s)
	}
}

// Frequency is the alert cadence
type Frequency string

const (
	FrequencyDaily      Frequency = "DAILY"
	FrequencyEvery3Days Frequency = "EVERY_3_DAYS"
	FrequencyWeekly     Frequency = "WEEKLY"
)

// ParseFrequency accepts frequency names case-insensitively.
// Unknown values fall back to daily and report ok=false.
func ParseFrequency(s string) (Frequency, bool) {
	f := Frequency(strings.ToUpper(strings.TrimSpace(s)))
	switch f {
	case FrequencyDaily, FrequencyEvery3Days, FrequencyWeekly:
		return f, true
	default:
		return FrequencyDaily, false
	}
}

// Days is the minimum number of whole days between two digests
func (f Frequency) Days() int {
	switch f {
	case FrequencyEvery3Days:
		return 3
	case FrequencyWeekly:
		return 7
	default:
		return 1
	}
}

// SavedSearch subscribes a contact to new postings for a preference
type SavedSearch struct {
	ID           SavedSearchID `json:"id"`
	PreferenceID PreferenceID  `json:"preferenceId"`
	Contact      string        `json:"contact"`
	Channel      Channel       `json:"channel"`
	Frequency    Frequency     `json:"frequency"`
	CreatedAt    time.Time     `json:"createdAt"`
	LastSentAt   *time.Time    `json:"lastSentAt,omitempty"`
}

// Digest is one alert message
type Digest struct {
	Contact string
	Subject string
	Jobs    []JobView
}
