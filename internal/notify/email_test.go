package notify

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobflow/pkg/logging"
)

func TestNewEmailRequiresHostAndFrom(t *testing.T) {
	_, err := NewEmail(SMTPConfig{Host: "smtp.example.com"}, logging.NewNop())
	assert.Error(t, err)
}

func TestNewEmailRejectsMalformedFrom(t *testing.T) {
	_, err := NewEmail(SMTPConfig{Host: "smtp.example.com", From: "not an address"}, nil)
	assert.Error(t, err)
}

func TestEmailSendUsesBareEnvelopeSender(t *testing.T) {
	n, err := NewEmail(SMTPConfig{Host: "smtp.example.com", From: "Job Alerts <alerts@example.com>"}, nil)
	require.NoError(t, err)

	var gotFrom, gotMsg string
	n.sendMail = func(_ string, _ smtp.Auth, from string, _ []string, msg []byte) error {
		gotFrom, gotMsg = from, string(msg)
		return nil
	}

	require.NoError(t, n.Send(context.Background(), sampleDigest("dev@example.com")))
	assert.Equal(t, "alerts@example.com", gotFrom)
	assert.Contains(t, gotMsg, "From: Job Alerts <alerts@example.com>\r\n")
}

func TestEmailSendRendersHTMLDigest(t *testing.T) {
	n, err := NewEmail(SMTPConfig{Host: "smtp.example.com", From: "alerts@example.com", Username: "u", Password: "p"}, logging.NewNop())
	require.NoError(t, err)

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
		gotAuth smtp.Auth
	)
	n.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg, gotAuth = addr, to, string(msg), a
		return nil
	}

	require.NoError(t, n.Send(context.Background(), sampleDigest("dev@example.com")))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"dev@example.com"}, gotTo)
	assert.NotNil(t, gotAuth)
	assert.Contains(t, gotMsg, "Subject: New Go Developer jobs for you!\r\n")
	assert.Contains(t, gotMsg, "Content-Type: text/html")
	assert.Contains(t, gotMsg, "Go &lt;Backend&gt; Engineer")
	assert.Contains(t, gotMsg, `href="https://example.com/jobs/1"`)
	assert.Contains(t, gotMsg, "01 Mar 2025")
	assert.Contains(t, gotMsg, "n/a")
}

func TestEmailSendWrapsTransportErrors(t *testing.T) {
	n, err := NewEmail(SMTPConfig{Host: "smtp.example.com", Port: 25, From: "alerts@example.com"}, nil)
	require.NoError(t, err)

	n.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err = n.Send(context.Background(), sampleDigest("dev@example.com"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestEmailSendRejectsEmptyContact(t *testing.T) {
	n, err := NewEmail(SMTPConfig{Host: "smtp.example.com", From: "alerts@example.com"}, nil)
	require.NoError(t, err)
	n.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("unexpected send")
		return nil
	}

	assert.Error(t, n.Send(context.Background(), sampleDigest(" ")))
}
