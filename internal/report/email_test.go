package report

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "gopkg.in/gomail.v2"

	"peakscan/pkg/config"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func newTestEmailSink(d dialer) *EmailSink {
	return &EmailSink{
		cfg: config.SMTPConfig{
			Host: "smtp.example.com",
			Port: 587,
			From: "screener@example.com",
			To:   "one@example.com, two@example.com",
		},
		dialer: d,
	}
}

func TestEmailSink_Publish(t *testing.T) {
	d := &fakeDialer{}
	sink := newTestEmailSink(d)

	require.NoError(t, sink.Publish(context.Background(), sampleResult()))
	require.Len(t, d.sent, 1)

	to := d.sent[0].GetHeader("To")
	assert.Equal(t, []string{"one@example.com", "two@example.com"}, to)
}

func TestEmailSink_DialFailure(t *testing.T) {
	sink := newTestEmailSink(&fakeDialer{err: fmt.Errorf("connection refused")})
	assert.Error(t, sink.Publish(context.Background(), sampleResult()))
}

func TestEmailSink_NoRecipients(t *testing.T) {
	sink := newTestEmailSink(&fakeDialer{})
	sink.cfg.To = " , "

	assert.Error(t, sink.Publish(context.Background(), sampleResult()))
}

func TestDigest(t *testing.T) {
	body := Digest(sampleResult())

	assert.Contains(t, body, "AAA")
	assert.Contains(t, body, "Attempted 3, succeeded 2, accepted 1")
	assert.NotContains(t, body, "No matches")
}

func TestDigest_EmptyResult(t *testing.T) {
	result := sampleResult()
	result.Records = nil
	result.Accepted = 0

	body := Digest(result)
	assert.Contains(t, body, "No matches today.")
}
