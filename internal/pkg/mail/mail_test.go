package mail

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingSender struct {
	sent []*gomail.Message
	err  error
}

func (r *recordingSender) DialAndSend(m ...*gomail.Message) error {
	r.sent = append(r.sent, m...)
	return r.err
}

func TestSendPasswordResetEmail(t *testing.T) {
	sender := &recordingSender{}
	svc := NewServiceWithSender(SMTPConfig{From: "noreply@campus.edu.tr", FrontendURL: "http://app.test/"}, sender, zerolog.Nop())

	require.NoError(t, svc.SendPasswordResetEmail("ayse@campus.edu.tr", "tok-123"))
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, []string{"ayse@campus.edu.tr"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"noreply@campus.edu.tr"}, msg.GetHeader("From"))
	id := msg.GetHeader("Message-ID")
	require.Len(t, id, 1)
	assert.True(t, strings.HasSuffix(id[0], "@campus.edu.tr>"))

	var body bytes.Buffer
	_, err := msg.WriteTo(&body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "http://app.test/reset-password?token=tok-123")
}

func TestSend_PropagatesFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("dial tcp: refused")}
	svc := NewServiceWithSender(SMTPConfig{From: "noreply@campus.edu.tr"}, sender, zerolog.Nop())

	assert.Error(t, svc.SendWelcomeEmail("a@b.c", "Ayşe"))
}

func TestSend_NoHostIsNoop(t *testing.T) {
	svc := NewService(SMTPConfig{}, zerolog.Nop())
	assert.NoError(t, svc.SendWelcomeEmail("a@b.c", "Ayşe"))
	assert.Equal(t, "http://localhost:5173/reset-password?token=x", svc.ResetLink("x"))
}
