package services

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type captureSender struct {
	msgs []*gomail.Message
	err  error
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.msgs = append(c.msgs, m...)
	return c.err
}

func render(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestEmailService_SendOTPEmail(t *testing.T) {
	img := filepath.Join(t.TempDir(), "store.jpeg")
	require.NoError(t, os.WriteFile(img, []byte("jpeg"), 0o600))

	sender := &captureSender{}
	s := &emailService{sender: sender, from: "noreply@pdfdesk.test", inlineImage: img, log: zap.NewNop()}

	require.NoError(t, s.SendOTPEmail("ann@x.com", "123456", PurposeVerifyEmail))
	require.Len(t, sender.msgs, 1)

	m := sender.msgs[0]
	assert.Equal(t, []string{"ann@x.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"noreply@pdfdesk.test"}, m.GetHeader("From"))
	assert.Equal(t, []string{"Verify your e-mail"}, m.GetHeader("Subject"))
	assert.Contains(t, render(t, m), "Content-ID: <store.jpeg>")
}

func TestRenderOTPBody(t *testing.T) {
	body, err := renderOTPBody(otpMail{Heading: "Hi <there>", Lead: "Code:", OTP: "123456", ImageCID: "store.jpeg"})
	require.NoError(t, err)
	assert.Contains(t, body, ">123456</span>")
	assert.Contains(t, body, `src="cid:store.jpeg"`)
	assert.Contains(t, body, "Hi &lt;there&gt;")

	body, err = renderOTPBody(otpMail{OTP: "000001"})
	require.NoError(t, err)
	assert.NotContains(t, body, "<img")
}

func TestEmailService_ResetSubject(t *testing.T) {
	sender := &captureSender{}
	s := &emailService{sender: sender, from: "a@b.c", log: zap.NewNop()}

	require.NoError(t, s.SendOTPEmail("ann@x.com", "654321", PurposeResetPassword))
	assert.Equal(t, []string{"Password reset code"}, sender.msgs[0].GetHeader("Subject"))
	assert.NotContains(t, render(t, sender.msgs[0]), "Content-ID")
}

func TestEmailService_SendFailure(t *testing.T) {
	s := &emailService{sender: &captureSender{err: errors.New("smtp down")}, log: zap.NewNop()}
	err := s.SendOTPEmail("ann@x.com", "123456", PurposeVerifyEmail)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
}

func TestEmailService_DryRunSkipsTransport(t *testing.T) {
	sender := &captureSender{err: errors.New("must not be called")}
	s := &emailService{sender: sender, dryRun: true, log: zap.NewNop()}

	require.NoError(t, s.SendOTPEmail("ann@x.com", "123456", PurposeVerifyEmail))
	assert.Empty(t, sender.msgs)
}
