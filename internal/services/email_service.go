package services

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type OTPPurpose int

const (
	PurposeVerifyEmail OTPPurpose = iota
	PurposeResetPassword
)

type EmailService interface {
	SendOTPEmail(to, otp string, purpose OTPPurpose) error
}

// mailSender is satisfied by *gomail.Dialer.
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	FromEmail    string
	InlineImage  string
	DryRun       bool
}

type emailService struct {
	sender      mailSender
	from        string
	inlineImage string
	dryRun      bool
	log         *zap.Logger
}

func NewEmailService(cfg EmailConfig, log *zap.Logger) EmailService {
	if log == nil {
		log = zap.NewNop()
	}
	return &emailService{
		sender:      gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:        cfg.FromEmail,
		inlineImage: cfg.InlineImage,
		dryRun:      cfg.DryRun,
		log:         log,
	}
}

var otpTemplate = template.Must(template.New("otp").Parse(`<html>
  <body>
    <div style="text-align: center;">
      <h1 style="color: #4CAF50;">{{.Heading}}</h1>
      <p style="font-size: 18px;">{{.Lead}} <span style="color: #4CAF50; font-size: 20px; font-weight: 600;">{{.OTP}}</span></p>
      <p style="font-size: 14px; color: #777;">The code expires in 5 minutes.</p>
      {{if .ImageCID}}<img src="cid:{{.ImageCID}}" alt="Store Image" style="width: 100%; max-width: 500px; height: auto; border-radius: 20px;"/>{{end}}
    </div>
  </body>
</html>`))

type otpMail struct {
	Heading  string
	Lead     string
	OTP      string
	ImageCID string
}

func (s *emailService) SendOTPEmail(to, otp string, purpose OTPPurpose) error {
	subject := "Verify your e-mail"
	data := otpMail{
		Heading: "You are now registered on Store Management!",
		Lead:    "Thank you for choosing us. Please verify your OTP",
		OTP:     otp,
	}
	if purpose == PurposeResetPassword {
		subject = "Password reset code"
		data.Heading = "Password reset requested"
		data.Lead = "Use this OTP to reset your password"
	}

	if s.dryRun {
		s.log.Info("mail dry run", zap.String("to", to), zap.String("subject", subject), zap.String("otp", otp))
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	if s.inlineImage != "" {
		m.Embed(s.inlineImage)
		data.ImageCID = filepath.Base(s.inlineImage)
	}

	body, err := renderOTPBody(data)
	if err != nil {
		return err
	}
	m.SetBody("text/html", body)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}
	s.log.Debug("otp mail sent", zap.String("to", to))
	return nil
}

func renderOTPBody(data otpMail) (string, error) {
	var body bytes.Buffer
	if err := otpTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("render otp email: %w", err)
	}
	return body.String(), nil
}
