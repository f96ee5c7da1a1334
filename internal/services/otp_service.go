package services

import (
	"time"

	"pdfdesk/internal/models"
	"pdfdesk/internal/utils"
)

const (
	DefaultOTPTTL = 5 * time.Minute
	otpDigits     = 6
)

// OTPService issues and consumes the single active e-mail code of a user.
type OTPService struct {
	ttl      time.Duration
	now      func() time.Time
	generate func() (string, error)
}

func NewOTPService(ttl time.Duration) *OTPService {
	if ttl <= 0 {
		ttl = DefaultOTPTTL
	}
	return &OTPService{
		ttl:      ttl,
		now:      time.Now,
		generate: func() (string, error) { return utils.NewNumericCode(otpDigits) },
	}
}

// Generate returns a fresh code and its expiry.
func (s *OTPService) Generate() (string, time.Time, error) {
	code, err := s.generate()
	if err != nil {
		return "", time.Time{}, err
	}
	return code, s.now().Add(s.ttl), nil
}

// Issue replaces whatever code the user had with a new one.
func (s *OTPService) Issue(user *models.User) (string, error) {
	code, expiresAt, err := s.Generate()
	if err != nil {
		return "", err
	}
	user.SetOTP(code, expiresAt)
	return code, nil
}

// Verify consumes the code on success: the user becomes verified and both OTP
// fields are cleared. A failed attempt leaves the user untouched.
func (s *OTPService) Verify(user *models.User, entered string) bool {
	if user.OTP == nil || user.OTPExpiresAt == nil {
		return false
	}
	if entered != *user.OTP || !s.now().Before(*user.OTPExpiresAt) {
		return false
	}
	user.IsVerify = true
	user.ClearOTP()
	return true
}
