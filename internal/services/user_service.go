package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"pdfdesk/internal/models"
	"pdfdesk/internal/repositories"
)

type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.PublicUser, error)
	VerifyOTP(ctx context.Context, email, code string) error
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ForgotPassword(ctx context.Context, email string) error
	VerifyForgotPasswordOTP(ctx context.Context, email, code string) error
	CreatePassword(ctx context.Context, email, password string) error
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	GetProfile(ctx context.Context, userID string) (*models.PublicUser, error)
	UpdateProfile(ctx context.Context, userID, firstName, lastName string) error
	ListUsers(ctx context.Context, excludingID string) ([]models.PublicUser, error)
	GetUserDetail(ctx context.Context, userID string) (*models.PublicUser, error)
}

// LoginResult carries either a session (User and Token) or, for an
// unverified account, VerificationRequired with a fresh OTP already mailed.
type LoginResult struct {
	User                 *models.PublicUser
	Token                string
	VerificationRequired bool
}

type userService struct {
	repo  repositories.UserRepository
	auth  AuthService
	otp   *OTPService
	email EmailService
	log   *zap.Logger
}

func NewUserService(repo repositories.UserRepository, auth AuthService, otp *OTPService, email EmailService, log *zap.Logger) UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &userService{repo: repo, auth: auth, otp: otp, email: email, log: log}
}

func (s *userService) Register(ctx context.Context, req models.RegisterRequest) (*models.PublicUser, error) {
	email := normalizeEmail(req.Email)
	role, err := validateRegister(req.FirstName, req.LastName, email, req.Password, req.UserRole)
	if err != nil {
		return nil, err
	}

	_, err = s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, conflictError("Email already exists", nil)
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, internalError(err)
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, internalError(err)
	}
	user := &models.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: hash,
		UserRole:     role,
	}
	code, err := s.otp.Issue(user)
	if err != nil {
		return nil, internalError(err)
	}

	// The record is only saved once the code has actually been delivered.
	if err := s.email.SendOTPEmail(email, code, PurposeVerifyEmail); err != nil {
		s.log.Warn("register: otp mail failed", zap.String("email", email), zap.Error(err))
		return nil, dependencyError("Failed to send OTP email", err)
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, conflictError("Email already exists", err)
		}
		return nil, internalError(err)
	}
	s.log.Info("user registered", zap.String("user_id", user.ID), zap.String("role", user.UserRole))
	pub := user.Public()
	return &pub, nil
}

func (s *userService) VerifyOTP(ctx context.Context, email, code string) error {
	return s.verifyOTP(ctx, email, code, "Email and OTP are required.")
}

// VerifyForgotPasswordOTP shares the verification path, so it also marks the
// account as verified.
func (s *userService) VerifyForgotPasswordOTP(ctx context.Context, email, code string) error {
	return s.verifyOTP(ctx, email, code, "Email and OTP cannot be empty")
}

func (s *userService) verifyOTP(ctx context.Context, email, code, missingMsg string) error {
	email = normalizeEmail(email)
	if err := requireAll(missingMsg, email, code); err != nil {
		return err
	}
	user, err := s.userByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !s.otp.Verify(user, code) {
		return validationError("Invalid or expired OTP.")
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return internalError(err)
	}
	return nil
}

// ResendOTP persists the new code before mailing it; a mail failure leaves
// the new code stored.
func (s *userService) ResendOTP(ctx context.Context, email string) error {
	return s.reissueOTP(ctx, email, "Email cannot be empty", PurposeVerifyEmail)
}

func (s *userService) ForgotPassword(ctx context.Context, email string) error {
	return s.reissueOTP(ctx, email, "Email cannot be empty", PurposeResetPassword)
}

func (s *userService) reissueOTP(ctx context.Context, email, missingMsg string, purpose OTPPurpose) error {
	email = normalizeEmail(email)
	if err := requireAll(missingMsg, email); err != nil {
		return err
	}
	user, err := s.userByEmail(ctx, email)
	if err != nil {
		return err
	}
	code, err := s.otp.Issue(user)
	if err != nil {
		return internalError(err)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return internalError(err)
	}
	if err := s.email.SendOTPEmail(user.Email, code, purpose); err != nil {
		s.log.Warn("otp mail failed", zap.String("user_id", user.ID), zap.Error(err))
		return dependencyError("Failed to send OTP email", err)
	}
	return nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if err := requireAll("All fields are required", email, password); err != nil {
		return nil, err
	}
	user, err := s.userByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !s.auth.CheckPassword(password, user.PasswordHash) {
		return nil, authError("Invalid credentials")
	}

	if !user.IsVerify {
		code, err := s.otp.Issue(user)
		if err != nil {
			return nil, internalError(err)
		}
		if err := s.repo.Update(ctx, user); err != nil {
			return nil, internalError(err)
		}
		if err := s.email.SendOTPEmail(user.Email, code, PurposeVerifyEmail); err != nil {
			return nil, internalError(err)
		}
		s.log.Info("login: verification required", zap.String("user_id", user.ID))
		return &LoginResult{VerificationRequired: true}, nil
	}

	token, err := s.auth.IssueToken(user)
	if err != nil {
		return nil, internalError(err)
	}
	pub := user.Public()
	return &LoginResult{User: &pub, Token: token}, nil
}

// CreatePassword is the post-reset path; it does not ask for the old password.
func (s *userService) CreatePassword(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if err := requireAll("Password and email cannot be empty", email, password); err != nil {
		return err
	}
	user, err := s.userByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.replacePassword(ctx, user, password)
}

func (s *userService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if err := requireAll("Password and new password cannot be empty", oldPassword, newPassword); err != nil {
		return err
	}
	user, err := s.userByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.auth.CheckPassword(oldPassword, user.PasswordHash) {
		return authError("Old password is incorrect")
	}
	return s.replacePassword(ctx, user, newPassword)
}

func (s *userService) replacePassword(ctx context.Context, user *models.User, plain string) error {
	hash, err := s.auth.HashPassword(plain)
	if err != nil {
		return internalError(err)
	}
	user.PasswordHash = hash
	if err := s.repo.Update(ctx, user); err != nil {
		return internalError(err)
	}
	return nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*models.PublicUser, error) {
	user, err := s.userByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID, firstName, lastName string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if errors.Is(err, repositories.ErrInvalidID) {
		return validationError("Invalid user ID")
	}
	if err := requireAll("First name and last name cannot be empty", firstName, lastName); err != nil {
		return err
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return notFoundError("User not found", err)
	}
	if err != nil {
		return internalError(err)
	}
	user.FirstName = strings.TrimSpace(firstName)
	user.LastName = strings.TrimSpace(lastName)
	if err := s.repo.Update(ctx, user); err != nil {
		return internalError(err)
	}
	return nil
}

func (s *userService) ListUsers(ctx context.Context, excludingID string) ([]models.PublicUser, error) {
	users, err := s.repo.ListExcept(ctx, excludingID)
	if err != nil {
		return nil, internalError(err)
	}
	res := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		if u.ID == excludingID {
			continue
		}
		res = append(res, u.Public())
	}
	return res, nil
}

func (s *userService) GetUserDetail(ctx context.Context, userID string) (*models.PublicUser, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
		return nil, notFoundError("User not found with ID: "+userID, err)
	}
	if err != nil {
		return nil, internalError(err)
	}
	pub := user.Public()
	return &pub, nil
}

func (s *userService) userByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, notFoundError("User not found", err)
	}
	if err != nil {
		return nil, internalError(err)
	}
	return user, nil
}

// userByID treats a malformed id the same as a missing user.
func (s *userService) userByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrInvalidID) {
		return nil, notFoundError("User not found", err)
	}
	if err != nil {
		return nil, internalError(err)
	}
	return user, nil
}
