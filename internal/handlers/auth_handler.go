package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pdfdesk/internal/models"
	"pdfdesk/internal/services"
)

type AuthHandler struct {
	users services.UserService
}

func NewAuthHandler(users services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// @Summary      Register
// @Description  Creates an unverified account and mails a 6 digit OTP
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.RegisterRequest  true  "Account data"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  handlers.Envelope
// @Failure      500   {object}  handlers.Envelope
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "User registered successfully. Verify OTP sent to your email.", gin.H{"user": user})
}

// @Summary      Verify OTP
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.OTPRequest  true  "E-mail and code"
// @Success      200   {object}  handlers.Envelope
// @Failure      400   {object}  handlers.Envelope
// @Failure      404   {object}  handlers.Envelope
// @Router       /auth/verifyOtp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.OTPRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.users.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "OTP verified successfully.", nil)
}

// @Summary      Resend OTP
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.EmailRequest  true  "E-mail"
// @Success      200   {object}  handlers.Envelope
// @Failure      404   {object}  handlers.Envelope
// @Failure      500   {object}  handlers.Envelope
// @Router       /auth/resendOtp [post]
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req models.EmailRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.users.ResendOTP(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Resend OTP successfully", nil)
}

// @Summary      Login
// @Description  Returns a 30 day bearer token. Unverified accounts get a fresh OTP and a 400 instead.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.LoginRequest  true  "Credentials"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  handlers.Envelope
// @Failure      404   {object}  handlers.Envelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if res.VerificationRequired {
		respond(c, http.StatusBadRequest,
			"User is not verified. A new OTP has been sent to your email for verification.", nil)
		return
	}
	respond(c, http.StatusOK, "User logged in successfully", gin.H{
		"user":  res.User,
		"token": res.Token,
	})
}

// @Summary      Forgot password
// @Description  Mails a reset OTP valid for 5 minutes
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.EmailRequest  true  "E-mail"
// @Success      200   {object}  handlers.Envelope
// @Failure      400   {object}  handlers.Envelope
// @Failure      404   {object}  handlers.Envelope
// @Failure      500   {object}  handlers.Envelope
// @Router       /auth/forgotPassword [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.EmailRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.users.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "OTP has been sent to your email. Please verify within 5 minutes.", nil)
}

// @Summary      Verify forgot-password OTP
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.OTPRequest  true  "E-mail and code"
// @Success      200   {object}  handlers.Envelope
// @Failure      400   {object}  handlers.Envelope
// @Failure      404   {object}  handlers.Envelope
// @Router       /auth/verifyForgotPasswordOtp [post]
func (h *AuthHandler) VerifyForgotPasswordOTP(c *gin.Context) {
	var req models.OTPRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.users.VerifyForgotPasswordOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Forgot password OTP verified", nil)
}

// @Summary      Create password
// @Description  Sets a new password after a verified reset OTP
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.CreatePasswordRequest  true  "E-mail and new password"
// @Success      200   {object}  handlers.Envelope
// @Failure      400   {object}  handlers.Envelope
// @Failure      404   {object}  handlers.Envelope
// @Router       /auth/createPassword [post]
func (h *AuthHandler) CreatePassword(c *gin.Context) {
	var req models.CreatePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.users.CreatePassword(c.Request.Context(), req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Create password successfully", nil)
}
