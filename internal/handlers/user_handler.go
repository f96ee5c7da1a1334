package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pdfdesk/internal/models"
	"pdfdesk/internal/services"
)

type UserHandler struct {
	users services.UserService
}

func NewUserHandler(users services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// @Summary      Change password
// @Tags         Users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      models.ChangePasswordRequest  true  "Old and new password"
// @Success      200   {object}  handlers.Envelope
// @Failure      400   {object}  handlers.Envelope
// @Failure      401   {object}  handlers.Envelope
// @Failure      404   {object}  handlers.Envelope
// @Router       /auth/changePassword [post]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.users.ChangePassword(c.Request.Context(), currentUserID(c), req.Password, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Password changed successfully", nil)
}

// @Summary      List users
// @Description  Every user except the caller
// @Tags         Users
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  handlers.Envelope
// @Router       /auth/getAllUser [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "User data fetch successfully", gin.H{
		"users":      users,
		"totalUsers": len(users),
	})
}

// @Summary      User detail
// @Tags         Users
// @Security     BearerAuth
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  map[string]interface{}
// @Failure      404     {object}  handlers.Envelope
// @Router       /auth/userDetail/{userId} [get]
func (h *UserHandler) UserDetail(c *gin.Context) {
	user, err := h.users.GetUserDetail(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "User detail fetch successfully", gin.H{"user": user})
}

// @Summary      Own profile
// @Tags         Users
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  handlers.Envelope
// @Router       /auth/userProfile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.users.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Profile fetch successfully", gin.H{"user": user})
}

// @Summary      Update profile
// @Tags         Users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      models.UpdateProfileRequest  true  "Names"
// @Success      200   {object}  handlers.Envelope
// @Failure      400   {object}  handlers.Envelope
// @Failure      404   {object}  handlers.Envelope
// @Router       /auth/updateProfile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.users.UpdateProfile(c.Request.Context(), currentUserID(c), req.FirstName, req.LastName); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Profile update successfully", nil)
}
