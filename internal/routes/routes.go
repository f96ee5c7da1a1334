package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pdfdesk/internal/handlers"
	"pdfdesk/internal/middleware"
)

type Options struct {
	BasePath  string
	UploadDir string
	Tokens    middleware.TokenParser
}

func SetupRoutes(
	r *gin.Engine,
	opts Options,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	documentHandler *handlers.DocumentHandler,
) *gin.Engine {
	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "message": "pdfdesk is running"})
	}
	r.GET("/", health)
	r.GET("/healthz", health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if opts.UploadDir != "" {
		r.Static("/uploads", opts.UploadDir)
	}

	api := r.Group("/" + strings.Trim(opts.BasePath, "/"))
	requireAuth := middleware.AuthMiddleware(opts.Tokens)

	// ---- auth (public)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/verifyOtp", authHandler.VerifyOTP)
		auth.POST("/resendOtp", authHandler.ResendOTP)
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgotPassword", authHandler.ForgotPassword)
		auth.POST("/verifyForgotPasswordOtp", authHandler.VerifyForgotPasswordOTP)
		auth.POST("/createPassword", authHandler.CreatePassword)
	}

	// ---- auth (bearer)
	account := auth.Group("", requireAuth)
	{
		account.POST("/changePassword", userHandler.ChangePassword)
		account.GET("/getAllUser", userHandler.ListUsers)
		account.GET("/userDetail/:userId", userHandler.UserDetail)
		account.GET("/userProfile", userHandler.Profile)
		account.PUT("/updateProfile", userHandler.UpdateProfile)
	}

	docs := api.Group("/document", requireAuth)
	{
		docs.POST("/document", documentHandler.Upload)
		docs.GET("/document", documentHandler.List)
		docs.GET("/document/generate", documentHandler.Generate)
	}

	return r
}
