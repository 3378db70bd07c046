package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/morsalin101/chat-app/internal/http/handlers"
)

// BuildRouter wires the authentication surface.
func BuildRouter(ah *handlers.AuthHandlers, oh *handlers.OTPHandlers, authmw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/signup", ah.Signup)
	auth.POST("/signin", ah.Login)
	auth.POST("/signup/otp", ah.SignupOTP)
	auth.POST("/login/otp", ah.LoginOTP)
	auth.POST("/refresh", ah.Refresh)
	auth.POST("/otp/generate", oh.Generate)
	auth.POST("/otp/verify", oh.Verify)
	auth.POST("/otp/resend", oh.Resend)

	v := r.Group("/auth").Use(authmw)
	v.GET("/me", ah.Me)
	v.POST("/otp/link", ah.LinkPhone)

	return r
}
