package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/morsalin101/chat-app/domain"
)

// OTPHandlers handles OTP challenge HTTP requests
type OTPHandlers struct {
	otpSvc domain.OTPService
}

// NewOTPHandlers creates new OTP handlers
func NewOTPHandlers(otpSvc domain.OTPService) *OTPHandlers {
	return &OTPHandlers{otpSvc: otpSvc}
}

// OTPRequest represents a generate or resend request
type OTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// OTPVerifyRequest represents a verification request
type OTPVerifyRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required,len=6"`
}

// Generate handles OTP generation and dispatch. The code is never echoed in
// the response; it travels by SMS only.
func (h *OTPHandlers) Generate(c *gin.Context) {
	var req OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.otpSvc.Generate(c.Request.Context(), req.Phone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "OTP sent successfully",
		},
	})
}

// Verify handles OTP verification
func (h *OTPHandlers) Verify(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	valid, err := h.otpSvc.Verify(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No OTP for this phone number"})
		case errors.Is(err, domain.ErrOTPExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "OTP has expired. Please request a new one."})
		case errors.Is(err, domain.ErrOTPMaxAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Maximum attempts exceeded. Please request a new OTP."})
		case errors.Is(err, domain.ErrOTPInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "OTP verification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message":  "OTP verified successfully",
			"verified": valid,
		},
	})
}

// Resend restarts the challenge for a phone number
func (h *OTPHandlers) Resend(c *gin.Context) {
	var req OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.otpSvc.Resend(c.Request.Context(), req.Phone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resend OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "OTP resent successfully",
		},
	})
}
