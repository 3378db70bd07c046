package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/morsalin101/chat-app/domain"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// SignupRequest represents a password signup request
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
}

// LoginRequest represents a password login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// OtpSignupRequest represents an OTP signup request
type OtpSignupRequest struct {
	Phone    string `json:"phone" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Code     string `json:"code" binding:"required,len=6"`
}

// OtpLoginRequest represents an OTP login request
type OtpLoginRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required,len=6"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LinkPhoneRequest represents a phone linking request
type LinkPhoneRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required,len=6"`
}

// Signup handles password-based registration
func (h *AuthHandlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.SignupWithPassword(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Account already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign up"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"token":                     result.Token,
			"account_id":                result.AccountID,
			"requires_otp_verification": result.RequiresOtpVerification,
		},
	})
}

// Login handles password-based login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.LoginWithPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": authResultBody(result)})
}

// SignupOTP handles phone-based registration
func (h *AuthHandlers) SignupOTP(c *gin.Context) {
	var req OtpSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.SignupWithOTP(c.Request.Context(), req.Phone, req.FullName, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Account already exists for this phone number"})
		case isOTPRejection(err):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired OTP"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign up"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": authResultBody(result)})
}

// LoginOTP handles phone-based login
func (h *AuthHandlers) LoginOTP(c *gin.Context) {
	var req OtpLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.LoginWithOTP(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No account for this phone number. Please sign up first."})
		case isOTPRejection(err):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired OTP"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": authResultBody(result)})
}

// Refresh handles token refresh
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token": result.AccessToken,
			"token_type":   "Bearer",
			"expires_in":   result.ExpiresIn,
		},
	})
}

// Me returns the authenticated account (requires authentication)
func (h *AuthHandlers) Me(c *gin.Context) {
	account := accountFromContext(c)
	if account == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"id":              account.ID,
			"email":           account.Email,
			"phone":           account.Phone,
			"full_name":       account.FullName,
			"profile_picture": account.ProfilePicture,
			"is_online":       account.IsOnline,
			"otp_verified":    account.OtpVerified,
			"created_at":      account.CreatedAt,
			"updated_at":      account.UpdatedAt,
		},
	})
}

// LinkPhone attaches an OTP-verified phone number to the authenticated account
func (h *AuthHandlers) LinkPhone(c *gin.Context) {
	account := accountFromContext(c)
	if account == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found in context"})
		return
	}

	var req LinkPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.authSvc.LinkPhone(c.Request.Context(), account.ID, req.Phone, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Phone number already registered to another account"})
		case isOTPRejection(err):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired OTP"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link phone number"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Phone number verified and linked successfully",
		},
	})
}

func authResultBody(result *domain.AuthResult) gin.H {
	return gin.H{
		"access_token":     result.AccessToken,
		"refresh_token":    result.RefreshToken,
		"token_type":       "Bearer",
		"expires_in":       result.ExpiresIn,
		"profile_complete": result.ProfileComplete,
	}
}

// isOTPRejection reports whether the error is any OTP verification failure.
// The facade coalesces these to 401 on auth flows; the specific reason stays
// in the logs.
func isOTPRejection(err error) bool {
	return errors.Is(err, domain.ErrOTPNotFound) ||
		errors.Is(err, domain.ErrOTPExpired) ||
		errors.Is(err, domain.ErrOTPInvalid) ||
		errors.Is(err, domain.ErrOTPMaxAttempts)
}

// accountFromContext reads the account set by the auth middleware.
func accountFromContext(c *gin.Context) *domain.Account {
	v, exists := c.Get("account")
	if !exists {
		return nil
	}
	account, ok := v.(*domain.Account)
	if !ok {
		return nil
	}
	return account
}
