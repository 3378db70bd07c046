package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/morsalin101/chat-app/domain"
	"github.com/morsalin101/chat-app/internal/config"
	httpx "github.com/morsalin101/chat-app/internal/http"
	"github.com/morsalin101/chat-app/internal/http/handlers"
	"github.com/morsalin101/chat-app/internal/http/middleware"
	"github.com/morsalin101/chat-app/internal/infrastructure/auth"
	"github.com/morsalin101/chat-app/internal/infrastructure/database"
	"github.com/morsalin101/chat-app/internal/infrastructure/notifications"
	"github.com/morsalin101/chat-app/internal/infrastructure/repositories"
	"github.com/morsalin101/chat-app/internal/services"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	notificationSvc := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)

	// Repositories
	accountRepo := repositories.NewAccountRepository(gdb)
	challengeRepo := repositories.NewChallengeRepository(rdb)

	// Services
	otpSvc := services.NewOTPService(challengeRepo, accountRepo, notificationSvc, services.OTPConfig{
		TTL:         cfg.OTPTTL,
		MaxAttempts: cfg.OTPMaxAttempts,
	})
	identitySvc := services.NewIdentityService(accountRepo)
	authSvc := services.NewAuthService(accountRepo, identitySvc, passwordSvc, tokenSvc, otpSvc, cfg.AccessTTL)

	// Handlers and middleware
	authH := handlers.NewAuthHandlers(authSvc)
	otpH := handlers.NewOTPHandlers(otpSvc)
	authMW := middleware.AuthMiddleware(authSvc)

	r := httpx.BuildRouter(authH, otpH, authMW)

	stopSweep := startSweep(otpSvc, cfg.OTPSweepInterval)
	defer stopSweep()

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

// startSweep runs the expired-challenge sweep on a fixed interval,
// independent of request traffic.
func startSweep(otpSvc domain.OTPService, every time.Duration) func() {
	ticker := time.NewTicker(every)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				if _, err := otpSvc.SweepExpired(ctx, time.Now()); err != nil {
					log.Printf("OTP_SWEEP_FAILED: error=%v", err)
				}
				cancel()
			case <-done:
				return
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(done)
	}
}
