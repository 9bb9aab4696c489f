package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auth-service/internal/config"
	"auth-service/internal/handler"
	"auth-service/internal/repository"
	"auth-service/internal/router"
	email "auth-service/internal/service/email"
	"auth-service/internal/usecase"
	"auth-service/pkg/jwtutil"
	"auth-service/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Run wires the service together and blocks until a shutdown signal.
func Run(cfg config.AppConfig) error {
	db, err := config.ConnectDB()
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	userRepo := repository.NewUserRepository(db)
	emailLogRepo := repository.NewEmailLogRepo(db)

	mailer := email.NewSender(email.Config{
		SMTPHost:    cfg.SMTPHost,
		SMTPPort:    cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPass,
		SenderEmail: cfg.SenderEmail,
		SenderName:  cfg.SenderName,
	}, emailLogRepo, logger)

	uc := usecase.NewAuthUsecase(userRepo, mailer, cfg.OTPTTL)
	codec := jwtutil.NewCodec(cfg.JWTSecret, cfg.SessionTTL)
	auth := middleware.NewAuthMiddleware(codec)
	authHandler := handler.NewAuthHandler(uc, codec, cfg.IsProduction())

	r := chi.NewRouter()
	router.SetupRoutes(r, authHandler, auth, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Auth HTTP server listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		db.Close()
		return err
	case <-sigChan:
		log.Println("Shutdown signal received, initiating graceful shutdown...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}

	log.Println("Closing database connection...")
	db.Close()

	log.Println("Graceful shutdown complete")
	return nil
}
