package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"moodle-bridge/internal/config"
	"moodle-bridge/internal/logger"
	"moodle-bridge/internal/service"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// devtoken signs an access token with JWT_SECRET_KEY so the API can be called
// locally without the mobile app backend.
func main() {
	userID := pflag.String("user", "", "mobile user id to put in the token")
	ttl := pflag.Duration("ttl", time.Hour, "token lifetime")
	pflag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "--user is required")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	authService, err := service.NewAuthService(cfg.Auth)
	if err != nil {
		logger.Get().Fatal("Failed to create AuthService", zap.Error(err))
	}

	token, err := authService.CreateJWT(context.Background(), *userID, *ttl, service.TokenTypeAccess)
	if err != nil {
		logger.Get().Fatal("Failed to sign token", zap.Error(err))
	}
	fmt.Println(token)
}
