package main

import (
	"context"
	"fmt"
	"os"

	"moodle-bridge/internal/adapter/moodle"
	"moodle-bridge/internal/config"
	"moodle-bridge/internal/logger"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// moodlecheck verifies the configured Moodle site and mobile service by
// exchanging credentials for a token and reading the site info. The token is
// never printed.
func main() {
	username := pflag.String("username", "", "Moodle username")
	password := pflag.String("password", os.Getenv("MOODLE_CHECK_PASSWORD"), "Moodle password (defaults to $MOODLE_CHECK_PASSWORD)")
	pflag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "--username and --password are required")
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
	log := logger.Get()

	client, err := moodle.NewClient(cfg.LMS)
	if err != nil {
		log.Fatal("Failed to create Moodle client", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.LMS.RequestTimeout)
	defer cancel()

	token, err := client.FetchToken(ctx, *username, *password)
	if err != nil {
		log.Fatal("Token request failed", zap.String("base_url", cfg.LMS.BaseURL), zap.Error(err))
	}

	var info moodle.SiteInfo
	if err := client.Call(ctx, token, moodle.FunctionSiteInfo, nil, &info); err != nil {
		log.Fatal("Site info request failed", zap.Error(err))
	}

	log.Info("Moodle site reachable",
		zap.String("site", info.SiteName),
		zap.Int64("userid", info.UserID),
		zap.String("username", info.Username))
}
