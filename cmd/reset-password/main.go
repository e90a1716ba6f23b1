package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"go-backoffice/internal/config"
	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/pkg/database"
	applogger "go-backoffice/pkg/logger"
)

func main() {
	envFile := flag.String("env", "", "path to an env file (defaults to ./.env when present)")
	email := flag.String("email", "", "account to reset (required)")
	password := flag.String("password", "", "new password, at least 6 characters (required)")
	flag.Parse()

	if *email == "" || len(*password) < 6 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := applogger.Must(applogger.New(cfg.LogLevel))
	defer func() { _ = log.Sync() }()

	db, err := database.Connect(cfg.Database.DSN(), applogger.Named(log, "gorm"))
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepo(db)
	user, err := userRepo.FindByEmail(model.NormalizeEmail(*email))
	if err != nil {
		log.Fatal("user not found", zap.String("email", *email), zap.Error(err))
	}

	if err := user.SetPassword(*password); err != nil {
		log.Fatal("failed to hash password", zap.Error(err))
	}
	if err := userRepo.UpdatePassword(user.ID, user.Password); err != nil {
		log.Fatal("failed to update password", zap.Error(err))
	}
	// Existing sessions end with the old password.
	if err := userRepo.UpdateTokenVersion(user.ID, ""); err != nil {
		log.Fatal("failed to revoke sessions", zap.Error(err))
	}

	log.Info("password reset", zap.String("email", *email), zap.String("user_id", user.ID.String()))
}
