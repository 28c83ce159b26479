package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"asset-tracker/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	maxAttempts  = 10
	retryBackoff = 2 * time.Second
)

// Config is the gorm configuration shared by the server, the CLI and tests.
func Config() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

// Connect opens the postgres database, retrying while it comes up.
func Connect(dsn string, log *zap.Logger) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	for i := 1; i <= maxAttempts; i++ {
		log.Info("connecting to database", zap.Int("attempt", i), zap.Int("max_attempts", maxAttempts))

		db, err = gorm.Open(postgres.Open(dsn), Config())
		if err == nil {
			log.Info("connected to database")
			return db, nil
		}

		log.Warn("database connection failed", zap.Error(err))
		if i < maxAttempts {
			time.Sleep(retryBackoff)
		}
	}

	return nil, fmt.Errorf("connect to database after %d attempts: %w", maxAttempts, err)
}

// Migrate creates or updates every table, with its foreign keys and checks.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

var ErrUserExists = errors.New("user already exists")

// CreateUser adds a login account with a bcrypt-hashed password.
func CreateUser(db *gorm.DB, email, password string, isAdmin bool) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 6 {
		return nil, errors.New("e-mail is required and password must be at least 6 characters")
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		CreatedOn:    time.Now().UTC(),
		IsAdmin:      isAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// EnsureAdmin creates the configured admin account when no admin exists yet.
func EnsureAdmin(db *gorm.DB, email, password string, log *zap.Logger) error {
	if email == "" || password == "" {
		log.Debug("no bootstrap admin configured")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	user, err := CreateUser(db, email, password, true)
	if err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}
	log.Info("created bootstrap admin", zap.String("email", user.Email))
	return nil
}

// Authenticate checks a login and returns the matching user.
func Authenticate(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	email = strings.ToLower(strings.TrimSpace(email))
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}
	return &user, nil
}
