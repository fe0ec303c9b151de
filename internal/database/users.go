package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nehemiah-317/ictlogbook/internal/models"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidUser        = errors.New("username, password and a valid role are required")
)

// CreateUser stores a new account with a bcrypt password hash.
func CreateUser(ctx context.Context, db *gorm.DB, username, password string, role models.UserRole) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || !role.IsValid() {
		return nil, ErrInvalidUser
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check user %s: %w", username, err)
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", username, err)
	}
	return user, nil
}

// Authenticate checks a username/password pair.
func Authenticate(ctx context.Context, db *gorm.DB, username, password string) (*models.User, error) {
	var user models.User
	err := db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func GetUser(ctx context.Context, db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureAdmin creates the configured admin unless an admin already exists.
func EnsureAdmin(ctx context.Context, db *gorm.DB, username, password string, log *slog.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	if _, err := CreateUser(ctx, db, username, password, models.RoleAdmin); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}
	log.Info("created default admin user", "username", username)
	return nil
}

// SeedDemoUsers adds a staff account for trying the system out. Existing
// usernames are skipped.
func SeedDemoUsers(ctx context.Context, db *gorm.DB, log *slog.Logger) error {
	users := []struct {
		Username string
		Password string
		Role     models.UserRole
	}{
		{Username: "staff", Password: "Staff123!", Role: models.RoleStaff},
	}

	for _, u := range users {
		_, err := CreateUser(ctx, db, u.Username, u.Password, u.Role)
		if errors.Is(err, ErrUserExists) {
			continue
		}
		if err != nil {
			return err
		}
		log.Info("created seed user", "username", u.Username, "role", u.Role)
	}
	return nil
}
