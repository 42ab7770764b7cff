// services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"horizon-backend/models"
	"horizon-backend/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PrincipalKind discriminates the two token audiences. It is a closed type,
// not a free string, so handlers cannot confuse guest and admin sessions.
type PrincipalKind string

const (
	PrincipalUser  PrincipalKind = "user"
	PrincipalAdmin PrincipalKind = "admin"
)

// Claims carried in every bearer token.
type Claims struct {
	SubjectID uint          `json:"subjectId"`
	Name      string        `json:"name"`
	Kind      PrincipalKind `json:"kind"`
	jwt.RegisteredClaims
}

type AuthService struct {
	DB       *gorm.DB
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(db *gorm.DB, secret string) *AuthService {
	return &AuthService{
		DB:       db,
		secret:   []byte(secret),
		tokenTTL: 24 * time.Hour,
	}
}

// RegisterUser creates a guest account with a bcrypt-hashed password.
func (s *AuthService) RegisterUser(name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || len(password) < 6 {
		return nil, fmt.Errorf("%w: name, email and a password of at least 6 characters are required", ErrValidation)
	}

	var existing models.User
	err := s.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailAlreadyTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{Name: name, Email: email, Password: string(hash)}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// LoginUser verifies guest credentials and issues a user token.
func (s *AuthService) LoginUser(email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID, user.Name, PrincipalUser)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// LoginAdmin verifies back-office credentials and issues an admin token.
func (s *AuthService) LoginAdmin(username, password string) (*models.Admin, string, error) {
	username = strings.TrimSpace(username)

	var admin models.Admin
	if err := s.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load admin: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(admin.ID, admin.FullName, PrincipalAdmin)
	if err != nil {
		return nil, "", err
	}
	return &admin, token, nil
}

func (s *AuthService) issueToken(id uint, name string, kind PrincipalKind) (string, error) {
	now := time.Now()
	claims := Claims{
		SubjectID: id,
		Name:      name,
		Kind:      kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a bearer token string and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

// GetUser loads a user by ID; used to resolve the principal on user routes.
func (s *AuthService) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	return &user, nil
}

// EnsureDefaultAdmin seeds the back-office account on first boot so a fresh
// install is reachable. Credentials come from env with dev defaults.
func (s *AuthService) EnsureDefaultAdmin() error {
	var count int64
	if err := s.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username := utils.EnvOrDefault("ADMIN_USERNAME", "admin@hotel.local")
	password := utils.EnvOrDefault("ADMIN_PASSWORD", "admin123")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}
	admin := models.Admin{
		FullName: "Admin User",
		Username: username,
		Password: string(hash),
	}
	return s.DB.Create(&admin).Error
}
