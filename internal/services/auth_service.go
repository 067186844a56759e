package services

import (
	"errors"

	"github.com/codebusters-club/recruitment-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid club id or password")

// AuthService authenticates the club's admin. Credentials are static,
// configured through the environment; the password hash is computed once at
// startup.
type AuthService struct {
	cfg *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// AdminProfile describes the authenticated admin.
type AdminProfile struct {
	ClubID string `json:"club_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// Login verifies the admin credentials.
func (s *AuthService) Login(clubID, password string) (*AdminProfile, error) {
	if clubID != s.cfg.AdminClubID {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.cfg.AdminPasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.Profile(clubID), nil
}

// Profile returns the admin profile for a logged-in club id.
func (s *AuthService) Profile(clubID string) *AdminProfile {
	return &AdminProfile{
		ClubID: clubID,
		Name:   s.cfg.AdminName,
		Role:   "super_admin",
	}
}
