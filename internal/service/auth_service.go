package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/ws"
	"go-backoffice/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSessionTimeout     = errors.New("session expired due to inactivity")
	ErrSessionReplaced    = errors.New("session expired (logged in on another device)")
	ErrInvalidAccessToken = errors.New("access token is invalid or already used")
)

// lastSeenResolution limits how often authenticated requests rewrite last_seen_at.
const lastSeenResolution = time.Minute

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	Authenticate(tokenString string) (*jwt.Claims, *model.User, error)
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
	ChangePassword(userID uuid.UUID, oldPassword, newPassword string) error
	Heartbeat(userID uuid.UUID) error
	Logout(userID uuid.UUID) error
	RedeemAccessToken(req *RedeemTokenRequest) (*LoginResponse, error)
}

type LoginResponse struct {
	Token      string             `json:"token"`
	ExpiresAt  time.Time          `json:"expires_at"`
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"`
}

type TokenValidationResponse struct {
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"`
}

// RedeemTokenRequest signs up a salesperson with a one-time access token.
type RedeemTokenRequest struct {
	Token       string `json:"token" validate:"required,len=10"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"max=20"`
}

type authService struct {
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	tokenRepo   repository.AccessTokenRepository
	jwt         *jwt.Manager
	idleTimeout time.Duration
	events      EventPublisher
	logger      *zap.Logger
	now         func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, roleRepo repository.RoleRepository,
	tokenRepo repository.AccessTokenRepository, jwtManager *jwt.Manager, idleTimeout time.Duration,
	events EventPublisher, logger *zap.Logger) AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authService{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		tokenRepo:   tokenRepo,
		jwt:         jwtManager,
		idleTimeout: idleTimeout,
		events:      events,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(model.NormalizeEmail(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return s.startSession(user)
}

// startSession rotates the token version, which signs out every other device.
func (s *authService) startSession(user *model.User) (*LoginResponse, error) {
	now := s.now()
	user.TokenVersion = uuid.New().String()
	user.LastSeenAt = &now

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	token, err := s.jwt.GenerateToken(jwt.Subject{
		UserID:       user.ID,
		Email:        user.Email,
		Name:         user.FullName,
		RoleCode:     user.RoleCode(),
		Privileges:   user.GetPrivilegeCodes(),
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()), zap.String("role", user.RoleCode()))

	return &LoginResponse{
		Token:      token,
		ExpiresAt:  now.Add(s.jwt.TTL()),
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

// Authenticate checks the token signature, the single-session version and
// the inactivity window, and refreshes last_seen_at.
func (s *authService) Authenticate(tokenString string) (*jwt.Claims, *model.User, error) {
	claims, err := s.jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, nil, ErrUserNotFound
	}

	if !user.IsActive {
		return nil, nil, ErrUserInactive
	}

	if user.TokenVersion == "" || user.TokenVersion != claims.TokenVersion {
		return nil, nil, ErrSessionReplaced
	}

	now := s.now()
	if user.SessionExpired(now, s.idleTimeout) {
		return nil, nil, ErrSessionTimeout
	}

	if now.Sub(*user.LastSeenAt) > lastSeenResolution {
		if err := s.userRepo.UpdateLastSeen(user.ID, now); err != nil {
			s.logger.Warn("failed to refresh last seen", zap.String("user_id", user.ID.String()), zap.Error(err))
		} else {
			user.LastSeenAt = &now
		}
	}

	return claims, user, nil
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	_, user, err := s.Authenticate(tokenString)
	if err != nil {
		return nil, err
	}

	return &TokenValidationResponse{
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

func (s *authService) ChangePassword(userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}

	if len(newPassword) < 6 {
		return fmt.Errorf("%w: new password must be at least 6 characters", ErrInvalidInput)
	}

	if err := user.SetPassword(newPassword); err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	return s.userRepo.UpdatePassword(user.ID, user.Password)
}

func (s *authService) Heartbeat(userID uuid.UUID) error {
	now := s.now()
	if err := s.userRepo.UpdateLastSeen(userID, now); err != nil {
		return err
	}

	publish(s.events, s.logger, ws.Event{
		Type: "user_status_update",
		Data: map[string]interface{}{
			"user_id":      userID.String(),
			"status":       "online",
			"last_seen_at": now,
		},
	})

	return nil
}

// Logout invalidates every token issued to the user.
func (s *authService) Logout(userID uuid.UUID) error {
	if err := s.userRepo.UpdateTokenVersion(userID, ""); err != nil {
		return err
	}

	publish(s.events, s.logger, ws.Event{
		Type: "user_status_update",
		Data: map[string]interface{}{
			"user_id": userID.String(),
			"status":  "offline",
		},
	})
	return nil
}

// RedeemAccessToken creates an active SALES account from a one-time token and logs it in.
func (s *authService) RedeemAccessToken(req *RedeemTokenRequest) (*LoginResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	email := model.NormalizeEmail(req.Email)
	if existing, err := s.userRepo.FindByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailExists
	}

	role, err := s.roleRepo.FindByCode(model.RoleSales)
	if err != nil {
		return nil, lookup(err, ErrRoleNotFound)
	}

	user := &model.User{
		Email:       email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		RoleID:      &role.ID,
		IsActive:    true,
		Privileges:  role.Privileges,
	}
	user.CreatedBy = "access-token"
	user.UpdatedBy = "access-token"
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.tokenRepo.Redeem(strings.ToUpper(req.Token), user); err != nil {
		switch {
		case repository.IsNotFound(err), errors.Is(err, repository.ErrTokenUsed):
			return nil, ErrInvalidAccessToken
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrEmailExists
		}
		return nil, err
	}

	user.Role = role
	s.logger.Info("access token redeemed", zap.String("user_id", user.ID.String()))
	return s.startSession(user)
}
