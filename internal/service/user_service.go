package service

import (
	"context"
	"errors"
	"time"

	"fiscaltrack/internal/apperror"
	"fiscaltrack/internal/model"
	"fiscaltrack/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// --- DTOs ---

type RegisterUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt string    `json:"created_at"`
}

// --- Interface ---

type UserService interface {
	Register(ctx context.Context, req RegisterUserRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)
	GetByID(ctx context.Context, id string) (*UserResponse, error)
}

type userService struct {
	repo      repository.UserRepository
	jwtSecret []byte
}

func NewUserService(repo repository.UserRepository, jwtSecret []byte) UserService {
	return &userService{repo: repo, jwtSecret: jwtSecret}
}

func validRole(role string) bool {
	return role == model.RoleAdmin || role == model.RoleAccountant || role == model.RoleAssistant
}

func toUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

// --- Implementation ---

func (s *userService) Register(ctx context.Context, req RegisterUserRequest) (*UserResponse, error) {
	if !validRole(req.Role) {
		return nil, apperror.Validation("role must be admin, accountant, or assistant")
	}

	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, apperror.Duplicate("username already exists")
	}
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperror.Duplicate("email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Storage("hash password", err)
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     req.Role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, duplicateOr("create user", err, "username or email already exists")
	}
	return toUserResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Validation("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperror.Validation("invalid email or password")
	}
	return s.issueTokens(ctx, user)
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	if refreshToken == "" {
		return nil, apperror.Validation("refresh token is required")
	}

	stored, err := s.repo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Validation("invalid refresh token")
		}
		return nil, apperror.Storage("find refresh token", err)
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.repo.DeleteRefreshToken(ctx, refreshToken)
		return nil, apperror.Validation("refresh token expired")
	}

	user, err := s.repo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, notFoundOr("find user", err, "user not found")
	}

	// Rotate: the old token is single-use.
	if err := s.repo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, apperror.Storage("rotate refresh token", err)
	}
	return s.issueTokens(ctx, user)
}

func (s *userService) GetByID(ctx context.Context, id string) (*UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid user id")
	}
	user, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, notFoundOr("find user", err, "user not found")
	}
	return toUserResponse(user), nil
}

func (s *userService) issueTokens(ctx context.Context, user *model.User) (*TokenResponse, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  now.Add(accessTokenTTL).Unix(),
		"iat":  now.Unix(),
	})
	accessToken, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, apperror.Storage("sign token", err)
	}

	refresh := &model.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(refreshTokenTTL),
	}
	if err := s.repo.CreateRefreshToken(ctx, refresh); err != nil {
		return nil, apperror.Storage("store refresh token", err)
	}

	return &TokenResponse{AccessToken: accessToken, RefreshToken: refresh.Token}, nil
}
