package usecase

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hiresphere/api/internal/apperror"
	"github.com/hiresphere/api/internal/config"
	"github.com/hiresphere/api/internal/dto"
	"github.com/hiresphere/api/internal/middleware"
	"github.com/hiresphere/api/internal/model"
	"github.com/hiresphere/api/internal/repository"
)

type AuthUsecase struct {
	users  *repository.UserRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewAuthUsecase(users *repository.UserRepository, logger *zap.Logger) *AuthUsecase {
	return &AuthUsecase{users: users, logger: logger, now: time.Now}
}

func (uc *AuthUsecase) Register(req *dto.RegisterRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	// Admin accounts are provisioned out of band, never via signup.
	if role, _ := model.ParseRole(req.Role); role == model.RoleAdmin {
		return nil, apperror.Forbidden("Admin accounts cannot be self-registered")
	}
	taken, err := uc.users.EmailTaken(req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.Conflict("Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role, _ := model.ParseRole(req.Role)
	user := &model.User{
		Email:          req.Email,
		HashedPassword: string(hash),
		FullName:       req.FullName,
		Role:           role,
		CompanyName:    req.CompanyName,
		Status:         "active",
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}
	uc.logger.Info("user registered",
		zap.String("email", user.Email), zap.String("role", string(user.Role)))
	return user, nil
}

func (uc *AuthUsecase) Login(req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	user, err := uc.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("Invalid email or password")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)) != nil {
		return nil, apperror.Unauthorized("Invalid email or password")
	}
	if user.Status != "active" {
		return nil, apperror.Forbidden("Account is disabled")
	}
	return uc.issueToken(user)
}

func (uc *AuthUsecase) issueToken(user *model.User) (*dto.TokenResponse, error) {
	cfg := config.LoadAuthConfig()
	now := uc.now()
	claims := middleware.Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int(cfg.TokenLifetime.Seconds()),
		User:        user,
	}, nil
}
