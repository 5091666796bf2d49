package service

import (
	"errors"
	"strings"

	"go-order-desk/internal/model"
	"go-order-desk/internal/repository"
	"go-order-desk/pkg/apperr"
	"go-order-desk/pkg/jwt"
	"go-order-desk/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	ValidateToken(tokenString string) (*model.OperatorResponse, error)
	EnsureAdmin(email, password, name string) (*model.Operator, error)
	ResetPassword(email, newPassword string) error
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token    string                 `json:"token"`
	Operator model.OperatorResponse `json:"operator"`
}

type authService struct {
	operatorRepo repository.OperatorRepository
	tokens       *jwt.Manager
}

func NewAuthService(operatorRepo repository.OperatorRepository, tokens *jwt.Manager) AuthService {
	return &authService{
		operatorRepo: operatorRepo,
		tokens:       tokens,
	}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	// 1. Find operator by email
	operator, err := s.operatorRepo.FindByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperr.FromStorage(err, nil)
	}

	// 2. Check if operator is active
	if !operator.IsActive {
		return nil, ErrOperatorInactive
	}

	// 3. Verify password
	if !operator.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Generate JWT token
	token, err := s.tokens.GenerateToken(operator.ID, operator.Email, operator.FullName)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to generate token", err)
	}

	if err := s.operatorRepo.UpdateLastLogin(operator.ID); err != nil {
		logger.GetLogger().Warn("failed to record last login", zap.String("operator_id", operator.ID.String()), zap.Error(err))
	}

	return &LoginResponse{
		Token:    token,
		Operator: operator.ToResponse(),
	}, nil
}

func (s *authService) ValidateToken(tokenString string) (*model.OperatorResponse, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	operator, err := s.operatorRepo.FindByID(claims.OperatorID)
	if err != nil {
		return nil, apperr.FromStorage(err, ErrOperatorNotFound)
	}
	if !operator.IsActive {
		return nil, ErrOperatorInactive
	}

	resp := operator.ToResponse()
	return &resp, nil
}

// EnsureAdmin creates the bootstrap operator unless one with that email exists
func (s *authService) EnsureAdmin(email, password, name string) (*model.Operator, error) {
	email = normalizeEmail(email)
	existing, err := s.operatorRepo.FindByEmail(email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.FromStorage(err, nil)
	}

	operator := &model.Operator{
		Email:    email,
		FullName: name,
		IsActive: true,
	}
	operator.ID = uuid.New()
	operator.CreatedBy = "system"
	operator.UpdatedBy = "system"
	if err := operator.SetPassword(password); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}
	if err := s.operatorRepo.Create(operator); err != nil {
		return nil, apperr.FromStorage(err, nil)
	}

	logger.GetLogger().Info("admin operator created", zap.String("email", email))
	return operator, nil
}

func (s *authService) ResetPassword(email, newPassword string) error {
	if len(newPassword) < 6 {
		return apperr.Validationf("password must be at least 6 characters")
	}
	operator, err := s.operatorRepo.FindByEmail(normalizeEmail(email))
	if err != nil {
		return apperr.FromStorage(err, ErrOperatorNotFound)
	}
	if err := operator.SetPassword(newPassword); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}
	return apperr.FromStorage(s.operatorRepo.UpdatePassword(operator.ID, operator.Password), ErrOperatorNotFound)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
