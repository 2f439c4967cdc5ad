package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/auth/models"
	"github.com/m04kA/SMC-StudioBookingService/pkg/ptr"
)

// Service сервис регистрации и аутентификации
type Service struct {
	userRepo  UserRepository
	eventRepo EventRepository
	tokens    TokenService
	logger    Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(userRepo UserRepository, eventRepo EventRepository, tokens TokenService, logger Logger) *Service {
	return &Service{
		userRepo:  userRepo,
		eventRepo: eventRepo,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register регистрирует нового пользователя и сразу выдает токен
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	s.logger.Info("Register: registering user email=%s, role=%s", req.Email, req.Role)

	if err := validateRegisterRequest(req); err != nil {
		s.logger.Warn("Register: validation failed for email=%s: %v", req.Email, err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password for email=%s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         domain.Role(req.Role),
		IsActive:     true,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("Register: email=%s already taken", req.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: repository error for email=%s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	// Запись аудита не критична для регистрации
	event := &domain.EventLog{
		UserID:      ptr.Ptr(created.ID),
		EventType:   domain.EventUserRegistered,
		Description: ptr.Ptr(fmt.Sprintf("user registered with role %s", created.Role)),
	}
	if err := s.eventRepo.Append(ctx, event); err != nil {
		s.logger.Error("Register: failed to append audit event for user=%d: %v", created.ID, err)
	}

	token, err := s.tokens.Generate(created.ID, string(created.Role))
	if err != nil {
		s.logger.Error("Register: failed to generate token for user=%d: %v", created.ID, err)
		return nil, fmt.Errorf("%w: Register - generate token: %v", ErrInternal, err)
	}

	s.logger.Info("Register: successfully registered user id=%d, email=%s", created.ID, created.Email)
	return &models.AuthResponse{
		Token: token,
		User:  models.FromDomainUser(created),
	}, nil
}

// Login проверяет пару email/пароль и выдает токен
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	s.logger.Info("Login: login attempt for email=%s", email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: user email=%s not found", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if !user.IsActive {
		s.logger.Warn("Login: user id=%d is inactive", user.ID)
		return nil, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user id=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Не блокируем вход из-за неудачной записи времени
		s.logger.Error("Login: failed to update last login for user=%d: %v", user.ID, err)
	}

	token, err := s.tokens.Generate(user.ID, string(user.Role))
	if err != nil {
		s.logger.Error("Login: failed to generate token for user=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Login - generate token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: successful login for user id=%d", user.ID)
	return &models.AuthResponse{
		Token: token,
		User:  models.FromDomainUser(user),
	}, nil
}

// validateRegisterRequest проверяет поля запроса на регистрацию
func validateRegisterRequest(req *models.RegisterRequest) error {
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(req.Password) < domain.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, domain.MinPasswordLength)
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	role := domain.Role(req.Role)
	if role != domain.RoleCustomer && role != domain.RoleOwner {
		return fmt.Errorf("%w: role must be customer or owner", ErrInvalidInput)
	}

	return nil
}
