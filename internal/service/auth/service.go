package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/parkease/parkease-backend/internal/domain"
	userRepo "github.com/parkease/parkease-backend/internal/infra/storage/user"
	"github.com/parkease/parkease-backend/internal/service/auth/models"
)

// Service сервис аутентификации: регистрация, вход и проверка JWT
type Service struct {
	userRepo     UserRepository
	secret       []byte
	tokenTTL     time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(userRepo UserRepository, secret string, tokenTTL time.Duration, logger Logger) *Service {
	return &Service{
		userRepo:     userRepo,
		secret:       []byte(secret),
		tokenTTL:     tokenTTL,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (используется в тестах)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Register регистрирует пользователя. Роль admin через регистрацию
// не выдаётся — только driver (по умолчанию) и owner.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	s.logger.Info("Register: registering user email=%s", req.Email)

	if err := validateRegisterRequest(req); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, err
	}

	role := domain.RoleDriver
	if req.Role != "" {
		role = domain.Role(req.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - failed to hash password: %v", ErrInternal, err)
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Role:         role,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("Register: email=%s is already taken", req.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: repository error: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	token, err := s.issueToken(created)
	if err != nil {
		s.logger.Error("Register: failed to issue token for user id=%d: %v", created.ID, err)
		return nil, fmt.Errorf("%w: Register - failed to issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Register: successfully registered user id=%d role=%s", created.ID, created.Role)
	return &models.AuthResponse{Token: token, User: *models.FromDomainUser(created)}, nil
}

// Login проверяет учётные данные и выдаёт JWT.
// Несуществующий email и неверный пароль неразличимы для клиента.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	s.logger.Info("Login: user email=%s", req.Email)

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: email=%s not found", req.Email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for email=%s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user id=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.logger.Error("Login: failed to issue token for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Login - failed to issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user id=%d logged in", user.ID)
	return &models.AuthResponse{Token: token, User: *models.FromDomainUser(user)}, nil
}

// ValidateToken проверяет JWT и возвращает субъекта запроса
func (s *Service) ValidateToken(tokenString string) (domain.Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return domain.Principal{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Principal{}, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return domain.Principal{}, ErrInvalidToken
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return domain.Principal{}, ErrInvalidToken
	}

	role, _ := claims["role"].(string)
	if !domain.ValidRole(domain.Role(role)) {
		return domain.Principal{}, ErrInvalidToken
	}
	name, _ := claims["name"].(string)

	return domain.Principal{ID: id, Name: name, Role: domain.Role(role)}, nil
}

// issueToken выдаёт подписанный HS256 токен с идентификатором,
// ролью и именем пользователя
func (s *Service) issueToken(user *domain.User) (string, error) {
	now := s.timeProvider.Now()

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(user.ID, 10),
		"role": string(user.Role),
		"name": user.Name,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func validateRegisterRequest(req *models.RegisterRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	if len(req.Password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}
	if req.Role != "" {
		role := domain.Role(req.Role)
		if role == domain.RoleAdmin || !domain.ValidRole(role) {
			return fmt.Errorf("%w: role must be driver or owner", ErrInvalidInput)
		}
	}
	return nil
}
