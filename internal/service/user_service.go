package service

import (
	"context"
	"fmt"
	"unicode"

	"github.com/google/uuid"

	"mydrive-server/config"
	"mydrive-server/internal/apperror"
	"mydrive-server/internal/model"
	"mydrive-server/internal/ports"
	"mydrive-server/internal/security"
)

type UserService struct {
	userRepository ports.UserRepository
	jwtService     ports.JWTServiceInterface
	jwtRepository  ports.JWTRepositoryInterface
	db             *config.Database
}

func NewUserService(
	userRepository ports.UserRepository,
	jwtService ports.JWTServiceInterface,
	jwtRepository ports.JWTRepositoryInterface,
	db *config.Database,
) *UserService {
	return &UserService{
		userRepository: userRepository,
		jwtService:     jwtService,
		jwtRepository:  jwtRepository,
		db:             db,
	}
}

// Register : регистрация с немедленной выдачей пары токенов
func (s *UserService) Register(ctx context.Context, login string, password string, userAgent string, ipAddress string) (*model.TokensPair, error) {
	if len(login) < 4 {
		return nil, fmt.Errorf("[UserService] логин должен быть не меньше 4 символов")
	}
	for _, c := range login {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			return nil, fmt.Errorf("[UserService] логин должен содержать только латинские буквы и цифры")
		}
	}

	if err := validatePassword(password); err != nil {
		return nil, fmt.Errorf("[UserService] %w", err)
	}

	exists, err := s.userRepository.LoginExists(ctx, s.db, login)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка проверки логина: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("[UserService] логин %q: %w", login, apperror.ErrDuplicateName)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("[UserService] не удалось создать хэш пароля: %w", err)
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		Login:        login,
		PasswordHash: hash,
	}

	created, err := s.userRepository.CreateUser(ctx, s.db, user)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка создания пользователя: %w", err)
	}

	tokens, refreshToken, err := s.jwtService.GenerateAccessRefreshTokens(created.UUID, created.Login)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка генерации токенов: %w", err)
	}

	refreshToken.UserAgent = userAgent
	refreshToken.IpAddress = ipAddress

	if err := s.jwtRepository.SaveRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("[UserService] не удалось сохранить refresh токен: %w", err)
	}

	return tokens, nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("пароль должен содержать минимум 8 символов")
	}

	var upperCount, lowerCount, digitCount int

	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upperCount++
		case unicode.IsLower(c):
			lowerCount++
		case unicode.IsDigit(c):
			digitCount++
		}
	}

	if upperCount == 0 || lowerCount == 0 {
		return fmt.Errorf("пароль должен содержать буквы в разных регистрах")
	}
	if digitCount < 1 {
		return fmt.Errorf("пароль должен содержать хотя бы одну цифру")
	}

	return nil
}

// GetUser : профиль пользователя, доступен только ему самому
func (s *UserService) GetUser(ctx context.Context, uuid string) (*model.User, error) {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[UserService] %w", apperror.ErrUnauthorized)
	}

	if claims.UserUUID != uuid {
		return nil, fmt.Errorf("[UserService] профиль %s: %w", uuid, apperror.ErrForbidden)
	}

	user, err := s.userRepository.FindByUUID(ctx, s.db, uuid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("[UserService] пользователь %s: %w", uuid, apperror.ErrNotFound)
	}

	return user, nil
}
