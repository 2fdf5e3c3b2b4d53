package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"mydrive-server/config"
	"mydrive-server/internal/apperror"
	"mydrive-server/internal/model"
	"mydrive-server/internal/ports"
	"mydrive-server/internal/security"
	"mydrive-server/internal/util"
)

type AuthenticationService struct {
	jwtRepoInterface    ports.JWTRepositoryInterface
	jwtServiceInterface ports.JWTServiceInterface
	userRepository      ports.UserRepository
	jwtConfig           *config.JWTConfig
	db                  *config.Database
}

func NewAuthenticationService(
	repo ports.JWTRepositoryInterface,
	service ports.JWTServiceInterface,
	userInterface ports.UserRepository,
	jwtConfig *config.JWTConfig,
	db *config.Database,
) *AuthenticationService {
	return &AuthenticationService{
		jwtRepoInterface:    repo,
		jwtServiceInterface: service,
		userRepository:      userInterface,
		jwtConfig:           jwtConfig,
		db:                  db,
	}
}

func (s *AuthenticationService) Login(ctx context.Context, login, password, userAgent, ipAddress string) (*model.TokensPair, error) {
	user, err := s.userRepository.FindByLogin(ctx, s.db, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("[AuthenticationService] пользователь %s: %w", login, apperror.ErrUnauthorized)
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, fmt.Errorf("[AuthenticationService] неверный пароль: %w", apperror.ErrUnauthorized)
	}

	tokens, refreshToken, err := s.jwtServiceInterface.GenerateAccessRefreshTokens(user.UUID, user.Login)
	if err != nil {
		return nil, util.LogError("[AuthenticationService] ошибка генерации токенов", err)
	}

	refreshToken.UserAgent = userAgent
	refreshToken.IpAddress = ipAddress

	if err := s.jwtRepoInterface.SaveRefreshToken(ctx, refreshToken); err != nil {
		return nil, util.LogError("[AuthenticationService] ошибка сохранения refresh токена", err)
	}

	return tokens, nil
}

// RefreshToken обновляет пару токенов.
// Операцию можно выполнить только той парой, которая была выдана вместе;
// смена User-Agent деавторизует пользователя
func (s *AuthenticationService) RefreshToken(ctx context.Context, userAgent string, ipAddress string, accessToken string, refreshToken string) (*model.TokensPair, error) {
	claims, err := s.jwtServiceInterface.ValidateJWT(accessToken, []byte(s.jwtConfig.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("[AuthenticationService] невалидный токен: %w", apperror.ErrUnauthorized)
	}

	refreshTokenUUID := claims.RefreshTokenUUID

	storedRefreshToken, err := s.jwtRepoInterface.FindByUUID(ctx, refreshTokenUUID)
	if err != nil {
		return nil, fmt.Errorf("[AuthenticationService] refresh токен не найден: %w", apperror.ErrUnauthorized)
	}
	if storedRefreshToken.Used {
		log.Printf("[AuthenticationService] refresh token %s уже был использован", refreshTokenUUID)
		return nil, fmt.Errorf("[AuthenticationService] %w", apperror.ErrUnauthorized)
	}

	if time.Now().UTC().After(storedRefreshToken.ExpireAt) {
		log.Printf("[AuthenticationService] refresh token %s просрочен", refreshTokenUUID)
		return nil, fmt.Errorf("[AuthenticationService] %w", apperror.ErrUnauthorized)
	}

	if storedRefreshToken.UserAgent != userAgent {
		if err := s.jwtRepoInterface.MarkRefreshTokenUsedByUUID(ctx, refreshTokenUUID); err != nil {
			log.Printf("[AuthenticationService] не удалось пометить токен использованным: %v", err)
		}
		log.Printf("[AuthenticationService] refresh token %s: попытка обновления с другого User-Agent", refreshTokenUUID)
		return nil, fmt.Errorf("[AuthenticationService] %w", apperror.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedRefreshToken.TokenHash), []byte(refreshToken)); err != nil {
		return nil, fmt.Errorf("[AuthenticationService] невалидный токен: %w", apperror.ErrUnauthorized)
	}

	if err := s.jwtRepoInterface.MarkRefreshTokenUsedByUUID(ctx, refreshTokenUUID); err != nil {
		return nil, util.LogError("[AuthenticationService] не удалось использовать токен", err)
	}

	tokensPair, newRefreshToken, err := s.jwtServiceInterface.GenerateAccessRefreshTokens(claims.UserUUID, claims.Login)
	if err != nil {
		return nil, util.LogError("[AuthenticationService] ошибка генерации токенов", err)
	}

	newRefreshToken.UserAgent = userAgent
	newRefreshToken.IpAddress = ipAddress
	if err := s.jwtRepoInterface.SaveRefreshToken(ctx, newRefreshToken); err != nil {
		return nil, util.LogError("[AuthenticationService] не удалось сохранить refresh токен", err)
	}

	return tokensPair, nil
}

// Logout помечает refresh-токен использованным, деавторизуя пользователя
func (s *AuthenticationService) Logout(ctx context.Context, refreshTokenUUID string) error {
	if err := s.jwtRepoInterface.MarkRefreshTokenUsedByUUID(ctx, refreshTokenUUID); err != nil {
		return fmt.Errorf("не удалось использовать токен: %w", err)
	}
	return nil
}
