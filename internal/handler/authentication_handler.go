package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"mydrive-server/internal/model/requestresponse"
	"mydrive-server/internal/ports"
	"mydrive-server/internal/security"
	"mydrive-server/internal/util"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
	ports.JWTServiceInterface
	secretKey []byte
}

func NewAuthenticationHandler(
	authenticationService ports.AuthenticationService,
	jwtServiceInterface ports.JWTServiceInterface,
	secretKey []byte,
) *AuthenticationHandler {
	return &AuthenticationHandler{
		authenticationService,
		jwtServiceInterface,
		secretKey,
	}
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Выдаёт пару access и refresh токенов по логину и паролю
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.TokensResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный логин или пароль"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}

	if req.Login == "" || req.Password == "" {
		util.HandleError(w, "login и password обязательны", http.StatusBadRequest)
		return
	}

	tokens, err := h.AuthenticationService.Login(ctx, req.Login, req.Password, r.UserAgent(), r.RemoteAddr)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	resp := requestresponse.TokensResponse{}
	resp.Response.AccessToken = tokens.AccessToken
	resp.Response.RefreshToken = tokens.RefreshToken

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// GetCurrentUser godoc
// @Summary Текущий пользователь
// @Description Возвращает UUID и логин пользователя, авторизованного в системе
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.CurrentUserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthenticationHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	resp := requestresponse.CurrentUserResponse{}
	resp.Response.UserUUID = claims.UserUUID
	resp.Response.Login = claims.Login

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// RefreshToken godoc
// @Summary Обновление токенов
// @Description Обновляет пару токенов по действующему access и refresh токену
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RefreshTokenRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.TokensResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Неверный JSON"
// @Failure 401 {object} requestresponse.ErrorResponse "Невалидный токен"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/refresh [post]
func (h *AuthenticationHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		util.HandleError(w, "пустой или неверный заголовок Authorization", http.StatusUnauthorized)
		return
	}
	accessToken := strings.TrimPrefix(authHeader, "Bearer ")

	var req requestresponse.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "неверный JSON", http.StatusBadRequest)
		return
	}

	tokensPair, err := h.AuthenticationService.RefreshToken(ctx, r.UserAgent(), r.RemoteAddr, accessToken, req.RefreshToken)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	resp := requestresponse.TokensResponse{}
	resp.Response.AccessToken = tokensPair.AccessToken
	resp.Response.RefreshToken = tokensPair.RefreshToken

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// Logout godoc
// @Summary Завершение сессии
// @Description Инвалидирует refresh-токен текущей сессии
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.LogoutResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	if err := h.AuthenticationService.Logout(ctx, claims.RefreshTokenUUID); err != nil {
		util.HandleAppError(w, err)
		return
	}

	resp := requestresponse.LogoutResponse{}
	resp.Response.SessionUUID = claims.RefreshTokenUUID
	resp.Response.Revoked = true

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Println("ошибка кодирования ответа:", err)
	}
}
