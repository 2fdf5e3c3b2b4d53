package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mydrive-server/internal/model/requestresponse"
	"mydrive-server/internal/ports"
	"mydrive-server/internal/util"
)

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService}
}

// Register godoc
// @Summary Регистрация пользователя
// @Description Создаёт пользователя и сразу выдаёт пару токенов
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 201 {object} requestresponse.TokensResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Слабый пароль или некорректный логин"
// @Failure 409 {object} requestresponse.ErrorResponse "Логин занят"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}

	if req.Login == "" || req.Password == "" {
		util.HandleError(w, "login и password обязательны", http.StatusBadRequest)
		return
	}

	tokens, err := h.UserService.Register(ctx, req.Login, req.Password, r.UserAgent(), r.RemoteAddr)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	resp := requestresponse.TokensResponse{}
	resp.Response.AccessToken = tokens.AccessToken
	resp.Response.RefreshToken = tokens.RefreshToken

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// GetUser godoc
// @Summary Профиль пользователя
// @Description Возвращает профиль пользователя, доступен только ему самому
// @Tags Users
// @Produce json
// @Param user_uuid path string true "UUID пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/users/{user_uuid} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userUUID := chi.URLParam(r, "user_uuid")
	if userUUID == "" {
		util.HandleError(w, "UUID пользователя обязателен", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.GetUser(r.Context(), userUUID)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	resp := requestresponse.UserResponse{}
	resp.Data.UUID = user.UUID
	resp.Data.Login = user.Login
	resp.Data.StorageUsedBytes = user.StorageUsedBytes

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
