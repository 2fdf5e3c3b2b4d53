package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"mydrive-server/internal/model/requestresponse"
	"mydrive-server/internal/ports"
	"mydrive-server/internal/security"
	"mydrive-server/internal/util"
)

type DirectoryHandler struct {
	ports.DirectoryService
	ports.TransferService
}

func NewDirectoryHandler(directoryService ports.DirectoryService, transferService ports.TransferService) *DirectoryHandler {
	return &DirectoryHandler{directoryService, transferService}
}

// ListRootDirectories godoc
// @Summary Корневые директории
// @Description Возвращает директории верхнего уровня текущего пользователя
// @Tags Directories
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListDirectoriesResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/directories [get]
func (h *DirectoryHandler) ListRootDirectories(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	directories, err := h.DirectoryService.GetRootDirectories(r.Context(), claims.UserUUID)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	resp := requestresponse.ListDirectoriesResponse{Count: len(directories)}
	resp.Data.Directories = make([]requestresponse.DirectoryResponse, 0, len(directories))
	for i := range directories {
		resp.Data.Directories = append(resp.Data.Directories, requestresponse.DirectoryResponseFromModel(&directories[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetDirectory godoc
// @Summary Содержимое директории
// @Description Возвращает директорию с поддиректориями, файлами и путём от корня
// @Tags Directories
// @Produce json
// @Param dir_id path string true "UUID директории"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.DirectoryContentsResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/directories/{dir_id} [get]
func (h *DirectoryHandler) GetDirectory(w http.ResponseWriter, r *http.Request) {
	directoryUUID := chi.URLParam(r, "dir_id")
	if directoryUUID == "" {
		util.HandleError(w, "UUID директории обязателен", http.StatusBadRequest)
		return
	}

	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	contents, err := h.DirectoryService.GetContents(r.Context(), claims.UserUUID, claims.Login, directoryUUID)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.DirectoryContentsResponseFromModel(contents))
}

// CreateDirectory godoc
// @Summary Создание директории
// @Description Создаёт директорию, опционально внутри родительской
// @Tags Directories
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateDirectoryRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 201 {object} requestresponse.DirectoryResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Недопустимая родительская директория"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse "Имя занято на этом уровне"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/directories [post]
func (h *DirectoryHandler) CreateDirectory(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.CreateDirectoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		util.HandleError(w, "имя директории обязательно", http.StatusBadRequest)
		return
	}

	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	directory, err := h.DirectoryService.CreateDirectory(r.Context(), claims.UserUUID, req.Name, req.ParentUUID)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(requestresponse.DirectoryResponseFromModel(directory))
}

// RenameDirectory godoc
// @Summary Переименование директории
// @Description Переименовывает директорию текущего пользователя
// @Tags Directories
// @Accept json
// @Produce json
// @Param dir_id path string true "UUID директории"
// @Param body body requestresponse.RenameDirectoryRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.DirectoryResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse "Имя занято на этом уровне"
// @Router /api/directories/{dir_id} [put]
func (h *DirectoryHandler) RenameDirectory(w http.ResponseWriter, r *http.Request) {
	directoryUUID := chi.URLParam(r, "dir_id")
	if directoryUUID == "" {
		util.HandleError(w, "UUID директории обязателен", http.StatusBadRequest)
		return
	}

	var req requestresponse.RenameDirectoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		util.HandleError(w, "имя директории обязательно", http.StatusBadRequest)
		return
	}

	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	directory, err := h.DirectoryService.RenameDirectory(r.Context(), claims.UserUUID, directoryUUID, req.Name)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.DirectoryResponseFromModel(directory))
}

// DeleteDirectory godoc
// @Summary Удаление директории
// @Description Каскадно удаляет директорию со всем поддеревом и отзывает гранты
// @Tags Directories
// @Produce json
// @Param dir_id path string true "UUID директории"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/directories/{dir_id} [delete]
func (h *DirectoryHandler) DeleteDirectory(w http.ResponseWriter, r *http.Request) {
	directoryUUID := chi.URLParam(r, "dir_id")
	if directoryUUID == "" {
		util.HandleError(w, "UUID директории обязателен", http.StatusBadRequest)
		return
	}

	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	if err := h.DirectoryService.DeleteDirectory(r.Context(), claims.UserUUID, directoryUUID); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "директория удалена"})
}

// DownloadDirectoryArchive godoc
// @Summary Скачивание поддерева архивом
// @Description Упаковывает директорию со всем содержимым в zip и отдаёт потоком
// @Tags Directories
// @Produce application/zip
// @Param dir_id path string true "UUID директории"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {file} binary "zip архив"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/directories/{dir_id}/download [get]
func (h *DirectoryHandler) DownloadDirectoryArchive(w http.ResponseWriter, r *http.Request) {
	directoryUUID := chi.URLParam(r, "dir_id")
	if directoryUUID == "" {
		util.HandleError(w, "UUID директории обязателен", http.StatusBadRequest)
		return
	}

	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s.zip", url.PathEscape(directoryUUID)))

	if err := h.TransferService.DownloadDirectoryArchive(r.Context(), claims.UserUUID, claims.Login, directoryUUID, w); err != nil {
		// заголовки могли уже уйти, клиент увидит оборванный архив
		util.HandleAppError(w, err)
		return
	}
}
