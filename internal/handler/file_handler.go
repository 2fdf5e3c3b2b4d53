package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mydrive-server/internal/model"
	"mydrive-server/internal/model/requestresponse"
	"mydrive-server/internal/ports"
	"mydrive-server/internal/security"
	"mydrive-server/internal/util"
)

// maxMultipartMemory : часть multipart-формы, удерживаемая в памяти,
// остальное уходит во временные файлы
const maxMultipartMemory = 32 << 20

type FileHandler struct {
	ports.FileService
	ports.TransferService
}

func NewFileHandler(fileService ports.FileService, transferService ports.TransferService) *FileHandler {
	return &FileHandler{fileService, transferService}
}

// ListFiles godoc
// @Summary Все файлы пользователя
// @Description Возвращает список всех файлов текущего пользователя
// @Tags Files
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListFilesResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/files [get]
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	files, err := h.FileService.ListAll(r.Context(), claims.UserUUID)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	writeFileList(w, files)
}

// ListFilesByDirectory godoc
// @Summary Файлы директории
// @Description Возвращает файлы директории после проверки доступа
// @Tags Files
// @Produce json
// @Param dir_id path string true "UUID директории"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListFilesResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/files/directory/{dir_id} [get]
func (h *FileHandler) ListFilesByDirectory(w http.ResponseWriter, r *http.Request) {
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

	files, err := h.FileService.ListByDirectory(r.Context(), claims.UserUUID, claims.Login, directoryUUID)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	writeFileList(w, files)
}

// GetFile godoc
// @Summary Метаданные файла
// @Description Возвращает метаданные файла после проверки доступа
// @Tags Files
// @Produce json
// @Param file_id path string true "UUID файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UploadFileResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/files/{file_id} [get]
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	fileUUID := chi.URLParam(r, "file_id")
	if fileUUID == "" {
		util.HandleError(w, "UUID файла обязателен", http.StatusBadRequest)
		return
	}

	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	file, err := h.FileService.GetFile(r.Context(), claims.UserUUID, claims.Login, fileUUID)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	resp := requestresponse.UploadFileResponse{Data: requestresponse.FileResponseFromModel(file)}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// UploadFile godoc
// @Summary Загрузка файла
// @Description Принимает multipart-форму, передаёт байты в хранилище и регистрирует метаданные
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл"
// @Param directoryId formData string false "UUID целевой директории"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 201 {object} requestresponse.UploadFileResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Недопустимая директория или форма"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/files/upload [post]
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	formFile, header, err := r.FormFile("file")
	if err != nil {
		util.HandleError(w, "файл не найден в запросе", http.StatusBadRequest)
		return
	}
	defer formFile.Close()

	var directoryUUID *string
	if v := r.FormValue("directoryId"); v != "" {
		directoryUUID = &v
	}

	mimeType := header.Header.Get("Content-Type")

	file, err := h.TransferService.Upload(r.Context(), claims.UserUUID, directoryUUID, header.Filename, mimeType, header.Size, formFile)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	resp := requestresponse.UploadFileResponse{Data: requestresponse.FileResponseFromModel(file)}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// UploadFolder godoc
// @Summary Загрузка папки
// @Description Принимает батч файлов с относительными путями, создаёт недостающие
// директории и возвращает пер-элементные результаты
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Файлы батча"
// @Param paths formData string true "Относительные пути, по одному на файл"
// @Param directoryId formData string false "UUID корневой директории батча"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 207 {object} requestresponse.FolderUploadResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/files/upload-folder [post]
func (h *FileHandler) UploadFolder(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	paths := r.MultipartForm.Value["paths"]
	if len(fileHeaders) == 0 {
		util.HandleError(w, "батч не содержит файлов", http.StatusBadRequest)
		return
	}
	if len(paths) != len(fileHeaders) {
		util.HandleError(w, "количество путей не совпадает с количеством файлов", http.StatusBadRequest)
		return
	}

	var parentUUID *string
	if v := r.FormValue("directoryId"); v != "" {
		parentUUID = &v
	}

	entries := make([]model.FolderUploadEntry, 0, len(fileHeaders))
	opened := make([]io.Closer, 0, len(fileHeaders))
	defer func() {
		for _, c := range opened {
			c.Close()
		}
	}()

	for i, header := range fileHeaders {
		f, err := header.Open()
		if err != nil {
			util.HandleError(w, "ошибка чтения файла из формы", http.StatusBadRequest)
			return
		}
		opened = append(opened, f)

		entries = append(entries, model.FolderUploadEntry{
			RelativePath: paths[i],
			Reader:       f,
			SizeHint:     header.Size,
			MimeType:     header.Header.Get("Content-Type"),
		})
	}

	results := h.TransferService.UploadFolder(r.Context(), claims.UserUUID, parentUUID, entries)

	resp := requestresponse.FolderUploadResponse{
		Results: make([]requestresponse.FolderUploadEntryResult, 0, len(results)),
	}
	for _, result := range results {
		entry := requestresponse.FolderUploadEntryResult{RelativePath: result.RelativePath}
		if result.File != nil {
			converted := requestresponse.FileResponseFromModel(result.File)
			entry.File = &converted
		}
		if result.Err != nil {
			entry.Error = result.Err.Error()
		}
		resp.Results = append(resp.Results, entry)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMultiStatus)
	json.NewEncoder(w).Encode(resp)
}

// DownloadFile godoc
// @Summary Скачивание файла
// @Description Отдаёт содержимое файла потоком после проверки доступа
// @Tags Files
// @Produce application/octet-stream
// @Param file_id path string true "UUID файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {file} binary "содержимое файла"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/files/{file_id}/download [get]
func (h *FileHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	fileUUID := chi.URLParam(r, "file_id")
	if fileUUID == "" {
		util.HandleError(w, "UUID файла обязателен", http.StatusBadRequest)
		return
	}

	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	file, body, err := h.TransferService.Download(r.Context(), claims.UserUUID, claims.Login, fileUUID)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", file.MimeType)
	w.Header().Set("Content-Length", strconv.FormatInt(file.SizeBytes, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(file.FilenameOriginal)))

	if _, err := io.Copy(w, body); err != nil {
		log.Printf("[FileHandler] обрыв передачи файла %s: %v", fileUUID, err)
	}
}

// PresignDownloadFile godoc
// @Summary Pre-signed ссылка на скачивание
// @Description Выдаёт временную ссылку на прямое скачивание из хранилища после проверки доступа
// @Tags Files
// @Produce json
// @Param file_id path string true "UUID файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.PresignedURLResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/files/{file_id}/presign [get]
func (h *FileHandler) PresignDownloadFile(w http.ResponseWriter, r *http.Request) {
	fileUUID := chi.URLParam(r, "file_id")
	if fileUUID == "" {
		util.HandleError(w, "UUID файла обязателен", http.StatusBadRequest)
		return
	}

	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	getURL, err := h.TransferService.PresignDownload(r.Context(), claims.UserUUID, claims.Login, fileUUID)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.PresignedURLResponse{URL: getURL})
}

// DeleteFile godoc
// @Summary Удаление файла
// @Description Удаляет файл владельца и отзывает гранты на него
// @Tags Files
// @Produce json
// @Param file_id path string true "UUID файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/files/{file_id} [delete]
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	fileUUID := chi.URLParam(r, "file_id")
	if fileUUID == "" {
		util.HandleError(w, "UUID файла обязателен", http.StatusBadRequest)
		return
	}

	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	if err := h.FileService.DeleteFile(r.Context(), claims.UserUUID, fileUUID); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "файл удалён"})
}

func writeFileList(w http.ResponseWriter, files []model.File) {
	resp := requestresponse.ListFilesResponse{Count: len(files)}
	resp.Data.Files = make([]requestresponse.FileResponse, 0, len(files))
	for i := range files {
		resp.Data.Files = append(resp.Data.Files, requestresponse.FileResponseFromModel(&files[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
