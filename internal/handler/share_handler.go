package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mydrive-server/internal/model"
	"mydrive-server/internal/model/requestresponse"
	"mydrive-server/internal/ports"
	"mydrive-server/internal/security"
	"mydrive-server/internal/util"
)

type ShareHandler struct {
	ports.ShareService
}

func NewShareHandler(shareService ports.ShareService) *ShareHandler {
	return &ShareHandler{shareService}
}

// ListSharedWithMe godoc
// @Summary Объекты, которыми поделились со мной
// @Description Возвращает гранты, выданные текущему пользователю
// @Tags Sharing
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListSharedItemsResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/shared/with-me [get]
func (h *ShareHandler) ListSharedWithMe(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	shares, err := h.ShareService.ListSharedWithMe(r.Context(), claims.Login)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	writeShareList(w, shares)
}

// ListSharedByMe godoc
// @Summary Объекты, которыми я поделился
// @Description Возвращает гранты, выданные текущим пользователем
// @Tags Sharing
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListSharedItemsResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/shared/by-me [get]
func (h *ShareHandler) ListSharedByMe(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	shares, err := h.ShareService.ListSharedByMe(r.Context(), claims.UserUUID)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	writeShareList(w, shares)
}

// ShareFile godoc
// @Summary Предоставление доступа к файлу
// @Description Выдаёт или обновляет грант на файл для другого пользователя
// @Tags Sharing
// @Accept json
// @Produce json
// @Param item_id path string true "UUID файла"
// @Param body body requestresponse.ShareItemRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 201 {object} requestresponse.SharedItemResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Неизвестный получатель или шаринг самому себе"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/shared/file/{item_id} [post]
func (h *ShareHandler) ShareFile(w http.ResponseWriter, r *http.Request) {
	h.share(w, r, model.ItemTypeFile)
}

// ShareDirectory godoc
// @Summary Предоставление доступа к директории
// @Description Выдаёт или обновляет грант на директорию, доступ наследуется поддеревом
// @Tags Sharing
// @Accept json
// @Produce json
// @Param item_id path string true "UUID директории"
// @Param body body requestresponse.ShareItemRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 201 {object} requestresponse.SharedItemResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Неизвестный получатель или шаринг самому себе"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/shared/directory/{item_id} [post]
func (h *ShareHandler) ShareDirectory(w http.ResponseWriter, r *http.Request) {
	h.share(w, r, model.ItemTypeDirectory)
}

func (h *ShareHandler) share(w http.ResponseWriter, r *http.Request, itemType model.ItemType) {
	itemUUID := chi.URLParam(r, "item_id")
	if itemUUID == "" {
		util.HandleError(w, "UUID объекта обязателен", http.StatusBadRequest)
		return
	}

	var req requestresponse.ShareItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}

	permission, ok := parsePermission(req.Permission)
	if !ok {
		util.HandleError(w, "permissionLevel должен быть view или edit", http.StatusBadRequest)
		return
	}
	if req.Login == "" {
		util.HandleError(w, "username обязателен", http.StatusBadRequest)
		return
	}

	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	grant, err := h.ShareService.Share(r.Context(), claims.UserUUID, itemType, itemUUID, req.Login, permission)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(requestresponse.SharedItemResponseFromGrant(grant, claims.Login))
}

// UpdateShare godoc
// @Summary Изменение уровня доступа
// @Description Меняет уровень существующего гранта, доступно только его владельцу
// @Tags Sharing
// @Accept json
// @Produce json
// @Param share_id path string true "UUID гранта"
// @Param body body requestresponse.UpdateShareRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SharedItemResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/shared/{share_id} [put]
func (h *ShareHandler) UpdateShare(w http.ResponseWriter, r *http.Request) {
	shareUUID := chi.URLParam(r, "share_id")
	if shareUUID == "" {
		util.HandleError(w, "UUID гранта обязателен", http.StatusBadRequest)
		return
	}

	var req requestresponse.UpdateShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}

	permission, ok := parsePermission(req.Permission)
	if !ok {
		util.HandleError(w, "permissionLevel должен быть view или edit", http.StatusBadRequest)
		return
	}

	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	grant, err := h.ShareService.UpdateGrant(r.Context(), claims.UserUUID, shareUUID, permission)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.SharedItemResponseFromGrant(grant, claims.Login))
}

// RevokeShare godoc
// @Summary Отзыв гранта
// @Description Отзывает ровно один грант по его UUID, доступно только владельцу
// @Tags Sharing
// @Produce json
// @Param share_id path string true "UUID гранта"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/shared/{share_id} [delete]
func (h *ShareHandler) RevokeShare(w http.ResponseWriter, r *http.Request) {
	shareUUID := chi.URLParam(r, "share_id")
	if shareUUID == "" {
		util.HandleError(w, "UUID гранта обязателен", http.StatusBadRequest)
		return
	}

	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	if err := h.ShareService.Revoke(r.Context(), claims.UserUUID, shareUUID); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "доступ отозван"})
}

func parsePermission(raw string) (model.Permission, bool) {
	switch model.Permission(raw) {
	case model.PermissionView:
		return model.PermissionView, true
	case model.PermissionEdit:
		return model.PermissionEdit, true
	default:
		return model.PermissionNone, false
	}
}

func writeShareList(w http.ResponseWriter, shares []model.SharedItemView) {
	resp := requestresponse.ListSharedItemsResponse{Count: len(shares)}
	resp.Data.Shares = make([]requestresponse.SharedItemResponse, 0, len(shares))
	for i := range shares {
		resp.Data.Shares = append(resp.Data.Shares, requestresponse.SharedItemResponseFromModel(&shares[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
