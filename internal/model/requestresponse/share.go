package requestresponse

import (
	"time"

	"mydrive-server/internal/model"
)

// ShareItemRequest : тело запроса на предоставление доступа
type ShareItemRequest struct {
	Login      string `json:"username" example:"user2"`
	Permission string `json:"permissionLevel" example:"view"`
}

// UpdateShareRequest : тело запроса на изменение уровня доступа
type UpdateShareRequest struct {
	Permission string `json:"permissionLevel" example:"edit"`
}

// SharedItemResponse : грант для JSON-ответа
type SharedItemResponse struct {
	UUID         string `json:"id"`
	ItemType     string `json:"item_type" example:"directory"`
	ItemUUID     string `json:"item_id"`
	ItemName     string `json:"item_name" example:"Reports"`
	OwnerLogin   string `json:"owner" example:"user1"`
	GranteeLogin string `json:"shared_with" example:"user2"`
	Permission   string `json:"permissionLevel" example:"view"`
	CreatedAt    string `json:"created" example:"2026-08-23T12:34:56Z"`
}

// SharedItemResponseFromModel : конвертирует model.SharedItemView в SharedItemResponse
func SharedItemResponseFromModel(view *model.SharedItemView) SharedItemResponse {
	return SharedItemResponse{
		UUID:         view.UUID,
		ItemType:     string(view.ItemType),
		ItemUUID:     view.ItemUUID,
		ItemName:     view.ItemName,
		OwnerLogin:   view.OwnerLogin,
		GranteeLogin: view.GranteeLogin,
		Permission:   string(view.Permission),
		CreatedAt:    view.CreatedAt.Format(time.RFC3339),
	}
}

// SharedItemResponseFromGrant : конвертирует model.SharedItem в SharedItemResponse.
// Имя объекта в гранте не хранится, логин владельца известен вызывающей стороне
func SharedItemResponseFromGrant(item *model.SharedItem, ownerLogin string) SharedItemResponse {
	return SharedItemResponse{
		UUID:         item.UUID,
		ItemType:     string(item.ItemType),
		ItemUUID:     item.ItemUUID,
		OwnerLogin:   ownerLogin,
		GranteeLogin: item.GranteeLogin,
		Permission:   string(item.Permission),
		CreatedAt:    item.CreatedAt.Format(time.RFC3339),
	}
}

// ListSharedItemsResponse : ответ API со списком грантов
type ListSharedItemsResponse struct {
	Data struct {
		Shares []SharedItemResponse `json:"shares"`
	} `json:"data"`
	Count int `json:"count" example:"2"`
}
