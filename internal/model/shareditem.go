package model

import "time"

type ItemType string

const (
	ItemTypeFile      ItemType = "file"
	ItemTypeDirectory ItemType = "directory"
)

type Permission string

const (
	PermissionNone Permission = "none"
	PermissionView Permission = "view"
	PermissionEdit Permission = "edit"
)

// Covers : true, если уровень доступа не ниже требуемого
func (p Permission) Covers(required Permission) bool {
	if p == PermissionEdit {
		return required == PermissionView || required == PermissionEdit
	}
	if p == PermissionView {
		return required == PermissionView
	}
	return false
}

// SharedItem : грант доступа одного пользователя к файлу или директории другого
type SharedItem struct {
	UUID         string     `db:"uuid" json:"uuid"`
	OwnerUUID    string     `db:"owner_uuid" json:"owner_uuid"`
	GranteeLogin string     `db:"grantee_login" json:"grantee_login"`
	ItemType     ItemType   `db:"item_type" json:"item_type"`
	ItemUUID     string     `db:"item_uuid" json:"item_uuid"`
	Permission   Permission `db:"permission" json:"permission"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// SharedItemView : грант, дополненный именем объекта и логином владельца.
// Собирается на лету, в БД не хранится
type SharedItemView struct {
	SharedItem
	ItemName   string `db:"item_name" json:"item_name"`
	OwnerLogin string `db:"owner_login" json:"owner_login"`
}
