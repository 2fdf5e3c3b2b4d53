package ports

import (
	"context"

	"github.com/jmoiron/sqlx"

	"mydrive-server/internal/model"
)

// ShareRepository : SQL слой грантов доступа
type ShareRepository interface {
	Upsert(ctx context.Context, exec sqlx.ExtContext, item *model.SharedItem) (*model.SharedItem, error)
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.SharedItem, error)
	UpdatePermission(ctx context.Context, exec sqlx.ExtContext, uuid string, permission model.Permission) (*model.SharedItem, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error
	ListByGrantee(ctx context.Context, exec sqlx.ExtContext, granteeLogin string) ([]model.SharedItemView, error)
	ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.SharedItemView, error)
	GetGrantFor(ctx context.Context, exec sqlx.ExtContext, itemUUID, granteeLogin string) (*model.SharedItem, error)
	RevokeByItemUUIDs(ctx context.Context, exec sqlx.ExtContext, itemUUIDs []string) (int64, error)
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

// SharingEngine : единственная точка принятия решений о доступе.
// Tree Store и File Store консультируются здесь при каждом обращении,
// результат не кэшируется: гранты привязаны к позиции в дереве
type SharingEngine interface {
	ResolveEffectivePermission(ctx context.Context, exec sqlx.ExtContext, userUUID, userLogin string, itemType model.ItemType, itemUUID string) (model.Permission, error)
	RevokeForItems(ctx context.Context, exec sqlx.ExtContext, itemUUIDs []string) (int64, error)
}

// ShareService : операции шаринга поверх SharingEngine
type ShareService interface {
	SharingEngine
	Share(ctx context.Context, ownerUUID string, itemType model.ItemType, itemUUID, granteeLogin string, permission model.Permission) (*model.SharedItem, error)
	UpdateGrant(ctx context.Context, requesterUUID, grantUUID string, permission model.Permission) (*model.SharedItem, error)
	Revoke(ctx context.Context, requesterUUID, grantUUID string) error
	ListSharedWithMe(ctx context.Context, granteeLogin string) ([]model.SharedItemView, error)
	ListSharedByMe(ctx context.Context, ownerUUID string) ([]model.SharedItemView, error)
}
