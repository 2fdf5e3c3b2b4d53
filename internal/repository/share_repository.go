package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"mydrive-server/config"
	"mydrive-server/internal/model"
	"mydrive-server/internal/util"
)

type ShareRepository struct {
	*config.Database
}

func NewShareRepository(database *config.Database) *ShareRepository {
	return &ShareRepository{database}
}

// Upsert : создаёт грант или обновляет уровень доступа существующего.
// На пару (owner, item, grantee) всегда не больше одной строки
func (r *ShareRepository) Upsert(ctx context.Context, exec sqlx.ExtContext, item *model.SharedItem) (*model.SharedItem, error) {
	query := `
		INSERT INTO shared_items (uuid, owner_uuid, grantee_login, item_type, item_uuid, permission, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (owner_uuid, item_uuid, grantee_login) DO UPDATE
		SET permission = EXCLUDED.permission
		RETURNING uuid, owner_uuid, grantee_login, item_type, item_uuid, permission, created_at
	`
	var saved model.SharedItem
	err := sqlx.GetContext(ctx, exec, &saved, query,
		item.UUID,
		item.OwnerUUID,
		item.GranteeLogin,
		item.ItemType,
		item.ItemUUID,
		item.Permission,
	)
	if err != nil {
		return nil, util.LogError("[ShareRepo] не удалось сохранить грант", err)
	}
	return &saved, nil
}

// GetByUUID : ищет грант по UUID, (nil, nil) если не найден
func (r *ShareRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.SharedItem, error) {
	query := `
		SELECT uuid, owner_uuid, grantee_login, item_type, item_uuid, permission, created_at
		FROM shared_items
		WHERE uuid = $1
	`
	var item model.SharedItem
	err := sqlx.GetContext(ctx, exec, &item, query, uuid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, util.LogError("[ShareRepo] не удалось найти грант", err)
	}
	return &item, nil
}

// UpdatePermission : меняет уровень доступа гранта
func (r *ShareRepository) UpdatePermission(ctx context.Context, exec sqlx.ExtContext, uuid string, permission model.Permission) (*model.SharedItem, error) {
	query := `
		UPDATE shared_items
		SET permission = $2
		WHERE uuid = $1
		RETURNING uuid, owner_uuid, grantee_login, item_type, item_uuid, permission, created_at
	`
	var item model.SharedItem
	err := sqlx.GetContext(ctx, exec, &item, query, uuid, permission)
	if err != nil {
		return nil, util.LogError("[ShareRepo] не удалось обновить грант", err)
	}
	return &item, nil
}

// Delete : удаляет ровно один грант по его UUID
func (r *ShareRepository) Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	_, err := exec.ExecContext(ctx, `DELETE FROM shared_items WHERE uuid = $1`, uuid)
	if err != nil {
		return util.LogError("[ShareRepo] не удалось удалить грант", err)
	}
	return nil
}

// ListByGrantee : гранты, выданные пользователю, с именем объекта и логином владельца
func (r *ShareRepository) ListByGrantee(ctx context.Context, exec sqlx.ExtContext, granteeLogin string) ([]model.SharedItemView, error) {
	query := `
		SELECT s.uuid, s.owner_uuid, s.grantee_login, s.item_type, s.item_uuid, s.permission, s.created_at,
		       COALESCE(d.name, f.filename_original, '') AS item_name,
		       u.login AS owner_login
		FROM shared_items AS s
		INNER JOIN users AS u ON u.uuid = s.owner_uuid
		LEFT JOIN directories AS d ON s.item_type = 'directory' AND d.uuid = s.item_uuid
		LEFT JOIN files AS f ON s.item_type = 'file' AND f.uuid = s.item_uuid
		WHERE s.grantee_login = $1
		ORDER BY s.created_at DESC
	`
	views := []model.SharedItemView{}
	if err := sqlx.SelectContext(ctx, exec, &views, query, granteeLogin); err != nil {
		return nil, util.LogError("[ShareRepo] не удалось получить гранты пользователя", err)
	}
	return views, nil
}

// ListByOwner : гранты, выданные владельцем
func (r *ShareRepository) ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.SharedItemView, error) {
	query := `
		SELECT s.uuid, s.owner_uuid, s.grantee_login, s.item_type, s.item_uuid, s.permission, s.created_at,
		       COALESCE(d.name, f.filename_original, '') AS item_name,
		       u.login AS owner_login
		FROM shared_items AS s
		INNER JOIN users AS u ON u.uuid = s.owner_uuid
		LEFT JOIN directories AS d ON s.item_type = 'directory' AND d.uuid = s.item_uuid
		LEFT JOIN files AS f ON s.item_type = 'file' AND f.uuid = s.item_uuid
		WHERE s.owner_uuid = $1
		ORDER BY s.created_at DESC
	`
	views := []model.SharedItemView{}
	if err := sqlx.SelectContext(ctx, exec, &views, query, ownerUUID); err != nil {
		return nil, util.LogError("[ShareRepo] не удалось получить гранты владельца", err)
	}
	return views, nil
}

// GetGrantFor : активный грант пользователя на объект, (nil, nil) если нет
func (r *ShareRepository) GetGrantFor(ctx context.Context, exec sqlx.ExtContext, itemUUID, granteeLogin string) (*model.SharedItem, error) {
	query := `
		SELECT uuid, owner_uuid, grantee_login, item_type, item_uuid, permission, created_at
		FROM shared_items
		WHERE item_uuid = $1 AND grantee_login = $2
	`
	var item model.SharedItem
	err := sqlx.GetContext(ctx, exec, &item, query, itemUUID, granteeLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, util.LogError("[ShareRepo] ошибка поиска гранта", err)
	}
	return &item, nil
}

// RevokeByItemUUIDs : отзывает все гранты на перечисленные объекты.
// Вызывается из каскадного удаления в той же транзакции, что и удаление узлов
func (r *ShareRepository) RevokeByItemUUIDs(ctx context.Context, exec sqlx.ExtContext, itemUUIDs []string) (int64, error) {
	if len(itemUUIDs) == 0 {
		return 0, nil
	}
	result, err := exec.ExecContext(ctx, `DELETE FROM shared_items WHERE item_uuid = ANY($1)`, pq.Array(itemUUIDs))
	if err != nil {
		return 0, util.LogError("[ShareRepo] не удалось отозвать гранты поддерева", err)
	}
	revoked, err := result.RowsAffected()
	if err != nil {
		return 0, util.LogError("[ShareRepo] не удалось получить число отозванных грантов", err)
	}
	return revoked, nil
}

func (r *ShareRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}
