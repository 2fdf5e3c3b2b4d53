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

type DirectoryRepository struct {
	*config.Database
}

func NewDirectoryRepository(database *config.Database) *DirectoryRepository {
	return &DirectoryRepository{database}
}

// Create : сохраняет новую директорию
func (r *DirectoryRepository) Create(ctx context.Context, exec sqlx.ExtContext, directory *model.Directory) error {
	query := `
		INSERT INTO directories (uuid, owner_uuid, parent_uuid, name)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err := exec.QueryRowxContext(ctx, query,
		directory.UUID,
		directory.OwnerUUID,
		directory.ParentUUID,
		directory.Name,
	).Scan(&directory.CreatedAt, &directory.UpdatedAt)

	if err != nil {
		return util.LogError("[DirectoryRepo] ошибка вставки директории в БД", err)
	}
	return nil
}

// GetByUUID : ищет директорию по UUID, (nil, nil) если не найдена
func (r *DirectoryRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Directory, error) {
	query := `
		SELECT uuid, owner_uuid, parent_uuid, name, created_at, updated_at
		FROM directories
		WHERE uuid = $1
	`
	var directory model.Directory
	err := sqlx.GetContext(ctx, exec, &directory, query, uuid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, util.LogError("[DirectoryRepo] не удалось найти директорию", err)
	}
	return &directory, nil
}

// ListByParent : прямые поддиректории
func (r *DirectoryRepository) ListByParent(ctx context.Context, exec sqlx.ExtContext, ownerUUID string, parentUUID string) ([]model.Directory, error) {
	query := `
		SELECT uuid, owner_uuid, parent_uuid, name, created_at, updated_at
		FROM directories
		WHERE owner_uuid = $1 AND parent_uuid = $2
		ORDER BY name ASC
	`
	directories := []model.Directory{}
	if err := sqlx.SelectContext(ctx, exec, &directories, query, ownerUUID, parentUUID); err != nil {
		return nil, util.LogError("[DirectoryRepo] не удалось получить поддиректории", err)
	}
	return directories, nil
}

// ListRoots : директории верхнего уровня владельца
func (r *DirectoryRepository) ListRoots(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.Directory, error) {
	query := `
		SELECT uuid, owner_uuid, parent_uuid, name, created_at, updated_at
		FROM directories
		WHERE owner_uuid = $1 AND parent_uuid IS NULL
		ORDER BY name ASC
	`
	directories := []model.Directory{}
	if err := sqlx.SelectContext(ctx, exec, &directories, query, ownerUUID); err != nil {
		return nil, util.LogError("[DirectoryRepo] не удалось получить корневые директории", err)
	}
	return directories, nil
}

// FindByNameAndParent : поиск директории по имени среди соседей, (nil, nil) если нет
func (r *DirectoryRepository) FindByNameAndParent(ctx context.Context, exec sqlx.ExtContext, ownerUUID, name string, parentUUID *string) (*model.Directory, error) {
	query := `
		SELECT uuid, owner_uuid, parent_uuid, name, created_at, updated_at
		FROM directories
		WHERE owner_uuid = $1 AND name = $2 AND parent_uuid IS NOT DISTINCT FROM $3
	`
	var directory model.Directory
	err := sqlx.GetContext(ctx, exec, &directory, query, ownerUUID, name, parentUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, util.LogError("[DirectoryRepo] не удалось найти директорию по имени", err)
	}
	return &directory, nil
}

// SiblingExists : есть ли сосед с таким именем (excludeUUID исключает саму директорию при переименовании)
func (r *DirectoryRepository) SiblingExists(ctx context.Context, exec sqlx.ExtContext, ownerUUID, name string, parentUUID *string, excludeUUID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM directories
			WHERE owner_uuid = $1
			  AND name = $2
			  AND parent_uuid IS NOT DISTINCT FROM $3
			  AND ($4 = '' OR uuid::text <> $4)
		)
	`
	var exists bool
	err := sqlx.GetContext(ctx, exec, &exists, query, ownerUUID, name, parentUUID, excludeUUID)
	if err != nil {
		return false, util.LogError("[DirectoryRepo] ошибка проверки имени среди соседей", err)
	}
	return exists, nil
}

// Rename : меняет имя директории
func (r *DirectoryRepository) Rename(ctx context.Context, exec sqlx.ExtContext, uuid, newName string) (*model.Directory, error) {
	query := `
		UPDATE directories
		SET name = $2, updated_at = NOW()
		WHERE uuid = $1
		RETURNING uuid, owner_uuid, parent_uuid, name, created_at, updated_at
	`
	var directory model.Directory
	err := sqlx.GetContext(ctx, exec, &directory, query, uuid, newName)
	if err != nil {
		return nil, util.LogError("[DirectoryRepo] не удалось переименовать директорию", err)
	}
	return &directory, nil
}

// CollectSubtree : собирает UUID всех директорий поддерева, включая корень.
// Рекурсивный CTE; инвариант леса гарантирует завершение
func (r *DirectoryRepository) CollectSubtree(ctx context.Context, exec sqlx.ExtContext, rootUUID string) ([]string, error) {
	query := `
		WITH RECURSIVE subtree AS (
			SELECT uuid FROM directories WHERE uuid = $1
			UNION ALL
			SELECT d.uuid
			FROM directories AS d
			INNER JOIN subtree AS s ON d.parent_uuid = s.uuid
		)
		SELECT uuid FROM subtree
	`
	var uuids []string
	if err := sqlx.SelectContext(ctx, exec, &uuids, query, rootUUID); err != nil {
		return nil, util.LogError("[DirectoryRepo] не удалось собрать поддерево", err)
	}
	return uuids, nil
}

// DeleteByUUIDs : удаляет директории одним стейтментом
func (r *DirectoryRepository) DeleteByUUIDs(ctx context.Context, exec sqlx.ExtContext, uuids []string) error {
	if len(uuids) == 0 {
		return nil
	}
	_, err := exec.ExecContext(ctx, `DELETE FROM directories WHERE uuid = ANY($1)`, pq.Array(uuids))
	if err != nil {
		return util.LogError("[DirectoryRepo] не удалось удалить директории", err)
	}
	return nil
}

// LockOwnerTree : блокирует строку владельца до конца транзакции.
// Сериализует мутации дерева одного владельца (конкурентное создание соседей с одним именем)
func (r *DirectoryRepository) LockOwnerTree(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) error {
	var uuid string
	err := sqlx.GetContext(ctx, exec, &uuid, `SELECT uuid FROM users WHERE uuid = $1 FOR UPDATE`, ownerUUID)
	if err != nil {
		return util.LogError("[DirectoryRepo] не удалось заблокировать дерево владельца", err)
	}
	return nil
}

func (r *DirectoryRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}
