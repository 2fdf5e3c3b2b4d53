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

type FileRepository struct {
	*config.Database
}

func NewFileRepository(database *config.Database) *FileRepository {
	return &FileRepository{database}
}

// Create : сохраняет метаданные нового файла
func (r *FileRepository) Create(ctx context.Context, exec sqlx.ExtContext, file *model.File) error {
	query := `
		INSERT INTO files (uuid, owner_uuid, directory_uuid, filename_original, mime_type, size_bytes, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := exec.QueryRowxContext(ctx, query,
		file.UUID,
		file.OwnerUUID,
		file.DirectoryUUID,
		file.FilenameOriginal,
		file.MimeType,
		file.SizeBytes,
		file.StoragePath,
	).Scan(&file.CreatedAt, &file.UpdatedAt)

	if err != nil {
		return util.LogError("[FileRepo] ошибка вставки файла в БД", err)
	}
	return nil
}

// GetByUUID : ищет файл по UUID, (nil, nil) если не найден
func (r *FileRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.File, error) {
	query := `
		SELECT uuid, owner_uuid, directory_uuid, filename_original, mime_type, size_bytes, storage_path, created_at, updated_at
		FROM files
		WHERE uuid = $1
	`
	var file model.File
	err := sqlx.GetContext(ctx, exec, &file, query, uuid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, util.LogError("[FileRepo] не удалось найти файл", err)
	}
	return &file, nil
}

// ListByOwner : все файлы владельца, включая корневые
func (r *FileRepository) ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.File, error) {
	query := `
		SELECT uuid, owner_uuid, directory_uuid, filename_original, mime_type, size_bytes, storage_path, created_at, updated_at
		FROM files
		WHERE owner_uuid = $1
		ORDER BY created_at DESC
	`
	files := []model.File{}
	if err := sqlx.SelectContext(ctx, exec, &files, query, ownerUUID); err != nil {
		return nil, util.LogError("[FileRepo] не удалось получить список файлов", err)
	}
	return files, nil
}

// ListByDirectory : файлы непосредственно внутри директории
func (r *FileRepository) ListByDirectory(ctx context.Context, exec sqlx.ExtContext, directoryUUID string) ([]model.File, error) {
	query := `
		SELECT uuid, owner_uuid, directory_uuid, filename_original, mime_type, size_bytes, storage_path, created_at, updated_at
		FROM files
		WHERE directory_uuid = $1
		ORDER BY filename_original ASC
	`
	files := []model.File{}
	if err := sqlx.SelectContext(ctx, exec, &files, query, directoryUUID); err != nil {
		return nil, util.LogError("[FileRepo] не удалось получить файлы директории", err)
	}
	return files, nil
}

// ListByDirectoryUUIDs : файлы во всех перечисленных директориях (для каскадного удаления и архива)
func (r *FileRepository) ListByDirectoryUUIDs(ctx context.Context, exec sqlx.ExtContext, directoryUUIDs []string) ([]model.File, error) {
	if len(directoryUUIDs) == 0 {
		return []model.File{}, nil
	}
	query := `
		SELECT uuid, owner_uuid, directory_uuid, filename_original, mime_type, size_bytes, storage_path, created_at, updated_at
		FROM files
		WHERE directory_uuid = ANY($1)
	`
	files := []model.File{}
	if err := sqlx.SelectContext(ctx, exec, &files, query, pq.Array(directoryUUIDs)); err != nil {
		return nil, util.LogError("[FileRepo] не удалось получить файлы поддерева", err)
	}
	return files, nil
}

// Delete : удаляет файл по UUID
func (r *FileRepository) Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	_, err := exec.ExecContext(ctx, `DELETE FROM files WHERE uuid = $1`, uuid)
	if err != nil {
		return util.LogError("[FileRepo] не удалось удалить файл", err)
	}
	return nil
}

// DeleteByUUIDs : удаляет файлы одним стейтментом
func (r *FileRepository) DeleteByUUIDs(ctx context.Context, exec sqlx.ExtContext, uuids []string) error {
	if len(uuids) == 0 {
		return nil
	}
	_, err := exec.ExecContext(ctx, `DELETE FROM files WHERE uuid = ANY($1)`, pq.Array(uuids))
	if err != nil {
		return util.LogError("[FileRepo] не удалось удалить файлы", err)
	}
	return nil
}

func (r *FileRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}
