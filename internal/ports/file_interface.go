package ports

import (
	"context"

	"github.com/jmoiron/sqlx"

	"mydrive-server/internal/model"
)

// FileRepository : SQL слой метаданных файлов.
// Методы поиска возвращают (nil, nil), если запись не найдена
type FileRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, file *model.File) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.File, error)
	ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.File, error)
	ListByDirectory(ctx context.Context, exec sqlx.ExtContext, directoryUUID string) ([]model.File, error)
	ListByDirectoryUUIDs(ctx context.Context, exec sqlx.ExtContext, directoryUUIDs []string) ([]model.File, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error
	DeleteByUUIDs(ctx context.Context, exec sqlx.ExtContext, uuids []string) error
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

// FileService : File Store
type FileService interface {
	ListAll(ctx context.Context, ownerUUID string) ([]model.File, error)
	ListByDirectory(ctx context.Context, userUUID, userLogin, directoryUUID string) ([]model.File, error)
	GetFile(ctx context.Context, userUUID, userLogin, fileUUID string) (*model.File, error)
	RegisterFile(ctx context.Context, file *model.File) error
	DeleteFile(ctx context.Context, ownerUUID, fileUUID string) error
}
