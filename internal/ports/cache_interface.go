package ports

import (
	"context"

	"mydrive-server/internal/model"
)

// CacheRepository : Redis слой. Кэшируются только метаданные файлов,
// права доступа вычисляются при каждом обращении заново
type CacheRepository interface {
	SetFile(ctx context.Context, file *model.File) error
	GetFile(ctx context.Context, uuid string) (*model.File, error)
	DeleteFile(ctx context.Context, uuid string) error
}
