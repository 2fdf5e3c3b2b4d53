package ports

import (
	"context"

	"github.com/jmoiron/sqlx"

	"mydrive-server/internal/model"
)

// DirectoryRepository : SQL слой дерева директорий.
// Методы поиска возвращают (nil, nil), если запись не найдена
type DirectoryRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, directory *model.Directory) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Directory, error)
	ListByParent(ctx context.Context, exec sqlx.ExtContext, ownerUUID string, parentUUID string) ([]model.Directory, error)
	ListRoots(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.Directory, error)
	FindByNameAndParent(ctx context.Context, exec sqlx.ExtContext, ownerUUID, name string, parentUUID *string) (*model.Directory, error)
	SiblingExists(ctx context.Context, exec sqlx.ExtContext, ownerUUID, name string, parentUUID *string, excludeUUID string) (bool, error)
	Rename(ctx context.Context, exec sqlx.ExtContext, uuid, newName string) (*model.Directory, error)
	CollectSubtree(ctx context.Context, exec sqlx.ExtContext, rootUUID string) ([]string, error)
	DeleteByUUIDs(ctx context.Context, exec sqlx.ExtContext, uuids []string) error
	LockOwnerTree(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) error
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

// DirectoryService : Directory Tree Store
type DirectoryService interface {
	CreateDirectory(ctx context.Context, ownerUUID, name string, parentUUID *string) (*model.Directory, error)
	GetContents(ctx context.Context, userUUID, userLogin, directoryUUID string) (*model.DirectoryContents, error)
	RenameDirectory(ctx context.Context, ownerUUID, directoryUUID, newName string) (*model.Directory, error)
	DeleteDirectory(ctx context.Context, ownerUUID, directoryUUID string) error
	GetRootDirectories(ctx context.Context, ownerUUID string) ([]model.Directory, error)
}

// BreadcrumbResolver : вычисляет цепочку родителей директории до корня
type BreadcrumbResolver interface {
	BuildPath(ctx context.Context, exec sqlx.ExtContext, directoryUUID string) ([]model.Breadcrumb, string, error)
}
