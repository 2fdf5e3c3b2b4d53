package service_test

import (
	"context"
	"io"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"mydrive-server/internal/model"
)

// fakeExec : заглушка транзакции, методы не вызываются при замоканных репозиториях
var fakeExec sqlx.ExtContext = (*sqlx.DB)(nil)

func newMockTX() (sqlx.ExtContext, func() error, func() error, error) {
	return fakeExec, func() error { return nil }, func() error { return nil }, nil
}

type MockDirectoryRepository struct{ mock.Mock }

func (m *MockDirectoryRepository) Create(ctx context.Context, exec sqlx.ExtContext, directory *model.Directory) error {
	return m.Called(ctx, exec, directory).Error(0)
}

func (m *MockDirectoryRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Directory, error) {
	args := m.Called(ctx, exec, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Directory), args.Error(1)
}

func (m *MockDirectoryRepository) ListByParent(ctx context.Context, exec sqlx.ExtContext, ownerUUID string, parentUUID string) ([]model.Directory, error) {
	args := m.Called(ctx, exec, ownerUUID, parentUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Directory), args.Error(1)
}

func (m *MockDirectoryRepository) ListRoots(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.Directory, error) {
	args := m.Called(ctx, exec, ownerUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Directory), args.Error(1)
}

func (m *MockDirectoryRepository) FindByNameAndParent(ctx context.Context, exec sqlx.ExtContext, ownerUUID, name string, parentUUID *string) (*model.Directory, error) {
	args := m.Called(ctx, exec, ownerUUID, name, parentUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Directory), args.Error(1)
}

func (m *MockDirectoryRepository) SiblingExists(ctx context.Context, exec sqlx.ExtContext, ownerUUID, name string, parentUUID *string, excludeUUID string) (bool, error) {
	args := m.Called(ctx, exec, ownerUUID, name, parentUUID, excludeUUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDirectoryRepository) Rename(ctx context.Context, exec sqlx.ExtContext, uuid, newName string) (*model.Directory, error) {
	args := m.Called(ctx, exec, uuid, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Directory), args.Error(1)
}

func (m *MockDirectoryRepository) CollectSubtree(ctx context.Context, exec sqlx.ExtContext, rootUUID string) ([]string, error) {
	args := m.Called(ctx, exec, rootUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDirectoryRepository) DeleteByUUIDs(ctx context.Context, exec sqlx.ExtContext, uuids []string) error {
	return m.Called(ctx, exec, uuids).Error(0)
}

func (m *MockDirectoryRepository) LockOwnerTree(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) error {
	return m.Called(ctx, exec, ownerUUID).Error(0)
}

func (m *MockDirectoryRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	m.Called(ctx)
	return newMockTX()
}

type MockFileRepository struct{ mock.Mock }

func (m *MockFileRepository) Create(ctx context.Context, exec sqlx.ExtContext, file *model.File) error {
	return m.Called(ctx, exec, file).Error(0)
}

func (m *MockFileRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.File, error) {
	args := m.Called(ctx, exec, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileRepository) ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.File, error) {
	args := m.Called(ctx, exec, ownerUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.File), args.Error(1)
}

func (m *MockFileRepository) ListByDirectory(ctx context.Context, exec sqlx.ExtContext, directoryUUID string) ([]model.File, error) {
	args := m.Called(ctx, exec, directoryUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.File), args.Error(1)
}

func (m *MockFileRepository) ListByDirectoryUUIDs(ctx context.Context, exec sqlx.ExtContext, directoryUUIDs []string) ([]model.File, error) {
	args := m.Called(ctx, exec, directoryUUIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.File), args.Error(1)
}

func (m *MockFileRepository) Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	return m.Called(ctx, exec, uuid).Error(0)
}

func (m *MockFileRepository) DeleteByUUIDs(ctx context.Context, exec sqlx.ExtContext, uuids []string) error {
	return m.Called(ctx, exec, uuids).Error(0)
}

func (m *MockFileRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	m.Called(ctx)
	return newMockTX()
}

type MockShareRepository struct{ mock.Mock }

func (m *MockShareRepository) Upsert(ctx context.Context, exec sqlx.ExtContext, item *model.SharedItem) (*model.SharedItem, error) {
	args := m.Called(ctx, exec, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SharedItem), args.Error(1)
}

func (m *MockShareRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.SharedItem, error) {
	args := m.Called(ctx, exec, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SharedItem), args.Error(1)
}

func (m *MockShareRepository) UpdatePermission(ctx context.Context, exec sqlx.ExtContext, uuid string, permission model.Permission) (*model.SharedItem, error) {
	args := m.Called(ctx, exec, uuid, permission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SharedItem), args.Error(1)
}

func (m *MockShareRepository) Delete(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	return m.Called(ctx, exec, uuid).Error(0)
}

func (m *MockShareRepository) ListByGrantee(ctx context.Context, exec sqlx.ExtContext, granteeLogin string) ([]model.SharedItemView, error) {
	args := m.Called(ctx, exec, granteeLogin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SharedItemView), args.Error(1)
}

func (m *MockShareRepository) ListByOwner(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.SharedItemView, error) {
	args := m.Called(ctx, exec, ownerUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SharedItemView), args.Error(1)
}

func (m *MockShareRepository) GetGrantFor(ctx context.Context, exec sqlx.ExtContext, itemUUID, granteeLogin string) (*model.SharedItem, error) {
	args := m.Called(ctx, exec, itemUUID, granteeLogin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SharedItem), args.Error(1)
}

func (m *MockShareRepository) RevokeByItemUUIDs(ctx context.Context, exec sqlx.ExtContext, itemUUIDs []string) (int64, error) {
	args := m.Called(ctx, exec, itemUUIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShareRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	m.Called(ctx)
	return newMockTX()
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	args := m.Called(ctx, exec, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error) {
	args := m.Called(ctx, exec, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByLogin(ctx context.Context, exec sqlx.ExtContext, login string) (*model.User, error) {
	args := m.Called(ctx, exec, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Exists(ctx context.Context, exec sqlx.ExtContext, uuid string) (bool, error) {
	args := m.Called(ctx, exec, uuid)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) LoginExists(ctx context.Context, exec sqlx.ExtContext, login string) (bool, error) {
	args := m.Called(ctx, exec, login)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AddStorageUsed(ctx context.Context, exec sqlx.ExtContext, uuid string, deltaBytes int64) error {
	return m.Called(ctx, exec, uuid, deltaBytes).Error(0)
}

type MockCacheRepository struct{ mock.Mock }

func (m *MockCacheRepository) SetFile(ctx context.Context, file *model.File) error {
	return m.Called(ctx, file).Error(0)
}

func (m *MockCacheRepository) GetFile(ctx context.Context, uuid string) (*model.File, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockCacheRepository) DeleteFile(ctx context.Context, uuid string) error {
	return m.Called(ctx, uuid).Error(0)
}

type MockS3Storage struct{ mock.Mock }

func (m *MockS3Storage) GeneratePresignedGetURL(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

func (m *MockS3Storage) GeneratePresignedPutURL(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

func (m *MockS3Storage) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockS3Storage) DeleteObject(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockSharingEngine struct{ mock.Mock }

func (m *MockSharingEngine) ResolveEffectivePermission(ctx context.Context, exec sqlx.ExtContext, userUUID, userLogin string, itemType model.ItemType, itemUUID string) (model.Permission, error) {
	args := m.Called(ctx, exec, userUUID, userLogin, itemType, itemUUID)
	return args.Get(0).(model.Permission), args.Error(1)
}

func (m *MockSharingEngine) RevokeForItems(ctx context.Context, exec sqlx.ExtContext, itemUUIDs []string) (int64, error) {
	args := m.Called(ctx, exec, itemUUIDs)
	return args.Get(0).(int64), args.Error(1)
}

type MockBreadcrumbResolver struct{ mock.Mock }

func (m *MockBreadcrumbResolver) BuildPath(ctx context.Context, exec sqlx.ExtContext, directoryUUID string) ([]model.Breadcrumb, string, error) {
	args := m.Called(ctx, exec, directoryUUID)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]model.Breadcrumb), args.String(1), args.Error(2)
}

type MockFileService struct{ mock.Mock }

func (m *MockFileService) ListAll(ctx context.Context, ownerUUID string) ([]model.File, error) {
	args := m.Called(ctx, ownerUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.File), args.Error(1)
}

func (m *MockFileService) ListByDirectory(ctx context.Context, userUUID, userLogin, directoryUUID string) ([]model.File, error) {
	args := m.Called(ctx, userUUID, userLogin, directoryUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.File), args.Error(1)
}

func (m *MockFileService) GetFile(ctx context.Context, userUUID, userLogin, fileUUID string) (*model.File, error) {
	args := m.Called(ctx, userUUID, userLogin, fileUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileService) RegisterFile(ctx context.Context, file *model.File) error {
	return m.Called(ctx, file).Error(0)
}

func (m *MockFileService) DeleteFile(ctx context.Context, ownerUUID, fileUUID string) error {
	return m.Called(ctx, ownerUUID, fileUUID).Error(0)
}
