package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mydrive-server/config"
	"mydrive-server/internal/apperror"
	"mydrive-server/internal/model"
	"mydrive-server/internal/service"
)

type directoryServiceMocks struct {
	directoryRepo *MockDirectoryRepository
	fileRepo      *MockFileRepository
	userRepo      *MockUserRepository
	sharingEngine *MockSharingEngine
	breadcrumbs   *MockBreadcrumbResolver
	cacheRepo     *MockCacheRepository
	storage       *MockS3Storage
}

func newDirectoryService() (*service.DirectoryService, *directoryServiceMocks) {
	m := &directoryServiceMocks{
		directoryRepo: new(MockDirectoryRepository),
		fileRepo:      new(MockFileRepository),
		userRepo:      new(MockUserRepository),
		sharingEngine: new(MockSharingEngine),
		breadcrumbs:   new(MockBreadcrumbResolver),
		cacheRepo:     new(MockCacheRepository),
		storage:       new(MockS3Storage),
	}
	svc := service.NewDirectoryService(
		m.directoryRepo, m.fileRepo, m.userRepo, m.sharingEngine,
		m.breadcrumbs, m.cacheRepo, m.storage, &config.Database{},
	)
	return svc, m
}

func TestDirectoryService_CreateDirectory(t *testing.T) {
	ctx := context.Background()
	ownerUUID := "owner-1"

	t.Run("duplicate sibling name", func(t *testing.T) {
		svc, m := newDirectoryService()
		m.directoryRepo.On("BeginTX", mock.Anything).Return()
		m.directoryRepo.On("LockOwnerTree", mock.Anything, mock.Anything, ownerUUID).Return(nil)
		m.directoryRepo.On("SiblingExists", mock.Anything, mock.Anything, ownerUUID, "Reports", (*string)(nil), "").Return(true, nil)

		_, err := svc.CreateDirectory(ctx, ownerUUID, "Reports", nil)
		assert.ErrorIs(t, err, apperror.ErrDuplicateName)
		m.directoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("foreign parent", func(t *testing.T) {
		svc, m := newDirectoryService()
		parentUUID := "dir-foreign"
		m.directoryRepo.On("BeginTX", mock.Anything).Return()
		m.directoryRepo.On("LockOwnerTree", mock.Anything, mock.Anything, ownerUUID).Return(nil)
		m.directoryRepo.On("GetByUUID", mock.Anything, mock.Anything, parentUUID).Return(&model.Directory{UUID: parentUUID, OwnerUUID: "somebody-else"}, nil)

		_, err := svc.CreateDirectory(ctx, ownerUUID, "Reports", &parentUUID)
		assert.ErrorIs(t, err, apperror.ErrInvalidParent)
	})

	t.Run("missing parent", func(t *testing.T) {
		svc, m := newDirectoryService()
		parentUUID := "dir-404"
		m.directoryRepo.On("BeginTX", mock.Anything).Return()
		m.directoryRepo.On("LockOwnerTree", mock.Anything, mock.Anything, ownerUUID).Return(nil)
		m.directoryRepo.On("GetByUUID", mock.Anything, mock.Anything, parentUUID).Return(nil, nil)

		_, err := svc.CreateDirectory(ctx, ownerUUID, "Reports", &parentUUID)
		assert.ErrorIs(t, err, apperror.ErrInvalidParent)
	})

	t.Run("created", func(t *testing.T) {
		svc, m := newDirectoryService()
		m.directoryRepo.On("BeginTX", mock.Anything).Return()
		m.directoryRepo.On("LockOwnerTree", mock.Anything, mock.Anything, ownerUUID).Return(nil)
		m.directoryRepo.On("SiblingExists", mock.Anything, mock.Anything, ownerUUID, "Reports", (*string)(nil), "").Return(false, nil)
		m.directoryRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(d *model.Directory) bool {
			return d.Name == "Reports" && d.OwnerUUID == ownerUUID && d.ParentUUID == nil && d.UUID != ""
		})).Return(nil)

		directory, err := svc.CreateDirectory(ctx, ownerUUID, "Reports", nil)
		require.NoError(t, err)
		assert.Equal(t, "Reports", directory.Name)
		m.directoryRepo.AssertExpectations(t)
	})
}

func TestDirectoryService_GetContents(t *testing.T) {
	ctx := context.Background()
	ownerUUID := "owner-1"
	directoryUUID := "dir-1"
	directory := &model.Directory{UUID: directoryUUID, OwnerUUID: ownerUUID, Name: "Reports"}

	t.Run("inaccessible looks like missing", func(t *testing.T) {
		svc, m := newDirectoryService()
		m.directoryRepo.On("BeginTX", mock.Anything).Return()
		m.directoryRepo.On("GetByUUID", mock.Anything, mock.Anything, directoryUUID).Return(directory, nil)
		m.sharingEngine.On("ResolveEffectivePermission", mock.Anything, mock.Anything, "stranger", "stranger", model.ItemTypeDirectory, directoryUUID).
			Return(model.PermissionNone, nil)

		_, err := svc.GetContents(ctx, "stranger", "stranger", directoryUUID)
		// чужой недоступный объект неотличим от несуществующего
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("owner sees contents with path", func(t *testing.T) {
		svc, m := newDirectoryService()
		m.directoryRepo.On("BeginTX", mock.Anything).Return()
		m.directoryRepo.On("GetByUUID", mock.Anything, mock.Anything, directoryUUID).Return(directory, nil)
		m.directoryRepo.On("ListByParent", mock.Anything, mock.Anything, ownerUUID, directoryUUID).
			Return([]model.Directory{{UUID: "dir-2", Name: "Q1"}}, nil)
		m.fileRepo.On("ListByDirectory", mock.Anything, mock.Anything, directoryUUID).
			Return([]model.File{{UUID: "file-1", FilenameOriginal: "report.pdf"}}, nil)
		m.breadcrumbs.On("BuildPath", mock.Anything, mock.Anything, directoryUUID).
			Return([]model.Breadcrumb{{UUID: "", Name: "/"}, {UUID: directoryUUID, Name: "Reports"}}, "/Reports", nil)

		contents, err := svc.GetContents(ctx, ownerUUID, "owner", directoryUUID)
		require.NoError(t, err)
		assert.Equal(t, "/Reports", contents.Path)
		assert.Len(t, contents.Subdirectories, 1)
		assert.Len(t, contents.Files, 1)
		// владелец не ходит в движок шаринга
		m.sharingEngine.AssertNotCalled(t, "ResolveEffectivePermission", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDirectoryService_RenameDirectory(t *testing.T) {
	ctx := context.Background()
	ownerUUID := "owner-1"
	directoryUUID := "dir-1"

	t.Run("duplicate name excluding self", func(t *testing.T) {
		svc, m := newDirectoryService()
		m.directoryRepo.On("BeginTX", mock.Anything).Return()
		m.directoryRepo.On("GetByUUID", mock.Anything, mock.Anything, directoryUUID).
			Return(&model.Directory{UUID: directoryUUID, OwnerUUID: ownerUUID, Name: "Old"}, nil)
		m.directoryRepo.On("LockOwnerTree", mock.Anything, mock.Anything, ownerUUID).Return(nil)
		m.directoryRepo.On("SiblingExists", mock.Anything, mock.Anything, ownerUUID, "Taken", (*string)(nil), directoryUUID).Return(true, nil)

		_, err := svc.RenameDirectory(ctx, ownerUUID, directoryUUID, "Taken")
		assert.ErrorIs(t, err, apperror.ErrDuplicateName)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		svc, m := newDirectoryService()
		m.directoryRepo.On("BeginTX", mock.Anything).Return()
		m.directoryRepo.On("GetByUUID", mock.Anything, mock.Anything, directoryUUID).
			Return(&model.Directory{UUID: directoryUUID, OwnerUUID: "somebody-else"}, nil)

		_, err := svc.RenameDirectory(ctx, "stranger", directoryUUID, "New")
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestDirectoryService_DeleteDirectory(t *testing.T) {
	ctx := context.Background()
	ownerUUID := "owner-1"
	rootUUID := "dir-root"

	t.Run("cascade removes subtree, grants and storage", func(t *testing.T) {
		svc, m := newDirectoryService()
		subtree := []string{rootUUID, "dir-child"}
		files := []model.File{
			{UUID: "file-1", SizeBytes: 100, StoragePath: "users/owner-1/files/a"},
			{UUID: "file-2", SizeBytes: 200, StoragePath: "users/owner-1/files/b"},
		}

		m.directoryRepo.On("BeginTX", mock.Anything).Return()
		m.directoryRepo.On("GetByUUID", mock.Anything, mock.Anything, rootUUID).
			Return(&model.Directory{UUID: rootUUID, OwnerUUID: ownerUUID}, nil)
		m.directoryRepo.On("LockOwnerTree", mock.Anything, mock.Anything, ownerUUID).Return(nil)
		m.directoryRepo.On("CollectSubtree", mock.Anything, mock.Anything, rootUUID).Return(subtree, nil)
		m.fileRepo.On("ListByDirectoryUUIDs", mock.Anything, mock.Anything, subtree).Return(files, nil)
		m.fileRepo.On("DeleteByUUIDs", mock.Anything, mock.Anything, []string{"file-1", "file-2"}).Return(nil)
		m.directoryRepo.On("DeleteByUUIDs", mock.Anything, mock.Anything, subtree).Return(nil)
		// отзываются гранты и на директории поддерева, и на файлы
		m.sharingEngine.On("RevokeForItems", mock.Anything, mock.Anything, []string{rootUUID, "dir-child", "file-1", "file-2"}).
			Return(int64(3), nil)
		m.userRepo.On("AddStorageUsed", mock.Anything, mock.Anything, ownerUUID, int64(-300)).Return(nil)
		m.cacheRepo.On("DeleteFile", mock.Anything, mock.Anything).Return(nil)
		m.storage.On("DeleteObject", mock.Anything, mock.Anything).Return(nil)

		err := svc.DeleteDirectory(ctx, ownerUUID, rootUUID)
		require.NoError(t, err)
		m.sharingEngine.AssertExpectations(t)
		m.userRepo.AssertExpectations(t)
		m.storage.AssertNumberOfCalls(t, "DeleteObject", 2)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		svc, m := newDirectoryService()
		m.directoryRepo.On("BeginTX", mock.Anything).Return()
		m.directoryRepo.On("GetByUUID", mock.Anything, mock.Anything, rootUUID).
			Return(&model.Directory{UUID: rootUUID, OwnerUUID: "somebody-else"}, nil)

		err := svc.DeleteDirectory(ctx, "stranger", rootUUID)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
		m.directoryRepo.AssertNotCalled(t, "DeleteByUUIDs", mock.Anything, mock.Anything, mock.Anything)
	})
}
