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

func newShareService() (*service.ShareService, *MockShareRepository, *MockDirectoryRepository, *MockFileRepository, *MockUserRepository) {
	shareRepo := new(MockShareRepository)
	directoryRepo := new(MockDirectoryRepository)
	fileRepo := new(MockFileRepository)
	userRepo := new(MockUserRepository)
	svc := service.NewShareService(shareRepo, directoryRepo, fileRepo, userRepo, &config.Database{})
	return svc, shareRepo, directoryRepo, fileRepo, userRepo
}

func TestShareService_Share(t *testing.T) {
	ctx := context.Background()
	ownerUUID := "owner-1"

	t.Run("unknown grantee", func(t *testing.T) {
		svc, shareRepo, _, _, userRepo := newShareService()
		shareRepo.On("BeginTX", mock.Anything).Return()
		userRepo.On("FindByLogin", mock.Anything, mock.Anything, "ghost").Return(nil, nil)

		_, err := svc.Share(ctx, ownerUUID, model.ItemTypeDirectory, "dir-1", "ghost", model.PermissionView)
		assert.ErrorIs(t, err, apperror.ErrUnknownUser)
	})

	t.Run("share with self", func(t *testing.T) {
		svc, shareRepo, _, _, userRepo := newShareService()
		shareRepo.On("BeginTX", mock.Anything).Return()
		userRepo.On("FindByLogin", mock.Anything, mock.Anything, "me").Return(&model.User{UUID: ownerUUID, Login: "me"}, nil)

		_, err := svc.Share(ctx, ownerUUID, model.ItemTypeDirectory, "dir-1", "me", model.PermissionView)
		assert.ErrorIs(t, err, apperror.ErrSelfShare)
	})

	t.Run("foreign directory", func(t *testing.T) {
		svc, shareRepo, directoryRepo, _, userRepo := newShareService()
		shareRepo.On("BeginTX", mock.Anything).Return()
		userRepo.On("FindByLogin", mock.Anything, mock.Anything, "user2").Return(&model.User{UUID: "grantee-1", Login: "user2"}, nil)
		directoryRepo.On("GetByUUID", mock.Anything, mock.Anything, "dir-1").Return(&model.Directory{UUID: "dir-1", OwnerUUID: "somebody-else"}, nil)

		_, err := svc.Share(ctx, ownerUUID, model.ItemTypeDirectory, "dir-1", "user2", model.PermissionView)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("missing file", func(t *testing.T) {
		svc, shareRepo, _, fileRepo, userRepo := newShareService()
		shareRepo.On("BeginTX", mock.Anything).Return()
		userRepo.On("FindByLogin", mock.Anything, mock.Anything, "user2").Return(&model.User{UUID: "grantee-1", Login: "user2"}, nil)
		fileRepo.On("GetByUUID", mock.Anything, mock.Anything, "file-1").Return(nil, nil)

		_, err := svc.Share(ctx, ownerUUID, model.ItemTypeFile, "file-1", "user2", model.PermissionEdit)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("upsert without duplicate", func(t *testing.T) {
		svc, shareRepo, directoryRepo, _, userRepo := newShareService()
		shareRepo.On("BeginTX", mock.Anything).Return()
		userRepo.On("FindByLogin", mock.Anything, mock.Anything, "user2").Return(&model.User{UUID: "grantee-1", Login: "user2"}, nil)
		directoryRepo.On("GetByUUID", mock.Anything, mock.Anything, "dir-1").Return(&model.Directory{UUID: "dir-1", OwnerUUID: ownerUUID}, nil)

		// повторная выдача гранта той же паре обновляет уровень, не плодя строки
		shareRepo.On("Upsert", mock.Anything, mock.Anything, mock.MatchedBy(func(item *model.SharedItem) bool {
			return item.OwnerUUID == ownerUUID &&
				item.GranteeLogin == "user2" &&
				item.ItemUUID == "dir-1" &&
				item.Permission == model.PermissionEdit
		})).Return(&model.SharedItem{UUID: "grant-1", Permission: model.PermissionEdit}, nil)

		saved, err := svc.Share(ctx, ownerUUID, model.ItemTypeDirectory, "dir-1", "user2", model.PermissionEdit)
		require.NoError(t, err)
		assert.Equal(t, model.PermissionEdit, saved.Permission)
		shareRepo.AssertExpectations(t)
	})
}

func TestShareService_Revoke(t *testing.T) {
	ctx := context.Background()

	t.Run("missing grant", func(t *testing.T) {
		svc, shareRepo, _, _, _ := newShareService()
		shareRepo.On("BeginTX", mock.Anything).Return()
		shareRepo.On("GetByUUID", mock.Anything, mock.Anything, "grant-404").Return(nil, nil)

		err := svc.Revoke(ctx, "owner-1", "grant-404")
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("foreign grant", func(t *testing.T) {
		svc, shareRepo, _, _, _ := newShareService()
		shareRepo.On("BeginTX", mock.Anything).Return()
		shareRepo.On("GetByUUID", mock.Anything, mock.Anything, "grant-1").Return(&model.SharedItem{UUID: "grant-1", OwnerUUID: "somebody-else"}, nil)

		err := svc.Revoke(ctx, "owner-1", "grant-1")
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("owner revokes", func(t *testing.T) {
		svc, shareRepo, _, _, _ := newShareService()
		shareRepo.On("BeginTX", mock.Anything).Return()
		shareRepo.On("GetByUUID", mock.Anything, mock.Anything, "grant-1").Return(&model.SharedItem{UUID: "grant-1", OwnerUUID: "owner-1"}, nil)
		shareRepo.On("Delete", mock.Anything, mock.Anything, "grant-1").Return(nil)

		err := svc.Revoke(ctx, "owner-1", "grant-1")
		require.NoError(t, err)
		shareRepo.AssertExpectations(t)
	})
}

func TestShareService_ResolveEffectivePermission(t *testing.T) {
	ctx := context.Background()
	ownerUUID := "owner-1"

	rootUUID := "dir-root"
	midUUID := "dir-mid"
	leafUUID := "dir-leaf"

	root := &model.Directory{UUID: rootUUID, OwnerUUID: ownerUUID}
	mid := &model.Directory{UUID: midUUID, OwnerUUID: ownerUUID, ParentUUID: &rootUUID}
	leaf := &model.Directory{UUID: leafUUID, OwnerUUID: ownerUUID, ParentUUID: &midUUID}

	t.Run("owner always edit", func(t *testing.T) {
		svc, _, directoryRepo, _, _ := newShareService()
		directoryRepo.On("GetByUUID", mock.Anything, mock.Anything, leafUUID).Return(leaf, nil)

		permission, err := svc.ResolveEffectivePermission(ctx, fakeExec, ownerUUID, "owner", model.ItemTypeDirectory, leafUUID)
		require.NoError(t, err)
		assert.Equal(t, model.PermissionEdit, permission)
	})

	t.Run("direct file grant wins over directory grant", func(t *testing.T) {
		svc, shareRepo, _, fileRepo, _ := newShareService()
		file := &model.File{UUID: "file-1", OwnerUUID: ownerUUID, DirectoryUUID: &leafUUID}
		fileRepo.On("GetByUUID", mock.Anything, mock.Anything, "file-1").Return(file, nil)
		shareRepo.On("GetGrantFor", mock.Anything, mock.Anything, "file-1", "user2").
			Return(&model.SharedItem{Permission: model.PermissionView}, nil)

		permission, err := svc.ResolveEffectivePermission(ctx, fakeExec, "user-2", "user2", model.ItemTypeFile, "file-1")
		require.NoError(t, err)
		assert.Equal(t, model.PermissionView, permission)
		// до директорий дело не дошло
		shareRepo.AssertNumberOfCalls(t, "GetGrantFor", 1)
	})

	t.Run("inherited from ancestor", func(t *testing.T) {
		svc, shareRepo, directoryRepo, _, _ := newShareService()
		directoryRepo.On("GetByUUID", mock.Anything, mock.Anything, leafUUID).Return(leaf, nil)
		directoryRepo.On("GetByUUID", mock.Anything, mock.Anything, midUUID).Return(mid, nil)
		shareRepo.On("GetGrantFor", mock.Anything, mock.Anything, leafUUID, "user2").Return(nil, nil)
		shareRepo.On("GetGrantFor", mock.Anything, mock.Anything, midUUID, "user2").
			Return(&model.SharedItem{Permission: model.PermissionEdit}, nil)

		permission, err := svc.ResolveEffectivePermission(ctx, fakeExec, "user-2", "user2", model.ItemTypeDirectory, leafUUID)
		require.NoError(t, err)
		assert.Equal(t, model.PermissionEdit, permission)
	})

	t.Run("nearest grant wins", func(t *testing.T) {
		svc, shareRepo, directoryRepo, _, _ := newShareService()
		directoryRepo.On("GetByUUID", mock.Anything, mock.Anything, leafUUID).Return(leaf, nil)
		// ближний грант view перекрывает дальний edit на корне
		shareRepo.On("GetGrantFor", mock.Anything, mock.Anything, leafUUID, "user2").
			Return(&model.SharedItem{Permission: model.PermissionView}, nil)

		permission, err := svc.ResolveEffectivePermission(ctx, fakeExec, "user-2", "user2", model.ItemTypeDirectory, leafUUID)
		require.NoError(t, err)
		assert.Equal(t, model.PermissionView, permission)
	})

	t.Run("no grant anywhere", func(t *testing.T) {
		svc, shareRepo, directoryRepo, _, _ := newShareService()
		directoryRepo.On("GetByUUID", mock.Anything, mock.Anything, leafUUID).Return(leaf, nil)
		directoryRepo.On("GetByUUID", mock.Anything, mock.Anything, midUUID).Return(mid, nil)
		directoryRepo.On("GetByUUID", mock.Anything, mock.Anything, rootUUID).Return(root, nil)
		shareRepo.On("GetGrantFor", mock.Anything, mock.Anything, mock.Anything, "user2").Return(nil, nil)

		permission, err := svc.ResolveEffectivePermission(ctx, fakeExec, "user-2", "user2", model.ItemTypeDirectory, leafUUID)
		require.NoError(t, err)
		assert.Equal(t, model.PermissionNone, permission)
	})

	t.Run("cycle in parent chain", func(t *testing.T) {
		svc, shareRepo, directoryRepo, _, _ := newShareService()
		aUUID, bUUID := "dir-a", "dir-b"
		a := &model.Directory{UUID: aUUID, OwnerUUID: ownerUUID, ParentUUID: &bUUID}
		b := &model.Directory{UUID: bUUID, OwnerUUID: ownerUUID, ParentUUID: &aUUID}
		directoryRepo.On("GetByUUID", mock.Anything, mock.Anything, aUUID).Return(a, nil)
		directoryRepo.On("GetByUUID", mock.Anything, mock.Anything, bUUID).Return(b, nil)
		shareRepo.On("GetGrantFor", mock.Anything, mock.Anything, mock.Anything, "user2").Return(nil, nil)

		_, err := svc.ResolveEffectivePermission(ctx, fakeExec, "user-2", "user2", model.ItemTypeDirectory, aUUID)
		assert.ErrorIs(t, err, apperror.ErrCorrupt)
	})
}
