package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"mydrive-server/config"
	"mydrive-server/internal/apperror"
	"mydrive-server/internal/model"
	"mydrive-server/internal/ports"
	"mydrive-server/internal/util"
)

// DirectoryService : Tree Store. Владеет иерархией директорий,
// каскадное удаление и отзыв грантов поддерева проходят одной транзакцией
type DirectoryService struct {
	directoryRepository ports.DirectoryRepository
	fileRepository      ports.FileRepository
	userRepository      ports.UserRepository
	sharingEngine       ports.SharingEngine
	breadcrumbResolver  ports.BreadcrumbResolver
	cacheRepository     ports.CacheRepository
	storageInterface    ports.S3Storage
	db                  *config.Database
}

func NewDirectoryService(
	directoryRepository ports.DirectoryRepository,
	fileRepository ports.FileRepository,
	userRepository ports.UserRepository,
	sharingEngine ports.SharingEngine,
	breadcrumbResolver ports.BreadcrumbResolver,
	cacheRepository ports.CacheRepository,
	storageInterface ports.S3Storage,
	db *config.Database,
) *DirectoryService {
	return &DirectoryService{
		directoryRepository: directoryRepository,
		fileRepository:      fileRepository,
		userRepository:      userRepository,
		sharingEngine:       sharingEngine,
		breadcrumbResolver:  breadcrumbResolver,
		cacheRepository:     cacheRepository,
		storageInterface:    storageInterface,
		db:                  db,
	}
}

// CreateDirectory : создаёт директорию. Блокировка строки владельца
// сериализует конкурентное создание соседей с одинаковым именем
func (s *DirectoryService) CreateDirectory(ctx context.Context, ownerUUID, name string, parentUUID *string) (*model.Directory, error) {
	exec, rollback, commit, err := s.directoryRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[DirectoryService] не удалось начать транзакцию", err)
	}
	defer rollback()

	if err := s.directoryRepository.LockOwnerTree(ctx, exec, ownerUUID); err != nil {
		return nil, err
	}

	if parentUUID != nil {
		parent, err := s.directoryRepository.GetByUUID(ctx, exec, *parentUUID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.OwnerUUID != ownerUUID {
			return nil, fmt.Errorf("[DirectoryService] родитель %s: %w", *parentUUID, apperror.ErrInvalidParent)
		}
	}

	exists, err := s.directoryRepository.SiblingExists(ctx, exec, ownerUUID, name, parentUUID, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("[DirectoryService] директория %q: %w", name, apperror.ErrDuplicateName)
	}

	directory := &model.Directory{
		UUID:       uuid.New().String(),
		OwnerUUID:  ownerUUID,
		ParentUUID: parentUUID,
		Name:       name,
	}
	if err := s.directoryRepository.Create(ctx, exec, directory); err != nil {
		return nil, err
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[DirectoryService] ошибка коммита транзакции", err)
	}

	log.Printf("[DirectoryService] директория %q успешно создана", directory.Name)
	return directory, nil
}

// GetContents : содержимое директории с путём от корня.
// Недоступная директория неотличима от несуществующей
func (s *DirectoryService) GetContents(ctx context.Context, userUUID, userLogin, directoryUUID string) (*model.DirectoryContents, error) {
	exec, rollback, commit, err := s.directoryRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[DirectoryService] не удалось начать транзакцию", err)
	}
	defer rollback()

	directory, err := s.directoryRepository.GetByUUID(ctx, exec, directoryUUID)
	if err != nil {
		return nil, err
	}
	if directory == nil {
		return nil, fmt.Errorf("[DirectoryService] директория %s: %w", directoryUUID, apperror.ErrNotFound)
	}

	if directory.OwnerUUID != userUUID {
		permission, err := s.sharingEngine.ResolveEffectivePermission(ctx, exec, userUUID, userLogin, model.ItemTypeDirectory, directoryUUID)
		if err != nil {
			return nil, err
		}
		if !permission.Covers(model.PermissionView) {
			return nil, fmt.Errorf("[DirectoryService] директория %s: %w", directoryUUID, apperror.ErrNotFound)
		}
	}

	subdirectories, err := s.directoryRepository.ListByParent(ctx, exec, directory.OwnerUUID, directoryUUID)
	if err != nil {
		return nil, err
	}

	files, err := s.fileRepository.ListByDirectory(ctx, exec, directoryUUID)
	if err != nil {
		return nil, err
	}

	breadcrumbs, path, err := s.breadcrumbResolver.BuildPath(ctx, exec, directoryUUID)
	if err != nil {
		return nil, err
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[DirectoryService] ошибка коммита транзакции", err)
	}

	return &model.DirectoryContents{
		Directory:      directory,
		Subdirectories: subdirectories,
		Files:          files,
		Breadcrumbs:    breadcrumbs,
		Path:           path,
	}, nil
}

// RenameDirectory : переименовывает директорию владельца
func (s *DirectoryService) RenameDirectory(ctx context.Context, ownerUUID, directoryUUID, newName string) (*model.Directory, error) {
	exec, rollback, commit, err := s.directoryRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[DirectoryService] не удалось начать транзакцию", err)
	}
	defer rollback()

	directory, err := s.directoryRepository.GetByUUID(ctx, exec, directoryUUID)
	if err != nil {
		return nil, err
	}
	if directory == nil {
		return nil, fmt.Errorf("[DirectoryService] директория %s: %w", directoryUUID, apperror.ErrNotFound)
	}
	if directory.OwnerUUID != ownerUUID {
		return nil, fmt.Errorf("[DirectoryService] директория %s: %w", directoryUUID, apperror.ErrForbidden)
	}

	if err := s.directoryRepository.LockOwnerTree(ctx, exec, ownerUUID); err != nil {
		return nil, err
	}

	exists, err := s.directoryRepository.SiblingExists(ctx, exec, ownerUUID, newName, directory.ParentUUID, directoryUUID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("[DirectoryService] директория %q: %w", newName, apperror.ErrDuplicateName)
	}

	renamed, err := s.directoryRepository.Rename(ctx, exec, directoryUUID, newName)
	if err != nil {
		return nil, err
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[DirectoryService] ошибка коммита транзакции", err)
	}
	return renamed, nil
}

// DeleteDirectory : каскадно удаляет поддерево.
// Сбор потомков, удаление файлов и директорий и отзыв всех грантов
// поддерева выполняются одной транзакцией: наблюдатель видит поддерево
// либо целиком, либо никак
func (s *DirectoryService) DeleteDirectory(ctx context.Context, ownerUUID, directoryUUID string) error {
	exec, rollback, commit, err := s.directoryRepository.BeginTX(ctx)
	if err != nil {
		return util.LogError("[DirectoryService] не удалось начать транзакцию", err)
	}
	defer rollback()

	directory, err := s.directoryRepository.GetByUUID(ctx, exec, directoryUUID)
	if err != nil {
		return err
	}
	if directory == nil {
		return fmt.Errorf("[DirectoryService] директория %s: %w", directoryUUID, apperror.ErrNotFound)
	}
	if directory.OwnerUUID != ownerUUID {
		return fmt.Errorf("[DirectoryService] директория %s: %w", directoryUUID, apperror.ErrForbidden)
	}

	if err := s.directoryRepository.LockOwnerTree(ctx, exec, ownerUUID); err != nil {
		return err
	}

	directoryUUIDs, err := s.directoryRepository.CollectSubtree(ctx, exec, directoryUUID)
	if err != nil {
		return err
	}

	files, err := s.fileRepository.ListByDirectoryUUIDs(ctx, exec, directoryUUIDs)
	if err != nil {
		return err
	}

	fileUUIDs := make([]string, 0, len(files))
	var totalSize int64
	for _, file := range files {
		fileUUIDs = append(fileUUIDs, file.UUID)
		totalSize += file.SizeBytes
	}

	if err := s.fileRepository.DeleteByUUIDs(ctx, exec, fileUUIDs); err != nil {
		return err
	}
	if err := s.directoryRepository.DeleteByUUIDs(ctx, exec, directoryUUIDs); err != nil {
		return err
	}

	// отзыв грантов поддерева в той же транзакции, что и удаление узлов
	if _, err := s.sharingEngine.RevokeForItems(ctx, exec, append(directoryUUIDs, fileUUIDs...)); err != nil {
		return err
	}

	if totalSize > 0 {
		if err := s.userRepository.AddStorageUsed(ctx, exec, ownerUUID, -totalSize); err != nil {
			return err
		}
	}

	if err := commit(); err != nil {
		return util.LogError("[DirectoryService] ошибка коммита транзакции", err)
	}

	// кэш и blob-хранилище чистятся после коммита, best effort
	for _, file := range files {
		if err := s.cacheRepository.DeleteFile(ctx, file.UUID); err != nil {
			log.Printf("[DirectoryService] ошибка удаления из кэша: %v", err)
		}
		if err := s.storageInterface.DeleteObject(ctx, file.StoragePath); err != nil {
			log.Printf("[DirectoryService] ошибка удаления объекта из S3: %v", err)
		}
	}

	log.Printf("[DirectoryService] удалено поддерево %s: директорий %d, файлов %d", directoryUUID, len(directoryUUIDs), len(files))
	return nil
}

// GetRootDirectories : директории верхнего уровня владельца
func (s *DirectoryService) GetRootDirectories(ctx context.Context, ownerUUID string) ([]model.Directory, error) {
	return s.directoryRepository.ListRoots(ctx, s.db, ownerUUID)
}
