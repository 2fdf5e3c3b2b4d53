package service

import (
	"context"
	"fmt"
	"log"

	"mydrive-server/config"
	"mydrive-server/internal/apperror"
	"mydrive-server/internal/model"
	"mydrive-server/internal/ports"
	"mydrive-server/internal/util"
)

// FileService : File Store. Метаданные файлов кэшируются в Redis,
// но права доступа пересчитываются при каждом обращении
type FileService struct {
	fileRepository      ports.FileRepository
	directoryRepository ports.DirectoryRepository
	userRepository      ports.UserRepository
	sharingEngine       ports.SharingEngine
	cacheRepository     ports.CacheRepository
	storageInterface    ports.S3Storage
	db                  *config.Database
}

func NewFileService(
	fileRepository ports.FileRepository,
	directoryRepository ports.DirectoryRepository,
	userRepository ports.UserRepository,
	sharingEngine ports.SharingEngine,
	cacheRepository ports.CacheRepository,
	storageInterface ports.S3Storage,
	db *config.Database,
) *FileService {
	return &FileService{
		fileRepository:      fileRepository,
		directoryRepository: directoryRepository,
		userRepository:      userRepository,
		sharingEngine:       sharingEngine,
		cacheRepository:     cacheRepository,
		storageInterface:    storageInterface,
		db:                  db,
	}
}

// ListAll : все файлы владельца
func (s *FileService) ListAll(ctx context.Context, ownerUUID string) ([]model.File, error) {
	return s.fileRepository.ListByOwner(ctx, s.db, ownerUUID)
}

// ListByDirectory : файлы директории, доступ проверяется через движок шаринга
func (s *FileService) ListByDirectory(ctx context.Context, userUUID, userLogin, directoryUUID string) ([]model.File, error) {
	directory, err := s.directoryRepository.GetByUUID(ctx, s.db, directoryUUID)
	if err != nil {
		return nil, err
	}
	if directory == nil {
		return nil, fmt.Errorf("[FileService] директория %s: %w", directoryUUID, apperror.ErrNotFound)
	}

	if directory.OwnerUUID != userUUID {
		permission, err := s.sharingEngine.ResolveEffectivePermission(ctx, s.db, userUUID, userLogin, model.ItemTypeDirectory, directoryUUID)
		if err != nil {
			return nil, err
		}
		if !permission.Covers(model.PermissionView) {
			return nil, fmt.Errorf("[FileService] директория %s: %w", directoryUUID, apperror.ErrNotFound)
		}
	}

	return s.fileRepository.ListByDirectory(ctx, s.db, directoryUUID)
}

// GetFile : метаданные файла. Кэш ускоряет только чтение метаданных,
// решение о доступе всегда принимается заново
func (s *FileService) GetFile(ctx context.Context, userUUID, userLogin, fileUUID string) (*model.File, error) {
	permission, err := s.sharingEngine.ResolveEffectivePermission(ctx, s.db, userUUID, userLogin, model.ItemTypeFile, fileUUID)
	if err != nil {
		return nil, err
	}
	if !permission.Covers(model.PermissionView) {
		return nil, fmt.Errorf("[FileService] файл %s: %w", fileUUID, apperror.ErrNotFound)
	}

	cached, err := s.cacheRepository.GetFile(ctx, fileUUID)
	if err != nil {
		log.Printf("[FileService] ошибка чтения из кэша: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	file, err := s.fileRepository.GetByUUID(ctx, s.db, fileUUID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, fmt.Errorf("[FileService] файл %s: %w", fileUUID, apperror.ErrNotFound)
	}

	if err := s.cacheRepository.SetFile(ctx, file); err != nil {
		log.Printf("[FileService] ошибка записи в кэш: %v", err)
	}
	return file, nil
}

// RegisterFile : регистрирует метаданные уже загруженного объекта.
// Вызывается координатором передач после успешной заливки байтов в S3,
// поэтому прерванная загрузка не оставляет записи в БД
func (s *FileService) RegisterFile(ctx context.Context, file *model.File) error {
	exec, rollback, commit, err := s.fileRepository.BeginTX(ctx)
	if err != nil {
		return util.LogError("[FileService] не удалось начать транзакцию", err)
	}
	defer rollback()

	if file.DirectoryUUID != nil {
		directory, err := s.directoryRepository.GetByUUID(ctx, exec, *file.DirectoryUUID)
		if err != nil {
			return err
		}
		if directory == nil || directory.OwnerUUID != file.OwnerUUID {
			return fmt.Errorf("[FileService] директория %s: %w", *file.DirectoryUUID, apperror.ErrInvalidParent)
		}
	}

	if err := s.fileRepository.Create(ctx, exec, file); err != nil {
		return err
	}
	if err := s.userRepository.AddStorageUsed(ctx, exec, file.OwnerUUID, file.SizeBytes); err != nil {
		return err
	}

	if err := commit(); err != nil {
		return util.LogError("[FileService] ошибка коммита транзакции", err)
	}

	if err := s.cacheRepository.SetFile(ctx, file); err != nil {
		log.Printf("[FileService] ошибка записи в кэш: %v", err)
	}

	log.Printf("[FileService] файл %q зарегистрирован за пользователем %s", file.FilenameOriginal, file.OwnerUUID)
	return nil
}

// DeleteFile : удаляет файл владельца, грант на файл отзывается в той же транзакции
func (s *FileService) DeleteFile(ctx context.Context, ownerUUID, fileUUID string) error {
	exec, rollback, commit, err := s.fileRepository.BeginTX(ctx)
	if err != nil {
		return util.LogError("[FileService] не удалось начать транзакцию", err)
	}
	defer rollback()

	file, err := s.fileRepository.GetByUUID(ctx, exec, fileUUID)
	if err != nil {
		return err
	}
	if file == nil {
		return fmt.Errorf("[FileService] файл %s: %w", fileUUID, apperror.ErrNotFound)
	}
	if file.OwnerUUID != ownerUUID {
		return fmt.Errorf("[FileService] файл %s: %w", fileUUID, apperror.ErrForbidden)
	}

	if err := s.fileRepository.Delete(ctx, exec, fileUUID); err != nil {
		return err
	}
	if _, err := s.sharingEngine.RevokeForItems(ctx, exec, []string{fileUUID}); err != nil {
		return err
	}
	if err := s.userRepository.AddStorageUsed(ctx, exec, ownerUUID, -file.SizeBytes); err != nil {
		return err
	}

	if err := commit(); err != nil {
		return util.LogError("[FileService] ошибка коммита транзакции", err)
	}

	if err := s.cacheRepository.DeleteFile(ctx, fileUUID); err != nil {
		log.Printf("[FileService] ошибка удаления из кэша: %v", err)
	}
	if err := s.storageInterface.DeleteObject(ctx, file.StoragePath); err != nil {
		log.Printf("[FileService] ошибка удаления объекта из S3: %v", err)
	}

	log.Printf("[FileService] файл %s удалён", fileUUID)
	return nil
}
