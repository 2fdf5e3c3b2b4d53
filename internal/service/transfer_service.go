package service

import (
	"archive/zip"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"mydrive-server/config"
	"mydrive-server/internal/apperror"
	"mydrive-server/internal/model"
	"mydrive-server/internal/ports"
	"mydrive-server/internal/util"
)

// TransferService : координатор потоковых передач.
// Байты уходят в S3 по pre-signed PUT до записи метаданных:
// прерванная загрузка не оставляет следа в БД, а долгая передача
// не держит блокировок дерева
type TransferService struct {
	fileService         ports.FileService
	directoryRepository ports.DirectoryRepository
	fileRepository      ports.FileRepository
	sharingEngine       ports.SharingEngine
	storageInterface    ports.S3Storage
	db                  *config.Database
	uploadTimeout       time.Duration
	downloadTimeout     time.Duration
	presignTTL          time.Duration
}

func NewTransferService(
	fileService ports.FileService,
	directoryRepository ports.DirectoryRepository,
	fileRepository ports.FileRepository,
	sharingEngine ports.SharingEngine,
	storageInterface ports.S3Storage,
	db *config.Database,
	uploadTimeout time.Duration,
	downloadTimeout time.Duration,
	presignTTL time.Duration,
) *TransferService {
	return &TransferService{
		fileService:         fileService,
		directoryRepository: directoryRepository,
		fileRepository:      fileRepository,
		sharingEngine:       sharingEngine,
		storageInterface:    storageInterface,
		db:                  db,
		uploadTimeout:       uploadTimeout,
		downloadTimeout:     downloadTimeout,
		presignTTL:          presignTTL,
	}
}

// Upload : загружает один файл. Целевая директория проверяется до передачи
// байтов, регистрация метаданных выполняется после успешной заливки
func (s *TransferService) Upload(ctx context.Context, ownerUUID string, directoryUUID *string, filename, mimeType string, sizeHint int64, reader io.Reader) (*model.File, error) {
	if directoryUUID != nil {
		directory, err := s.directoryRepository.GetByUUID(ctx, s.db, *directoryUUID)
		if err != nil {
			return nil, err
		}
		if directory == nil || directory.OwnerUUID != ownerUUID {
			return nil, fmt.Errorf("[TransferService] директория %s: %w", *directoryUUID, apperror.ErrInvalidParent)
		}
	}

	storagePath, err := buildStorageKey(ownerUUID, filename)
	if err != nil {
		return nil, util.LogError("[TransferService] не удалось построить ключ хранения", err)
	}

	putURL, err := s.storageInterface.GeneratePresignedPutURL(ctx, storagePath, s.presignTTL)
	if err != nil {
		return nil, err
	}

	uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	uploader := util.NewPresignUploader(s.uploadTimeout)
	go monitorProgress(filename, uploader.Progress())

	if err := uploader.Upload(uploadCtx, putURL, reader, sizeHint, mimeType); err != nil {
		return nil, util.LogError("[TransferService] ошибка загрузки в S3", err)
	}

	file := &model.File{
		UUID:             uuid.New().String(),
		OwnerUUID:        ownerUUID,
		DirectoryUUID:    directoryUUID,
		FilenameOriginal: filename,
		MimeType:         mimeType,
		SizeBytes:        sizeHint,
		StoragePath:      storagePath,
	}

	// байты уже в хранилище, регистрация метаданных повторяема
	if err := s.fileService.RegisterFile(ctx, file); err != nil {
		log.Printf("[TransferService] регистрация файла %q не удалась, повтор: %v", filename, err)
		if err := s.fileService.RegisterFile(ctx, file); err != nil {
			if cleanupErr := s.storageInterface.DeleteObject(ctx, storagePath); cleanupErr != nil {
				log.Printf("[TransferService] не удалось удалить осиротевший объект %s: %v", storagePath, cleanupErr)
			}
			return nil, err
		}
	}

	return file, nil
}

// UploadFolder : загружает батч файлов с относительными путями.
// Промежуточные директории создаются по мере необходимости, один раз на батч;
// ошибка одного элемента не прерывает остальные
func (s *TransferService) UploadFolder(ctx context.Context, ownerUUID string, parentUUID *string, entries []model.FolderUploadEntry) []model.FolderUploadEntryResult {
	results := make([]model.FolderUploadEntryResult, 0, len(entries))

	// ключ — относительный путь директории внутри батча
	createdDirectories := make(map[string]*string)

	for _, entry := range entries {
		directoryUUID, filename, err := s.resolveEntryDirectory(ctx, ownerUUID, parentUUID, entry.RelativePath, createdDirectories)
		if err != nil {
			results = append(results, model.FolderUploadEntryResult{RelativePath: entry.RelativePath, Err: err})
			continue
		}

		file, err := s.Upload(ctx, ownerUUID, directoryUUID, filename, entry.MimeType, entry.SizeHint, entry.Reader)
		results = append(results, model.FolderUploadEntryResult{
			RelativePath: entry.RelativePath,
			File:         file,
			Err:          err,
		})
	}

	return results
}

// resolveEntryDirectory : находит или создаёт цепочку директорий для
// относительного пути вида "a/b/file.txt", возвращает UUID директории
// последнего уровня и имя файла
func (s *TransferService) resolveEntryDirectory(ctx context.Context, ownerUUID string, parentUUID *string, relativePath string, cache map[string]*string) (*string, string, error) {
	cleaned := path.Clean(strings.TrimPrefix(relativePath, "/"))
	if cleaned == "." || cleaned == "" || strings.HasPrefix(cleaned, "..") {
		return nil, "", fmt.Errorf("[TransferService] недопустимый путь %q: %w", relativePath, apperror.ErrInvalidParent)
	}

	segments := strings.Split(cleaned, "/")
	filename := segments[len(segments)-1]
	directorySegments := segments[:len(segments)-1]

	current := parentUUID
	prefix := ""
	for _, name := range directorySegments {
		prefix = path.Join(prefix, name)
		if cached, ok := cache[prefix]; ok {
			current = cached
			continue
		}

		existing, err := s.directoryRepository.FindByNameAndParent(ctx, s.db, ownerUUID, name, current)
		if err != nil {
			return nil, "", err
		}
		if existing != nil {
			current = &existing.UUID
			cache[prefix] = current
			continue
		}

		created, err := s.createBatchDirectory(ctx, ownerUUID, name, current)
		if err != nil {
			return nil, "", err
		}
		current = &created.UUID
		cache[prefix] = current
	}

	return current, filename, nil
}

func (s *TransferService) createBatchDirectory(ctx context.Context, ownerUUID, name string, parentUUID *string) (*model.Directory, error) {
	exec, rollback, commit, err := s.directoryRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[TransferService] не удалось начать транзакцию", err)
	}
	defer rollback()

	if err := s.directoryRepository.LockOwnerTree(ctx, exec, ownerUUID); err != nil {
		return nil, err
	}

	// под блокировкой повторная проверка: директорию мог создать параллельный батч
	existing, err := s.directoryRepository.FindByNameAndParent(ctx, exec, ownerUUID, name, parentUUID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := commit(); err != nil {
			return nil, util.LogError("[TransferService] ошибка коммита транзакции", err)
		}
		return existing, nil
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
		return nil, util.LogError("[TransferService] ошибка коммита транзакции", err)
	}
	return directory, nil
}

// Download : потоковое скачивание файла. Достаточно уровня view,
// действующий доступ вычисляется заново при каждом запросе
func (s *TransferService) Download(ctx context.Context, userUUID, userLogin, fileUUID string) (*model.File, io.ReadCloser, error) {
	file, err := s.fileService.GetFile(ctx, userUUID, userLogin, fileUUID)
	if err != nil {
		return nil, nil, err
	}

	body, err := s.storageInterface.GetObject(ctx, file.StoragePath)
	if err != nil {
		return nil, nil, err
	}
	return file, body, nil
}

// PresignDownload : временная pre-signed ссылка на скачивание.
// Клиент забирает байты напрямую из blob-хранилища, не занимая сервер
func (s *TransferService) PresignDownload(ctx context.Context, userUUID, userLogin, fileUUID string) (string, error) {
	file, err := s.fileService.GetFile(ctx, userUUID, userLogin, fileUUID)
	if err != nil {
		return "", err
	}

	getURL, err := s.storageInterface.GeneratePresignedGetURL(ctx, file.StoragePath, s.presignTTL)
	if err != nil {
		return "", util.LogError("[TransferService] ошибка генерации pre-signed ссылки", err)
	}
	return getURL, nil
}

// DownloadDirectoryArchive : упаковывает поддерево директории в zip.
// Архив пишется потоково, файлы читаются из S3 по одному
func (s *TransferService) DownloadDirectoryArchive(ctx context.Context, userUUID, userLogin, directoryUUID string, w io.Writer) error {
	directory, err := s.directoryRepository.GetByUUID(ctx, s.db, directoryUUID)
	if err != nil {
		return err
	}
	if directory == nil {
		return fmt.Errorf("[TransferService] директория %s: %w", directoryUUID, apperror.ErrNotFound)
	}

	if directory.OwnerUUID != userUUID {
		permission, err := s.sharingEngine.ResolveEffectivePermission(ctx, s.db, userUUID, userLogin, model.ItemTypeDirectory, directoryUUID)
		if err != nil {
			return err
		}
		if !permission.Covers(model.PermissionView) {
			return fmt.Errorf("[TransferService] директория %s: %w", directoryUUID, apperror.ErrNotFound)
		}
	}

	archive := zip.NewWriter(w)
	if err := s.archiveDirectory(ctx, archive, directory, directory.Name); err != nil {
		archive.Close()
		return err
	}
	return archive.Close()
}

func (s *TransferService) archiveDirectory(ctx context.Context, archive *zip.Writer, directory *model.Directory, prefix string) error {
	files, err := s.fileRepository.ListByDirectory(ctx, s.db, directory.UUID)
	if err != nil {
		return err
	}

	for _, file := range files {
		if err := s.archiveFile(ctx, archive, &file, prefix); err != nil {
			return err
		}
	}

	subdirectories, err := s.directoryRepository.ListByParent(ctx, s.db, directory.OwnerUUID, directory.UUID)
	if err != nil {
		return err
	}

	for i := range subdirectories {
		subdirectory := &subdirectories[i]
		if err := s.archiveDirectory(ctx, archive, subdirectory, path.Join(prefix, subdirectory.Name)); err != nil {
			return err
		}
	}

	return nil
}

func (s *TransferService) archiveFile(ctx context.Context, archive *zip.Writer, file *model.File, prefix string) error {
	body, err := s.storageInterface.GetObject(ctx, file.StoragePath)
	if err != nil {
		return err
	}
	defer body.Close()

	entry, err := archive.CreateHeader(&zip.FileHeader{
		Name:     path.Join(prefix, file.FilenameOriginal),
		Method:   zip.Deflate,
		Modified: file.UpdatedAt,
	})
	if err != nil {
		return util.LogError("[TransferService] ошибка создания записи архива", err)
	}

	if _, err := io.Copy(entry, body); err != nil {
		return util.LogError("[TransferService] ошибка записи файла в архив", err)
	}
	return nil
}

// buildStorageKey : ключ вида users/<uuid>/files/<name>-<случайный суффикс><ext>.
// Суффикс исключает коллизии одноимённых файлов в хранилище
func buildStorageKey(ownerUUID, filename string) (string, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}

	ext := path.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	return fmt.Sprintf("users/%s/files/%s-%s%s", ownerUUID, base, hex.EncodeToString(suffix), ext), nil
}

func monitorProgress(filename string, progress <-chan int64) {
	var last int64
	for transferred := range progress {
		// лог каждые 10 МиБ, чтобы не зашумлять вывод
		if transferred-last >= 10*1024*1024 {
			log.Printf("[TransferService] %q: передано %d байт", filename, transferred)
			last = transferred
		}
	}
}
