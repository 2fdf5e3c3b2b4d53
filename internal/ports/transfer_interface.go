package ports

import (
	"context"
	"io"

	"mydrive-server/internal/model"
)

// TransferService : координатор потоковых загрузок и скачиваний.
// Долгие передачи байтов не держат блокировок дерева, короткая транзакция
// нужна только в момент регистрации метаданных
type TransferService interface {
	Upload(ctx context.Context, ownerUUID string, directoryUUID *string, filename, mimeType string, sizeHint int64, reader io.Reader) (*model.File, error)
	UploadFolder(ctx context.Context, ownerUUID string, parentUUID *string, entries []model.FolderUploadEntry) []model.FolderUploadEntryResult
	Download(ctx context.Context, userUUID, userLogin, fileUUID string) (*model.File, io.ReadCloser, error)
	PresignDownload(ctx context.Context, userUUID, userLogin, fileUUID string) (string, error)
	DownloadDirectoryArchive(ctx context.Context, userUUID, userLogin, directoryUUID string, w io.Writer) error
}
