package requestresponse

import (
	"time"

	"mydrive-server/internal/model"
)

// FileResponse : файл для JSON-ответа
type FileResponse struct {
	UUID          string  `json:"id" example:"qwdj1q4o34u34ih759ou1"`
	Name          string  `json:"name" example:"photo.jpg"`
	MimeType      string  `json:"mime" example:"image/jpeg"`
	SizeBytes     int64   `json:"size" example:"102400"`
	DirectoryUUID *string `json:"directory_id,omitempty"`
	CreatedAt     string  `json:"created" example:"2026-08-23T12:34:56Z"`
}

// FileResponseFromModel : конвертирует model.File в FileResponse
func FileResponseFromModel(file *model.File) FileResponse {
	return FileResponse{
		UUID:          file.UUID,
		Name:          file.FilenameOriginal,
		MimeType:      file.MimeType,
		SizeBytes:     file.SizeBytes,
		DirectoryUUID: file.DirectoryUUID,
		CreatedAt:     file.CreatedAt.Format(time.RFC3339),
	}
}

// ListFilesResponse : ответ API со списком файлов
type ListFilesResponse struct {
	Data struct {
		Files []FileResponse `json:"files"`
	} `json:"data"`
	Count int `json:"count" example:"10"`
}

// UploadFileResponse : ответ на загрузку одного файла
type UploadFileResponse struct {
	Data FileResponse `json:"data"`
}

// FolderUploadEntryResult : результат загрузки одного элемента батча
type FolderUploadEntryResult struct {
	RelativePath string        `json:"relative_path" example:"a/b/x.txt"`
	File         *FileResponse `json:"file,omitempty"`
	Error        string        `json:"error,omitempty" example:"недопустимая родительская директория"`
}

// FolderUploadResponse : пер-элементные результаты загрузки папки
type FolderUploadResponse struct {
	Results []FolderUploadEntryResult `json:"results"`
}

// PresignedURLResponse : временная ссылка на прямое скачивание из хранилища
type PresignedURLResponse struct {
	URL string `json:"url" example:"https://storage.example.com/users/uuid/files/report-ab12.pdf?X-Amz-Signature=..."`
}
