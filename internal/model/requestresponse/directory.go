package requestresponse

import (
	"time"

	"mydrive-server/internal/model"
)

// CreateDirectoryRequest : тело запроса на создание директории
type CreateDirectoryRequest struct {
	Name       string  `json:"name" example:"Reports"`
	ParentUUID *string `json:"parent_uuid,omitempty" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
}

// RenameDirectoryRequest : тело запроса на переименование
type RenameDirectoryRequest struct {
	Name string `json:"name" example:"Reports 2026"`
}

// DirectoryResponse : директория для JSON-ответа
type DirectoryResponse struct {
	UUID       string  `json:"id" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
	Name       string  `json:"name" example:"Reports"`
	ParentUUID *string `json:"parent_id,omitempty"`
	CreatedAt  string  `json:"created" example:"2026-08-23T12:34:56Z"`
}

// DirectoryContentsResponse : содержимое директории с путём от корня
type DirectoryContentsResponse struct {
	UUID           string              `json:"id"`
	Name           string              `json:"name"`
	ParentUUID     *string             `json:"parent_id,omitempty"`
	Path           string              `json:"path" example:"/Work/Reports"`
	Breadcrumbs    []model.Breadcrumb  `json:"breadcrumbs"`
	Subdirectories []DirectoryResponse `json:"subdirectories"`
	Files          []FileResponse      `json:"files"`
}

// DirectoryResponseFromModel : конвертирует model.Directory в DirectoryResponse
func DirectoryResponseFromModel(dir *model.Directory) DirectoryResponse {
	return DirectoryResponse{
		UUID:       dir.UUID,
		Name:       dir.Name,
		ParentUUID: dir.ParentUUID,
		CreatedAt:  dir.CreatedAt.Format(time.RFC3339),
	}
}

// DirectoryContentsResponseFromModel : собирает ответ из model.DirectoryContents
func DirectoryContentsResponseFromModel(contents *model.DirectoryContents) DirectoryContentsResponse {
	subdirs := make([]DirectoryResponse, 0, len(contents.Subdirectories))
	for i := range contents.Subdirectories {
		subdirs = append(subdirs, DirectoryResponseFromModel(&contents.Subdirectories[i]))
	}

	files := make([]FileResponse, 0, len(contents.Files))
	for i := range contents.Files {
		files = append(files, FileResponseFromModel(&contents.Files[i]))
	}

	return DirectoryContentsResponse{
		UUID:           contents.Directory.UUID,
		Name:           contents.Directory.Name,
		ParentUUID:     contents.Directory.ParentUUID,
		Path:           contents.Path,
		Breadcrumbs:    contents.Breadcrumbs,
		Subdirectories: subdirs,
		Files:          files,
	}
}

// ListDirectoriesResponse : ответ API со списком корневых директорий
type ListDirectoriesResponse struct {
	Data struct {
		Directories []DirectoryResponse `json:"directories"`
	} `json:"data"`
	Count int `json:"count" example:"3"`
}
