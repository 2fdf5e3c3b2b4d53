package model

import "io"

// FolderUploadEntry : один элемент батча загрузки папки.
// RelativePath вида "subdir1/subdir2/file.txt" задаёт вложенные директории
type FolderUploadEntry struct {
	RelativePath string
	Reader       io.Reader
	SizeHint     int64
	MimeType     string
}

// FolderUploadEntryResult : результат обработки одного элемента.
// Ошибка одного элемента не прерывает остальные
type FolderUploadEntryResult struct {
	RelativePath string
	File         *File
	Err          error
}
