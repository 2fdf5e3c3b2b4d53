package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PresignUploader : потоковая загрузка байтов по pre-signed PUT URL.
// Прогресс отдаётся в канал по мере передачи, отмена — через context
type PresignUploader struct {
	client   *http.Client
	progress chan int64
}

func NewPresignUploader(timeout time.Duration) *PresignUploader {
	return &PresignUploader{
		client: &http.Client{
			Timeout: timeout,
		},
		progress: make(chan int64, 100),
	}
}

// Upload : синхронно передаёт содержимое reader в blob-хранилище.
// При ошибке или отмене контекста ни один байт не считается зарегистрированным:
// запись метаданных остаётся на вызывающей стороне
func (u *PresignUploader) Upload(ctx context.Context, presignedURL string, reader io.Reader, size int64, contentType string) error {
	defer close(u.progress)

	counting := &countingReader{reader: reader, progress: u.progress}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presignedURL, counting)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.ContentLength = size
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("ошибка загрузки: статус %d, ответ: %s", resp.StatusCode, string(body))
	}

	return nil
}

// Progress возвращает канал с количеством переданных байт
func (u *PresignUploader) Progress() <-chan int64 {
	return u.progress
}

type countingReader struct {
	reader   io.Reader
	progress chan int64
	total    int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if n > 0 {
		r.total += int64(n)
		// неблокирующая отправка: медленный потребитель не тормозит передачу
		select {
		case r.progress <- r.total:
		default:
		}
	}
	return n, err
}
