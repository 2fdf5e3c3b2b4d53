package ports

import (
	"context"
	"io"
	"time"
)

// S3Storage : blob-хранилище. Физическое размещение байтов вне ядра
type S3Storage interface {
	GeneratePresignedGetURL(ctx context.Context, key string, expire time.Duration) (string, error)
	GeneratePresignedPutURL(ctx context.Context, key string, expire time.Duration) (string, error)
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)
	DeleteObject(ctx context.Context, key string) error
}
