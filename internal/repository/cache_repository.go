package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mydrive-server/config"
	"mydrive-server/internal/model"
	"mydrive-server/internal/util"
)

// CacheRepository : кэш метаданных файлов в Redis.
// Права доступа здесь не кэшируются никогда: грант привязан к позиции
// объекта в дереве, и его действие пересчитывается при каждом обращении
type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetFile(ctx context.Context, file *model.File) error {
	data, err := json.Marshal(file)
	if err != nil {
		return util.LogError("ошибка сериализации файла", err)
	}

	cmd := r.client.Client.Set(ctx, r.key(file.UUID), data, r.ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

func (r *CacheRepository) GetFile(ctx context.Context, uuid string) (*model.File, error) {
	val, err := r.client.Client.Get(ctx, r.key(uuid)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения файла из Redis", err)
	}

	var file model.File
	if err := json.Unmarshal([]byte(val), &file); err != nil {
		return nil, util.LogError("ошибка десериализации файла из кэша", err)
	}
	return &file, nil
}

func (r *CacheRepository) DeleteFile(ctx context.Context, uuid string) error {
	if err := r.client.Client.Del(ctx, r.key(uuid)).Err(); err != nil {
		return util.LogError("ошибка удаления файла из Redis", err)
	}
	return nil
}

func (r *CacheRepository) key(uuid string) string {
	return fmt.Sprintf("file:%s", uuid)
}
