package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"mydrive-server/config"
	"mydrive-server/internal/model"
	"mydrive-server/internal/util"
)

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateUser : сохраняет нового пользователя
func (r *UserRepository) CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (uuid, login, password_hash)
	VALUES ($1, $2, $3)
	RETURNING uuid, login, storage_used_bytes, created_at
	`

	createdUser := &model.User{}
	err := exec.QueryRowxContext(ctx, query, user.UUID, user.Login, user.PasswordHash).
		Scan(&createdUser.UUID, &createdUser.Login, &createdUser.StorageUsedBytes, &createdUser.CreatedAt)

	if err != nil {
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return createdUser, nil
}

// FindByUUID : ищет пользователя по UUID
func (r *UserRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error) {
	query := `SELECT uuid, login, password_hash, storage_used_bytes, created_at FROM users WHERE uuid = $1`
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, uuid)
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return &user, nil
}

// FindByLogin : ищет пользователя по login, (nil, nil) если не найден
func (r *UserRepository) FindByLogin(ctx context.Context, exec sqlx.ExtContext, login string) (*model.User, error) {
	query := `SELECT uuid, login, password_hash, storage_used_bytes, created_at FROM users WHERE login = $1`
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, login)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось найти пользователя по login", err)
	}
	return &user, nil
}

// Exists : проверяет, существует ли пользователь по UUID
func (r *UserRepository) Exists(ctx context.Context, exec sqlx.ExtContext, uuid string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE uuid = $1)`
	err := sqlx.GetContext(ctx, exec, &exists, query, uuid)
	if err != nil {
		return false, util.LogError("[UserRepo] ошибка проверки существования пользователя", err)
	}
	return exists, nil
}

// LoginExists : проверяет, занят ли login
func (r *UserRepository) LoginExists(ctx context.Context, exec sqlx.ExtContext, login string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE login = $1)`
	err := sqlx.GetContext(ctx, exec, &exists, query, login)
	if err != nil {
		return false, util.LogError("[UserRepo] ошибка проверки логина", err)
	}
	return exists, nil
}

// AddStorageUsed : корректирует счётчик занятого места (delta может быть отрицательной)
func (r *UserRepository) AddStorageUsed(ctx context.Context, exec sqlx.ExtContext, uuid string, deltaBytes int64) error {
	query := `UPDATE users SET storage_used_bytes = storage_used_bytes + $2 WHERE uuid = $1`
	_, err := exec.ExecContext(ctx, query, uuid, deltaBytes)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить занятое место", err)
	}
	return nil
}
