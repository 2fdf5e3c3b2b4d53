package ports

import (
	"context"

	"github.com/jmoiron/sqlx"

	"mydrive-server/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error)
	FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error)
	FindByLogin(ctx context.Context, exec sqlx.ExtContext, login string) (*model.User, error)
	Exists(ctx context.Context, exec sqlx.ExtContext, uuid string) (bool, error)
	LoginExists(ctx context.Context, exec sqlx.ExtContext, login string) (bool, error)
	AddStorageUsed(ctx context.Context, exec sqlx.ExtContext, uuid string, deltaBytes int64) error
}

type UserService interface {
	Register(ctx context.Context, login, password, userAgent, ipAddress string) (*model.TokensPair, error)
	GetUser(ctx context.Context, uuid string) (*model.User, error)
}
