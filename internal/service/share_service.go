package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"mydrive-server/config"
	"mydrive-server/internal/apperror"
	"mydrive-server/internal/model"
	"mydrive-server/internal/ports"
	"mydrive-server/internal/util"
)

// ShareService : движок шаринга. Единственная точка, где принимаются
// решения о доступе к чужим объектам
type ShareService struct {
	shareRepository     ports.ShareRepository
	directoryRepository ports.DirectoryRepository
	fileRepository      ports.FileRepository
	userRepository      ports.UserRepository
	db                  *config.Database
}

func NewShareService(
	shareRepository ports.ShareRepository,
	directoryRepository ports.DirectoryRepository,
	fileRepository ports.FileRepository,
	userRepository ports.UserRepository,
	db *config.Database,
) *ShareService {
	return &ShareService{
		shareRepository:     shareRepository,
		directoryRepository: directoryRepository,
		fileRepository:      fileRepository,
		userRepository:      userRepository,
		db:                  db,
	}
}

// Share : выдаёт грант доступа. Повторный вызов для той же пары
// (владелец, объект, получатель) обновляет уровень, не создавая дубликат
func (s *ShareService) Share(ctx context.Context, ownerUUID string, itemType model.ItemType, itemUUID, granteeLogin string, permission model.Permission) (*model.SharedItem, error) {
	exec, rollback, commit, err := s.shareRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[ShareService] не удалось начать транзакцию", err)
	}
	defer rollback()

	grantee, err := s.userRepository.FindByLogin(ctx, exec, granteeLogin)
	if err != nil {
		return nil, err
	}
	if grantee == nil {
		return nil, fmt.Errorf("[ShareService] получатель %s: %w", granteeLogin, apperror.ErrUnknownUser)
	}
	if grantee.UUID == ownerUUID {
		return nil, fmt.Errorf("[ShareService] %w", apperror.ErrSelfShare)
	}

	if err := s.checkOwnership(ctx, exec, ownerUUID, itemType, itemUUID); err != nil {
		return nil, err
	}

	saved, err := s.shareRepository.Upsert(ctx, exec, &model.SharedItem{
		UUID:         uuid.New().String(),
		OwnerUUID:    ownerUUID,
		GranteeLogin: granteeLogin,
		ItemType:     itemType,
		ItemUUID:     itemUUID,
		Permission:   permission,
	})
	if err != nil {
		return nil, util.LogError("[ShareService] не удалось сохранить грант", err)
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[ShareService] ошибка коммита транзакции", err)
	}

	log.Printf("[ShareService] %s выдал %s доступ %s к %s %s", ownerUUID, granteeLogin, saved.Permission, itemType, itemUUID)
	return saved, nil
}

// checkOwnership : объект должен существовать и принадлежать владельцу гранта
func (s *ShareService) checkOwnership(ctx context.Context, exec sqlx.ExtContext, ownerUUID string, itemType model.ItemType, itemUUID string) error {
	switch itemType {
	case model.ItemTypeDirectory:
		directory, err := s.directoryRepository.GetByUUID(ctx, exec, itemUUID)
		if err != nil {
			return err
		}
		if directory == nil {
			return fmt.Errorf("[ShareService] директория %s: %w", itemUUID, apperror.ErrNotFound)
		}
		if directory.OwnerUUID != ownerUUID {
			return fmt.Errorf("[ShareService] директория %s: %w", itemUUID, apperror.ErrForbidden)
		}
	case model.ItemTypeFile:
		file, err := s.fileRepository.GetByUUID(ctx, exec, itemUUID)
		if err != nil {
			return err
		}
		if file == nil {
			return fmt.Errorf("[ShareService] файл %s: %w", itemUUID, apperror.ErrNotFound)
		}
		if file.OwnerUUID != ownerUUID {
			return fmt.Errorf("[ShareService] файл %s: %w", itemUUID, apperror.ErrForbidden)
		}
	default:
		return fmt.Errorf("[ShareService] неизвестный тип объекта: %s", itemType)
	}
	return nil
}

// UpdateGrant : меняет уровень доступа существующего гранта
func (s *ShareService) UpdateGrant(ctx context.Context, requesterUUID, grantUUID string, permission model.Permission) (*model.SharedItem, error) {
	exec, rollback, commit, err := s.shareRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[ShareService] не удалось начать транзакцию", err)
	}
	defer rollback()

	grant, err := s.shareRepository.GetByUUID(ctx, exec, grantUUID)
	if err != nil {
		return nil, err
	}
	if grant == nil {
		return nil, fmt.Errorf("[ShareService] грант %s: %w", grantUUID, apperror.ErrNotFound)
	}
	if grant.OwnerUUID != requesterUUID {
		return nil, fmt.Errorf("[ShareService] грант %s: %w", grantUUID, apperror.ErrForbidden)
	}

	updated, err := s.shareRepository.UpdatePermission(ctx, exec, grantUUID, permission)
	if err != nil {
		return nil, err
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[ShareService] ошибка коммита транзакции", err)
	}
	return updated, nil
}

// Revoke : отзывает ровно один грант по его UUID.
// Отозвать может только владелец гранта
func (s *ShareService) Revoke(ctx context.Context, requesterUUID, grantUUID string) error {
	exec, rollback, commit, err := s.shareRepository.BeginTX(ctx)
	if err != nil {
		return util.LogError("[ShareService] не удалось начать транзакцию", err)
	}
	defer rollback()

	grant, err := s.shareRepository.GetByUUID(ctx, exec, grantUUID)
	if err != nil {
		return err
	}
	if grant == nil {
		return fmt.Errorf("[ShareService] грант %s: %w", grantUUID, apperror.ErrNotFound)
	}
	if grant.OwnerUUID != requesterUUID {
		return fmt.Errorf("[ShareService] грант %s: %w", grantUUID, apperror.ErrForbidden)
	}

	if err := s.shareRepository.Delete(ctx, exec, grantUUID); err != nil {
		return err
	}

	if err := commit(); err != nil {
		return util.LogError("[ShareService] ошибка коммита транзакции", err)
	}
	return nil
}

// ListSharedWithMe : гранты, выданные пользователю
func (s *ShareService) ListSharedWithMe(ctx context.Context, granteeLogin string) ([]model.SharedItemView, error) {
	return s.shareRepository.ListByGrantee(ctx, s.db, granteeLogin)
}

// ListSharedByMe : гранты, выданные пользователем
func (s *ShareService) ListSharedByMe(ctx context.Context, ownerUUID string) ([]model.SharedItemView, error) {
	return s.shareRepository.ListByOwner(ctx, s.db, ownerUUID)
}

// ResolveEffectivePermission : вычисляет действующий уровень доступа.
// Поиск идёт от объекта вверх по цепочке родителей, ближайший к объекту
// грант побеждает; владелец получает edit без гранта. Результат не
// кэшируется: топология дерева и гранты меняются независимо
func (s *ShareService) ResolveEffectivePermission(ctx context.Context, exec sqlx.ExtContext, userUUID, userLogin string, itemType model.ItemType, itemUUID string) (model.Permission, error) {
	var startDirectory *string

	switch itemType {
	case model.ItemTypeFile:
		file, err := s.fileRepository.GetByUUID(ctx, exec, itemUUID)
		if err != nil {
			return model.PermissionNone, err
		}
		if file == nil {
			return model.PermissionNone, fmt.Errorf("[ShareService] файл %s: %w", itemUUID, apperror.ErrNotFound)
		}
		if file.OwnerUUID == userUUID {
			return model.PermissionEdit, nil
		}

		grant, err := s.shareRepository.GetGrantFor(ctx, exec, file.UUID, userLogin)
		if err != nil {
			return model.PermissionNone, err
		}
		if grant != nil {
			return grant.Permission, nil
		}
		// файл наследует доступ от содержащей его директории
		startDirectory = file.DirectoryUUID
	case model.ItemTypeDirectory:
		directory, err := s.directoryRepository.GetByUUID(ctx, exec, itemUUID)
		if err != nil {
			return model.PermissionNone, err
		}
		if directory == nil {
			return model.PermissionNone, fmt.Errorf("[ShareService] директория %s: %w", itemUUID, apperror.ErrNotFound)
		}
		if directory.OwnerUUID == userUUID {
			return model.PermissionEdit, nil
		}
		startDirectory = &itemUUID
	default:
		return model.PermissionNone, fmt.Errorf("[ShareService] неизвестный тип объекта: %s", itemType)
	}

	if startDirectory == nil {
		return model.PermissionNone, nil
	}

	visited := make(map[string]bool)
	current := *startDirectory
	for {
		if visited[current] {
			return model.PermissionNone, fmt.Errorf("[ShareService] цикл на директории %s: %w", current, apperror.ErrCorrupt)
		}
		visited[current] = true

		grant, err := s.shareRepository.GetGrantFor(ctx, exec, current, userLogin)
		if err != nil {
			return model.PermissionNone, err
		}
		if grant != nil {
			return grant.Permission, nil
		}

		directory, err := s.directoryRepository.GetByUUID(ctx, exec, current)
		if err != nil {
			return model.PermissionNone, err
		}
		if directory == nil {
			return model.PermissionNone, fmt.Errorf("[ShareService] оборвана цепочка родителей на %s: %w", current, apperror.ErrCorrupt)
		}
		if directory.ParentUUID == nil {
			return model.PermissionNone, nil
		}
		current = *directory.ParentUUID
	}
}

// RevokeForItems : отзывает гранты на перечисленные объекты.
// Вызывается Tree Store и File Store внутри их транзакций удаления
func (s *ShareService) RevokeForItems(ctx context.Context, exec sqlx.ExtContext, itemUUIDs []string) (int64, error) {
	revoked, err := s.shareRepository.RevokeByItemUUIDs(ctx, exec, itemUUIDs)
	if err != nil {
		return 0, err
	}
	if revoked > 0 {
		log.Printf("[ShareService] отозвано грантов при удалении: %d", revoked)
	}
	return revoked, nil
}
