package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"mydrive-server/internal/apperror"
	"mydrive-server/internal/model"
	"mydrive-server/internal/ports"
)

// RootMarker : синтетический корень, с которого начинается любая цепочка
const RootMarker = "/"

// BreadcrumbService : вычисляет цепочку родителей директории.
// Чистая функция над Tree Store: идёт по parent_uuid до корня.
// Инвариант леса гарантирует завершение; цикл означает повреждение данных
type BreadcrumbService struct {
	directoryRepository ports.DirectoryRepository
}

func NewBreadcrumbService(directoryRepository ports.DirectoryRepository) *BreadcrumbService {
	return &BreadcrumbService{directoryRepository: directoryRepository}
}

// BuildPath : возвращает цепочку (uuid, name) от корневого маркера до директории
// и путь вида "/Work/Reports"
func (s *BreadcrumbService) BuildPath(ctx context.Context, exec sqlx.ExtContext, directoryUUID string) ([]model.Breadcrumb, string, error) {
	visited := make(map[string]bool)
	reversed := []model.Breadcrumb{}

	current := directoryUUID
	for {
		if visited[current] {
			return nil, "", fmt.Errorf("[BreadcrumbService] цикл на директории %s: %w", current, apperror.ErrCorrupt)
		}
		visited[current] = true

		directory, err := s.directoryRepository.GetByUUID(ctx, exec, current)
		if err != nil {
			return nil, "", err
		}
		if directory == nil {
			if current == directoryUUID {
				return nil, "", fmt.Errorf("[BreadcrumbService] директория %s: %w", current, apperror.ErrNotFound)
			}
			// звено цепочки родителей исчезло
			return nil, "", fmt.Errorf("[BreadcrumbService] оборвана цепочка родителей на %s: %w", current, apperror.ErrCorrupt)
		}

		reversed = append(reversed, model.Breadcrumb{UUID: directory.UUID, Name: directory.Name})
		if directory.ParentUUID == nil {
			break
		}
		current = *directory.ParentUUID
	}

	breadcrumbs := make([]model.Breadcrumb, 0, len(reversed)+1)
	breadcrumbs = append(breadcrumbs, model.Breadcrumb{UUID: "", Name: RootMarker})

	names := make([]string, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		breadcrumbs = append(breadcrumbs, reversed[i])
		names = append(names, reversed[i].Name)
	}

	return breadcrumbs, "/" + strings.Join(names, "/"), nil
}
