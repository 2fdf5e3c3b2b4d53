package apperror

import "errors"

// Ошибки ядра хранилища. Сервисы оборачивают их через fmt.Errorf("%w"),
// хендлеры сопоставляют с HTTP статусами через errors.Is.
var (
	// ErrUnauthorized : нет валидного bearer токена
	ErrUnauthorized = errors.New("пользователь не авторизован")

	// ErrForbidden : токен валиден, но прав недостаточно
	ErrForbidden = errors.New("доступ запрещён")

	// ErrNotFound : сущность не существует или невидима для вызывающего.
	// Эти два случая намеренно неразличимы, чтобы не раскрывать существование чужих объектов
	ErrNotFound = errors.New("не найдено")

	// ErrDuplicateName : имя уже занято среди соседей с тем же родителем
	ErrDuplicateName = errors.New("имя уже используется в этой директории")

	// ErrInvalidParent : родительская директория не существует или принадлежит другому владельцу
	ErrInvalidParent = errors.New("недопустимая родительская директория")

	// ErrSelfShare : попытка выдать доступ самому себе
	ErrSelfShare = errors.New("нельзя поделиться с самим собой")

	// ErrUnknownUser : получатель доступа не зарегистрирован
	ErrUnknownUser = errors.New("пользователь не найден")

	// ErrCorrupt : нарушен инвариант дерева (цикл в цепочке родителей).
	// Не ожидается при корректной работе, логируется отдельно
	ErrCorrupt = errors.New("нарушена целостность дерева директорий")
)
