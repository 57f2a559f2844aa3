package membership

import "errors"

var (
	// ErrAlreadyExists — пара (actor, target) уже есть.
	// Повторное добавление — ошибка, а не no-op: API обещает
	// клиенту явную обратную связь.
	ErrAlreadyExists = errors.New("membership already exists")
	// ErrNotFound — удалять нечего; "уже отсутствует" для клиента
	// отличимо от "удалено".
	ErrNotFound      = errors.New("membership not found")
	ErrSelfReference = errors.New("cannot subscribe to yourself")
)
