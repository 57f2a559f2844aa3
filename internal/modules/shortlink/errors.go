package shortlink

import "errors"

var (
	// ErrGenerationFailed — бюджет попыток исчерпан, все кандидаты
	// столкнулись с уже существующими ссылками. Создание рецепта
	// при этом должно завершиться ошибкой целиком.
	ErrGenerationFailed = errors.New("failed to generate unique short link")
	ErrNotFound         = errors.New("short link not found")
)
