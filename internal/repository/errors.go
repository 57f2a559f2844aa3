package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	// ErrCheckViolation — нарушено check-ограничение БД
	// (например, подписка на самого себя).
	ErrCheckViolation = errors.New("check constraint violation")
)

// translate приводит ошибки драйверов к сентинелам пакета.
// Уникальный индекс в БД — источник истины: гонка, проскочившая мимо
// предварительной проверки, всё равно завершается ErrDuplicate.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrDuplicate
		case "23514":
			return ErrCheckViolation
		}
	}

	// modernc sqlite (локальная разработка и тесты)
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	if strings.Contains(msg, "CHECK constraint failed") {
		return ErrCheckViolation
	}

	return err
}
