package shortlink

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	DefaultLength      = 10
	DefaultMaxAttempts = 10
)

// ExistsFunc проверяет, занят ли кандидат среди уже сохранённых ссылок.
type ExistsFunc func(candidate string) (bool, error)

// Generator выдаёт случайные алфавитно-цифровые токены.
// Цикл "генерируй, пока не уникально" ограничен MaxAttempts:
// исчерпание бюджета — это ErrGenerationFailed, а не бесконечный retry.
type Generator struct {
	Length      int
	MaxAttempts int
}

func NewGenerator() *Generator {
	return &Generator{
		Length:      DefaultLength,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Generate возвращает первый кандидат, для которого exists вернул false.
// Проверка exists — предварительная: финальную уникальность гарантирует
// уникальный индекс в БД.
func (g *Generator) Generate(exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < g.MaxAttempts; attempt++ {
		candidate, err := g.randomToken()
		if err != nil {
			return "", err
		}

		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("short link existence check: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrGenerationFailed
}

func (g *Generator) randomToken() (string, error) {
	buf := make([]byte, g.Length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("random source: %w", err)
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}
