package cart

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"foodgram/internal/repository"
)

// Заголовок выгрузки, как его видит пользователь.
var csvHeader = []string{"Ингредиент", "Количество", "Ед. изм."}

// RenderCSV превращает агрегат корзины в CSV-отчёт с заголовком.
// Чистая функция: проверяется без хранилища.
func RenderCSV(items []repository.CartIngredient) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, item := range items {
		row := []string{
			item.Name,
			strconv.FormatInt(item.Total, 10),
			item.Unit,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
