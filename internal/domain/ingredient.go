package domain

// Ingredient — справочный ингредиент.
// Пара (name, measurement_unit) уникальна: один и тот же продукт
// в разных единицах измерения хранится отдельными записями.
type Ingredient struct {
	ID              int64  `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"size:150;not null;uniqueIndex:idx_name_unit"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:50;not null;uniqueIndex:idx_name_unit"`
}

func (Ingredient) TableName() string { return "ingredients" }
