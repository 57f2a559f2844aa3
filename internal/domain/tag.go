package domain

// Tag — метка рецепта (завтрак, обед, ужин и т.д.).
type Tag struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;not null;uniqueIndex"`
	Slug string `json:"slug" gorm:"size:50;not null;uniqueIndex"`
}

func (Tag) TableName() string { return "tags" }
