package domain

import "time"

// MembershipKind различает три бинарных отношения пользователя:
// избранное, список покупок и подписка на автора.
type MembershipKind string

const (
	KindFavorite     MembershipKind = "favorite"
	KindShoppingCart MembershipKind = "shopping_cart"
	KindSubscription MembershipKind = "subscription"
)

// Favorite — рецепт в избранном пользователя.
// Существование записи и есть вся полезная нагрузка.
type Favorite struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_favorite_user_recipe"`
	RecipeID  int64     `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_favorite_user_recipe"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Recipe *Recipe `json:"recipe,omitempty" gorm:"foreignKey:RecipeID"`
}

func (Favorite) TableName() string { return "favorites" }

// ShoppingCart — рецепт в списке покупок пользователя.
type ShoppingCart struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_cart_user_recipe"`
	RecipeID  int64     `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_cart_user_recipe"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Recipe *Recipe `json:"recipe,omitempty" gorm:"foreignKey:RecipeID"`
}

func (ShoppingCart) TableName() string { return "shopping_carts" }

// Subscription — подписка пользователя на автора.
// Помимо уникальности пары, БД сама запрещает подписку на себя
// (check constraint chk_no_self_subscribe).
type Subscription struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	SubscriberID int64     `json:"subscriber_id" gorm:"not null;index;uniqueIndex:idx_subscriber_author;check:chk_no_self_subscribe,subscriber_id <> author_id"`
	AuthorID     int64     `json:"author_id" gorm:"not null;index;uniqueIndex:idx_subscriber_author"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

func (Subscription) TableName() string { return "subscriptions" }
