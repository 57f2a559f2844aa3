package cart

import "errors"

// ErrEmptyCart — в корзине нет ни одного ингредиента.
// Ошибка клиента (400), а не сбой сервера.
var ErrEmptyCart = errors.New("shopping cart is empty")
