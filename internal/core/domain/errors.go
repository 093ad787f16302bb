package domain

import "errors"

// Sentinel errors returned by repositories and mapped onto the response
// envelope by services. Repositories never leak driver errors for these cases.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrAddressNotFound = errors.New("address not found")

	ErrProductNotFound = errors.New("product not found")
	ErrSlugTaken       = errors.New("product slug already exists")
	ErrProductInactive = errors.New("product is no longer available")

	ErrCartNotFound   = errors.New("cart not found")
	ErrItemNotInCart  = errors.New("item not in cart")
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrOrderNotFound = errors.New("order not found")

	ErrWishlistDuplicate = errors.New("product already in wishlist")
	ErrWishlistNotFound  = errors.New("item not in wishlist")

	ErrForbidden = errors.New("access forbidden")
)
