package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/marketsquare/storefront-api/internal/core/domain"
	"github.com/marketsquare/storefront-api/internal/core/ports"
	"github.com/marketsquare/storefront-api/internal/core/response"
)

// CartService implements cart mutations with a full-replace strategy: every
// mutation computes the complete desired line set, replaces the stored set,
// then reads the cart back so totals always come from live product data.
type CartService struct {
	carts    ports.CartRepository
	products ports.ProductRepository
	logger   zerolog.Logger
}

func NewCartService(carts ports.CartRepository, products ports.ProductRepository, logger zerolog.Logger) *CartService {
	return &CartService{carts: carts, products: products, logger: logger}
}

func (s *CartService) Get(ctx context.Context, id domain.Identity) response.Envelope[*domain.Cart] {
	cart, err := s.carts.FindByUserID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return response.OK("Cart is empty", domain.EmptyCart(id.UserID))
		}
		s.logger.Error().Err(err).Int64("user_id", id.UserID).Msg("get cart failed")
		return response.Internal[*domain.Cart]("Error fetching cart")
	}
	if len(cart.Items) == 0 {
		return response.OK("Cart is empty", domain.EmptyCart(id.UserID))
	}
	return response.OK("Cart retrieved", cart)
}

func (s *CartService) Add(ctx context.Context, id domain.Identity, in ports.AddToCartInput) response.Envelope[*domain.Cart] {
	product, err := s.products.FindByID(ctx, in.ProductID)
	if err != nil && !errors.Is(err, domain.ErrProductNotFound) {
		s.logger.Error().Err(err).Int64("product_id", in.ProductID).Msg("add to cart: product lookup failed")
		return response.Internal[*domain.Cart]("Error adding to cart")
	}
	if product == nil || !product.IsActive {
		return response.Failure[*domain.Cart]("Product not found or unavailable", http.StatusNotFound)
	}
	if product.Stock < in.Quantity {
		return response.Failure[*domain.Cart]("Insufficient stock", http.StatusBadRequest)
	}

	lines, err := s.currentLines(ctx, id.UserID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", id.UserID).Msg("add to cart: cart read failed")
		return response.Internal[*domain.Cart]("Error adding to cart")
	}

	merged := false
	for i := range lines {
		if lines[i].ProductID != in.ProductID {
			continue
		}
		newQty := lines[i].Quantity + in.Quantity
		if newQty > product.Stock {
			return response.Failure[*domain.Cart]("Not enough stock after adding", http.StatusBadRequest)
		}
		lines[i].Quantity = newQty
		merged = true
		break
	}
	if !merged {
		lines = append(lines, domain.CartLine{ProductID: in.ProductID, Quantity: in.Quantity})
	}

	if err := s.carts.ReplaceItems(ctx, id.UserID, lines); err != nil {
		s.logger.Error().Err(err).Int64("user_id", id.UserID).Msg("add to cart: replace failed")
		return response.Internal[*domain.Cart]("Error adding to cart")
	}
	return s.Get(ctx, id)
}

func (s *CartService) UpdateItem(ctx context.Context, id domain.Identity, productID int64, quantity int) response.Envelope[*domain.Cart] {
	cart, err := s.carts.FindByUserID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return response.Failure[*domain.Cart]("Cart not found", http.StatusNotFound)
		}
		s.logger.Error().Err(err).Int64("user_id", id.UserID).Msg("update cart item: cart read failed")
		return response.Internal[*domain.Cart]("Error updating cart item")
	}

	lines := cart.Lines()
	found := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return response.Failure[*domain.Cart]("Item not in cart", http.StatusNotFound)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil && !errors.Is(err, domain.ErrProductNotFound) {
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("update cart item: product lookup failed")
		return response.Internal[*domain.Cart]("Error updating cart item")
	}
	if product == nil || quantity > product.Stock {
		return response.Failure[*domain.Cart]("Not enough stock", http.StatusBadRequest)
	}

	if err := s.carts.ReplaceItems(ctx, id.UserID, lines); err != nil {
		s.logger.Error().Err(err).Int64("user_id", id.UserID).Msg("update cart item: replace failed")
		return response.Internal[*domain.Cart]("Error updating cart item")
	}
	return s.Get(ctx, id)
}

func (s *CartService) RemoveItem(ctx context.Context, id domain.Identity, productID int64) response.Envelope[*domain.Cart] {
	cart, err := s.carts.FindByUserID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return response.Failure[*domain.Cart]("Cart not found", http.StatusNotFound)
		}
		s.logger.Error().Err(err).Int64("user_id", id.UserID).Msg("remove cart item: cart read failed")
		return response.Internal[*domain.Cart]("Error removing item from cart")
	}

	remaining := make([]domain.CartLine, 0, len(cart.Items))
	for _, line := range cart.Lines() {
		if line.ProductID != productID {
			remaining = append(remaining, line)
		}
	}

	// Dropping the last line removes the cart row entirely rather than
	// leaving an empty-items cart behind.
	if len(remaining) == 0 {
		if err := s.carts.Clear(ctx, id.UserID); err != nil {
			s.logger.Error().Err(err).Int64("user_id", id.UserID).Msg("remove cart item: clear failed")
			return response.Internal[*domain.Cart]("Error removing item from cart")
		}
	} else if err := s.carts.ReplaceItems(ctx, id.UserID, remaining); err != nil {
		s.logger.Error().Err(err).Int64("user_id", id.UserID).Msg("remove cart item: replace failed")
		return response.Internal[*domain.Cart]("Error removing item from cart")
	}
	return s.Get(ctx, id)
}

func (s *CartService) Clear(ctx context.Context, id domain.Identity) response.Envelope[*struct{}] {
	if err := s.carts.Clear(ctx, id.UserID); err != nil {
		s.logger.Error().Err(err).Int64("user_id", id.UserID).Msg("clear cart failed")
		return response.Internal[*struct{}]("Error clearing cart")
	}
	return response.OK[*struct{}]("Cart cleared successfully", nil)
}

// currentLines returns the stored line set, treating a missing cart as empty.
func (s *CartService) currentLines(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return cart.Lines(), nil
}
