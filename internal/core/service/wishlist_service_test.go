package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/marketsquare/storefront-api/internal/core/domain"
)

func newWishlistFixture() (*WishlistService, *stubWishlistRepo, *stubProductRepo) {
	wishlist := newStubWishlistRepo()
	products := newStubProductRepo()
	return NewWishlistService(wishlist, products, zerolog.Nop()), wishlist, products
}

func TestWishlistService_Add_Success(t *testing.T) {
	svc, _, products := newWishlistFixture()
	seedProduct(products, 10, "widget", "10.00", 5, true)
	id := domain.Identity{UserID: 1, Role: domain.RoleCustomer}

	env := svc.Add(context.Background(), id, 10)
	if !env.Success || env.StatusCode != http.StatusCreated {
		t.Fatalf("add failed: %+v", env)
	}
}

func TestWishlistService_Add_MissingProduct(t *testing.T) {
	svc, _, _ := newWishlistFixture()
	id := domain.Identity{UserID: 1, Role: domain.RoleCustomer}

	env := svc.Add(context.Background(), id, 404)
	if env.Success || env.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %+v", env)
	}
}

func TestWishlistService_Add_InactiveProductIsGone(t *testing.T) {
	svc, _, products := newWishlistFixture()
	seedProduct(products, 10, "retired", "10.00", 0, false)
	id := domain.Identity{UserID: 1, Role: domain.RoleCustomer}

	env := svc.Add(context.Background(), id, 10)
	if env.Success || env.StatusCode != http.StatusGone {
		t.Fatalf("expected 410, got %+v", env)
	}
	if env.Message != "Product is no longer available" {
		t.Fatalf("unexpected message: %q", env.Message)
	}
}

func TestWishlistService_Add_Duplicate(t *testing.T) {
	svc, _, products := newWishlistFixture()
	seedProduct(products, 10, "widget", "10.00", 5, true)
	id := domain.Identity{UserID: 1, Role: domain.RoleCustomer}

	_ = svc.Add(context.Background(), id, 10)
	env := svc.Add(context.Background(), id, 10)
	if env.Success || env.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %+v", env)
	}
	if env.Message != "Product already in wishlist" {
		t.Fatalf("unexpected message: %q", env.Message)
	}
}

func TestWishlistService_Remove_NotInWishlist(t *testing.T) {
	svc, _, products := newWishlistFixture()
	seedProduct(products, 10, "widget", "10.00", 5, true)
	id := domain.Identity{UserID: 1, Role: domain.RoleCustomer}

	env := svc.Remove(context.Background(), id, 10)
	if env.Success || env.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %+v", env)
	}
}

func TestWishlistService_RemoveAndClear(t *testing.T) {
	svc, wishlist, products := newWishlistFixture()
	seedProduct(products, 10, "widget", "10.00", 5, true)
	seedProduct(products, 11, "gadget", "5.00", 5, true)
	id := domain.Identity{UserID: 1, Role: domain.RoleCustomer}

	_ = svc.Add(context.Background(), id, 10)
	_ = svc.Add(context.Background(), id, 11)

	if env := svc.Remove(context.Background(), id, 10); !env.Success {
		t.Fatalf("remove failed: %+v", env)
	}
	if n, _ := wishlist.CountByUser(context.Background(), 1); n != 1 {
		t.Fatalf("expected 1 entry left, got %d", n)
	}

	if env := svc.Clear(context.Background(), id); !env.Success {
		t.Fatalf("clear failed: %+v", env)
	}
	if n, _ := wishlist.CountByUser(context.Background(), 1); n != 0 {
		t.Fatalf("expected empty wishlist, got %d", n)
	}
}

func TestWishlistService_List(t *testing.T) {
	svc, _, products := newWishlistFixture()
	seedProduct(products, 10, "widget", "10.00", 5, true)
	id := domain.Identity{UserID: 1, Role: domain.RoleCustomer}

	_ = svc.Add(context.Background(), id, 10)

	env := svc.List(context.Background(), id, 0, 1000)
	if !env.Success {
		t.Fatalf("list failed: %+v", env)
	}
	if env.ResponseObject.Total != 1 || len(env.ResponseObject.Data) != 1 {
		t.Fatalf("unexpected payload: %+v", env.ResponseObject)
	}
}
