package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marketsquare/storefront-api/internal/core/domain"
	"github.com/marketsquare/storefront-api/internal/core/ports"
)

// --- users ---

type stubUserRepo struct {
	users         map[int64]*domain.User
	nextID        int64
	refreshTokens map[int64]*string
	failWith      error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:         make(map[int64]*domain.User),
		nextID:        1,
		refreshTokens: make(map[int64]*string),
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.nextID++
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) SetRefreshToken(_ context.Context, userID int64, token *string) error {
	if _, ok := r.users[userID]; !ok {
		return domain.ErrUserNotFound
	}
	r.refreshTokens[userID] = token
	return nil
}

// --- addresses ---

type stubAddressRepo struct {
	addresses map[int64]*domain.Address
	nextID    int64
}

func newStubAddressRepo() *stubAddressRepo {
	return &stubAddressRepo{addresses: make(map[int64]*domain.Address), nextID: 1}
}

func (r *stubAddressRepo) Create(_ context.Context, addr *domain.Address) (*domain.Address, error) {
	clone := *addr
	clone.ID = r.nextID
	r.nextID++
	r.addresses[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubAddressRepo) ListByUser(_ context.Context, userID int64) ([]*domain.Address, error) {
	out := make([]*domain.Address, 0)
	for _, a := range r.addresses {
		if a.UserID == userID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubAddressRepo) FindByIDForUser(_ context.Context, id, userID int64) (*domain.Address, error) {
	a, ok := r.addresses[id]
	if !ok || a.UserID != userID {
		return nil, domain.ErrAddressNotFound
	}
	clone := *a
	return &clone, nil
}

// --- products ---

type stubProductRepo struct {
	products map[int64]*domain.Product
	nextID   int64
	lastList ports.ListProductsFilter
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[int64]*domain.Product), nextID: 1}
}

func (r *stubProductRepo) put(p domain.Product) *domain.Product {
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	} else if p.ID >= r.nextID {
		r.nextID = p.ID + 1
	}
	r.products[p.ID] = &p
	return r.products[p.ID]
}

func cloneProduct(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	for _, existing := range r.products {
		if existing.Slug == p.Slug {
			return nil, domain.ErrSlugTaken
		}
	}
	return cloneProduct(r.put(*p)), nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	if p, ok := r.products[id]; ok {
		return cloneProduct(p), nil
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) FindBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			return cloneProduct(p), nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) List(_ context.Context, filter ports.ListProductsFilter) ([]*domain.Product, int64, error) {
	r.lastList = filter
	out := make([]*domain.Product, 0)
	for _, p := range r.products {
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, id int64, patch ports.UpdateProductPatch) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) DecrementStock(_ context.Context, id int64, qty int) error {
	p, ok := r.products[id]
	if !ok || p.Stock < qty {
		return domain.ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

func (r *stubProductRepo) stocks() map[int64]int {
	out := make(map[int64]int, len(r.products))
	for id, p := range r.products {
		out[id] = p.Stock
	}
	return out
}

func (r *stubProductRepo) restoreStocks(saved map[int64]int) {
	for id, stock := range saved {
		if p, ok := r.products[id]; ok {
			p.Stock = stock
		}
	}
}

// --- carts ---

type stubCartRepo struct {
	lines        map[int64][]domain.CartLine
	products     *stubProductRepo
	clearCalls   int
	replaceCalls int
}

func newStubCartRepo(products *stubProductRepo) *stubCartRepo {
	return &stubCartRepo{lines: make(map[int64][]domain.CartLine), products: products}
}

func (r *stubCartRepo) FindByUserID(_ context.Context, userID int64) (*domain.Cart, error) {
	lines, ok := r.lines[userID]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	cart := &domain.Cart{ID: userID, UserID: userID, Items: make([]domain.CartItem, 0, len(lines))}
	for _, line := range lines {
		p := r.products.products[line.ProductID]
		item := domain.CartItem{ProductID: line.ProductID, Quantity: line.Quantity}
		if p != nil {
			item.Name = p.Name
			item.Slug = p.Slug
			item.Price = p.Price
			item.Stock = p.Stock
			cart.TotalAmount = cart.TotalAmount.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
		cart.Items = append(cart.Items, item)
		cart.ItemsCount += line.Quantity
	}
	return cart, nil
}

func (r *stubCartRepo) ReplaceItems(_ context.Context, userID int64, lines []domain.CartLine) error {
	r.replaceCalls++
	stored := make([]domain.CartLine, len(lines))
	copy(stored, lines)
	r.lines[userID] = stored
	return nil
}

func (r *stubCartRepo) Clear(_ context.Context, userID int64) error {
	r.clearCalls++
	delete(r.lines, userID)
	return nil
}

// --- orders ---

type stubOrderRepo struct {
	orders   map[int64]*domain.Order
	nextID   int64
	lastList ports.ListOrdersFilter
	failWith error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[int64]*domain.Order), nextID: 1}
}

func (r *stubOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	clone := *order
	clone.ID = r.nextID
	r.nextID++
	r.orders[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	if o, ok := r.orders[id]; ok {
		clone := *o
		return &clone, nil
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) List(_ context.Context, filter ports.ListOrdersFilter) ([]*domain.OrderSummary, int64, error) {
	r.lastList = filter
	out := make([]*domain.OrderSummary, 0)
	for _, o := range r.orders {
		if filter.UserID != 0 && o.UserID != filter.UserID {
			continue
		}
		out = append(out, &domain.OrderSummary{ID: o.ID, OrderNumber: o.OrderNumber, UserID: o.UserID, Status: o.Status})
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o.Status = status
	clone := *o
	return &clone, nil
}

// --- wishlist ---

type stubWishlistRepo struct {
	entries map[int64]map[int64]time.Time // userID → productID → added
}

func newStubWishlistRepo() *stubWishlistRepo {
	return &stubWishlistRepo{entries: make(map[int64]map[int64]time.Time)}
}

func (r *stubWishlistRepo) Add(_ context.Context, userID, productID int64) (*domain.WishlistItem, error) {
	if r.entries[userID] == nil {
		r.entries[userID] = make(map[int64]time.Time)
	}
	if _, exists := r.entries[userID][productID]; exists {
		return nil, domain.ErrWishlistDuplicate
	}
	r.entries[userID][productID] = time.Now()
	return &domain.WishlistItem{UserID: userID, ProductID: productID}, nil
}

func (r *stubWishlistRepo) Exists(_ context.Context, userID, productID int64) (bool, error) {
	_, ok := r.entries[userID][productID]
	return ok, nil
}

func (r *stubWishlistRepo) Remove(_ context.Context, userID, productID int64) error {
	if _, ok := r.entries[userID][productID]; !ok {
		return domain.ErrWishlistNotFound
	}
	delete(r.entries[userID], productID)
	return nil
}

func (r *stubWishlistRepo) ListByUser(_ context.Context, userID int64, offset, limit int) ([]*domain.WishlistItem, error) {
	out := make([]*domain.WishlistItem, 0)
	for productID := range r.entries[userID] {
		out = append(out, &domain.WishlistItem{UserID: userID, ProductID: productID})
	}
	return out, nil
}

func (r *stubWishlistRepo) CountByUser(_ context.Context, userID int64) (int64, error) {
	return int64(len(r.entries[userID])), nil
}

func (r *stubWishlistRepo) Clear(_ context.Context, userID int64) error {
	delete(r.entries, userID)
	return nil
}

// --- blacklist ---

type stubBlacklist struct {
	entries map[string]time.Duration
}

func newStubBlacklist() *stubBlacklist {
	return &stubBlacklist{entries: make(map[string]time.Duration)}
}

func (b *stubBlacklist) Add(_ context.Context, token string, ttl time.Duration) error {
	b.entries[token] = ttl
	return nil
}

func (b *stubBlacklist) IsBlacklisted(_ context.Context, token string) (bool, error) {
	_, ok := b.entries[token]
	return ok, nil
}

// --- transactions ---

// stubTxManager runs the closure directly. Begin/rollback callbacks let
// tests snapshot and restore side effects the way a real transaction would.
type stubTxManager struct {
	onBegin    func()
	onRollback func()
	rolledBack bool
	commits    int
}

func (m *stubTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.onBegin != nil {
		m.onBegin()
	}
	if err := fn(ctx); err != nil {
		m.rolledBack = true
		if m.onRollback != nil {
			m.onRollback()
		}
		return err
	}
	m.commits++
	return nil
}

var errStoreDown = errors.New("store unavailable")
