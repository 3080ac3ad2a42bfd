package shop

import (
	"context"
	"sync"

	"github.com/speedparts/storefront/internal/domain/cart"
	"github.com/speedparts/storefront/internal/domain/catalog"
	"github.com/speedparts/storefront/internal/domain/order"
	"github.com/speedparts/storefront/internal/domain/shared"
	"github.com/speedparts/storefront/internal/infrastructure/dispatch"
	"go.uber.org/zap"
)

// CatalogLoader fetches the product collection at session start
type CatalogLoader interface {
	Load(ctx context.Context) ([]catalog.Product, error)
}

// CartRepository is the durable cart storage slot
type CartRepository interface {
	Save(ctx context.Context, key string, entries []cart.Entry) error
	Load(ctx context.Context, key string) []cart.Entry
	Delete(ctx context.Context, key string) error
}

// Dispatcher drives the outbound order channels
type Dispatcher interface {
	Dispatch(ctx context.Context, o *order.Order) dispatch.Report
}

// Session exclusively owns the catalog and the cart for one storefront
// session. All state lives here; components receive it by reference, never
// through ambient globals. Mutations are serialized by the session lock,
// which is what makes the quantity-vs-stock invariant safe under the HTTP
// mux.
type Session struct {
	mu          sync.Mutex
	catalog     *catalog.Catalog
	cart        *cart.Cart
	ledger      *cart.Ledger
	loader      CatalogLoader
	repo        CartRepository
	dispatcher  Dispatcher
	slotKey     string
	log         *zap.Logger
	dispatching bool
	onChange    []func()
}

// NewSession creates a session. Call Start before using it.
func NewSession(loader CatalogLoader, repo CartRepository, dispatcher Dispatcher, slotKey string, log *zap.Logger) *Session {
	s := &Session{
		catalog:    catalog.NewCatalog(nil),
		cart:       cart.New(),
		loader:     loader,
		repo:       repo,
		dispatcher: dispatcher,
		slotKey:    slotKey,
		log:        log,
	}
	s.ledger = cart.NewLedger(s.catalog, s.cart)
	return s
}

// Start loads the catalog and restores the persisted cart. A catalog load
// failure is tolerated: the session continues with an empty catalog and
// the failure is surfaced as a warning. The restored cart is sanitized
// against the loaded catalog and written back.
func (s *Session) Start(ctx context.Context) error {
	products, err := s.loader.Load(ctx)
	if err != nil {
		s.log.Warn("Catalog unavailable, starting with empty catalog", zap.Error(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog = catalog.NewCatalog(products)
	s.cart = cart.Restore(s.repo.Load(ctx, s.slotKey), s.catalog)
	s.ledger = cart.NewLedger(s.catalog, s.cart)

	if err := s.repo.Save(ctx, s.slotKey, s.cart.Entries()); err != nil {
		return err
	}

	s.log.Info("Session started",
		zap.Int("products", s.catalog.Len()),
		zap.Int("cart_entries", s.cart.Len()),
	)
	return nil
}

// OnChange registers a callback fired after every successful state
// mutation. The presentation layer subscribes here and recomputes its own
// view; the state layer never renders.
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// notify snapshots the subscriber list under the lock so registration is
// safe at any point, then fires the callbacks unlocked so they may call
// back into the session.
func (s *Session) notify() {
	s.mu.Lock()
	subscribers := make([]func(), len(s.onChange))
	copy(subscribers, s.onChange)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn()
	}
}

// Facets returns the catalog filter facets
func (s *Session) Facets() catalog.Facets {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Facets()
}

// Query returns the filtered catalog enriched with availability state
func (s *Session) Query(q catalog.FilterQuery) []ProductView {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := s.catalog.Query(q)
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, s.productView(p))
	}
	return views
}

// Product returns a single product with availability state
func (s *Session) Product(id string) (ProductView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog.Get(id)
	if !ok {
		return ProductView{}, shared.ErrNotFound
	}
	return s.productView(p), nil
}

func (s *Session) productView(p catalog.Product) ProductView {
	available := s.ledger.Available(p.ID)
	return ProductView{
		Product:     p,
		Available:   available,
		Band:        s.ledger.StockBand(p.ID),
		Purchasable: available > 0,
	}
}

// Available returns the available-to-sell quantity for a product
func (s *Session) Available(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Available(productID)
}

// StockBand returns the availability classification for a product
func (s *Session) StockBand(productID string) cart.Band {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.StockBand(productID)
}

// AddToCart adds one unit of the product to the cart
func (s *Session) AddToCart(ctx context.Context, productID string) error {
	s.mu.Lock()
	product, ok := s.catalog.Get(productID)
	if !ok {
		s.mu.Unlock()
		return shared.ErrNotFound
	}
	if err := s.cart.Add(product); err != nil {
		s.mu.Unlock()
		return err
	}
	err := s.persist(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// SetQuantity sets the cart quantity for the product, clamped to catalog
// stock. The returned flag reports whether clamping occurred.
func (s *Session) SetQuantity(ctx context.Context, productID string, quantity int) (clamped bool, err error) {
	s.mu.Lock()
	product, ok := s.catalog.Get(productID)
	if !ok {
		s.mu.Unlock()
		return false, shared.ErrNotFound
	}
	clamped = s.cart.SetQuantity(product, quantity)
	err = s.persist(ctx)
	s.mu.Unlock()
	if err != nil {
		return clamped, err
	}
	s.notify()
	return clamped, nil
}

// RemoveFromCart removes the product from the cart. Removing an absent
// product succeeds quietly.
func (s *Session) RemoveFromCart(ctx context.Context, productID string) error {
	s.mu.Lock()
	s.cart.Remove(productID)
	err := s.persist(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// ClearCart empties the cart and drops the storage slot
func (s *Session) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	s.cart.Clear()
	err := s.repo.Delete(ctx, s.slotKey)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// CartView returns the cart resolved against the catalog
func (s *Session) CartView() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := CartView{
		Lines:     make([]CartLine, 0, s.cart.Len()),
		ItemCount: s.cart.ItemCount(),
	}
	for _, entry := range s.cart.Entries() {
		product, ok := s.catalog.Get(entry.ProductID)
		if !ok {
			continue
		}
		view.Lines = append(view.Lines, CartLine{
			Product:   product,
			Quantity:  entry.Quantity,
			LineTotal: product.Price.Mul(decimalFromInt(entry.Quantity)),
		})
	}
	view.Subtotal, view.Total = s.cart.Totals(s.catalog)
	return view
}

// Checkout assembles the order from the cart and dispatches it. Only one
// dispatch may be in flight at a time; concurrent calls fail with
// ErrDispatchInFlight instead of producing duplicate sends.
//
// The cart is cleared after dispatch returns regardless of which channel
// branch fired. A failed remote submission is a degraded success (the
// messaging link already went out), so keeping the cart would only invite
// a duplicate order.
func (s *Session) Checkout(ctx context.Context, input order.CustomerInput) (*CheckoutResult, error) {
	s.mu.Lock()
	if s.dispatching {
		s.mu.Unlock()
		return nil, shared.ErrDispatchInFlight
	}

	o, err := order.Assemble(s.cart, s.catalog, input)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.dispatching = true
	s.mu.Unlock()

	// Dispatch performs network I/O; the session stays usable meanwhile.
	report := s.dispatcher.Dispatch(ctx, o)

	s.mu.Lock()
	s.dispatching = false
	s.cart.Clear()
	if err := s.repo.Delete(ctx, s.slotKey); err != nil {
		s.log.Error("Failed to drop cart slot after dispatch", zap.Error(err))
	}
	s.mu.Unlock()
	s.notify()

	return &CheckoutResult{
		OrderID: o.ID,
		Total:   o.Total,
		Report:  report,
	}, nil
}

// persist writes the cart to durable storage. Callers hold the lock.
func (s *Session) persist(ctx context.Context) error {
	return s.repo.Save(ctx, s.slotKey, s.cart.Entries())
}
