package services

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/Soukthavilay/qr-order/models"
	"github.com/Soukthavilay/qr-order/repository"
	"github.com/Soukthavilay/qr-order/storage"
	"go.uber.org/zap"
)

// CartService manages each session's cart. Every mutation persists the
// whole cart under storage.KeyCart.
type CartService interface {
	GetCart(ctx context.Context, sessionID string) (models.Cart, *ServiceError)
	AddItem(ctx context.Context, sessionID string, req *models.AddToCartRequest) (models.Cart, *ServiceError)
	UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (models.Cart, *ServiceError)
	RemoveItem(ctx context.Context, sessionID, itemID string) (models.Cart, *ServiceError)
	ClearCart(ctx context.Context, sessionID string) *ServiceError
	// Take empties the cart and returns what it held, as one step.
	Take(ctx context.Context, sessionID string) (models.Cart, *ServiceError)
	// Restore merges items back into the cart after a failed checkout.
	Restore(ctx context.Context, sessionID string, cart models.Cart) *ServiceError
}

type cartServiceImpl struct {
	store  storage.Store
	menu   repository.MenuRepository
	logger *zap.Logger

	// Sessions hash onto a fixed set of mutexes.
	locks [cartLockStripes]sync.Mutex
}

const cartLockStripes = 64

// NewCartService creates a new CartService.
func NewCartService(store storage.Store, menu repository.MenuRepository, logger *zap.Logger) CartService {
	return &cartServiceImpl{store: store, menu: menu, logger: logger}
}

func cartLockIndex(sessionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return int(h.Sum32() % cartLockStripes)
}

func (s *cartServiceImpl) lock(sessionID string) func() {
	mu := &s.locks[cartLockIndex(sessionID)]
	mu.Lock()
	return mu.Unlock
}

// load hydrates the session cart. Missing or corrupt data is an empty cart.
func (s *cartServiceImpl) load(ctx context.Context, sessionID string) models.Cart {
	cart, err := storage.LoadJSON(ctx, s.store, sessionID, storage.KeyCart, models.Cart{})
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.logger.Warn("Discarding unreadable cart", zap.String("session_id", sessionID), zap.Error(err))
	}
	return cart
}

func (s *cartServiceImpl) save(ctx context.Context, sessionID string, cart models.Cart) (models.Cart, *ServiceError) {
	cart.UpdatedAt = time.Now()
	if err := storage.SaveJSON(ctx, s.store, sessionID, storage.KeyCart, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.String("session_id", sessionID), zap.Error(err))
		return models.Cart{}, internal("Failed to save cart")
	}
	return cart, nil
}

func (s *cartServiceImpl) GetCart(ctx context.Context, sessionID string) (models.Cart, *ServiceError) {
	return s.load(ctx, sessionID), nil
}

// AddItem adds a catalog item by id. Out of stock dishes are refused here;
// the cart value itself accepts anything.
func (s *cartServiceImpl) AddItem(ctx context.Context, sessionID string, req *models.AddToCartRequest) (models.Cart, *ServiceError) {
	item, err := s.menu.FindByID(ctx, req.MenuItemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Cart{}, notFound("Menu item not found")
		}
		s.logger.Error("Failed to load menu item", zap.String("menu_item_id", req.MenuItemID), zap.Error(err))
		return models.Cart{}, internal("Failed to load menu item")
	}
	if item.CurrentAvailability() == models.AvailabilityOutOfStock {
		return models.Cart{}, conflict("Item is out of stock")
	}

	unlock := s.lock(sessionID)
	defer unlock()

	cart := s.load(ctx, sessionID).Add(models.CartItem{MenuItem: *item, Quantity: req.Quantity})
	return s.save(ctx, sessionID, cart)
}

func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (models.Cart, *ServiceError) {
	unlock := s.lock(sessionID)
	defer unlock()

	return s.save(ctx, sessionID, s.load(ctx, sessionID).SetQuantity(itemID, quantity))
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, sessionID, itemID string) (models.Cart, *ServiceError) {
	unlock := s.lock(sessionID)
	defer unlock()

	return s.save(ctx, sessionID, s.load(ctx, sessionID).Remove(itemID))
}

func (s *cartServiceImpl) ClearCart(ctx context.Context, sessionID string) *ServiceError {
	unlock := s.lock(sessionID)
	defer unlock()

	_, svcErr := s.save(ctx, sessionID, models.Cart{}.Clear())
	return svcErr
}

func (s *cartServiceImpl) Take(ctx context.Context, sessionID string) (models.Cart, *ServiceError) {
	unlock := s.lock(sessionID)
	defer unlock()

	cart := s.load(ctx, sessionID)
	if cart.IsEmpty() {
		return cart, nil
	}
	if _, svcErr := s.save(ctx, sessionID, cart.Clear()); svcErr != nil {
		return models.Cart{}, svcErr
	}
	return cart, nil
}

func (s *cartServiceImpl) Restore(ctx context.Context, sessionID string, taken models.Cart) *ServiceError {
	unlock := s.lock(sessionID)
	defer unlock()

	cart := s.load(ctx, sessionID)
	for _, it := range taken.Items {
		cart = cart.Add(it)
	}
	_, svcErr := s.save(ctx, sessionID, cart)
	return svcErr
}
