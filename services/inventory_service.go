package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Soukthavilay/qr-order/models"
	aws_pkg "github.com/Soukthavilay/qr-order/pkg/aws"
	"github.com/Soukthavilay/qr-order/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InventoryService tracks stock on hand and its adjustment history.
// Stock is not drawn down by orders.
type InventoryService interface {
	Load(ctx context.Context) error
	ListItems(ctx context.Context, filter models.InventoryFilter) []models.InventoryItem
	GetItem(ctx context.Context, id string) (*models.InventoryItem, *ServiceError)
	CreateItem(ctx context.Context, req *models.CreateInventoryItemRequest) (*models.InventoryItem, *ServiceError)
	UpdateItem(ctx context.Context, id string, req *models.UpdateInventoryItemRequest) (*models.InventoryItem, *ServiceError)
	Restock(ctx context.Context, id string, quantity float64, actor string) (*models.InventoryItem, *ServiceError)
	Adjust(ctx context.Context, id string, stock float64, actor string) (*models.InventoryItem, *ServiceError)
	LowStock(ctx context.Context) []models.InventoryItem
	TotalValue(ctx context.Context) models.InventoryValue
	Adjustments(ctx context.Context, id string) ([]models.StockAdjustment, *ServiceError)
}

type inventoryServiceImpl struct {
	repo   repository.InventoryRepository
	events eventSink
	logger *zap.Logger

	mu          sync.RWMutex
	items       []models.InventoryItem
	adjustments []models.StockAdjustment
}

// NewInventoryService creates a new InventoryService holding seed. repo may
// be nil.
func NewInventoryService(repo repository.InventoryRepository, seed []models.InventoryItem, opts EventOptions, logger *zap.Logger) InventoryService {
	items := make([]models.InventoryItem, len(seed))
	copy(items, seed)
	return &inventoryServiceImpl{
		repo:        repo,
		events:      opts.sink(logger),
		logger:      logger,
		items:       items,
		adjustments: []models.StockAdjustment{},
	}
}

// Load replaces the seed with the mirror's items when the mirror has any,
// and restores the adjustment log.
func (s *inventoryServiceImpl) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}
	adjustments, err := s.repo.FindAdjustments(ctx)
	if err != nil {
		return err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	sort.SliceStable(adjustments, func(i, j int) bool {
		return adjustments[i].CreatedAt.Before(adjustments[j].CreatedAt)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(items) > 0 {
		s.items = items
	}
	if len(adjustments) > 0 {
		s.adjustments = adjustments
	}
	return nil
}

func (s *inventoryServiceImpl) ListItems(_ context.Context, filter models.InventoryFilter) []models.InventoryItem {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	category := strings.TrimSpace(filter.Category)
	if strings.EqualFold(category, "all") {
		category = ""
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.InventoryItem, 0, len(s.items))
	for _, it := range s.items {
		if category != "" && it.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(it.Name), search) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func (s *inventoryServiceImpl) GetItem(_ context.Context, id string) (*models.InventoryItem, *ServiceError) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.ID == id {
			item := it
			return &item, nil
		}
	}
	return nil, notFound("Inventory item not found")
}

func (s *inventoryServiceImpl) CreateItem(ctx context.Context, req *models.CreateInventoryItemRequest) (*models.InventoryItem, *ServiceError) {
	now := time.Now()
	item := models.InventoryItem{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Category:      req.Category,
		CurrentStock:  req.CurrentStock,
		MinStock:      req.MinStock,
		MaxStock:      req.MaxStock,
		Unit:          req.Unit,
		Supplier:      req.Supplier,
		CostPerUnit:   req.CostPerUnit,
		LastRestocked: now,
		UpdatedAt:     now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.repo != nil {
		if err := s.repo.Put(ctx, &item); err != nil {
			s.logger.Error("Failed to persist inventory item", zap.Error(err))
			return nil, internal("Failed to create inventory item")
		}
	}
	next := make([]models.InventoryItem, len(s.items), len(s.items)+1)
	copy(next, s.items)
	s.items = append(next, item)

	s.logger.Info("Inventory item created", zap.String("item_id", item.ID), zap.String("name", item.Name))
	return &item, nil
}

// replace runs mutate on a copy of item id, writes it through the mirror,
// records adj when non-nil and swaps in a new slice.
func (s *inventoryServiceImpl) replace(ctx context.Context, id string, mutate func(*models.InventoryItem) (*models.StockAdjustment, *ServiceError)) (*models.InventoryItem, *models.StockAdjustment, *ServiceError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.items {
		if s.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil, notFound("Inventory item not found")
	}

	updated := s.items[idx]
	adj, svcErr := mutate(&updated)
	if svcErr != nil {
		return nil, nil, svcErr
	}
	updated.UpdatedAt = time.Now()

	if s.repo != nil {
		if err := s.repo.Put(ctx, &updated); err != nil {
			s.logger.Error("Failed to persist inventory item", zap.String("item_id", id), zap.Error(err))
			return nil, nil, internal("Failed to update inventory item")
		}
		if adj != nil {
			if err := s.repo.PutAdjustment(ctx, adj); err != nil {
				// The item itself is stored; the audit entry is kept in memory.
				s.logger.Warn("Failed to persist stock adjustment", zap.String("item_id", id), zap.Error(err))
			}
		}
	}

	items := make([]models.InventoryItem, len(s.items))
	copy(items, s.items)
	items[idx] = updated
	s.items = items
	if adj != nil {
		adjustments := make([]models.StockAdjustment, len(s.adjustments), len(s.adjustments)+1)
		copy(adjustments, s.adjustments)
		s.adjustments = append(adjustments, *adj)
	}
	return &updated, adj, nil
}

func (s *inventoryServiceImpl) UpdateItem(ctx context.Context, id string, req *models.UpdateInventoryItemRequest) (*models.InventoryItem, *ServiceError) {
	item, _, svcErr := s.replace(ctx, id, func(it *models.InventoryItem) (*models.StockAdjustment, *ServiceError) {
		if req.Name != nil {
			it.Name = *req.Name
		}
		if req.Category != nil {
			it.Category = *req.Category
		}
		if req.MinStock != nil {
			it.MinStock = *req.MinStock
		}
		if req.MaxStock != nil {
			it.MaxStock = *req.MaxStock
		}
		if req.Unit != nil {
			it.Unit = *req.Unit
		}
		if req.Supplier != nil {
			it.Supplier = *req.Supplier
		}
		if req.CostPerUnit != nil {
			it.CostPerUnit = *req.CostPerUnit
		}
		if it.MaxStock < it.MinStock {
			return nil, badRequest("Max stock must not be below min stock")
		}
		return nil, nil
	})
	return item, svcErr
}

func newAdjustment(it *models.InventoryItem, newStock float64, reason models.AdjustmentReason, actor string, at time.Time) *models.StockAdjustment {
	return &models.StockAdjustment{
		ID:            uuid.NewString(),
		ItemID:        it.ID,
		PreviousStock: it.CurrentStock,
		NewStock:      newStock,
		Delta:         decimal.NewFromFloat(newStock).Sub(decimal.NewFromFloat(it.CurrentStock)).InexactFloat64(),
		Reason:        reason,
		Actor:         actor,
		CreatedAt:     at,
	}
}

func (s *inventoryServiceImpl) Restock(ctx context.Context, id string, quantity float64, actor string) (*models.InventoryItem, *ServiceError) {
	if quantity <= 0 {
		return nil, badRequest("Quantity must be positive")
	}
	item, _, svcErr := s.replace(ctx, id, func(it *models.InventoryItem) (*models.StockAdjustment, *ServiceError) {
		now := time.Now()
		stock := decimal.NewFromFloat(it.CurrentStock).Add(decimal.NewFromFloat(quantity)).InexactFloat64()
		adj := newAdjustment(it, stock, models.ReasonRestock, actor, now)
		it.CurrentStock = stock
		it.LastRestocked = now
		return adj, nil
	})
	if svcErr != nil {
		return nil, svcErr
	}
	s.logger.Info("Inventory restocked", zap.String("item_id", id), zap.Float64("quantity", quantity))
	return item, nil
}

func (s *inventoryServiceImpl) Adjust(ctx context.Context, id string, stock float64, actor string) (*models.InventoryItem, *ServiceError) {
	if stock < 0 {
		return nil, badRequest("Stock must not be negative")
	}
	var wasLow bool
	item, _, svcErr := s.replace(ctx, id, func(it *models.InventoryItem) (*models.StockAdjustment, *ServiceError) {
		wasLow = it.IsLowStock()
		adj := newAdjustment(it, stock, models.ReasonAdjust, actor, time.Now())
		it.CurrentStock = stock
		return adj, nil
	})
	if svcErr != nil {
		return nil, svcErr
	}

	s.logger.Info("Inventory adjusted", zap.String("item_id", id), zap.Float64("stock", stock))
	if item.IsLowStock() && !wasLow {
		s.logger.Warn("Inventory item is low on stock",
			zap.String("item_id", item.ID),
			zap.Float64("current_stock", item.CurrentStock),
			zap.Float64("min_stock", item.MinStock))
		s.events.publish(ctx, models.EventInventoryLowStock, models.InventoryEvent{
			Type:         models.EventInventoryLowStock,
			ItemID:       item.ID,
			Name:         item.Name,
			CurrentStock: item.CurrentStock,
			MinStock:     item.MinStock,
			Timestamp:    item.UpdatedAt,
		})
		s.events.count(ctx, aws_pkg.MetricInventoryLow, nil)
	}
	return item, nil
}

func (s *inventoryServiceImpl) LowStock(_ context.Context) []models.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.InventoryItem, 0)
	for _, it := range s.items {
		if it.IsLowStock() {
			out = append(out, it)
		}
	}
	return out
}

func (s *inventoryServiceImpl) TotalValue(_ context.Context) models.InventoryValue {
	s.mu.RLock()
	items := s.items
	s.mu.RUnlock()

	total := decimal.Zero
	value := models.InventoryValue{ItemCount: len(items)}
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.CurrentStock).Mul(decimal.NewFromFloat(it.CostPerUnit)))
		if it.IsLowStock() {
			value.LowStockCount++
		}
	}
	value.TotalValue = total.Round(2).InexactFloat64()
	return value
}

// Adjustments returns the audit trail of item id, newest first.
func (s *inventoryServiceImpl) Adjustments(ctx context.Context, id string) ([]models.StockAdjustment, *ServiceError) {
	if _, svcErr := s.GetItem(ctx, id); svcErr != nil {
		return nil, svcErr
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.StockAdjustment, 0)
	for i := len(s.adjustments) - 1; i >= 0; i-- {
		if s.adjustments[i].ItemID == id {
			out = append(out, s.adjustments[i])
		}
	}
	return out, nil
}
