package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Soukthavilay/qr-order/models"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of the DynamoDB client the inventory mirror uses.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// InventoryRepository persists stock items and their adjustment log.
type InventoryRepository interface {
	Put(ctx context.Context, item *models.InventoryItem) error
	FindAll(ctx context.Context) ([]models.InventoryItem, error)
	PutAdjustment(ctx context.Context, adj *models.StockAdjustment) error
	FindAdjustments(ctx context.Context) ([]models.StockAdjustment, error)
}

// DynamoInventoryRepository implements InventoryRepository with two
// DynamoDB tables keyed by "id".
type DynamoInventoryRepository struct {
	client           DynamoAPI
	table            string
	adjustmentsTable string
}

// NewDynamoInventoryRepository creates a new DynamoDB backed inventory repository.
func NewDynamoInventoryRepository(client DynamoAPI, table, adjustmentsTable string) *DynamoInventoryRepository {
	return &DynamoInventoryRepository{client: client, table: table, adjustmentsTable: adjustmentsTable}
}

type ddbInventoryItem struct {
	ID            string  `dynamodbav:"id"`
	Name          string  `dynamodbav:"name"`
	Category      string  `dynamodbav:"category"`
	CurrentStock  float64 `dynamodbav:"current_stock"`
	MinStock      float64 `dynamodbav:"min_stock"`
	MaxStock      float64 `dynamodbav:"max_stock"`
	Unit          string  `dynamodbav:"unit"`
	Supplier      string  `dynamodbav:"supplier,omitempty"`
	CostPerUnit   float64 `dynamodbav:"cost_per_unit"`
	LastRestocked string  `dynamodbav:"last_restocked"`
	UpdatedAt     string  `dynamodbav:"updated_at"`
}

type ddbStockAdjustment struct {
	ID            string  `dynamodbav:"id"`
	ItemID        string  `dynamodbav:"item_id"`
	PreviousStock float64 `dynamodbav:"previous_stock"`
	NewStock      float64 `dynamodbav:"new_stock"`
	Delta         float64 `dynamodbav:"delta"`
	Reason        string  `dynamodbav:"reason"`
	Actor         string  `dynamodbav:"actor,omitempty"`
	CreatedAt     string  `dynamodbav:"created_at"`
}

func toDDBInventoryItem(item *models.InventoryItem) ddbInventoryItem {
	return ddbInventoryItem{
		ID:            item.ID,
		Name:          item.Name,
		Category:      item.Category,
		CurrentStock:  item.CurrentStock,
		MinStock:      item.MinStock,
		MaxStock:      item.MaxStock,
		Unit:          item.Unit,
		Supplier:      item.Supplier,
		CostPerUnit:   item.CostPerUnit,
		LastRestocked: item.LastRestocked.Format(time.RFC3339),
		UpdatedAt:     item.UpdatedAt.Format(time.RFC3339),
	}
}

func (d ddbInventoryItem) toModel() models.InventoryItem {
	item := models.InventoryItem{
		ID:           d.ID,
		Name:         d.Name,
		Category:     d.Category,
		CurrentStock: d.CurrentStock,
		MinStock:     d.MinStock,
		MaxStock:     d.MaxStock,
		Unit:         d.Unit,
		Supplier:     d.Supplier,
		CostPerUnit:  d.CostPerUnit,
	}
	if t, err := time.Parse(time.RFC3339, d.LastRestocked); err == nil {
		item.LastRestocked = t
	}
	if t, err := time.Parse(time.RFC3339, d.UpdatedAt); err == nil {
		item.UpdatedAt = t
	}
	return item
}

func (r *DynamoInventoryRepository) Put(ctx context.Context, item *models.InventoryItem) error {
	av, err := attributevalue.MarshalMap(toDDBInventoryItem(item))
	if err != nil {
		return fmt.Errorf("marshal inventory item: %w", err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.table,
		Item:      av,
	}); err != nil {
		return fmt.Errorf("dynamodb PutItem failed: %w", err)
	}
	return nil
}

// FindAll scans the whole table, following pagination.
func (r *DynamoInventoryRepository) FindAll(ctx context.Context) ([]models.InventoryItem, error) {
	var (
		items    []models.InventoryItem
		startKey map[string]types.AttributeValue
	)
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         &r.table,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("dynamodb Scan failed: %w", err)
		}
		var page []ddbInventoryItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal inventory items: %w", err)
		}
		for _, d := range page {
			items = append(items, d.toModel())
		}
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (r *DynamoInventoryRepository) PutAdjustment(ctx context.Context, adj *models.StockAdjustment) error {
	av, err := attributevalue.MarshalMap(ddbStockAdjustment{
		ID:            adj.ID,
		ItemID:        adj.ItemID,
		PreviousStock: adj.PreviousStock,
		NewStock:      adj.NewStock,
		Delta:         adj.Delta,
		Reason:        string(adj.Reason),
		Actor:         adj.Actor,
		CreatedAt:     adj.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("marshal stock adjustment: %w", err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.adjustmentsTable,
		Item:      av,
	}); err != nil {
		return fmt.Errorf("dynamodb PutItem failed: %w", err)
	}
	return nil
}

// FindAdjustments scans the adjustment log, oldest first.
func (r *DynamoInventoryRepository) FindAdjustments(ctx context.Context) ([]models.StockAdjustment, error) {
	var (
		adjustments []models.StockAdjustment
		startKey    map[string]types.AttributeValue
	)
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         &r.adjustmentsTable,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("dynamodb Scan failed: %w", err)
		}
		var page []ddbStockAdjustment
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal stock adjustments: %w", err)
		}
		for _, d := range page {
			adjustments = append(adjustments, d.toModel())
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	sort.SliceStable(adjustments, func(i, j int) bool {
		return adjustments[i].CreatedAt.Before(adjustments[j].CreatedAt)
	})
	return adjustments, nil
}

func (d ddbStockAdjustment) toModel() models.StockAdjustment {
	adj := models.StockAdjustment{
		ID:            d.ID,
		ItemID:        d.ItemID,
		PreviousStock: d.PreviousStock,
		NewStock:      d.NewStock,
		Delta:         d.Delta,
		Reason:        models.AdjustmentReason(d.Reason),
		Actor:         d.Actor,
	}
	if t, err := time.Parse(time.RFC3339Nano, d.CreatedAt); err == nil {
		adj.CreatedAt = t
	}
	return adj
}
