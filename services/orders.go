package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenbasket/produce-orders/config"
	"github.com/greenbasket/produce-orders/models"
	"github.com/greenbasket/produce-orders/utils"
)

// DefaultListLimit caps admin order listings when no limit is given.
const DefaultListLimit = 100

// OrderService owns order submission, listing and export. Each submission is
// an independent insert, so concurrent customers never contend with each
// other beyond what the database already serializes.
type OrderService struct {
	db      *gorm.DB
	catalog *CatalogStore
	cfg     *config.Config
}

func NewOrderService(db *gorm.DB, catalog *CatalogStore, cfg *config.Config) *OrderService {
	return &OrderService{db: db, catalog: catalog, cfg: cfg}
}

// SubmittedLine is one line of a client order submission. Price is advisory
// and cross-checked against the live catalog before anything is persisted.
type SubmittedLine struct {
	ItemID   string  `json:"itemId"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// OrderSubmission is the client payload for a new order. The client-computed
// totals are advisory only; the server re-derives both before persisting.
type OrderSubmission struct {
	CustomerName string          `json:"customerName"`
	FlatNumber   string          `json:"flatNumber"`
	DeliveryDay  string          `json:"deliveryDay"`
	Phone        string          `json:"phone"`
	Notes        string          `json:"notes"`
	Items        []SubmittedLine `json:"items"`
	ItemsTotal   *float64        `json:"itemsTotal"`
	GrandTotal   *float64        `json:"grandTotal"`
}

// Submit validates the submission, rebuilds the order lines from the live
// catalog, re-derives the totals and persists the order atomically. It
// returns the stored order with its assigned id and timestamp.
func (s *OrderService) Submit(sub OrderSubmission) (models.Order, error) {
	if strings.TrimSpace(sub.CustomerName) == "" {
		return models.Order{}, fmt.Errorf("%w: customerName", ErrMissingField)
	}
	if strings.TrimSpace(sub.FlatNumber) == "" {
		return models.Order{}, fmt.Errorf("%w: flatNumber", ErrMissingField)
	}
	if strings.TrimSpace(sub.DeliveryDay) == "" {
		return models.Order{}, fmt.Errorf("%w: deliveryDay", ErrMissingField)
	}
	if len(sub.Items) == 0 {
		return models.Order{}, fmt.Errorf("%w: items", ErrMissingField)
	}

	// Only positive quantities count as "in cart".
	quantities := make(map[string]float64, len(sub.Items))
	for _, line := range sub.Items {
		if line.Quantity > 0 {
			quantities[line.ItemID] += line.Quantity
		}
	}
	if len(quantities) == 0 {
		return models.Order{}, fmt.Errorf("%w: items", ErrMissingField)
	}

	catalog, err := s.catalog.ListActive()
	if err != nil {
		return models.Order{}, err
	}
	lines := BuildLines(catalog, quantities)

	// Every submitted item must exist in the active catalog, and its
	// submitted price must agree with the catalog price.
	priced := make(map[string]float64, len(lines))
	for _, line := range lines {
		priced[line.ItemID] = line.Price
	}
	for _, line := range sub.Items {
		if line.Quantity <= 0 {
			continue
		}
		catalogPrice, ok := priced[line.ItemID]
		if !ok {
			return models.Order{}, fmt.Errorf("%w: %s", ErrUnknownItem, line.ItemID)
		}
		if amountsDiffer(line.Price, catalogPrice) {
			return models.Order{}, fmt.Errorf("%w: %s", ErrPriceMismatch, line.ItemID)
		}
	}

	itemsTotal := ItemsTotal(lines)
	grandTotal := GrandTotal(itemsTotal, s.cfg.DeliveryFee)

	if sub.ItemsTotal != nil && amountsDiffer(*sub.ItemsTotal, itemsTotal) {
		return models.Order{}, fmt.Errorf("%w: itemsTotal", ErrInvalidTotal)
	}
	if sub.GrandTotal != nil && amountsDiffer(*sub.GrandTotal, grandTotal) {
		return models.Order{}, fmt.Errorf("%w: grandTotal", ErrInvalidTotal)
	}

	order := models.Order{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		CustomerName: sub.CustomerName,
		FlatNumber:   sub.FlatNumber,
		DeliveryDay:  sub.DeliveryDay,
		Phone:        sub.Phone,
		Notes:        sub.Notes,
		ItemsTotal:   itemsTotal,
		DeliveryFee:  s.cfg.DeliveryFee,
		GrandTotal:   grandTotal,
		Lines:        lines,
	}

	if err := s.db.Create(&order).Error; err != nil {
		return models.Order{}, fmt.Errorf("storing order: %w", err)
	}
	return order, nil
}

// List returns the most recent orders, newest first. A non-positive limit
// falls back to DefaultListLimit.
func (s *OrderService) List(limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var orders []models.Order
	err := s.db.Order("created_at DESC, id DESC").Limit(limit).Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("loading orders: %w", err)
	}
	return orders, nil
}

// ExportCSV serializes every order, newest first, as a CSV document. Lines
// are flattened into a single human-readable cell.
func (s *OrderService) ExportCSV() ([]byte, error) {
	var orders []models.Order
	err := s.db.Order("created_at DESC, id DESC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("loading orders: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"Order ID", "Date", "Customer Name", "Flat Number", "Delivery Day",
		"Phone", "Items", "Items Total", "Delivery Fee", "Grand Total", "Notes",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, order := range orders {
		if err := w.Write([]string{
			order.ID,
			order.CreatedAt.Format(time.RFC3339),
			order.CustomerName,
			order.FlatNumber,
			order.DeliveryDay,
			order.Phone,
			formatLines(order.Lines),
			utils.FormatAmount(order.ItemsTotal),
			utils.FormatAmount(order.DeliveryFee),
			utils.FormatAmount(order.GrandTotal),
			order.Notes,
		}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatLines renders order lines as "Name (qty unit @ price AED)" joined
// by "; ".
func formatLines(lines []models.OrderLine) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		qty := strconv.FormatFloat(line.Quantity, 'f', -1, 64)
		parts = append(parts, fmt.Sprintf("%s (%s %s @ %s AED)",
			line.Name, qty, line.Unit, utils.FormatAmount(line.Price)))
	}
	return strings.Join(parts, "; ")
}
