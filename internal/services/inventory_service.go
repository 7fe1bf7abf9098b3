package services

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"purposefood/internal/domain"
)

// InventoryService applies committed orders against stock and raises alerts.
// Per-line failures are absorbed: a bad line is skipped and the rest of the
// order still goes through (partial application is accepted policy).
type InventoryService struct {
	Products ProductStore
	Notifs   NotificationSink
}

func NewInventoryService(products ProductStore, notifs NotificationSink) *InventoryService {
	return &InventoryService{Products: products, Notifs: notifs}
}

// ApplyOrder decrements stock for every line of a committed order. The write
// is unconditional: stock goes negative when an order exceeds what is on
// hand, which marks a production backlog rather than an error. Notifications
// accumulated along the way are appended in one batch at the end; a batch
// failure is logged and never rolls back the stock already written.
func (s *InventoryService) ApplyOrder(orderID string, items []domain.LineItem) (domain.StockAdjustmentResult, error) {
	if s.Products == nil || s.Notifs == nil {
		return domain.StockAdjustmentResult{}, errors.New("inventory service not wired")
	}

	result := domain.StockAdjustmentResult{
		Updates:       []domain.StockUpdate{},
		Notifications: []domain.Notification{},
	}

	for _, it := range items {
		p, err := s.Products.Get(it.ProductID)
		if err != nil {
			log.Printf("[inventory] order %s: skip line %s: %v", orderID, it.ProductID, err)
			continue
		}

		newStock := p.StockCurrent - it.Quantity
		if err := s.Products.SetStock(p.ID, newStock, time.Now()); err != nil {
			log.Printf("[inventory] order %s: stock write failed for %s: %v", orderID, p.ID, err)
			continue
		}

		result.Updates = append(result.Updates, domain.StockUpdate{
			ProductID:     p.ID,
			PreviousStock: p.StockCurrent,
			NewStock:      newStock,
			QtyOrdered:    it.Quantity,
		})

		switch {
		case newStock <= 0:
			result.Notifications = append(result.Notifications, newNotification(
				domain.NotifProductionNeeded,
				"Production needed: "+p.Name,
				fmt.Sprintf("%s is out of stock (%d on hand); production takes %s hours per batch.", p.Name, newStock, fmtHours(p.PrepHours)),
				map[string]any{
					"product_id":    p.ID,
					"product_name":  p.Name,
					"stock_current": newStock,
					"prep_hours":    p.PrepHours,
				},
			))
		case newStock <= p.StockMinimum:
			result.Notifications = append(result.Notifications, newNotification(
				domain.NotifLowStock,
				"Low stock: "+p.Name,
				fmt.Sprintf("%s is down to %d (minimum %d).", p.Name, newStock, p.StockMinimum),
				map[string]any{
					"product_id":    p.ID,
					"product_name":  p.Name,
					"stock_current": newStock,
					"stock_minimum": p.StockMinimum,
				},
			))
		}
	}

	if err := s.Notifs.InsertBatch(result.Notifications); err != nil {
		// Advisory only: stock updates stand even if the alerts were lost.
		log.Printf("[inventory] order %s: notification batch failed: %v", orderID, err)
	}

	return result, nil
}

// UpdateProductAndNotify applies a partial field update and records a single
// product_updated notification naming the changed fields.
func (s *InventoryService) UpdateProductAndNotify(productID string, fields map[string]any) (domain.Product, error) {
	p, err := s.Products.UpdateFields(productID, fields)
	if err != nil {
		return domain.Product{}, errors.Wrap(err, "update product")
	}

	changed := make([]string, 0, len(fields))
	for col := range fields {
		changed = append(changed, col)
	}
	sort.Strings(changed)

	n := newNotification(
		domain.NotifProductUpdated,
		"Product updated: "+p.Name,
		fmt.Sprintf("%s was updated (%d field(s)).", p.Name, len(changed)),
		map[string]any{
			"product_id":   p.ID,
			"product_name": p.Name,
			"fields":       changed,
		},
	)
	if err := s.Notifs.InsertBatch([]domain.Notification{n}); err != nil {
		log.Printf("[inventory] product %s: update notification failed: %v", productID, err)
	}

	return p, nil
}

// newNotification is the shared emission primitive for stock and product
// alerts.
func newNotification(typ, title, message string, data map[string]any) domain.Notification {
	return domain.Notification{
		ID:      uuid.NewString(),
		Type:    typ,
		Title:   title,
		Message: message,
		Data:    data,
	}
}
