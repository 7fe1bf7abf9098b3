package services

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"purposefood/internal/domain"
	"purposefood/internal/repos"
)

var (
	ErrEmptyOrder     = errors.New("order has no items")
	ErrUnavailable    = errors.New("order references unavailable products")
	ErrBadTransition  = errors.New("illegal order status transition")
	ErrOrderFinalized = errors.New("order is in a terminal status")
)

type Contact struct {
	CustomerID string
	Name       string
	Phone      string
	Address    string
}

type OrderService struct {
	Orders   *repos.OrderRepo
	Products *repos.ProductRepo
	Finance  *repos.FinanceRepo
	Avail    *AvailabilityService
	Inv      *InventoryService
}

func NewOrderService(orders *repos.OrderRepo, products *repos.ProductRepo, finance *repos.FinanceRepo,
	avail *AvailabilityService, inv *InventoryService) *OrderService {
	return &OrderService{Orders: orders, Products: products, Finance: finance, Avail: avail, Inv: inv}
}

// Place runs the availability pre-check and creates a pending order. Stock is
// NOT touched here; that happens on the transition to confirmed. Lines that
// only need production do not block intake.
func (s *OrderService) Place(contact Contact, items []domain.LineItem, notes string) (string, domain.OrderAvailabilitySummary, error) {
	if len(items) == 0 {
		return "", domain.OrderAvailabilitySummary{}, ErrEmptyOrder
	}

	summary := s.Avail.CheckAvailability(items)
	if !summary.CanProceed {
		return "", summary, ErrUnavailable
	}

	total := 0.0
	prices := make(map[string]float64, len(items))
	for _, it := range items {
		p, err := s.Products.Get(it.ProductID)
		if err != nil {
			return "", summary, errors.Wrapf(err, "price lookup for %s", it.ProductID)
		}
		prices[it.ProductID] = p.Price
		total += p.Price * float64(it.Quantity)
	}

	orderID := uuid.NewString()
	if err := s.Orders.Create(domain.Order{
		ID:               orderID,
		CustomerID:       contact.CustomerID,
		CustomerName:     contact.Name,
		CustomerPhone:    contact.Phone,
		DeliveryAddress:  contact.Address,
		DeliveryEstimate: summary.DeliveryEstimate,
		Total:            total,
		Status:           domain.OrderPending,
		Notes:            notes,
	}); err != nil {
		return "", summary, errors.Wrap(err, "create order")
	}
	for _, it := range items {
		if err := s.Orders.InsertItem(orderID, it.ProductID, it.Quantity, prices[it.ProductID]); err != nil {
			return "", summary, errors.Wrap(err, "insert order item")
		}
	}

	return orderID, summary, nil
}

// Transition moves an order along pending -> confirmed -> preparing -> ready
// -> delivered, with cancelled reachable from any non-terminal status. The
// stock core hooks in at exactly two points: confirmation applies the order
// against inventory, delivery books the income entry.
func (s *OrderService) Transition(orderID, next string) error {
	o, _, err := s.Orders.Get(orderID)
	if err != nil {
		return errors.Wrap(err, "load order")
	}
	if domain.TerminalStatus(o.Status) {
		return ErrOrderFinalized
	}
	if !domain.ValidTransition(o.Status, next) {
		return ErrBadTransition
	}
	if err := s.Orders.UpdateStatus(orderID, next); err != nil {
		return errors.Wrap(err, "update status")
	}

	switch next {
	case domain.OrderConfirmed:
		items, err := s.Orders.Items(orderID)
		if err != nil {
			log.Printf("[order] %s: confirmed but line items unreadable: %v", orderID, err)
			return nil
		}
		// Partial stock application is accepted; the result is advisory.
		if _, err := s.Inv.ApplyOrder(orderID, items); err != nil {
			log.Printf("[order] %s: stock application failed: %v", orderID, err)
		}
	case domain.OrderDelivered:
		entry := domain.FinancialEntry{
			ID:          uuid.NewString(),
			Kind:        "income",
			Category:    "sales",
			Description: "Order " + orderID + " delivered to " + o.CustomerName,
			Amount:      o.Total,
			EntryDate:   time.Now().Format("2006-01-02"),
			OrderID:     orderID,
		}
		if err := s.Finance.Insert(entry); err != nil {
			log.Printf("[order] %s: income entry failed: %v", orderID, err)
		}
	}

	return nil
}
