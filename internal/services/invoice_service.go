package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"purposefood/internal/domain"
	"purposefood/internal/repos"
)

type InvoiceService struct {
	Invoices *repos.InvoiceRepo
	Orders   *repos.OrderRepo
}

func NewInvoiceService(invoices *repos.InvoiceRepo, orders *repos.OrderRepo) *InvoiceService {
	return &InvoiceService{Invoices: invoices, Orders: orders}
}

// IssueForOrder creates an invoice from an existing order.
func (s *InvoiceService) IssueForOrder(orderID string, dueDays int) (domain.Invoice, error) {
	o, _, err := s.Orders.Get(orderID)
	if err != nil {
		return domain.Invoice{}, errors.Wrap(err, "load order")
	}
	if dueDays <= 0 {
		dueDays = 7
	}

	now := time.Now()
	number, err := s.Invoices.NextNumber(now)
	if err != nil {
		return domain.Invoice{}, errors.Wrap(err, "next invoice number")
	}

	inv := domain.Invoice{
		ID:           uuid.NewString(),
		Number:       number,
		OrderID:      o.ID,
		CustomerName: o.CustomerName,
		Total:        o.Total,
		Status:       "issued",
		DueDate:      now.AddDate(0, 0, dueDays).Format("2006-01-02"),
	}
	if err := s.Invoices.Create(inv); err != nil {
		return domain.Invoice{}, err
	}
	return s.Invoices.Get(inv.ID)
}

func (s *InvoiceService) MarkPaid(id string) error {
	return s.Invoices.UpdateStatus(id, "paid")
}

func (s *InvoiceService) Void(id string) error {
	return s.Invoices.UpdateStatus(id, "void")
}
