package services

import (
	"purposefood/internal/domain"
)

// AvailabilityService classifies whether requested line items can be filled
// from stock, partially, or only after production. Read-only: safe to call
// repeatedly and concurrently for the same products.
type AvailabilityService struct {
	Products ProductStore
}

func NewAvailabilityService(products ProductStore) *AvailabilityService {
	return &AvailabilityService{Products: products}
}

// CheckAvailability inspects each line in input order. A missing or inactive
// product blocks the order (CanProceed=false); empty or backlogged stock does
// not block, those lines go to production and only shift the delivery estimate.
func (s *AvailabilityService) CheckAvailability(items []domain.LineItem) domain.OrderAvailabilitySummary {
	sum := domain.OrderAvailabilitySummary{
		Availability: make([]domain.AvailabilityResult, 0, len(items)),
		CanProceed:   true,
	}

	for _, it := range items {
		p, err := s.Products.Get(it.ProductID)
		if err != nil {
			sum.Availability = append(sum.Availability, domain.AvailabilityResult{
				ProductID: it.ProductID,
				Available: false,
				Message:   "product not found",
			})
			sum.CanProceed = false
			continue
		}

		if !p.Active {
			sum.Availability = append(sum.Availability, domain.AvailabilityResult{
				ProductID:    p.ID,
				ProductName:  p.Name,
				Available:    false,
				Message:      "currently unavailable",
				StockCurrent: p.StockCurrent,
			})
			sum.HasOutOfStock = true
			sum.CanProceed = false
			continue
		}

		res := domain.AvailabilityResult{
			ProductID:    p.ID,
			ProductName:  p.Name,
			Available:    true,
			StockCurrent: p.StockCurrent,
			PrepHours:    p.PrepHours,
		}
		switch {
		case p.StockCurrent >= it.Quantity:
			res.DeliveryType = domain.DeliveryImmediate
			res.PrepHours = 0
		case p.StockCurrent > 0:
			res.DeliveryType = domain.DeliveryPartial
			res.ImmediateQty = p.StockCurrent
			res.ProductionQty = it.Quantity - p.StockCurrent
			sum.HasLowStock = true
			if p.PrepHours > sum.TotalProdHours {
				sum.TotalProdHours = p.PrepHours
			}
		default:
			res.DeliveryType = domain.DeliveryProduction
			sum.HasOutOfStock = true
			if p.PrepHours > sum.TotalProdHours {
				sum.TotalProdHours = p.PrepHours
			}
		}
		sum.Availability = append(sum.Availability, res)
	}

	sum.DeliveryEstimate = EstimateDelivery(sum.TotalProdHours, sum.HasOutOfStock || sum.HasLowStock)
	return sum
}
