package services

import (
	"time"

	"purposefood/internal/domain"
	"purposefood/internal/repos"
)

// DashboardService aggregates the numbers the owner sees first: order queue,
// today's revenue, stock alerts and the month's books.
type DashboardService struct {
	Orders   *repos.OrderRepo
	Products *repos.ProductRepo
	Notifs   *repos.NotificationRepo
	Finance  *repos.FinanceRepo
}

func NewDashboardService(orders *repos.OrderRepo, products *repos.ProductRepo,
	notifs *repos.NotificationRepo, finance *repos.FinanceRepo) *DashboardService {
	return &DashboardService{Orders: orders, Products: products, Notifs: notifs, Finance: finance}
}

type DashboardView struct {
	PendingOrders   int                  `json:"pending_orders"`
	PreparingOrders int                  `json:"preparing_orders"`
	TodayOrders     int                  `json:"today_orders"`
	TodayRevenue    float64              `json:"today_revenue"`
	LowStock        []domain.Product     `json:"low_stock"`
	OutOfStock      []domain.Product     `json:"out_of_stock"`
	UnreadNotifs    int                  `json:"unread_notifications"`
	Month           repos.FinanceSummary `json:"month"`
}

func (s *DashboardService) Overview(now time.Time) (DashboardView, error) {
	var v DashboardView
	var err error

	if v.PendingOrders, err = s.Orders.CountByStatus(domain.OrderPending); err != nil {
		return v, err
	}
	if v.PreparingOrders, err = s.Orders.CountByStatus(domain.OrderPreparing); err != nil {
		return v, err
	}
	if v.TodayOrders, v.TodayRevenue, err = s.Orders.TodayStats(); err != nil {
		return v, err
	}
	if v.LowStock, err = s.Products.LowStock(); err != nil {
		return v, err
	}
	if v.OutOfStock, err = s.Products.OutOfStock(); err != nil {
		return v, err
	}
	if v.UnreadNotifs, err = s.Notifs.UnreadCount(); err != nil {
		return v, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	monthEnd := now.Format("2006-01-02")
	if v.Month, err = s.Finance.Summary(monthStart, monthEnd); err != nil {
		return v, err
	}

	return v, nil
}
